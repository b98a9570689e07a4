package markdownmarks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemnion/obelizmo"
	"github.com/mnemnion/obelizmo/internal/blockscan"
	"github.com/mnemnion/obelizmo/markdownmarks"
)

type kind int

const (
	kHeading kind = iota
	kEmphasis
	kStrong
	kCode
	kLink
	kBlockquote
	kStrike
)

func TestHeadingsSlugAndOffsets(t *testing.T) {
	source := "# Hello World\n\nSome text.\n"
	store := obelizmo.NewMarkStore[kind](source)

	marks, err := markdownmarks.Headings(store, kHeading, nil, source)
	require.NoError(t, err)
	require.Len(t, marks, 1)

	hm := marks[0]
	assert.Equal(t, "hello-world", hm.Slug)
	assert.Equal(t, "Hello World", source[hm.Mark.Offset:hm.Mark.Offset+hm.Mark.Len])
}

func TestEmphasisStrongCode(t *testing.T) {
	source := "a *italic* b **bold** c `code` d"
	store := obelizmo.NewMarkStore[kind](source)

	em, err := markdownmarks.Emphasis(store, kEmphasis, nil, source)
	require.NoError(t, err)
	require.Len(t, em, 1)
	assert.Equal(t, "italic", source[em[0].Offset:em[0].Offset+em[0].Len])

	strong, err := markdownmarks.Strong(store, kStrong, nil, source)
	require.NoError(t, err)
	require.Len(t, strong, 1)
	assert.Equal(t, "bold", source[strong[0].Offset:strong[0].Offset+strong[0].Len])

	code, err := markdownmarks.CodeSpans(store, kCode, nil, source)
	require.NoError(t, err)
	require.Len(t, code, 1)
	assert.Equal(t, "code", source[code[0].Offset:code[0].Offset+code[0].Len])
}

func TestStrikethrough(t *testing.T) {
	source := "before ~~struck~~ after"
	store := obelizmo.NewMarkStore[kind](source)

	del, err := markdownmarks.Strikethrough(store, kStrike, nil, source)
	require.NoError(t, err)
	require.Len(t, del, 1)
	assert.Equal(t, "struck", source[del[0].Offset:del[0].Offset+del[0].Len])
}

func TestLinksMarkTextNotDestination(t *testing.T) {
	source := "see [the docs](https://example.com/path) for more"
	store := obelizmo.NewMarkStore[kind](source)

	links, err := markdownmarks.Links(store, kLink, nil, source)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "the docs", source[links[0].Offset:links[0].Offset+links[0].Len])
}

func TestHeadingsEmptyWithoutAnyHeading(t *testing.T) {
	source := "just a plain paragraph, no headings here\n"
	store := obelizmo.NewMarkStore[kind](source)

	marks, err := markdownmarks.Headings(store, kHeading, nil, source)
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func TestBlocksFiltersByToKind(t *testing.T) {
	source := "> quoted text\n\nplain paragraph\n"
	store := obelizmo.NewMarkStore[kind](source)

	marks, err := markdownmarks.Blocks(store, source, func(bt blockscan.BlockType) (kind, bool) {
		if bt == blockscan.Blockquote {
			return kBlockquote, true
		}
		return 0, false
	})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, kBlockquote, marks[0].Kind)
}

func TestRepeatedIdenticalTextMarksDistinctOccurrences(t *testing.T) {
	source := "**same** word and **same** again"
	store := obelizmo.NewMarkStore[kind](source)

	marks, err := markdownmarks.Strong(store, kStrong, nil, source)
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Less(t, marks[0].Offset, marks[1].Offset)
	assert.Equal(t, "same", source[marks[0].Offset:marks[0].Offset+marks[0].Len])
	assert.Equal(t, "same", source[marks[1].Offset:marks[1].Offset+marks[1].Len])
}
