// Package markdownmarks supplies mark-producing helpers (spec.md §4.6)
// that derive obelizmo.Mark values from a Markdown document, walking
// the node tree blackfriday/v2 builds the same way cmd/poc/main.go's
// walkOutline/visitNode walk it to build an outline — generalized here
// from "build an outline" to "emit marks over the source bytes."
package markdownmarks

import (
	"github.com/russross/blackfriday/v2"
	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/mnemnion/obelizmo"
	"github.com/mnemnion/obelizmo/internal/blockscan"
)

// defaultExtensions mirrors cmd/poc/main.go's fixed extension set.
const defaultExtensions = blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak

// newMarkdown builds a *blackfriday.Markdown using the teacher's
// extension set, or returns md unchanged if the caller supplied one.
func newMarkdown(md *blackfriday.Markdown) *blackfriday.Markdown {
	if md != nil {
		return md
	}
	return blackfriday.New(blackfriday.WithExtensions(defaultExtensions))
}

// cursor finds each node's rendered text in source, forward-only, so
// that marking a document's nodes in document order never revisits an
// earlier byte range even when two nodes render identical text.
type cursor struct {
	source string
	pos    int
}

// find locates s in the source at or after the cursor's current
// position, advancing the cursor past it on success.
func (c *cursor) find(s string) (start, end int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	i := indexFrom(c.source, s, c.pos)
	if i < 0 {
		return 0, 0, false
	}
	c.pos = i + len(s)
	return i, c.pos, true
}

func indexFrom(haystack, needle string, from int) int {
	if from > len(haystack) {
		return -1
	}
	rel := indexOf(haystack[from:], needle)
	if rel < 0 {
		return -1
	}
	return from + rel
}

func indexOf(haystack, needle string) int {
	n := len(needle)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(haystack); i++ {
		if haystack[i:i+n] == needle {
			return i
		}
	}
	return -1
}

// collectText concatenates the literal text of node's Text and Code
// descendants, the substring markNode looks for in source.
func collectText(node *blackfriday.Node) string {
	var s []byte
	node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			return blackfriday.GoToNext
		}
		switch n.Type {
		case blackfriday.Text, blackfriday.Code:
			s = append(s, n.Literal...)
		}
		return blackfriday.GoToNext
	})
	return string(s)
}

// markNode marks the first unconsumed occurrence of node's rendered
// text in c's source with kind. It reports whether a mark was made;
// nodes whose text can't be relocated (for example an empty heading)
// are silently skipped, matching spec.md §4.6's "no hit is not an
// error" rule for the substring/regex helpers this mirrors.
func markNode[K obelizmo.Kind](store *obelizmo.MarkStore[K], c *cursor, kind K, node *blackfriday.Node) (obelizmo.Mark[K], bool, error) {
	text := collectText(node)
	start, end, ok := c.find(text)
	if !ok {
		return obelizmo.Mark[K]{}, false, nil
	}
	if err := store.MarkSlice(kind, start, end); err != nil {
		return obelizmo.Mark[K]{}, false, err
	}
	return obelizmo.Mark[K]{Kind: kind, Offset: uint32(start), Len: uint32(end - start)}, true, nil
}

// HeadingMark pairs a heading's mark with its slug, since
// obelizmo.Mark carries no caller attributes (spec.md §3 keeps it a
// fixed {kind, offset, len} record).
type HeadingMark[K obelizmo.Kind] struct {
	Mark obelizmo.Mark[K]
	Slug string
}

// Headings walks doc's headings in document order, marking each one's
// text with kind and computing a stable anchor slug via
// sanitized_anchor_name, the same package blackfriday's own
// HeadingIDs extension uses internally.
func Headings[K obelizmo.Kind](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string) ([]HeadingMark[K], error) {
	return walkKind(store, kind, md, source, blackfriday.Heading, func(hm obelizmo.Mark[K], text string) HeadingMark[K] {
		return HeadingMark[K]{Mark: hm, Slug: sanitized_anchor_name.Create(text)}
	})
}

// Emphasis walks doc's emphasized (italic) spans, marking each with kind.
func Emphasis[K obelizmo.Kind](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string) ([]obelizmo.Mark[K], error) {
	return walkPlain(store, kind, md, source, blackfriday.Emph)
}

// Strong walks doc's bold spans, marking each with kind.
func Strong[K obelizmo.Kind](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string) ([]obelizmo.Mark[K], error) {
	return walkPlain(store, kind, md, source, blackfriday.Strong)
}

// CodeSpans walks doc's inline code spans, marking each with kind.
func CodeSpans[K obelizmo.Kind](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string) ([]obelizmo.Mark[K], error) {
	return walkPlain(store, kind, md, source, blackfriday.Code)
}

// Links walks doc's link text spans, marking each with kind. The
// link destination is not marked; only the visible link text is.
func Links[K obelizmo.Kind](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string) ([]obelizmo.Mark[K], error) {
	return walkPlain(store, kind, md, source, blackfriday.Link)
}

// Strikethrough walks doc's `~~struck~~` spans, marking each with
// kind. Requires the blackfriday.Strikethrough extension, which
// defaultExtensions enables.
func Strikethrough[K obelizmo.Kind](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string) ([]obelizmo.Mark[K], error) {
	return walkPlain(store, kind, md, source, blackfriday.Del)
}

func walkPlain[K obelizmo.Kind](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string, nodeType blackfriday.NodeType) ([]obelizmo.Mark[K], error) {
	var marks []obelizmo.Mark[K]
	_, err := walkKind(store, kind, md, source, nodeType, func(m obelizmo.Mark[K], _ string) obelizmo.Mark[K] {
		marks = append(marks, m)
		return m
	})
	return marks, err
}

func walkKind[K obelizmo.Kind, R any](store *obelizmo.MarkStore[K], kind K, md *blackfriday.Markdown, source string, nodeType blackfriday.NodeType, build func(obelizmo.Mark[K], string) R) ([]R, error) {
	md = newMarkdown(md)
	root := md.Parse([]byte(source))
	c := &cursor{source: source}

	var results []R
	var walkErr error
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || n.Type != nodeType {
			return blackfriday.GoToNext
		}
		text := collectText(n)
		m, ok, err := markNode(store, c, kind, n)
		if err != nil {
			walkErr = err
			return blackfriday.Terminate
		}
		if ok {
			results = append(results, build(m, text))
		}
		return blackfriday.GoToNext
	})
	return results, walkErr
}

// Blocks marks every block-structure span blockscan recognizes —
// heading, ruler, blockquote, list, item, code fence, and code block —
// translating each blockscan.BlockType into the caller's own kind
// space via toKind, which may return ok=false to skip a block type
// the caller doesn't want marked.
func Blocks[K obelizmo.Kind](store *obelizmo.MarkStore[K], source string, toKind func(blockscan.BlockType) (K, bool)) ([]obelizmo.Mark[K], error) {
	tokens, err := blockscan.Tokenize(source)
	if err != nil {
		return nil, err
	}
	var marks []obelizmo.Mark[K]
	for _, tok := range tokens {
		kind, ok := toKind(tok.Type)
		if !ok {
			continue
		}
		if err := store.MarkSlice(kind, tok.Start, tok.End); err != nil {
			return marks, err
		}
		marks = append(marks, obelizmo.Mark[K]{Kind: kind, Offset: uint32(tok.Start), Len: uint32(tok.End - tok.Start)})
	}
	return marks, nil
}
