package blockscan_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemnion/obelizmo/internal/blockscan"
)

func TestTokenizeOffsets(t *testing.T) {
	source := "# Title\n\nSome text\n\n> quoted\n"

	tokens, err := blockscan.Tokenize(source)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	for _, tok := range tokens {
		require.GreaterOrEqual(t, tok.Start, 0)
		require.LessOrEqual(t, tok.End, len(source))
		require.LessOrEqual(t, tok.Start, tok.End)
	}

	var sawHeading, sawBlockquote bool
	for _, tok := range tokens {
		switch tok.Type {
		case blockscan.Heading:
			sawHeading = true
			assert.Equal(t, "# Title\n", source[tok.Start:tok.End])
		case blockscan.Blockquote:
			sawBlockquote = true
			assert.Equal(t, "> quoted\n", source[tok.Start:tok.End])
		}
	}
	assert.True(t, sawHeading, "expected a Heading token")
	assert.True(t, sawBlockquote, "expected a Blockquote token")
}

func TestTokenizeEmpty(t *testing.T) {
	tokens, err := blockscan.Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenFormat(t *testing.T) {
	tok := blockscan.Token{Type: blockscan.Heading, Start: 0, End: 8}
	assert.Equal(t, "@0+8 Heading", fmt.Sprintf("%v", tok))
}
