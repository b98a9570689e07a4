package htmlbody_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemnion/obelizmo/htmlbody"
)

func escape(t *testing.T, s string) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := htmlbody.Escape(&buf, []byte(s))
	require.NoError(t, err)
	require.Equal(t, len(s), n)
	return buf.String()
}

func TestEscapeScenarioC(t *testing.T) {
	got := escape(t, "A & B < C is&nbsp;> D")
	assert.Equal(t, "A &amp; B &lt; C is&nbsp;&gt; D", got)
}

func TestEscapeEntityDetection(t *testing.T) {
	cases := []struct {
		in         string
		recognized bool
	}{
		{"&amp;", true},
		{"&#123;", true},
		{"&#x1F4A9;", true},
		{"&wrong", false},
		{"&wrong ;", false},
		{"&x123;", false},
		{"&;", false},
	}
	for _, c := range cases {
		got := escape(t, c.in)
		if c.recognized {
			assert.Equal(t, c.in, got, "entity reference %q should pass through", c.in)
		} else {
			assert.Equal(t, "&amp;"+c.in[1:], got, "non-entity %q should escape its &", c.in)
		}
	}
}

func TestEscapeIdentityWithoutSpecialBytes(t *testing.T) {
	s := "plain text, no markup here (42)."
	assert.Equal(t, s, escape(t, s))
}
