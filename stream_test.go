package obelizmo_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mnemnion/obelizmo"
)

func TestRenderStreamScenarioA(t *testing.T) {
	s := scenarioA(t)
	tbl := bookends(t)

	var buf bytes.Buffer
	require.NoError(t, obelizmo.RenderStream(&buf, s, tbl, obelizmo.DefaultStreamOptions()))
	require.Equal(t, "<r>red</r> <b>blue</b><t> </t><g>green</g> <y>yellow</y>", buf.String())
}

func TestRenderStreamScenarioB(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("func 10 funky 456")
	require.NoError(t, s.MarkFrom(kRed, 0, 4))
	require.NoError(t, s.MarkFrom(kBlue, 5, 2))
	require.NoError(t, s.MarkFrom(kRed, 8, 5))
	require.NoError(t, s.MarkFrom(kYellow, 9, 1))
	require.NoError(t, s.MarkFrom(kBlue, 14, 3))
	tbl := bookends(t)

	var buf bytes.Buffer
	require.NoError(t, obelizmo.RenderStream(&buf, s, tbl, obelizmo.DefaultStreamOptions()))
	require.Equal(t, "<r>func</r> <b>10</b> <r>f</r><y>u</y><r>nky</r> <b>456</b>", buf.String())
}

// TestRenderStreamScenarioF encodes spec.md's zero-width suppression
// scenario: two identical-range marks of different kinds.
func TestRenderStreamScenarioF(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("hello")
	require.NoError(t, s.MarkFrom(kRed, 0, 5))   // "outer": lower kind, ordIn picks it first
	require.NoError(t, s.MarkFrom(kBlue, 0, 5))   // "inner"
	tbl := bookends(t)

	var buf bytes.Buffer
	require.NoError(t, obelizmo.RenderStream(&buf, s, tbl, obelizmo.DefaultStreamOptions()))
	require.Equal(t, "<b>hello</b>", buf.String(), "outer's open+close are both suppressed as zero-width")
}

func TestRenderStreamScenarioF_NoSkip(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("hello")
	require.NoError(t, s.MarkFrom(kRed, 0, 5))
	require.NoError(t, s.MarkFrom(kBlue, 0, 5))
	tbl := bookends(t)

	var buf bytes.Buffer
	require.NoError(t, obelizmo.RenderStream(&buf, s, tbl, obelizmo.StreamOptions{SkipZeroWidth: false}))
	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "<r>"), "outer's open is emitted without suppression")
	require.Equal(t, 1, strings.Count(out, "<b>"), "inner's open is emitted")
	require.Contains(t, out, "hello")
}

func TestRenderStreamCoverage(t *testing.T) {
	s := scenarioA(t)
	tbl := bookends(t)

	var buf bytes.Buffer
	require.NoError(t, obelizmo.RenderStream(&buf, s, tbl, obelizmo.DefaultStreamOptions()))

	stripped := buf.String()
	for _, tag := range []string{"<r>", "</r>", "<b>", "</b>", "<g>", "</g>", "<y>", "</y>", "<t>", "</t>"} {
		stripped = strings.ReplaceAll(stripped, tag, "")
	}
	require.Equal(t, s.Text(), stripped)
}
