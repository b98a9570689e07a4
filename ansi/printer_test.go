package ansi_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemnion/obelizmo"
	"github.com/mnemnion/obelizmo/ansi"
)

type kind int

const (
	kRed kind = iota
	kBlue
	numKinds
)

func colorTable(t *testing.T) *ansi.ColorTable[kind] {
	t.Helper()
	tbl, err := ansi.NewColorTable(int(numKinds), map[kind]ansi.Color{
		kRed:  ansi.Foreground(ansi.Basic(ansi.Red)),
		kBlue: ansi.Foreground(ansi.Basic(ansi.Blue)),
	})
	require.NoError(t, err)
	return tbl
}

// A single foreground mark spanning an embedded line break must have
// its open escape re-emitted at the start of the second line, and its
// close escape emitted exactly once, where the mark ends.
func TestPrinterScenarioE(t *testing.T) {
	store := obelizmo.NewMarkStore[kind]("ab\ncd")
	require.NoError(t, store.MarkFrom(kRed, 0, 5))

	p := ansi.NewPrinter(store, colorTable(t))
	red := colorTable(t).Color(kRed)

	var buf1 bytes.Buffer
	more, err := p.Next(&buf1)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, string(red.On())+"ab", buf1.String())

	var buf2 bytes.Buffer
	more, err = p.Next(&buf2)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, string(red.On())+"cd"+string(red.Off()), buf2.String())

	_, err = p.Next(&bytes.Buffer{})
	assert.ErrorIs(t, err, ansi.ErrPrinterDone)
}

// A mark that ends exactly at a line boundary closes before the
// terminator is consumed and is not re-announced on the next line.
func TestPrinterMarkEndsAtLineBoundary(t *testing.T) {
	store := obelizmo.NewMarkStore[kind]("ab\ncd")
	require.NoError(t, store.MarkFrom(kRed, 0, 2))

	p := ansi.NewPrinter(store, colorTable(t))
	red := colorTable(t).Color(kRed)

	var buf1 bytes.Buffer
	more, err := p.Next(&buf1)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, string(red.On())+"ab"+string(red.Off()), buf1.String())

	var buf2 bytes.Buffer
	more, err = p.Next(&buf2)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, "cd", buf2.String())
}

// Two overlapping foreground marks: closing the inner one must restore
// the outer one's escape rather than leaving the terminal in its
// default foreground state.
func TestPrinterClassStackRestoreOnClose(t *testing.T) {
	store := obelizmo.NewMarkStore[kind]("hello")
	require.NoError(t, store.MarkFrom(kRed, 0, 5))
	require.NoError(t, store.MarkFrom(kBlue, 1, 2))

	p := ansi.NewPrinter(store, colorTable(t))
	red, blue := colorTable(t).Color(kRed), colorTable(t).Color(kBlue)

	var buf bytes.Buffer
	require.NoError(t, p.WriteAll(&buf))

	want := string(red.On()) + "h" + string(blue.On()) + "el" + string(blue.Off()) +
		string(red.On()) + "lo" + string(red.Off())
	assert.Equal(t, want, buf.String())
}

// A style-class Color, such as Inverse, is never pushed onto a class
// stack and so is never re-announced across a line break.
func TestPrinterStyleClassNotReannounced(t *testing.T) {
	tbl, err := ansi.NewColorTable(int(numKinds), map[kind]ansi.Color{
		kRed:  ansi.Inverse(),
		kBlue: ansi.Foreground(ansi.Basic(ansi.Blue)),
	})
	require.NoError(t, err)

	store := obelizmo.NewMarkStore[kind]("ab\ncd")
	require.NoError(t, store.MarkFrom(kRed, 0, 5))

	p := ansi.NewPrinter(store, tbl)
	inverse := tbl.Color(kRed)

	var buf1 bytes.Buffer
	more, err := p.Next(&buf1)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, string(inverse.On())+"ab", buf1.String())

	var buf2 bytes.Buffer
	more, err = p.Next(&buf2)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, "cd"+string(inverse.Off()), buf2.String())
}

func TestPrinterNewTextResets(t *testing.T) {
	store := obelizmo.NewMarkStore[kind]("hi")
	require.NoError(t, store.MarkFrom(kRed, 0, 2))
	tbl := colorTable(t)
	p := ansi.NewPrinter(store, tbl)

	var buf bytes.Buffer
	require.NoError(t, p.WriteAll(&buf))

	store2 := obelizmo.NewMarkStore[kind]("yo")
	require.NoError(t, store2.MarkFrom(kBlue, 0, 2))
	p.NewText(store2)

	var buf2 bytes.Buffer
	require.NoError(t, p.WriteAll(&buf2))
	blue := tbl.Color(kBlue)
	assert.Equal(t, string(blue.On())+"yo"+string(blue.Off()), buf2.String())
}
