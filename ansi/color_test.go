package ansi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnemnion/obelizmo/ansi"
)

func TestForegroundOnOff(t *testing.T) {
	c := ansi.Foreground(ansi.Basic(ansi.Red)).Bold()
	assert.Equal(t, "\x1b[31m\x1b[1m", string(c.On()))
	assert.Equal(t, "\x1b[22m\x1b[39m", string(c.Off()))
	assert.Equal(t, ansi.ClassForeground, c.Class())
}

func TestBackgroundOnOff(t *testing.T) {
	c := ansi.Background(ansi.Palette(200))
	assert.Equal(t, "\x1b[48:5:200m", string(c.On()))
	assert.Equal(t, "\x1b[49m", string(c.Off()))
	assert.Equal(t, ansi.ClassBackground, c.Class())
}

func TestUnderlineOnOff(t *testing.T) {
	c := ansi.CurlyUnderline(ansi.RGB(1, 2, 3))
	assert.Equal(t, "\x1b[4:3m\x1b[58:2::1:2:3m", string(c.On()))
	assert.Equal(t, "\x1b[24m\x1b[59m", string(c.Off()))
	assert.Equal(t, ansi.ClassUnderline, c.Class())
}

func TestResetAll(t *testing.T) {
	c := ansi.Reset(ansi.ResetAll())
	assert.Equal(t, "\x1b[0m", string(c.On()))
	assert.Nil(t, c.Off())
}

func TestResetSelective(t *testing.T) {
	c := ansi.Reset(ansi.Resets{Foreground: true, Underline: true})
	assert.Equal(t, "\x1b[39m\x1b[24m", string(c.On()))
}

func TestModifierMisusePanics(t *testing.T) {
	assert.Panics(t, func() {
		ansi.Background(ansi.DefaultColor()).Bold()
	})
	assert.Panics(t, func() {
		ansi.Inverse().Italic()
	})
}

func TestSuperscriptSubscript(t *testing.T) {
	sup := ansi.Superscript(ansi.Basic(ansi.Green))
	assert.Equal(t, "\x1b[73m\x1b[32m", string(sup.On()))
	assert.Equal(t, "\x1b[75m\x1b[39m", string(sup.Off()))

	sub := ansi.Subscript(ansi.DefaultColor())
	assert.Equal(t, "\x1b[74m\x1b[39m", string(sub.On()))
}
