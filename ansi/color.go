// Package ansi implements the ANSI/SGR color and attribute vocabulary
// spec.md §6 defines, and the line-oriented terminal printer (§4.4)
// that drives obelizmo's stream sweep for Color-valued marks.
package ansi

// Class partitions Colors for the terminal printer's class stacks: a
// closing mark of a given class restores the nearest enclosing mark of
// that same class, never a mark of a different class.
type Class int

// Class values.
const (
	ClassForeground Class = iota
	ClassBackground
	ClassUnderline
	ClassStyle
)

// BasicColor is one of the eight classic ANSI colors.
type BasicColor int

// BasicColor values, in SGR digit order.
const (
	Black BasicColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

type ucKind int

const (
	ucDefault ucKind = iota
	ucBasic
	ucPalette
	ucRGB
)

// ColorValue is the "uc" sum type from spec.md §6: a default color, one
// of the eight basic colors, a 256-color palette index, or 24-bit RGB.
type ColorValue struct {
	kind    ucKind
	basic   BasicColor
	palette uint8
	r, g, b uint8
}

// DefaultColor is the terminal's default color for a given channel.
func DefaultColor() ColorValue { return ColorValue{kind: ucDefault} }

// Basic wraps one of the eight classic ANSI colors.
func Basic(c BasicColor) ColorValue { return ColorValue{kind: ucBasic, basic: c} }

// Palette wraps a 256-color palette index.
func Palette(index uint8) ColorValue { return ColorValue{kind: ucPalette, palette: index} }

// RGB wraps a 24-bit color.
func RGB(r, g, b uint8) ColorValue { return ColorValue{kind: ucRGB, r: r, g: g, b: b} }

// UnderlineStyle selects which underline shape an underline-class
// Color draws.
type UnderlineStyle int

// UnderlineStyle values.
const (
	UnderlineSingle UnderlineStyle = iota
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Styles is the set of boolean text attributes a foreground-class
// Color (foreground, superscript, subscript) can carry alongside an
// optional color.
type Styles struct {
	Bold, Faint, Italic, Blink, RapidBlink, Strikethrough, Overline bool
}

// Resets is the bitset a Reset-variant Color carries. All, the
// default, performs a full SGR reset (`\e[0m`); any other combination
// resets only the named channels.
type Resets struct {
	All                                                                      bool
	Neutral, Upright, Steady, Baseline, Foreground, Background, Underline, UnderlineColor bool
}

// ResetAll is the default Resets value: a full reset.
func ResetAll() Resets { return Resets{All: true} }

type variant int

const (
	vUnderline variant = iota
	vDoubleUnderline
	vCurlyUnderline
	vDottedUnderline
	vDashedUnderline
	vBackground
	vForeground
	vSuperscript
	vSubscript
	vInverse
	vInvisible
	vReset
)

// Color is the sum type from spec.md §6: a span style to open and
// close when emitted as a mark through the stream sweep.
type Color struct {
	variant variant
	uc      ColorValue // underline-class and background variants
	color   *ColorValue // foreground-class variants; nil means "styles only"
	styles  Styles
	resets  Resets
}

// Underline builds a single-underline Color colored by uc.
func Underline(uc ColorValue) Color { return Color{variant: vUnderline, uc: uc} }

// DoubleUnderline builds a double-underline Color colored by uc.
func DoubleUnderline(uc ColorValue) Color { return Color{variant: vDoubleUnderline, uc: uc} }

// CurlyUnderline builds a curly-underline Color colored by uc.
func CurlyUnderline(uc ColorValue) Color { return Color{variant: vCurlyUnderline, uc: uc} }

// DottedUnderline builds a dotted-underline Color colored by uc.
func DottedUnderline(uc ColorValue) Color { return Color{variant: vDottedUnderline, uc: uc} }

// DashedUnderline builds a dashed-underline Color colored by uc.
func DashedUnderline(uc ColorValue) Color { return Color{variant: vDashedUnderline, uc: uc} }

// Background builds a background-color Color.
func Background(uc ColorValue) Color { return Color{variant: vBackground, uc: uc} }

// Foreground builds a foreground-class Color with the given color and
// no styles set. Chain Bold/Faint/Italic/etc to add styles.
func Foreground(uc ColorValue) Color {
	c := uc
	return Color{variant: vForeground, color: &c}
}

// ForegroundStyles builds a foreground-class Color with no explicit
// color change, only text styles.
func ForegroundStyles() Color { return Color{variant: vForeground} }

// Superscript builds a superscript Color with the given color.
func Superscript(uc ColorValue) Color {
	c := uc
	return Color{variant: vSuperscript, color: &c}
}

// Subscript builds a subscript Color with the given color.
func Subscript(uc ColorValue) Color {
	c := uc
	return Color{variant: vSubscript, color: &c}
}

// Inverse builds the inverse-video Color. It belongs to ClassStyle and
// is never stacked by the terminal printer.
func Inverse() Color { return Color{variant: vInverse} }

// Invisible builds the invisible-text Color. It belongs to ClassStyle
// and is never stacked by the terminal printer.
func Invisible() Color { return Color{variant: vInvisible} }

// Reset builds a Color that emits the given Resets bitset when opened
// and nothing when closed: it is a one-shot action, not a span.
func Reset(r Resets) Color { return Color{variant: vReset, resets: r} }

// Class reports which of the terminal printer's stacks this Color
// belongs to.
func (c Color) Class() Class {
	switch c.variant {
	case vForeground, vSuperscript, vSubscript:
		return ClassForeground
	case vBackground:
		return ClassBackground
	case vUnderline, vDoubleUnderline, vCurlyUnderline, vDottedUnderline, vDashedUnderline:
		return ClassUnderline
	default:
		return ClassStyle
	}
}

func (c Color) requireForegroundClass(modifier string) {
	switch c.variant {
	case vForeground, vSuperscript, vSubscript:
		return
	default:
		panic("obelizmo/ansi: " + modifier + " is only valid on a foreground-class Color (foreground, superscript, subscript)")
	}
}

// Bold sets the bold style. Panics if c is not a foreground-class Color.
func (c Color) Bold() Color { c.requireForegroundClass("Bold"); c.styles.Bold = true; return c }

// Faint sets the faint style. Panics if c is not a foreground-class Color.
func (c Color) Faint() Color { c.requireForegroundClass("Faint"); c.styles.Faint = true; return c }

// Italic sets the italic style. Panics if c is not a foreground-class Color.
func (c Color) Italic() Color { c.requireForegroundClass("Italic"); c.styles.Italic = true; return c }

// Blink sets the blink style. Panics if c is not a foreground-class Color.
func (c Color) Blink() Color { c.requireForegroundClass("Blink"); c.styles.Blink = true; return c }

// RapidBlink sets the rapid-blink style. Panics if c is not a
// foreground-class Color.
func (c Color) RapidBlink() Color {
	c.requireForegroundClass("RapidBlink")
	c.styles.RapidBlink = true
	return c
}

// Strikethrough sets the strikethrough style. Panics if c is not a
// foreground-class Color.
func (c Color) Strikethrough() Color {
	c.requireForegroundClass("Strikethrough")
	c.styles.Strikethrough = true
	return c
}

// Overline sets the overline style. Panics if c is not a
// foreground-class Color.
func (c Color) Overline() Color {
	c.requireForegroundClass("Overline")
	c.styles.Overline = true
	return c
}
