package ansi

import (
	"fmt"
	"strconv"
)

const esc = "\x1b["

func sgr(code string) []byte { return []byte(esc + code + "m") }

func sgrJoin(codes ...string) []byte {
	var b []byte
	for _, c := range codes {
		if c == "" {
			continue
		}
		b = append(b, sgr(c)...)
	}
	return b
}

// Attribute on/off codes, spec.md §6.
const (
	codeBoldOn          = "1"
	codeFaintOn         = "2"
	codeItalicOn        = "3"
	codeBlinkOn         = "5"
	codeRapidBlinkOn    = "6"
	codeStrikethroughOn = "9"
	codeOverlineOn      = "53"
	codeInverseOn       = "7"
	codeInvisibleOn     = "8"
	codeSuperscriptOn   = "73"
	codeSubscriptOn     = "74"

	codeBoldFaintOff      = "22"
	codeItalicOff         = "23"
	codeBlinkOff          = "25"
	codeStrikethroughOff  = "29"
	codeOverlineOff       = "55"
	codeInverseOff        = "27"
	codeInvisibleOff      = "28"
	codeBaselineOff       = "75"
	codeUnderlineOff      = "24"
	codeUnderlineColorOff = "59"
	codeFullReset         = "0"

	codeUnderlineSingle = "4"
	codeUnderlineDouble = "4:2"
	codeUnderlineCurly  = "4:3"
	codeUnderlineDotted = "4:4"
	codeUnderlineDashed = "4:5"

	codeForegroundDefault = "39"
	codeBackgroundDefault = "49"
	codeUnderlineColorDef = "59"
)

func basicFGCode(b BasicColor) string { return "3" + strconv.Itoa(int(b)) }
func basicBGCode(b BasicColor) string { return "4" + strconv.Itoa(int(b)) }

func foregroundColorOn(uc ColorValue) string {
	switch uc.kind {
	case ucDefault:
		return codeForegroundDefault
	case ucBasic:
		return basicFGCode(uc.basic)
	case ucPalette:
		return fmt.Sprintf("38:5:%d", uc.palette)
	case ucRGB:
		return fmt.Sprintf("38:2::%d:%d:%d", uc.r, uc.g, uc.b)
	default:
		panic("obelizmo/ansi: invalid ColorValue")
	}
}

func backgroundColorOn(uc ColorValue) string {
	switch uc.kind {
	case ucDefault:
		return codeBackgroundDefault
	case ucBasic:
		return basicBGCode(uc.basic)
	case ucPalette:
		return fmt.Sprintf("48:5:%d", uc.palette)
	case ucRGB:
		return fmt.Sprintf("48:2::%d:%d:%d", uc.r, uc.g, uc.b)
	default:
		panic("obelizmo/ansi: invalid ColorValue")
	}
}

// underlineColorOn emits the underline-color escape. Basic colors
// emulate via the 256-palette indices 0..7, as spec.md §6 directs,
// since there is no dedicated "basic underline color" SGR code.
func underlineColorOn(uc ColorValue) string {
	switch uc.kind {
	case ucDefault:
		return codeUnderlineColorDef
	case ucBasic:
		return fmt.Sprintf("58:5:%d", int(uc.basic))
	case ucPalette:
		return fmt.Sprintf("58:5:%d", uc.palette)
	case ucRGB:
		return fmt.Sprintf("58:2::%d:%d:%d", uc.r, uc.g, uc.b)
	default:
		panic("obelizmo/ansi: invalid ColorValue")
	}
}

func underlineStyleCode(variant variant) string {
	switch variant {
	case vUnderline:
		return codeUnderlineSingle
	case vDoubleUnderline:
		return codeUnderlineDouble
	case vCurlyUnderline:
		return codeUnderlineCurly
	case vDottedUnderline:
		return codeUnderlineDotted
	case vDashedUnderline:
		return codeUnderlineDashed
	default:
		panic("obelizmo/ansi: not an underline variant")
	}
}

func styleOnCodes(s Styles) []string {
	var codes []string
	if s.Bold {
		codes = append(codes, codeBoldOn)
	}
	if s.Faint {
		codes = append(codes, codeFaintOn)
	}
	if s.Italic {
		codes = append(codes, codeItalicOn)
	}
	if s.Blink {
		codes = append(codes, codeBlinkOn)
	}
	if s.RapidBlink {
		codes = append(codes, codeRapidBlinkOn)
	}
	if s.Strikethrough {
		codes = append(codes, codeStrikethroughOn)
	}
	if s.Overline {
		codes = append(codes, codeOverlineOn)
	}
	return codes
}

func styleOffCodes(s Styles) []string {
	var codes []string
	if s.Bold || s.Faint {
		codes = append(codes, codeBoldFaintOff)
	}
	if s.Italic {
		codes = append(codes, codeItalicOff)
	}
	if s.Blink || s.RapidBlink {
		codes = append(codes, codeBlinkOff)
	}
	if s.Strikethrough {
		codes = append(codes, codeStrikethroughOff)
	}
	if s.Overline {
		codes = append(codes, codeOverlineOff)
	}
	return codes
}

// On returns the escape sequence that opens this Color's span.
func (c Color) On() []byte {
	switch c.variant {
	case vUnderline, vDoubleUnderline, vCurlyUnderline, vDottedUnderline, vDashedUnderline:
		return sgrJoin(underlineStyleCode(c.variant), underlineColorOn(c.uc))
	case vBackground:
		return sgr(backgroundColorOn(c.uc))
	case vForeground, vSuperscript, vSubscript:
		var codes []string
		switch c.variant {
		case vSuperscript:
			codes = append(codes, codeSuperscriptOn)
		case vSubscript:
			codes = append(codes, codeSubscriptOn)
		}
		if c.color != nil {
			codes = append(codes, foregroundColorOn(*c.color))
		}
		codes = append(codes, styleOnCodes(c.styles)...)
		return sgrJoin(codes...)
	case vInverse:
		return sgr(codeInverseOn)
	case vInvisible:
		return sgr(codeInvisibleOn)
	case vReset:
		return resetCodes(c.resets)
	default:
		panic("obelizmo/ansi: invalid Color variant")
	}
}

// Off returns the escape sequence that closes this Color's span. For
// a Reset, Off is empty: a reset is a one-shot action, not a span.
func (c Color) Off() []byte {
	switch c.variant {
	case vUnderline, vDoubleUnderline, vCurlyUnderline, vDottedUnderline, vDashedUnderline:
		return sgrJoin(codeUnderlineOff, codeUnderlineColorOff)
	case vBackground:
		return sgr(codeBackgroundDefault)
	case vForeground, vSuperscript, vSubscript:
		var codes []string
		codes = append(codes, styleOffCodes(c.styles)...)
		switch c.variant {
		case vSuperscript, vSubscript:
			codes = append(codes, codeBaselineOff)
		}
		if c.color != nil {
			codes = append(codes, codeForegroundDefault)
		}
		return sgrJoin(codes...)
	case vInverse:
		return sgr(codeInverseOff)
	case vInvisible:
		return sgr(codeInvisibleOff)
	case vReset:
		return nil
	default:
		panic("obelizmo/ansi: invalid Color variant")
	}
}

func resetCodes(r Resets) []byte {
	if r.All {
		return sgr(codeFullReset)
	}
	var codes []string
	if r.Neutral {
		codes = append(codes, codeBoldFaintOff)
	}
	if r.Upright {
		codes = append(codes, codeItalicOff)
	}
	if r.Steady {
		codes = append(codes, codeBlinkOff)
	}
	if r.Baseline {
		codes = append(codes, codeBaselineOff)
	}
	if r.Foreground {
		codes = append(codes, codeForegroundDefault)
	}
	if r.Background {
		codes = append(codes, codeBackgroundDefault)
	}
	if r.Underline {
		codes = append(codes, codeUnderlineOff)
	}
	if r.UnderlineColor {
		codes = append(codes, codeUnderlineColorOff)
	}
	return sgrJoin(codes...)
}
