package term

import (
	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/color"
)

// handleSGR applies one CSI ... m sequence's parameters to the emulator's current style,
// generalized from a basic handleSGR to the full basic/bright/256/true-color SGR forms
// (spec §4.5).
func (e *Emulator) handleSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			e.curFg = color.Default
			e.curBg = color.Default
			e.curAttrs = 0
		case p == 1:
			e.curAttrs |= cell.StyleBold
		case p == 3:
			e.curAttrs |= cell.StyleItalic
		case p == 4:
			e.curAttrs |= cell.StyleUnderline
		case p == 9:
			e.curAttrs |= cell.StyleStrikethrough
		case p == 22:
			e.curAttrs &^= cell.StyleBold
		case p == 23:
			e.curAttrs &^= cell.StyleItalic
		case p == 24:
			e.curAttrs &^= cell.StyleUnderline
		case p == 29:
			e.curAttrs &^= cell.StyleStrikethrough
		case p == 39:
			e.curFg = color.Default
		case p == 49:
			e.curBg = color.Default
		case p >= 30 && p <= 37:
			e.curFg = color.Ansi16(p - 30)
		case p >= 90 && p <= 97:
			e.curFg = color.Ansi16(p - 90 + 8)
		case p >= 40 && p <= 47:
			e.curBg = color.Ansi16(p - 40)
		case p >= 100 && p <= 107:
			e.curBg = color.Ansi16(p - 100 + 8)
		case p == 38 || p == 48:
			consumed, c := parseExtendedColor(params, i)
			if consumed == 0 {
				continue
			}
			if p == 38 {
				e.curFg = c
			} else {
				e.curBg = c
			}
			i += consumed
		}
	}
}

// parseExtendedColor reads the "5;n" (256-color) or "2;r;g;b" (true-color) form starting right
// after params[i] (which is 38 or 48). Returns how many extra params were consumed and the
// decoded color; consumed == 0 means the sequence was truncated/malformed and was ignored.
func parseExtendedColor(params []int, i int) (consumed int, c color.Color) {
	if i+1 >= len(params) {
		return 0, color.Default
	}
	switch params[i+1] {
	case 5:
		if i+2 >= len(params) {
			return 0, color.Default
		}
		return 2, color.Palette256(params[i+2])
	case 2:
		if i+4 >= len(params) {
			return 0, color.Default
		}
		return 4, color.RGB(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4]))
	default:
		return 0, color.Default
	}
}
