package color

// This file implements the Attribute<->ANSI map component (§4.1): translation between a
// packed Windows console attribute word and ANSI SGR codes. The host's attribute word packs
// BGR-ordered bits; ANSI SGR numbers colors in RGB order. The mapping is an explicit 16-entry
// table, never derived from the bit masks directly, because the two orderings disagree on
// red/blue and a masked computation would silently produce the wrong ANSI index for red,
// blue, magenta, cyan, and their bright variants.

// Windows console attribute bit positions (as returned by GetConsoleScreenBufferInfo).
const (
	AttrFgBlue      uint16 = 0x0001
	AttrFgGreen     uint16 = 0x0002
	AttrFgRed       uint16 = 0x0004
	AttrFgIntensity uint16 = 0x0008
	AttrBgBlue      uint16 = 0x0010
	AttrBgGreen     uint16 = 0x0020
	AttrBgRed       uint16 = 0x0040
	AttrBgIntensity uint16 = 0x0080
	AttrReverse     uint16 = 0x4000
	AttrUnderscore  uint16 = 0x8000
)

// ansi16FromWindowsIndex maps a 4-bit Windows BGR+intensity nibble (bit0=B, bit1=G, bit2=R,
// bit3=intensity) to the ANSI 16-color index (0..15, where 0..7 are dim and 8..15 bright,
// ordered black/red/green/yellow/blue/magenta/cyan/white).
var ansi16FromWindowsIndex = [16]uint8{
	0:  0,  // 0000 -> black
	1:  4,  // 0001 (blue)        -> ansi blue
	2:  2,  // 0010 (green)       -> ansi green
	3:  6,  // 0011 (green+blue)  -> ansi cyan
	4:  1,  // 0100 (red)         -> ansi red
	5:  5,  // 0101 (red+blue)    -> ansi magenta
	6:  3,  // 0110 (red+green)   -> ansi yellow
	7:  7,  // 0111 (red+green+blue) -> ansi white
	8:  8,  // intensity only     -> bright black
	9:  12, // intensity+blue     -> bright blue
	10: 10, // intensity+green    -> bright green
	11: 14, // intensity+green+blue -> bright cyan
	12: 9,  // intensity+red      -> bright red
	13: 13, // intensity+red+blue -> bright magenta
	14: 11, // intensity+red+green -> bright yellow
	15: 15, // intensity+red+green+blue -> bright white
}

// windowsIndexFromAnsi16 is the inverse of ansi16FromWindowsIndex.
var windowsIndexFromAnsi16 = func() [16]uint8 {
	var inv [16]uint8
	for winIdx, ansiIdx := range ansi16FromWindowsIndex {
		inv[ansiIdx] = uint8(winIdx)
	}
	return inv
}()

// WindowsAttrStyle is the decoded, style-only view of a packed attribute word: colors plus
// the reverse-video/underscore bits the console natively supports. Bold/italic/strikethrough
// have no Windows console attribute-word representation and are tracked separately by
// whatever called FromWindowsAttr (the capture engine does not synthesize them from the raw
// word).
type WindowsAttrStyle struct {
	Fg         Color
	Bg         Color
	Reverse    bool
	Underscore bool
}

// FromWindowsAttr decodes a packed console attribute word into fg/bg ANSI-16 colors plus the
// reverse/underscore bits.
func FromWindowsAttr(word uint16) WindowsAttrStyle {
	fgNibble := uint8(0)
	if word&AttrFgBlue != 0 {
		fgNibble |= 0x1
	}
	if word&AttrFgGreen != 0 {
		fgNibble |= 0x2
	}
	if word&AttrFgRed != 0 {
		fgNibble |= 0x4
	}
	if word&AttrFgIntensity != 0 {
		fgNibble |= 0x8
	}

	bgNibble := uint8(0)
	if word&AttrBgBlue != 0 {
		bgNibble |= 0x1
	}
	if word&AttrBgGreen != 0 {
		bgNibble |= 0x2
	}
	if word&AttrBgRed != 0 {
		bgNibble |= 0x4
	}
	if word&AttrBgIntensity != 0 {
		bgNibble |= 0x8
	}

	return WindowsAttrStyle{
		Fg:         Ansi16(int(ansi16FromWindowsIndex[fgNibble])),
		Bg:         Ansi16(int(ansi16FromWindowsIndex[bgNibble])),
		Reverse:    word&AttrReverse != 0,
		Underscore: word&AttrUnderscore != 0,
	}
}

// ToWindowsAttr encodes fg/bg ANSI-16 colors (non-Ansi16 colors are approximated to their
// nearest basic index by the caller before reaching this function; ToWindowsAttr itself only
// accepts KindAnsi16 or KindDefault, treating KindDefault as index 7 fg / 0 bg, the console's
// conventional default) plus reverse/underscore bits back into a packed attribute word.
func ToWindowsAttr(s WindowsAttrStyle) uint16 {
	fgIdx := uint8(7)
	if s.Fg.Kind == KindAnsi16 {
		fgIdx = s.Fg.Index
	}
	bgIdx := uint8(0)
	if s.Bg.Kind == KindAnsi16 {
		bgIdx = s.Bg.Index
	}

	fgNibble := windowsIndexFromAnsi16[fgIdx&0xF]
	bgNibble := windowsIndexFromAnsi16[bgIdx&0xF]

	var word uint16
	if fgNibble&0x1 != 0 {
		word |= AttrFgBlue
	}
	if fgNibble&0x2 != 0 {
		word |= AttrFgGreen
	}
	if fgNibble&0x4 != 0 {
		word |= AttrFgRed
	}
	if fgNibble&0x8 != 0 {
		word |= AttrFgIntensity
	}
	if bgNibble&0x1 != 0 {
		word |= AttrBgBlue
	}
	if bgNibble&0x2 != 0 {
		word |= AttrBgGreen
	}
	if bgNibble&0x4 != 0 {
		word |= AttrBgRed
	}
	if bgNibble&0x8 != 0 {
		word |= AttrBgIntensity
	}
	if s.Reverse {
		word |= AttrReverse
	}
	if s.Underscore {
		word |= AttrUnderscore
	}
	return word
}

// SGRFgCode returns the ANSI SGR foreground parameter(s) for c: a single basic code
// (30-37/90-97), or the 38;5;n / 38;2;r;g;b extended sequence, or nil for Default (meaning
// "emit 39").
func SGRFgCode(c Color) []int {
	return sgrCode(c, 30, 90, 38)
}

// SGRBgCode is the background analogue of SGRFgCode (40-47/100-107, or 48;5;n / 48;2;r;g;b).
func SGRBgCode(c Color) []int {
	return sgrCode(c, 40, 100, 48)
}

func sgrCode(c Color, base, brightBase, extended int) []int {
	switch c.Kind {
	case KindAnsi16:
		idx := int(c.Index)
		if idx < 8 {
			return []int{base + idx}
		}
		return []int{brightBase + (idx - 8)}
	case KindPalette256:
		return []int{extended, 5, int(c.Index)}
	case KindRGB:
		return []int{extended, 2, int(c.R), int(c.G), int(c.B)}
	default:
		return nil
	}
}
