// Package color defines the four-variant color model used throughout the grid, terminal
// emulator, theme, and renderer packages.
package color

// Kind tags which variant of Color is populated.
type Kind uint8

const (
	// KindDefault means "use the theme's default foreground/background", as produced by
	// SGR 39/49 or an initial/reset cell.
	KindDefault Kind = iota
	// KindAnsi16 is one of the 16 basic ANSI colors (0..15).
	KindAnsi16
	// KindPalette256 is an index into the 256-color palette (0..255).
	KindPalette256
	// KindRGB is a 24-bit true color.
	KindRGB
)

// Color is a tagged union: Default, Ansi16(0..15), Palette256(0..255), or Rgb{r,g,b}.
// Only the fields relevant to Kind are meaningful.
type Color struct {
	Kind  Kind
	Index uint8 // used by KindAnsi16, KindPalette256
	R, G, B uint8 // used by KindRGB
}

// Default is the zero value and represents "no active color".
var Default = Color{Kind: KindDefault}

// Ansi16 constructs a basic 16-color value. Index is clamped into 0..15.
func Ansi16(index int) Color {
	if index < 0 {
		index = 0
	}
	if index > 15 {
		index = 15
	}
	return Color{Kind: KindAnsi16, Index: uint8(index)}
}

// Palette256 constructs a 256-color palette index value. Index is clamped into 0..255.
func Palette256(index int) Color {
	if index < 0 {
		index = 0
	}
	if index > 255 {
		index = 255
	}
	return Color{Kind: KindPalette256, Index: uint8(index)}
}

// RGB constructs a true-color value.
func RGB(r, g, b uint8) Color {
	return Color{Kind: KindRGB, R: r, G: g, B: b}
}

// IsDefault reports whether c represents the default (no active) color.
func (c Color) IsDefault() bool {
	return c.Kind == KindDefault
}

// Equal reports whether two Color values are identical in kind and payload.
func (c Color) Equal(o Color) bool {
	return c == o
}
