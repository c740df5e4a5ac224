// Package theme resolves SGR color indices to concrete RGB values and carries the nine
// built-in named palettes plus custom YAML-defined themes (spec §4.6).
//
// Grounded on danielgatis-go-headless-term/colors.go's programmatic 6x6x6-cube-plus-grayscale
// generator (the same cube/grayscale arithmetic, reimplemented here against this repo's
// color.Color type), and on gopkg.in/yaml.v3 for the custom-theme
// loader.
package theme

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/amantus-ai/cast/pkg/color"
)

// Theme is a named 16-color palette plus default/cursor colors (spec §3).
type Theme struct {
	Name       string
	Background [3]uint8
	Foreground [3]uint8
	Cursor     [3]uint8
	Palette    [16][3]uint8
}

// yamlTheme mirrors the ~/.cast/config.yaml `themes:` entry shape (spec §4.13): a background,
// foreground, cursor, and a 16-entry palette of "#rrggbb" strings.
type yamlTheme struct {
	Background string   `yaml:"background"`
	Foreground string   `yaml:"foreground"`
	Cursor     string   `yaml:"cursor"`
	Palette    []string `yaml:"palette"`
}

// FormatError reports a malformed custom theme definition (spec §8's "a palette that is not
// exactly 16 entries is rejected with a FormatError").
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "theme: " + e.Reason }

// ParseYAML decodes a single custom theme from its `themes:` map entry.
func ParseYAML(name string, data []byte) (Theme, error) {
	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Theme{}, fmt.Errorf("theme: parsing %q: %w", name, err)
	}
	if len(yt.Palette) != 16 {
		return Theme{}, &FormatError{Reason: fmt.Sprintf("theme %q: palette must have exactly 16 entries, got %d", name, len(yt.Palette))}
	}
	t := Theme{Name: name}
	var err error
	if t.Background, err = parseHex(yt.Background); err != nil {
		return Theme{}, &FormatError{Reason: fmt.Sprintf("theme %q: background: %v", name, err)}
	}
	if t.Foreground, err = parseHex(yt.Foreground); err != nil {
		return Theme{}, &FormatError{Reason: fmt.Sprintf("theme %q: foreground: %v", name, err)}
	}
	if t.Cursor, err = parseHex(yt.Cursor); err != nil {
		return Theme{}, &FormatError{Reason: fmt.Sprintf("theme %q: cursor: %v", name, err)}
	}
	for i, hex := range yt.Palette {
		rgb, err := parseHex(hex)
		if err != nil {
			return Theme{}, &FormatError{Reason: fmt.Sprintf("theme %q: palette[%d]: %v", name, i, err)}
		}
		t.Palette[i] = rgb
	}
	return t, nil
}

func parseHex(s string) ([3]uint8, error) {
	if len(s) != 7 || s[0] != '#' {
		return [3]uint8{}, fmt.Errorf("expected \"#rrggbb\", got %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return [3]uint8{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return [3]uint8{r, g, b}, nil
}

// Ansi16 returns the Theme's RGB for a basic 16-color index (0-15).
func (t Theme) Ansi16(index int) [3]uint8 {
	if index < 0 || index > 15 {
		return t.Foreground
	}
	return t.Palette[index]
}

// Resolve maps a color.Color (any of the four kinds) to a concrete RGB triple, per spec §4.6:
// Default resolves to the theme's foreground/background depending on ground (callers pass the
// appropriate default separately; Resolve itself treats Default as foreground), Ansi16 indexes
// the theme's 16-entry palette, Palette256 applies the 6x6x6-cube/grayscale-ramp formula for
// indices 16-255 and falls back to the Ansi16 table for 0-15, and RGB passes through unchanged.
func (t Theme) Resolve(c color.Color) [3]uint8 {
	switch c.Kind {
	case color.KindRGB:
		return [3]uint8{c.R, c.G, c.B}
	case color.KindAnsi16:
		return t.Ansi16(int(c.Index))
	case color.KindPalette256:
		return t.resolve256(int(c.Index))
	default:
		return t.Foreground
	}
}

// resolve256 implements the 256-color palette arithmetic (spec §4.6): indices 0-15 are the
// theme's named colors, 16-231 are a 6x6x6 RGB cube where each axis value a in [0,5] maps to
// 0 if a==0 else 55+40*a, and 232-255 are a 24-step grayscale ramp where step n maps to
// 10*(n-232)+8.
func (t Theme) resolve256(index int) [3]uint8 {
	switch {
	case index < 0:
		return t.Foreground
	case index < 16:
		return t.Ansi16(index)
	case index < 232:
		i := index - 16
		r := i / 36
		g := (i / 6) % 6
		b := i % 6
		return [3]uint8{cubeLevel(r), cubeLevel(g), cubeLevel(b)}
	case index < 256:
		v := uint8(10*(index-232) + 8)
		return [3]uint8{v, v, v}
	default:
		return t.Foreground
	}
}

func cubeLevel(a int) uint8 {
	if a == 0 {
		return 0
	}
	return uint8(55 + 40*a)
}

// FgDefault and BgDefault resolve SGR 39/49 (spec §4.6).
func (t Theme) FgDefault() [3]uint8 { return t.Foreground }
func (t Theme) BgDefault() [3]uint8 { return t.Background }
