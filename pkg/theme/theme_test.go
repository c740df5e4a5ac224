package theme

import (
	"testing"

	"github.com/amantus-ai/cast/pkg/color"
)

func TestByNameFallback(t *testing.T) {
	if ByName("no-such-theme").Name != Default {
		t.Fatalf("expected fallback to %q", Default)
	}
	if ByName("dracula").Name != "dracula" {
		t.Fatalf("expected dracula theme by exact name")
	}
}

func TestResolve256Cube(t *testing.T) {
	th := ByName("asciinema")
	rgb := th.Resolve(color.Palette256(16)) // cube (0,0,0)
	if rgb != ([3]uint8{0, 0, 0}) {
		t.Fatalf("cube index 16 should be black, got %v", rgb)
	}
	rgb = th.Resolve(color.Palette256(231)) // cube (5,5,5)
	if rgb != ([3]uint8{255, 255, 255}) {
		t.Fatalf("cube index 231 should be white, got %v", rgb)
	}
}

func TestResolve256Grayscale(t *testing.T) {
	th := ByName("asciinema")
	rgb := th.Resolve(color.Palette256(232))
	if rgb != ([3]uint8{8, 8, 8}) {
		t.Fatalf("grayscale index 232 should be (8,8,8), got %v", rgb)
	}
	rgb = th.Resolve(color.Palette256(255))
	if rgb != ([3]uint8{238, 238, 238}) {
		t.Fatalf("grayscale index 255 should be (238,238,238), got %v", rgb)
	}
}

func TestResolveRGBPassthrough(t *testing.T) {
	th := ByName("nord")
	rgb := th.Resolve(color.RGB(10, 20, 30))
	if rgb != ([3]uint8{10, 20, 30}) {
		t.Fatalf("RGB color should pass through unchanged, got %v", rgb)
	}
}

func TestParseYAMLRejectsShortPalette(t *testing.T) {
	data := []byte(`
background: "#000000"
foreground: "#ffffff"
cursor: "#ffffff"
palette: ["#000000", "#111111"]
`)
	_, err := ParseYAML("broken", data)
	if err == nil {
		t.Fatalf("expected FormatError for a palette with fewer than 16 entries")
	}
	var fe *FormatError
	if !asFormatError(err, &fe) {
		t.Fatalf("expected *FormatError, got %T: %v", err, err)
	}
}

func asFormatError(err error, target **FormatError) bool {
	fe, ok := err.(*FormatError)
	if ok {
		*target = fe
	}
	return ok
}
