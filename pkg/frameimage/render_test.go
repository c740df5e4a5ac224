package frameimage

import (
	"bytes"
	"testing"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/theme"
)

func TestEncodePPMHeader(t *testing.T) {
	rows := [][]cell.StyledCell{{{Glyph: 'A'}}}
	canvas := Render(rows, theme.ByName("asciinema"))
	out := EncodePPM(canvas)
	wantHeader := []byte("P6\n")
	if !bytes.HasPrefix(out, wantHeader) {
		t.Fatalf("expected PPM header prefix, got %q", out[:10])
	}
	if len(out) != len(canvas.Pix)+len([]byte(headerFor(canvas))) {
		t.Fatalf("unexpected PPM length: %d", len(out))
	}
}

func headerFor(c *Canvas) string {
	return "P6\n" + itoa(c.Width) + " " + itoa(c.Height) + "\n255\n"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func TestLookupUnknownGlyphIsBlank(t *testing.T) {
	blank := Lookup(0x1F600) // emoji, outside the required set
	for _, row := range blank {
		if row != 0 {
			t.Fatalf("expected blank glyph for unrequired code point, got %v", blank)
		}
	}
}

func TestLookupRequiredGlyphNonBlank(t *testing.T) {
	g := Lookup('A')
	nonZero := false
	for _, row := range g {
		if row != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Fatalf("expected 'A' to render a non-blank glyph")
	}
}

// TestLookupLetterformShapes checks a handful of representative letters against the actual
// strokes a reader would expect, not just "some pixel is lit" — guards against a noise-based
// placeholder glyph passing as a real letterform.
func TestLookupLetterformShapes(t *testing.T) {
	// 'I' is a vertical bar: its top serif row must be wider than its stem (the vertical
	// middle row).
	i := Lookup('I')
	top := popcount(i[1])
	mid := popcount(i[8])
	if top <= mid {
		t.Fatalf("'I' serif row should be wider than the stem, got top=%d mid=%d", top, mid)
	}

	// 'O' is a closed loop: the top and bottom rows must be lit, and the left/right edge
	// columns of the middle row must be lit while the row isn't fully filled (unlike a solid
	// block).
	o := Lookup('O')
	if o[1] == 0 || o[14] == 0 {
		t.Fatalf("'O' should have lit top and bottom rows, got %08b / %08b", o[1], o[14])
	}
	const edgeCols = 0x44 // output bits for the leftmost/rightmost of the 5 source columns
	midRow := o[8]
	if midRow&edgeCols != edgeCols {
		t.Fatalf("'O' middle row should light its left/right edge columns, got %08b", midRow)
	}

	// 'L' is an L-shape: its last row (the foot) must be wider than its first row (the stem
	// top), unlike a symmetric letter such as 'I'.
	l := Lookup('L')
	lTop := popcount(l[1])
	lBottom := popcount(l[14])
	if lBottom <= lTop {
		t.Fatalf("'L' should widen at the foot, got top=%d bottom=%d", lTop, lBottom)
	}

	// Distinct letters must render distinct glyphs.
	if Lookup('A') == Lookup('B') {
		t.Fatalf("'A' and 'B' should not render identically")
	}
	if Lookup('a') == Lookup('A') {
		t.Fatalf("lowercase and uppercase should not render identically")
	}
}

func popcount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

func TestBoxDrawingGlyphsDiffer(t *testing.T) {
	horiz := Lookup(0x2500)
	vert := Lookup(0x2502)
	if horiz == vert {
		t.Fatalf("expected horizontal and vertical box-drawing glyphs to differ")
	}
}
