package live

import (
	"testing"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/color"
)

func TestEncodeDecodeFrameRoundTrips(t *testing.T) {
	g := cell.NewBlank(4, 2)
	g.CursorX, g.CursorY = 2, 1
	g = setCell(g, 0, 0, cell.StyledCell{Glyph: 'A', Fg: color.Ansi16(2), Bg: color.Default, Attrs: cell.StyleBold})
	g = setCell(g, 1, 1, cell.StyledCell{Glyph: '€', Fg: color.RGB(10, 20, 30), Bg: color.Palette256(200)})

	frame := EncodeFrame(g)
	got, ok := DecodeFrame(frame)
	if !ok {
		t.Fatalf("DecodeFrame rejected a frame EncodeFrame produced")
	}
	if !got.Equal(g) {
		t.Fatalf("round-tripped grid differs: got %+v, want %+v", got, g)
	}
}

func TestDecodeFrameRejectsBadMagic(t *testing.T) {
	frame := EncodeFrame(cell.NewBlank(2, 2))
	frame[0] = 'X'
	if _, ok := DecodeFrame(frame); ok {
		t.Fatalf("expected DecodeFrame to reject a corrupted magic")
	}
}

func TestFrameHeaderReflectsDimensions(t *testing.T) {
	g := cell.NewBlank(80, 24)
	frame := EncodeFrame(g)
	got, ok := DecodeFrame(frame)
	if !ok {
		t.Fatalf("DecodeFrame failed")
	}
	if got.Width != 80 || got.Height != 24 {
		t.Fatalf("expected 80x24, got %dx%d", got.Width, got.Height)
	}
}

func setCell(g cell.GridSnapshot, x, y int, c cell.StyledCell) cell.GridSnapshot {
	g.Cells[y*g.Width+x] = c
	return g
}
