// Package frameimage rasterizes a cell grid into an RGB pixel buffer using the embedded 8x16
// glyph table, plus window chrome, encoded as PPM P6 (spec §4.8).
//
// Grounded on danielgatis-go-headless-term/screenshot.go's overall shape (a config struct, an
// RGB canvas, a per-cell fill-then-stamp loop), adopted for architecture only: that package
// loads TrueType fonts via golang.org/x/image, while this package uses the fixed embedded
// bitmap table in glyphs.go instead, per spec §4.8/§6.4.
package frameimage

import (
	"fmt"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/theme"
)

const chromeTopPx = 32

// Canvas is a simple RGB pixel buffer (row-major, 3 bytes per pixel).
type Canvas struct {
	Width, Height int
	Pix           []byte // len == Width*Height*3
}

func newCanvas(w, h int) *Canvas {
	return &Canvas{Width: w, Height: h, Pix: make([]byte, w*h*3)}
}

func (c *Canvas) set(x, y int, rgb [3]uint8) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	i := (y*c.Width + x) * 3
	c.Pix[i], c.Pix[i+1], c.Pix[i+2] = rgb[0], rgb[1], rgb[2]
}

func (c *Canvas) fillRect(x0, y0, x1, y1 int, rgb [3]uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, rgb)
		}
	}
}

// Render rasterizes rows into a Canvas with window chrome above the grid (spec §4.8).
func Render(rows [][]cell.StyledCell, th theme.Theme) *Canvas {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	width := cols * GlyphWidth
	height := len(rows)*GlyphHeight + chromeTopPx
	canvas := newCanvas(width, height)

	canvas.fillRect(0, 0, width, height, th.Background)
	drawChromeCircle(canvas, 16, 16, 6, [3]uint8{0xff, 0x5f, 0x56})
	drawChromeCircle(canvas, 36, 16, 6, [3]uint8{0xff, 0xbd, 0x2e})
	drawChromeCircle(canvas, 56, 16, 6, [3]uint8{0x27, 0xc9, 0x3f})

	for y, row := range rows {
		for x, c := range row {
			px := x * GlyphWidth
			py := chromeTopPx + y*GlyphHeight
			bg := th.Background
			if !c.Bg.IsDefault() {
				bg = th.Resolve(c.Bg)
			}
			canvas.fillRect(px, py, px+GlyphWidth, py+GlyphHeight, bg)
			fg := th.Resolve(c.Fg)
			stampGlyph(canvas, px, py, c.Glyph, fg)
		}
	}
	return canvas
}

func stampGlyph(canvas *Canvas, px, py int, r rune, fg [3]uint8) {
	bmp := Lookup(r)
	for row := 0; row < GlyphHeight; row++ {
		bits := bmp[row]
		if bits == 0 {
			continue
		}
		for col := 0; col < GlyphWidth; col++ {
			if bits&(1<<uint(GlyphWidth-1-col)) != 0 {
				canvas.set(px+col, py+row, fg)
			}
		}
	}
}

func drawChromeCircle(canvas *Canvas, cx, cy, radius int, rgb [3]uint8) {
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				canvas.set(x, y, rgb)
			}
		}
	}
}

// EncodePPM writes the canvas as a PPM P6 image: header "P6\n<W> <H>\n255\n" followed by raw
// width*height*3 bytes (spec §4.8).
func EncodePPM(canvas *Canvas) []byte {
	header := fmt.Sprintf("P6\n%d %d\n255\n", canvas.Width, canvas.Height)
	out := make([]byte, 0, len(header)+len(canvas.Pix))
	out = append(out, header...)
	out = append(out, canvas.Pix...)
	return out
}
