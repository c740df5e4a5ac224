// Package cell implements the StyledCell and GridSnapshot data model (spec §3) and the
// minimal-ANSI-patch diff algorithm (spec §4.2).
//
// Grounded on a BufferSnapshot-style dirty-line tracking model, generalized from a binary
// wire encoding to an ANSI-text diff, and on
// danielgatis-go-headless-term/cell.go's CellFlags bitmask idiom for style attributes.
package cell

import (
	"fmt"
	"strings"

	"github.com/amantus-ai/cast/pkg/color"
)

// Style is the set of boolean text attributes a StyledCell carries, mirrored as a bitmask for
// cheap equality checks (a packed CellFlags/BufferCell.Flags idiom).
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
)

// StyledCell is one grid position: a single Unicode scalar (or space) plus color/attributes.
type StyledCell struct {
	Glyph rune
	Fg    color.Color
	Bg    color.Color
	Attrs Style
}

// Blank returns the default, unstyled cell (a space with no active colors/attributes).
func Blank() StyledCell {
	return StyledCell{Glyph: ' '}
}

func (c StyledCell) hasStyle(s Style) bool { return c.Attrs&s != 0 }

// Bold, Italic, Underline, Strikethrough report the corresponding attribute bit.
func (c StyledCell) Bold() bool          { return c.hasStyle(StyleBold) }
func (c StyledCell) Italic() bool        { return c.hasStyle(StyleItalic) }
func (c StyledCell) Underline() bool     { return c.hasStyle(StyleUnderline) }
func (c StyledCell) Strikethrough() bool { return c.hasStyle(StyleStrikethrough) }

// sameStyle reports whether two cells would emit the same SGR sequence (fg, bg, and all four
// attribute bits match) regardless of glyph.
func sameStyle(a, b StyledCell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Attrs == b.Attrs
}

// GridSnapshot is an immutable width*height grid of StyledCells plus a cursor position and
// capture timestamp (spec §3). Rows are stored as one flat slice of height*width cells in
// row-major order; there is no shared/cyclic structure (spec §9's "value-typed, owning
// vectors" note).
type GridSnapshot struct {
	Width, Height     int
	CursorX, CursorY  int
	Cells             []StyledCell // len == Width*Height, row-major
	CapturedAtSeconds float64
}

// NewBlank returns a width*height grid of blank cells with the cursor at the origin.
func NewBlank(width, height int) GridSnapshot {
	if width <= 0 || height <= 0 {
		panic("cell: width and height must be positive")
	}
	cells := make([]StyledCell, width*height)
	for i := range cells {
		cells[i] = Blank()
	}
	return GridSnapshot{Width: width, Height: height, Cells: cells}
}

// At returns the cell at (x, y). Panics if out of bounds — callers are expected to respect
// Width/Height, matching the spec's "dimensions > 0; exactly width*height cells" invariant.
func (g GridSnapshot) At(x, y int) StyledCell {
	return g.Cells[y*g.Width+x]
}

// Validate checks the GridSnapshot invariants from spec §3.
func (g GridSnapshot) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("cell: non-positive dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("cell: expected %d cells, got %d", g.Width*g.Height, len(g.Cells))
	}
	if g.CursorX < 0 || g.CursorX >= g.Width || g.CursorY < 0 || g.CursorY >= g.Height {
		return fmt.Errorf("cell: cursor (%d,%d) out of bounds for %dx%d", g.CursorX, g.CursorY, g.Width, g.Height)
	}
	return nil
}

// Equal reports whether two snapshots have identical dimensions, cells, and cursor (ignoring
// CapturedAtSeconds, which is not part of the displayed image).
func (g GridSnapshot) Equal(o GridSnapshot) bool {
	if g.Width != o.Width || g.Height != o.Height || g.CursorX != o.CursorX || g.CursorY != o.CursorY {
		return false
	}
	if len(g.Cells) != len(o.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// fullDumpThreshold is the bandwidth heuristic's changed-cell fraction above which Diff emits
// a full-screen dump instead of an incremental patch. Not tuned against a corpus (spec §9,
// Open Question 3) — a deliberate, documented tunable rather than a derived constant.
const fullDumpThreshold = 0.5

// Diff produces the minimal ANSI patch that turns the display `prev` (nil meaning "unknown/
// blank terminal") into g's display (spec §4.2).
func (g GridSnapshot) Diff(prev *GridSnapshot) []byte {
	if prev == nil {
		return g.fullDump()
	}
	if prev.Width != g.Width || prev.Height != g.Height {
		// Dimensions changed: a full dump is the only sound patch (no meaningful cell-by-cell
		// comparison across different geometries).
		return g.fullDump()
	}

	changed := 0
	for i := range g.Cells {
		if g.Cells[i] != prev.Cells[i] {
			changed++
		}
	}
	total := g.Width * g.Height
	if total > 0 && float64(changed)/float64(total) > fullDumpThreshold {
		return g.fullDump()
	}

	var b strings.Builder
	lastX, lastY := -2, -2 // impossible position, forces an initial cursor-position command
	var lastStyle StyledCell
	haveLastStyle := false

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			c := g.Cells[idx]
			if c == prev.Cells[idx] {
				continue
			}
			if !(y == lastY && x == lastX+1) {
				fmt.Fprintf(&b, "\x1b[%d;%dH", y+1, x+1)
			}
			if !haveLastStyle || !sameStyle(c, lastStyle) {
				writeSGR(&b, c)
				haveLastStyle = true
				lastStyle = c
			}
			writeGlyph(&b, c.Glyph)
			lastX, lastY = x, y
		}
	}

	if g.CursorX != prev.CursorX || g.CursorY != prev.CursorY {
		fmt.Fprintf(&b, "\x1b[%d;%dH", g.CursorY+1, g.CursorX+1)
	}

	return []byte(b.String())
}

// fullDump returns a from-scratch rendering: home cursor, every cell prefixed by an SGR
// whenever fg/bg/attrs change, rows separated by CRLF, trailing SGR reset.
func (g GridSnapshot) fullDump() []byte {
	var b strings.Builder
	b.WriteString("\x1b[H")

	var lastStyle StyledCell
	haveLastStyle := false

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Cells[y*g.Width+x]
			if !haveLastStyle || !sameStyle(c, lastStyle) {
				writeSGR(&b, c)
				haveLastStyle = true
				lastStyle = c
			}
			writeGlyph(&b, c.Glyph)
		}
		if y != g.Height-1 {
			b.WriteString("\r\n")
		}
	}
	b.WriteString("\x1b[0m")
	return []byte(b.String())
}

func writeGlyph(b *strings.Builder, r rune) {
	if r == 0 {
		r = ' '
	}
	b.WriteRune(r)
}

// writeSGR emits the SGR sequence that transitions into c's style from an unknown prior
// state: always starts with a reset (0) so it is correct regardless of what came before.
func writeSGR(b *strings.Builder, c StyledCell) {
	params := []int{0}
	if c.Bold() {
		params = append(params, 1)
	}
	if c.Italic() {
		params = append(params, 3)
	}
	if c.Underline() {
		params = append(params, 4)
	}
	if c.Strikethrough() {
		params = append(params, 9)
	}
	if fg := color.SGRFgCode(c.Fg); fg != nil {
		params = append(params, fg...)
	}
	if bg := color.SGRBgCode(c.Bg); bg != nil {
		params = append(params, bg...)
	}

	b.WriteString("\x1b[")
	for i, p := range params {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(b, "%d", p)
	}
	b.WriteByte('m')
}
