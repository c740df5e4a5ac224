// Package term implements the terminal emulator (spec §4.5): a state machine that consumes a
// UTF-8 byte stream and mutates a fixed-size grid of StyledCells plus cursor/SGR state.
//
// Grounded on an AnsiParser/TerminalBuffer
// (OnPrint/OnExecute/OnCsi/OnOsc/OnEscape callback shape, handleSGR, scrollUp), generalized
// from packed-uint32 colors and a 4-bit flag byte to this package's full Color/Style
// model, 256-color and true-color SGR forms, and the full erase-mode set. Cross-checked
// against csells-tmux-adapter/internal/vt/screen.go as a second independent VT implementation
// of the same CSI family.
package term

import (
	"unicode/utf8"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/color"
)

// Emulator holds the mutable StyleState (spec §3) and grid for one emulation pass. It is not
// reentrant: one Emulator must not be driven by two goroutines concurrently, matching the
// spec's "StyleState... mutated only by the emulator's parser" lifecycle.
type Emulator struct {
	width, height int
	rows          [][]cell.StyledCell // height rows of width cells each

	cursorX, cursorY int

	curFg, curBg color.Color
	curAttrs     cell.Style

	// parser state
	state      parserState
	csiParams  []int
	csiCurrent int
	csiHasCur  bool
	csiPrivate bool
	escFinal   byte
	oscBuf     []byte
	utf8Buf    []byte
}

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEscape
)

// New creates an emulator with a blank width x height grid and cursor at the origin.
func New(width, height int) *Emulator {
	if width <= 0 || height <= 0 {
		panic("term: width and height must be positive")
	}
	e := &Emulator{width: width, height: height}
	e.rows = make([][]cell.StyledCell, height)
	for y := range e.rows {
		e.rows[y] = blankRow(width)
	}
	return e
}

func blankRow(width int) []cell.StyledCell {
	row := make([]cell.StyledCell, width)
	for i := range row {
		row[i] = cell.Blank()
	}
	return row
}

// Write feeds bytes into the parser. Determinism (spec §4.5): the same byte stream produces
// the same final grid regardless of how it is chunked across Write calls, because all partial
// escape/UTF-8 state is carried in the Emulator between calls.
func (e *Emulator) Write(data []byte) {
	for _, b := range data {
		e.feed(b)
	}
}

// feed processes a single byte through the state machine, first resolving UTF-8 continuation
// bytes through e.utf8Buf so multi-byte runes split across Write calls still decode correctly.
func (e *Emulator) feed(b byte) {
	if e.state == stateGround && len(e.utf8Buf) == 0 && b < 0x80 {
		e.feedByte(b)
		return
	}

	if e.state != stateGround {
		// Escape/CSI/OSC sequences are pure ASCII; UTF-8 accumulation only happens in ground
		// state.
		e.feedByte(b)
		return
	}

	e.utf8Buf = append(e.utf8Buf, b)
	r, size := utf8.DecodeRune(e.utf8Buf)
	if r == utf8.RuneError && size <= 1 {
		if len(e.utf8Buf) >= 4 {
			// Invalid sequence overstayed its welcome; drop it and resync.
			e.utf8Buf = e.utf8Buf[:0]
		}
		return
	}
	e.utf8Buf = e.utf8Buf[:0]
	e.printRune(r)
}

// feedByte drives the control/escape state machine for a single ASCII byte (or a raw byte in
// the middle of an escape sequence, which is always ASCII-range by construction).
func (e *Emulator) feedByte(b byte) {
	switch e.state {
	case stateGround:
		e.groundByte(b)
	case stateEscape:
		e.escapeByte(b)
	case stateCSI:
		e.csiByte(b)
	case stateOSC:
		e.oscByte(b)
	case stateOSCEscape:
		e.oscEscapeByte(b)
	}
}

func (e *Emulator) groundByte(b byte) {
	switch b {
	case 0x1b: // ESC
		e.state = stateEscape
	case '\r':
		e.cursorX = 0
	case '\n':
		e.newline()
	case 0x08: // BS
		if e.cursorX > 0 {
			e.cursorX--
		}
	case 0x09: // HT
		e.tab()
	default:
		if b >= 0x20 {
			e.printRune(rune(b))
		}
		// other C0 controls are ignored (spec §4.5)
	}
}

func (e *Emulator) escapeByte(b byte) {
	if b >= 0x20 && b <= 0x2f {
		// Intermediate byte (e.g. the '(' of a charset selection): stay in the escape state
		// until the final byte arrives.
		return
	}
	switch b {
	case '[':
		e.state = stateCSI
		e.csiParams = e.csiParams[:0]
		e.csiCurrent = 0
		e.csiHasCur = false
		e.csiPrivate = false
	case ']':
		e.state = stateOSC
		e.oscBuf = e.oscBuf[:0]
	default:
		// Any other escape form (e.g. charset selection) is skipped without effect once its
		// final byte arrives.
		e.state = stateGround
	}
}

func (e *Emulator) csiByte(b byte) {
	switch {
	case b == '?' && len(e.csiParams) == 0 && !e.csiHasCur:
		e.csiPrivate = true
	case b >= '0' && b <= '9':
		e.csiCurrent = e.csiCurrent*10 + int(b-'0')
		e.csiHasCur = true
	case b == ';':
		e.csiParams = append(e.csiParams, e.csiCurrent)
		e.csiCurrent = 0
		e.csiHasCur = false
	case b >= 0x40 && b <= 0x7e:
		if e.csiHasCur || len(e.csiParams) == 0 {
			e.csiParams = append(e.csiParams, e.csiCurrent)
		}
		e.dispatchCSI(b, e.csiParams)
		e.state = stateGround
	default:
		// intermediate bytes (0x20-0x2f) are ignored; unknown sequences fall through to the
		// final byte and are otherwise a no-op.
	}
}

func (e *Emulator) oscByte(b byte) {
	switch b {
	case 0x07: // BEL terminates OSC
		e.state = stateGround
	case 0x1b:
		e.state = stateOSCEscape
	default:
		e.oscBuf = append(e.oscBuf, b)
	}
}

func (e *Emulator) oscEscapeByte(b byte) {
	if b == '\\' {
		e.state = stateGround
		return
	}
	// Not a valid ST; treat as a fresh escape instead of OSC data (matches typical terminal
	// leniency) and resume.
	e.state = stateEscape
	e.escapeByte(b)
}

func (e *Emulator) tab() {
	next := ((e.cursorX / 8) + 1) * 8
	for e.cursorX < next && e.cursorX < e.width {
		e.setCell(e.cursorX, e.cursorY, ' ')
		e.cursorX++
	}
	if e.cursorX >= e.width {
		e.cursorX = e.width - 1
	}
}

func (e *Emulator) printRune(r rune) {
	if e.cursorX >= e.width {
		e.cursorX = 0
		e.newline()
	}
	e.setCell(e.cursorX, e.cursorY, r)
	e.cursorX++
}

func (e *Emulator) setCell(x, y int, r rune) {
	if y < 0 || y >= e.height || x < 0 || x >= e.width {
		return
	}
	e.rows[y][x] = cell.StyledCell{Glyph: r, Fg: e.curFg, Bg: e.curBg, Attrs: e.curAttrs}
}

// newline advances the cursor to the next row, scrolling if it runs off the bottom (spec
// §4.5: "writing a scalar past the right edge wraps... then scrolling if necessary").
func (e *Emulator) newline() {
	e.cursorY++
	if e.cursorY >= e.height {
		e.scroll()
		e.cursorY = e.height - 1
	}
}

// scroll drops the top row, appends a blank row styled with the current default, and clamps
// the cursor to the last row (spec §4.5).
func (e *Emulator) scroll() {
	copy(e.rows, e.rows[1:])
	e.rows[e.height-1] = blankRow(e.width)
	if e.cursorY > e.height-1 {
		e.cursorY = e.height - 1
	}
}

// Snapshot returns an immutable cell.GridSnapshot of the current grid (no shared state with
// the emulator; callers get a value-typed copy, per spec §9).
func (e *Emulator) Snapshot() cell.GridSnapshot {
	cells := make([]cell.StyledCell, e.width*e.height)
	for y := 0; y < e.height; y++ {
		copy(cells[y*e.width:(y+1)*e.width], e.rows[y])
	}
	return cell.GridSnapshot{
		Width: e.width, Height: e.height,
		CursorX: e.cursorX, CursorY: e.cursorY,
		Cells: cells,
	}
}

// Rows returns the current grid as a slice of Row values (spec §4.5's output type), each a
// vector of exactly Width StyledCells.
func (e *Emulator) Rows() [][]cell.StyledCell {
	out := make([][]cell.StyledCell, e.height)
	for y := range e.rows {
		row := make([]cell.StyledCell, e.width)
		copy(row, e.rows[y])
		out[y] = row
	}
	return out
}

// Resize changes the grid dimensions in place, preserving the overlapping top-left region
// (mirrors a TerminalBuffer.Resize).
func (e *Emulator) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		panic("term: width and height must be positive")
	}
	if width == e.width && height == e.height {
		return
	}
	newRows := make([][]cell.StyledCell, height)
	for y := range newRows {
		newRows[y] = blankRow(width)
	}
	minRows := min(e.height, height)
	minCols := min(e.width, width)
	for y := 0; y < minRows; y++ {
		copy(newRows[y][:minCols], e.rows[y][:minCols])
	}
	e.rows = newRows
	e.width, e.height = width, height
	if e.cursorX >= width {
		e.cursorX = width - 1
	}
	if e.cursorY >= height {
		e.cursorY = height - 1
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
