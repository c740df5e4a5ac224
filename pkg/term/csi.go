package term

import "github.com/amantus-ai/cast/pkg/cell"

// dispatchCSI applies one complete CSI sequence (params already collected, final byte b) to
// the emulator, mirroring a handleCsi switch on the final byte.
func (e *Emulator) dispatchCSI(b byte, params []int) {
	switch b {
	case 'm':
		e.handleSGR(params)
	case 'H', 'f':
		row := param(params, 0, 1)
		col := param(params, 1, 1)
		e.cursorY = clamp(row-1, 0, e.height-1)
		e.cursorX = clamp(col-1, 0, e.width-1)
	case 'A':
		e.cursorY = clamp(e.cursorY-param(params, 0, 1), 0, e.height-1)
	case 'B':
		e.cursorY = clamp(e.cursorY+param(params, 0, 1), 0, e.height-1)
	case 'C':
		e.cursorX = clamp(e.cursorX+param(params, 0, 1), 0, e.width-1)
	case 'D':
		e.cursorX = clamp(e.cursorX-param(params, 0, 1), 0, e.width-1)
	case 'G':
		e.cursorX = clamp(param(params, 0, 1)-1, 0, e.width-1)
	case 'd':
		e.cursorY = clamp(param(params, 0, 1)-1, 0, e.height-1)
	case 'J':
		e.eraseDisplay(param(params, 0, 0))
	case 'K':
		e.eraseLine(param(params, 0, 0))
	default:
		// Unsupported final byte (e.g. scroll-region, device status report): no-op, matching
		// the spec's "unknown CSI sequences are consumed and otherwise ignored" rule.
	}
}

// param returns params[i] if present, else def. Mirrors ANSI's "omitted parameter defaults to
// def" rule (most cursor-motion commands default to 1; erase commands default to 0).
func param(params []int, i, def int) int {
	if i < len(params) {
		if params[i] == 0 && def != 0 {
			return def
		}
		return params[i]
	}
	return def
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// eraseDisplay implements CSI n J: 0 = cursor to end, 1 = start to cursor, 2 (or 3) = whole
// screen.
func (e *Emulator) eraseDisplay(mode int) {
	switch mode {
	case 0:
		e.clearRange(e.cursorY, e.cursorX, e.height-1, e.width-1)
	case 1:
		e.clearRange(0, 0, e.cursorY, e.cursorX)
	case 2, 3:
		for y := 0; y < e.height; y++ {
			e.rows[y] = blankRow(e.width)
		}
	}
}

// eraseLine implements CSI n K: 0 = cursor to end of line, 1 = start of line to cursor, 2 =
// whole line.
func (e *Emulator) eraseLine(mode int) {
	switch mode {
	case 0:
		for x := e.cursorX; x < e.width; x++ {
			e.rows[e.cursorY][x] = cell.Blank()
		}
	case 1:
		for x := 0; x <= e.cursorX && x < e.width; x++ {
			e.rows[e.cursorY][x] = cell.Blank()
		}
	case 2:
		e.rows[e.cursorY] = blankRow(e.width)
	}
}

func (e *Emulator) clearRange(y0, x0, y1, x1 int) {
	for y := y0; y <= y1 && y < e.height; y++ {
		startX := 0
		endX := e.width - 1
		if y == y0 {
			startX = x0
		}
		if y == y1 {
			endX = x1
		}
		for x := startX; x <= endX && x < e.width; x++ {
			e.rows[y][x] = cell.Blank()
		}
	}
}
