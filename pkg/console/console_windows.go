//go:build windows

package console

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/color"
)

// winConsole backs Console with the real Windows Console API (spec §4.1): it reads the active
// screen buffer's size and cell contents via GetConsoleScreenBufferInfo/ReadConsoleOutputW, and
// restores the console's original mode on Close.
type winConsole struct {
	handle  windows.Handle
	origOut uint32
}

// Open acquires the current console's output handle, remembers its mode for restoration, and
// enables ENABLE_VIRTUAL_TERMINAL_PROCESSING so child/foreground output renders ANSI sequences
// the way the rest of this module expects (spec §4.1, §4.16).
func Open() (Console, error) {
	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return nil, fmt.Errorf("console: GetStdHandle: %w", err)
	}
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, fmt.Errorf("console: GetConsoleMode: %w", err)
	}
	const enableVTProcessing = 0x0004
	if err := windows.SetConsoleMode(h, mode|enableVTProcessing); err != nil {
		return nil, fmt.Errorf("console: SetConsoleMode: %w", err)
	}
	return &winConsole{handle: h, origOut: mode}, nil
}

func (c *winConsole) Size() (int, int, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.handle, &info); err != nil {
		return 0, 0, fmt.Errorf("console: GetConsoleScreenBufferInfo: %w", err)
	}
	width := int(info.Window.Right-info.Window.Left) + 1
	height := int(info.Window.Bottom-info.Window.Top) + 1
	return width, height, nil
}

// maxSnapshotAttempts bounds the pre-read/post-read retry loop below. A window resize racing
// with the read is rare and usually resolves within one or two retries; once the budget is
// spent the caller still gets the most recent capture rather than an error (spec §4.1:
// "at-most-one final snapshot on failure").
const maxSnapshotAttempts = 3

// Snapshot reads the visible window's cells via ReadConsoleOutputW and decodes each packed
// attribute word into a StyledCell (spec §4.1's "Attribute<->ANSI map" component). It is
// tolerant of a resize racing the read: it measures the window before and after the read and
// discards+retries the capture on a dimension mismatch, bounded by maxSnapshotAttempts.
func (c *winConsole) Snapshot() (cell.GridSnapshot, error) {
	var last cell.GridSnapshot
	for attempt := 0; attempt < maxSnapshotAttempts; attempt++ {
		snap, mismatch, err := c.captureOnce()
		if err != nil {
			return cell.GridSnapshot{}, err
		}
		if !mismatch {
			return snap, nil
		}
		last = snap
	}
	// Retries exhausted against a persistently racing resize: surface the last capture taken
	// rather than failing the sampling tick outright.
	return last, nil
}

// captureOnce takes one pre-read/post-read measurement pair around a single ReadConsoleOutput
// call, reporting mismatch=true when the window dimensions moved between the two measurements.
func (c *winConsole) captureOnce() (snap cell.GridSnapshot, mismatch bool, err error) {
	var pre windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.handle, &pre); err != nil {
		return cell.GridSnapshot{}, false, fmt.Errorf("console: GetConsoleScreenBufferInfo: %w", err)
	}
	width := int(pre.Window.Right-pre.Window.Left) + 1
	height := int(pre.Window.Bottom-pre.Window.Top) + 1

	buf := make([]windows.CharInfo, width*height)
	bufSize := windows.Coord{X: int16(width), Y: int16(height)}
	bufCoord := windows.Coord{X: 0, Y: 0}
	readRegion := windows.SmallRect{
		Left: pre.Window.Left, Top: pre.Window.Top,
		Right: pre.Window.Right, Bottom: pre.Window.Bottom,
	}
	if err := windows.ReadConsoleOutput(c.handle, &buf[0], bufSize, bufCoord, &readRegion); err != nil {
		return cell.GridSnapshot{}, false, fmt.Errorf("console: ReadConsoleOutput: %w", err)
	}

	var post windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.handle, &post); err != nil {
		return cell.GridSnapshot{}, false, fmt.Errorf("console: GetConsoleScreenBufferInfo: %w", err)
	}
	postWidth := int(post.Window.Right-post.Window.Left) + 1
	postHeight := int(post.Window.Bottom-post.Window.Top) + 1
	mismatch = postWidth != width || postHeight != height

	cells := make([]cell.StyledCell, width*height)
	for i, ci := range buf {
		style := color.FromWindowsAttr(ci.Attributes)
		attrs := cell.Style(0)
		if style.Underscore {
			attrs |= cell.StyleUnderline
		}
		fg, bg := style.Fg, style.Bg
		if style.Reverse {
			fg, bg = bg, fg
		}
		cells[i] = cell.StyledCell{
			Glyph: rune(ci.UnicodeChar),
			Fg:    fg,
			Bg:    bg,
			Attrs: attrs,
		}
	}

	cursorX := int(post.CursorPosition.X - post.Window.Left)
	cursorY := int(post.CursorPosition.Y - post.Window.Top)
	if cursorX < 0 {
		cursorX = 0
	}
	if cursorY < 0 {
		cursorY = 0
	}
	if cursorX >= width {
		cursorX = width - 1
	}
	if cursorY >= height {
		cursorY = height - 1
	}

	return cell.GridSnapshot{
		Width: width, Height: height,
		CursorX: cursorX, CursorY: cursorY,
		Cells: cells,
	}, false, nil
}

// Close restores the console's original mode.
func (c *winConsole) Close() error {
	return windows.SetConsoleMode(c.handle, c.origOut)
}
