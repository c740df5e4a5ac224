// Package console adapts the host console into the narrow interface the capture engine polls:
// current size, a full-cell snapshot, and virtual-terminal mode control (spec §4.1, §4.16).
//
// Grounded on the documented Windows Console API (GetConsoleScreenBufferInfo, ReadConsoleOutputW,
// SetConsoleMode/ENABLE_VIRTUAL_TERMINAL_PROCESSING) reached via the golang.org/x/sys
// family; the interface shape itself follows a Manager-owned
// resource (Session) acquired at construction and released on Close.
package console

import (
	"github.com/amantus-ai/cast/pkg/cell"
)

// Console is the capture engine's view of the host terminal (spec §4.1): it can report its
// current size and hand back a full styled snapshot of its visible buffer.
type Console interface {
	// Size returns the current width and height in character cells.
	Size() (width, height int, err error)
	// Snapshot reads the full visible buffer as a cell.GridSnapshot.
	Snapshot() (cell.GridSnapshot, error)
	// Close releases any console mode changes made at construction.
	Close() error
}

// PlatformError is returned by the non-Windows stub backend (spec §4.16: the real backend is
// Windows-only; other platforms get a named error rather than a panic or silent no-op).
type PlatformError struct {
	Op string
}

func (e *PlatformError) Error() string {
	return "console: " + e.Op + " is only supported on Windows"
}
