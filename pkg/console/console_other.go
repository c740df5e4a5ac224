//go:build !windows

package console

import "github.com/amantus-ai/cast/pkg/cell"

// realConsole is the non-Windows stand-in: it exists so cmd/cast builds on every platform for
// development and testing, but Size and Snapshot report PlatformError (and Close is a no-op)
// since there is no portable equivalent of the Windows Console API (spec §4.16).
type realConsole struct{}

// Open returns a console backed by the real host terminal. On non-Windows platforms this
// always fails; use console.NewFake for development/testing off Windows.
func Open() (Console, error) {
	return nil, &PlatformError{Op: "console.Open"}
}

func (realConsole) Size() (int, int, error)             { return 0, 0, &PlatformError{Op: "Size"} }
func (realConsole) Snapshot() (cell.GridSnapshot, error) { return cell.GridSnapshot{}, &PlatformError{Op: "Snapshot"} }
func (realConsole) Close() error                         { return nil }
