package console

import (
	"sync"

	"github.com/amantus-ai/cast/pkg/cell"
)

// Fake is an in-memory Console for tests and for the live-view server's development mode off
// Windows (spec §4.16's "always-compiled fake" requirement). Callers mutate the grid via
// SetSnapshot or Resize directly; Fake never runs a parser itself.
type Fake struct {
	mu     sync.Mutex
	width  int
	height int
	snap   cell.GridSnapshot
	closed bool
}

// NewFake returns a Fake initialized to a blank width x height grid.
func NewFake(width, height int) *Fake {
	return &Fake{width: width, height: height, snap: cell.NewBlank(width, height)}
}

// SetSnapshot replaces the fake's current grid wholesale, resizing to match if needed.
func (f *Fake) SetSnapshot(snap cell.GridSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
	f.width, f.height = snap.Width, snap.Height
}

// Resize changes the fake's dimensions, replacing its grid with a blank one at the new size.
func (f *Fake) Resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
	f.snap = cell.NewBlank(width, height)
}

func (f *Fake) Size() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height, nil
}

func (f *Fake) Snapshot() (cell.GridSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Closed reports whether Close has been called, for test assertions.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
