package console

import "testing"

func TestFakeSizeAndSnapshot(t *testing.T) {
	f := NewFake(80, 24)
	w, h, err := f.Size()
	if err != nil || w != 80 || h != 24 {
		t.Fatalf("Size() = %d,%d,%v", w, h, err)
	}
	snap, err := f.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Width != 80 || snap.Height != 24 {
		t.Fatalf("unexpected snapshot dims %dx%d", snap.Width, snap.Height)
	}
}

func TestFakeResize(t *testing.T) {
	f := NewFake(10, 5)
	f.Resize(20, 10)
	w, h, _ := f.Size()
	if w != 20 || h != 10 {
		t.Fatalf("Resize did not take effect: %d,%d", w, h)
	}
}

func TestFakeClose(t *testing.T) {
	f := NewFake(10, 5)
	if f.Closed() {
		t.Fatalf("expected not-closed before Close")
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed() {
		t.Fatalf("expected closed after Close")
	}
}
