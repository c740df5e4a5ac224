package term

import "testing"

func TestPrintAdvancesCursor(t *testing.T) {
	e := New(10, 3)
	e.Write([]byte("hi"))
	snap := e.Snapshot()
	if snap.CursorX != 2 || snap.CursorY != 0 {
		t.Fatalf("cursor = (%d,%d), want (2,0)", snap.CursorX, snap.CursorY)
	}
	if snap.At(0, 0).Glyph != 'h' || snap.At(1, 0).Glyph != 'i' {
		t.Fatalf("unexpected glyphs: %q %q", snap.At(0, 0).Glyph, snap.At(1, 0).Glyph)
	}
}

func TestWrapAtRightEdge(t *testing.T) {
	e := New(3, 2)
	e.Write([]byte("abcd"))
	snap := e.Snapshot()
	if snap.At(0, 0).Glyph != 'a' || snap.At(2, 0).Glyph != 'c' {
		t.Fatalf("row 0 wrong: %q %q", snap.At(0, 0).Glyph, snap.At(2, 0).Glyph)
	}
	if snap.At(0, 1).Glyph != 'd' {
		t.Fatalf("row 1 wrong: %q", snap.At(0, 1).Glyph)
	}
}

func TestScrollOnOverflow(t *testing.T) {
	e := New(5, 2)
	e.Write([]byte("one\r\ntwo\r\nthree"))
	snap := e.Snapshot()
	if snap.At(0, 0).Glyph != 't' {
		t.Fatalf("expected 'two' scrolled to row 0, got %q", snap.At(0, 0).Glyph)
	}
}

func TestSGRColorPersists(t *testing.T) {
	e := New(5, 1)
	e.Write([]byte("\x1b[31mx\x1b[0my"))
	snap := e.Snapshot()
	red := snap.At(0, 0)
	if red.Fg.Kind == 0 {
		t.Fatalf("expected non-default fg for 'x'")
	}
	plain := snap.At(1, 0)
	if !plain.Fg.IsDefault() {
		t.Fatalf("expected reset fg for 'y' after SGR 0")
	}
}

func TestCursorPositionCSI(t *testing.T) {
	e := New(10, 10)
	e.Write([]byte("\x1b[3;4H*"))
	snap := e.Snapshot()
	if snap.At(3, 2).Glyph != '*' {
		t.Fatalf("expected '*' at (3,2) (1-indexed 4,3), grid: %q", snap.At(3, 2).Glyph)
	}
}

func TestEraseDisplayAll(t *testing.T) {
	e := New(4, 2)
	e.Write([]byte("abcdefgh"))
	e.Write([]byte("\x1b[2J"))
	snap := e.Snapshot()
	for _, c := range snap.Cells {
		if c.Glyph != ' ' {
			t.Fatalf("expected blank grid after ED 2, found %q", c.Glyph)
		}
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	e := New(4, 2)
	e.Write([]byte("ab"))
	e.Resize(6, 3)
	snap := e.Snapshot()
	if snap.Width != 6 || snap.Height != 3 {
		t.Fatalf("unexpected dims %dx%d", snap.Width, snap.Height)
	}
	if snap.At(0, 0).Glyph != 'a' || snap.At(1, 0).Glyph != 'b' {
		t.Fatalf("overlap region not preserved")
	}
}

func TestUTF8SplitAcrossWrites(t *testing.T) {
	e := New(5, 1)
	euro := []byte("€") // 3-byte UTF-8
	e.Write(euro[:1])
	e.Write(euro[1:])
	snap := e.Snapshot()
	if snap.At(0, 0).Glyph != '€' {
		t.Fatalf("expected euro sign assembled across writes, got %q", snap.At(0, 0).Glyph)
	}
}

func TestDeterministicChunking(t *testing.T) {
	data := []byte("\x1b[32mhello\x1b[0m world\r\nline2")
	a := New(20, 5)
	a.Write(data)

	b := New(20, 5)
	for _, chunk := range splitChunks(data, 3) {
		b.Write(chunk)
	}

	if !a.Snapshot().Equal(b.Snapshot()) {
		t.Fatalf("chunked write produced a different grid than one-shot write")
	}
}

func splitChunks(data []byte, n int) [][]byte {
	var out [][]byte
	for len(data) > 0 {
		if len(data) < n {
			n = len(data)
		}
		out = append(out, data[:n])
		data = data[n:]
	}
	return out
}
