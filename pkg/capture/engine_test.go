package capture

import (
	"os"
	"testing"
	"time"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/color"
	"github.com/amantus-ai/cast/pkg/console"
	"github.com/amantus-ai/cast/pkg/eventlog"
)

func TestEngineLifecycle(t *testing.T) {
	con := console.NewFake(10, 2)
	e := New(Config{Title: "t", SampleInterval: 10 * time.Millisecond}, con)

	if e.State() != StateIdle {
		t.Fatalf("expected initial state idle, got %s", e.State())
	}

	path := tempPath(t)
	if err := e.Start(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if e.State() != StateRecording {
		t.Fatalf("expected recording after Start, got %s", e.State())
	}

	if err := e.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if e.State() != StatePaused {
		t.Fatalf("expected paused, got %s", e.State())
	}
	if err := e.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	grid := cell.NewBlank(10, 2)
	grid.Cells[0] = cell.StyledCell{Glyph: 'x', Fg: color.Ansi16(1)}
	con.SetSnapshot(grid)

	time.Sleep(60 * time.Millisecond)

	if err := e.Mark("checkpoint"); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if err := e.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if e.State() != StateStopped {
		t.Fatalf("expected stopped, got %s", e.State())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recording: %v", err)
	}
	defer f.Close()
	reader, err := eventlog.NewReader(f)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if reader.Header.Width != 10 || reader.Header.Height != 2 {
		t.Fatalf("unexpected header dims %dx%d", reader.Header.Width, reader.Header.Height)
	}

	sawMarker := false
	lastTime := -1.0
	for {
		ev, err := reader.Next()
		if err != nil {
			break
		}
		if ev.Time < lastTime {
			t.Fatalf("event times not non-decreasing: %v after %v", ev.Time, lastTime)
		}
		lastTime = ev.Time
		if ev.Kind == eventlog.KindMarker && ev.Data == "checkpoint" {
			sawMarker = true
		}
	}
	if !sawMarker {
		t.Fatalf("expected a marker event with label 'checkpoint'")
	}
}

func TestEngineStartTwiceFails(t *testing.T) {
	con := console.NewFake(5, 5)
	e := New(Config{SampleInterval: 10 * time.Millisecond}, con)
	path := tempPath(t)
	if err := e.Start(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Stop()
	if err := e.Start(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC); err == nil {
		t.Fatalf("expected second Start to fail")
	}
}

func TestEngineResizeEmitsResizeEvent(t *testing.T) {
	con := console.NewFake(10, 2)
	e := New(Config{SampleInterval: 10 * time.Millisecond}, con)
	path := tempPath(t)
	if err := e.Start(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	con.Resize(20, 4)
	time.Sleep(30 * time.Millisecond)
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	reader, err := eventlog.NewReader(f)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	sawResize := false
	for {
		ev, err := reader.Next()
		if err != nil {
			break
		}
		if ev.Kind == eventlog.KindResize {
			w, h, err := eventlog.ParseResize(ev.Data)
			if err != nil {
				t.Fatalf("ParseResize: %v", err)
			}
			if w == 20 && h == 4 {
				sawResize = true
			}
		}
	}
	if !sawResize {
		t.Fatalf("expected a resize event to 20x4")
	}
}

func tempPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "rec-*.cast")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return name
}
