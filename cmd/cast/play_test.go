package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/playback"
)

func TestOrDefault(t *testing.T) {
	if got := orDefault(0, 1.0); got != 1.0 {
		t.Fatalf("orDefault(0, 1.0) = %v, want 1.0", got)
	}
	if got := orDefault(2.0, 1.0); got != 2.0 {
		t.Fatalf("orDefault(2.0, 1.0) = %v, want 2.0", got)
	}
}

func writeTestRecording(t *testing.T, path string, events []eventlog.Event, header eventlog.Header) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w := eventlog.NewWriter(f)
	if err := w.WriteHeader(header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatalf("WriteEvent: %v", err)
		}
	}
	w.Close()
}

func TestRawDumpClockWritesOutputUnpaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.cast")
	writeTestRecording(t, path, []eventlog.Event{
		{Time: 0, Kind: eventlog.KindOutput, Data: "hello"},
		{Time: 5, Kind: eventlog.KindOutput, Data: " world"},
	}, eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	r, err := eventlog.NewReader(f)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	var out bytes.Buffer
	clock := playback.New(playback.Options{Speed: math.Inf(1)})
	if err := clock.Play(r, &out, nil); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.String() != "hello world" {
		t.Fatalf("expected raw-dump output %q, got %q", "hello world", out.String())
	}
}
