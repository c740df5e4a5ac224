package live

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/theme"
)

func writeFixture(t *testing.T, path string, events []eventlog.Event, header eventlog.Header) {
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

func TestFeedPlaybackRendersFinishedRecordingAndHoldsFinalFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.cast")
	writeFixture(t, path, []eventlog.Event{
		{Time: 0, Kind: eventlog.KindOutput, Data: "hi"},
		{Time: 0.01, Kind: eventlog.KindResize, Data: "10x3"},
		{Time: 0.02, Kind: eventlog.KindOutput, Data: "!"},
	}, eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24})

	s := NewServer(path, theme.ByName(theme.Default), 1000) // fast: speed 1000x
	s.feedPlayback()

	g := s.snapshot()
	if g.Width != 10 || g.Height != 3 {
		t.Fatalf("expected resize event to take effect, got %dx%d", g.Width, g.Height)
	}
}

func TestDetectGrowingFalseForStaticFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.cast")
	writeFixture(t, path, []eventlog.Event{{Time: 0, Kind: eventlog.KindOutput, Data: "x"}},
		eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24})

	if detectGrowing(path) {
		t.Fatalf("expected a file nobody is appending to be detected as not growing")
	}
}

func TestDetectGrowingTrueWhenAppended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.cast")
	writeFixture(t, path, []eventlog.Event{{Time: 0, Kind: eventlog.KindOutput, Data: "x"}},
		eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24})

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		f.WriteString(`[0.5,"o","late"]` + "\n")
	}()

	if !detectGrowing(path) {
		t.Fatalf("expected a concurrently appended-to file to be detected as growing")
	}
}

func TestBroadcastCatchesUpNewClientImmediately(t *testing.T) {
	s := NewServer("unused", theme.ByName(theme.Default), 1.0)
	g := s.snapshot()
	if g.Width != 0 {
		t.Fatalf("expected zero-value snapshot before any broadcast")
	}

	// handleWS sends s.snapshot() to every newly connected client first, so after a broadcast
	// that snapshot is the grid a new client is caught up with.
	want := cell.NewBlank(3, 2)
	s.broadcast(want)
	if got := s.snapshot(); !got.Equal(want) {
		t.Fatalf("expected a new client to be caught up with the last broadcast grid, got %dx%d", got.Width, got.Height)
	}
}
