package playback

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

func buildRecording(t *testing.T) *eventlog.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := eventlog.NewWriter(nopCloser{&buf})
	if err := w.WriteHeader(eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	events := []eventlog.Event{
		{Time: 0, Kind: eventlog.KindOutput, Data: "hi\r\n"},
		{Time: 0.01, Kind: eventlog.KindOutput, Data: "world\r\n"},
		{Time: 0.02, Kind: eventlog.KindMarker, Data: "done"},
	}
	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatalf("WriteEvent: %v", err)
		}
	}
	w.Close()
	r, err := eventlog.NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return r
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestPlayRawModeWritesAllOutput(t *testing.T) {
	r := buildRecording(t)
	var out bytes.Buffer
	c := New(Options{Speed: math.Inf(1)})
	if err := c.Play(r, &out, nil); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !strings.Contains(out.String(), "hi") || !strings.Contains(out.String(), "world") {
		t.Fatalf("expected both output events written, got %q", out.String())
	}
}

func TestPlayInvokesMarkerCallback(t *testing.T) {
	r := buildRecording(t)
	var out bytes.Buffer
	var marked string
	c := New(Options{Speed: math.Inf(1)})
	if err := c.Play(r, &out, func(label string) { marked = label }); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if marked != "done" {
		t.Fatalf("expected marker callback with label 'done', got %q", marked)
	}
}

func TestStopEndsPlaybackPromptly(t *testing.T) {
	r := buildRecording(t)
	var out bytes.Buffer
	c := New(Options{Speed: 1.0})
	done := make(chan error, 1)
	go func() { done <- c.Play(r, &out, nil) }()
	c.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Play did not return promptly after Stop")
	}
}
