package export

import (
	"bytes"
	"testing"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func writeRecording(t *testing.T, events []eventlog.Event, header eventlog.Header) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := eventlog.NewWriter(nopCloser{&buf})
	if err := w.WriteHeader(header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatalf("WriteEvent: %v", err)
		}
	}
	w.Close()
	return buf.Bytes()
}

func TestSpeedTrimHalvesDuration(t *testing.T) {
	data := writeRecording(t, []eventlog.Event{
		{Time: 0, Kind: eventlog.KindOutput, Data: "a"},
		{Time: 5, Kind: eventlog.KindOutput, Data: "b"},
		{Time: 10, Kind: eventlog.KindOutput, Data: "c"},
	}, eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24})

	src, err := eventlog.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	var out bytes.Buffer
	dst := eventlog.NewWriter(nopCloser{&out})
	if err := SpeedTrim(src, dst, SpeedTrimOptions{Speed: 2.0}); err != nil {
		t.Fatalf("SpeedTrim: %v", err)
	}
	dst.Close()

	result, err := eventlog.NewReader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("NewReader(result): %v", err)
	}
	count := 0
	lastTime := 0.0
	for {
		ev, err := result.Next()
		if err != nil {
			break
		}
		count++
		lastTime = ev.Time
	}
	if count != 3 {
		t.Fatalf("expected 3 events preserved, got %d", count)
	}
	if lastTime != 5.0 {
		t.Fatalf("expected final event time 5.0 after 2x speedup of 10s, got %v", lastTime)
	}
}

func TestConcatenateInsertsJoinMarker(t *testing.T) {
	dataA := writeRecording(t, []eventlog.Event{{Time: 0, Kind: eventlog.KindOutput, Data: "a"}},
		eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24})
	dataB := writeRecording(t, []eventlog.Event{{Time: 0, Kind: eventlog.KindOutput, Data: "b"}},
		eventlog.Header{Version: eventlog.Version, Width: 120, Height: 40})

	readerA, _ := eventlog.NewReader(bytes.NewReader(dataA))
	readerB, _ := eventlog.NewReader(bytes.NewReader(dataB))

	var out bytes.Buffer
	dst := eventlog.NewWriter(nopCloser{&out})
	err := Concatenate([]SourceFile{
		{Path: "/tmp/first.cast", Reader: readerA},
		{Path: "/tmp/second.cast", Reader: readerB},
	}, dst, ConcatOptions{Gap: 1.0})
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	dst.Close()

	result, err := eventlog.NewReader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("NewReader(result): %v", err)
	}
	if result.Header.Width != 120 || result.Header.Height != 40 {
		t.Fatalf("expected output dims to be the maxima (120x40), got %dx%d", result.Header.Width, result.Header.Height)
	}

	sawJoinMarker := false
	lastTime := -1.0
	for {
		ev, err := result.Next()
		if err != nil {
			break
		}
		if ev.Time < lastTime {
			t.Fatalf("event times not non-decreasing: %v after %v", ev.Time, lastTime)
		}
		lastTime = ev.Time
		if ev.Kind == eventlog.KindMarker && ev.Data == "second.cast" {
			sawJoinMarker = true
		}
	}
	if !sawJoinMarker {
		t.Fatalf("expected a join marker labeled with the second source's basename")
	}
}

func TestTargetTimeResolve(t *testing.T) {
	duration := 10.0
	if got := (TargetTime{Kind: TargetFirst}).Resolve(duration); got != 0 {
		t.Fatalf("TargetFirst = %v, want 0", got)
	}
	if got := (TargetTime{Kind: TargetMiddle}).Resolve(duration); got != 5 {
		t.Fatalf("TargetMiddle = %v, want 5", got)
	}
	if got := (TargetTime{Kind: TargetLast}).Resolve(duration); got != 10 {
		t.Fatalf("TargetLast = %v, want 10", got)
	}
	if got := (TargetTime{Kind: TargetExplicit, Explicit: 3}).Resolve(duration); got != 3 {
		t.Fatalf("TargetExplicit = %v, want 3", got)
	}
}
