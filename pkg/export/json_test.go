package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

func TestJSONDumpRoundTripsHeaderAndEvents(t *testing.T) {
	data := writeRecording(t, []eventlog.Event{
		{Time: 0, Kind: eventlog.KindOutput, Data: "a"},
		{Time: 1.5, Kind: eventlog.KindMarker, Data: "checkpoint"},
	}, eventlog.Header{Version: eventlog.Version, Width: 80, Height: 24, Title: "demo"})

	src, err := eventlog.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	out, err := JSONDump(src)
	if err != nil {
		t.Fatalf("JSONDump: %v", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Header.Title != "demo" {
		t.Fatalf("expected header to round-trip, got %+v", doc.Header)
	}
	if len(doc.Events) != 2 || doc.Events[1].Kind != eventlog.KindMarker || doc.Events[1].Data != "checkpoint" {
		t.Fatalf("expected both events to round-trip, got %+v", doc.Events)
	}
}
