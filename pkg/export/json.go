package export

import (
	"encoding/json"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

// jsonEvent mirrors eventlog's wire shape but as an object rather than a [t, kind, data]
// array, since a single JSON document (rather than line-delimited records) is the point of
// this export target: readable in any JSON tool without a streaming parser.
type jsonEvent struct {
	Time float64       `json:"time"`
	Kind eventlog.Kind `json:"kind"`
	Data string        `json:"data"`
}

type jsonDocument struct {
	Header eventlog.Header `json:"header"`
	Events []jsonEvent     `json:"events"`
}

// JSONDump re-encodes a recording as one JSON document (header plus the full event list) for
// tooling that wants the whole recording in memory rather than the line-delimited wire format
// (spec §4.9's .json export target).
func JSONDump(src *eventlog.Reader) ([]byte, error) {
	doc := jsonDocument{Header: src.Header}
	for {
		ev, err := src.Next()
		if err != nil {
			break
		}
		doc.Events = append(doc.Events, jsonEvent{Time: ev.Time, Kind: ev.Kind, Data: ev.Data})
	}
	return json.MarshalIndent(&doc, "", "  ")
}
