// Package eventlog implements the recording file format (spec §6.1): a line-delimited,
// LF-terminated header record followed by event records, read/write each one at a time
// (never buffering the whole file).
//
// Grounded on a readStreamContent-style decoder,
// which already decodes this exact asciicast-v2-compatible [t, kind, data] event-array and
// header-JSON format; this package generalizes that one-off reader into a full writer+reader
// pair with the §4.3 "info() fast path" and "skip malformed lines" tolerance.
package eventlog

import "fmt"

// Version is the only supported header version (spec §6.1).
const Version = 2

// Header is the first line of a recording file.
type Header struct {
	Version int `json:"version"`
	Width   int `json:"width"`
	Height  int `json:"height"`

	Timestamp     *int64             `json:"timestamp,omitempty"`
	Duration      *float64           `json:"duration,omitempty"`
	IdleTimeLimit *float64           `json:"idle_time_limit,omitempty"`
	Command       string             `json:"command,omitempty"`
	Title         string             `json:"title,omitempty"`
	Env           map[string]string  `json:"env,omitempty"`
	Theme         map[string]any     `json:"theme,omitempty"`
}

// Validate checks the header invariants from spec §3/§6.1.
func (h Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("eventlog: unsupported version %d (want %d)", h.Version, Version)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("eventlog: width and height must be positive, got %dx%d", h.Width, h.Height)
	}
	return nil
}

// Kind is the event type tag used on the wire ("o"/"i"/"r"/"m").
type Kind string

const (
	KindOutput Kind = "o"
	KindInput  Kind = "i"
	KindResize Kind = "r"
	KindMarker Kind = "m"
)

// Event is one record after the header: a non-negative offset in seconds, a kind, and its
// payload (output/input bytes as a string, "WxH" for resize, or a label for markers).
type Event struct {
	Time float64 // seconds since header, >= 0
	Kind Kind
	Data string
}
