// Package export implements the idempotent file-transform and rendering pipeline (spec §4.9):
// speed/trim/idle-compress, concatenate, thumbnail, and video-via-muxer-subprocess. Every
// transform reads a source recording and writes a new file; the source is never mutated.
//
// Grounded on a RemoveExitedSessions-style subprocess cleanup routine
// (exec.Command + Output()) and ehrlich-b-wingthing/cmd/wt/wing.go's daemon-spawn/log-rotation
// idioms for subprocess orchestration and temp-file handling.
package export

import (
	"math"
	"path/filepath"
	"time"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

// IoError wraps a read/write failure during export (spec §7).
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string { return "export: " + e.Op + ": " + e.Err.Error() }
func (e *IoError) Unwrap() error { return e.Err }

// SpeedTrimOptions configures the speed/trim/idle-compress transform (spec §4.9).
type SpeedTrimOptions struct {
	Speed       float64 // 1.0 means unchanged
	TrimStart   float64
	TrimEnd     float64 // 0 means "no end trim"
	IdleCap     time.Duration
	Title       string // "" means keep the source title
}

// SpeedTrim re-emits src's events with t' = (t - trim_start)/speed, dropping events outside
// [trim_start, trim_end], re-applying the idle cap the same way the capture engine does, and
// preserving width/height/timestamp/command/env (spec §4.9).
func SpeedTrim(src *eventlog.Reader, dst *eventlog.Writer, opts SpeedTrimOptions) error {
	if opts.Speed <= 0 {
		opts.Speed = 1.0
	}
	header := src.Header
	if opts.Title != "" {
		header.Title = opts.Title
	}
	if err := dst.WriteHeader(header); err != nil {
		return &IoError{Op: "write header", Err: err}
	}

	lastOut := 0.0
	for {
		ev, err := src.Next()
		if err != nil {
			break
		}
		if ev.Time < opts.TrimStart {
			continue
		}
		if opts.TrimEnd > 0 && ev.Time > opts.TrimEnd {
			continue
		}
		t := (ev.Time - opts.TrimStart) / opts.Speed
		if opts.IdleCap > 0 {
			cap := opts.IdleCap.Seconds()
			if t-lastOut > cap {
				t = lastOut + cap
			}
		}
		if t < lastOut {
			t = lastOut
		}
		if err := dst.WriteEvent(eventlog.Event{Time: t, Kind: ev.Kind, Data: ev.Data}); err != nil {
			return &IoError{Op: "write event", Err: err}
		}
		lastOut = t
	}
	return nil
}

// ConcatOptions configures Concatenate (spec §4.9).
type ConcatOptions struct {
	Gap float64 // seconds of silence inserted between recordings
}

// Concatenate appends sources end-to-end with a configurable gap, inserting a Marker at each
// join labeled with the joining source's basename, and setting output width/height to the
// maxima across sources (spec §4.9). Open Question 2 (spec §9) is resolved here: the join
// marker's timestamp is placed mid-gap (current_time - gap/2), which centers the join label
// visually between the two source recordings during playback.
func Concatenate(sources []SourceFile, dst *eventlog.Writer, opts ConcatOptions) error {
	if len(sources) == 0 {
		return nil
	}
	width, height := 0, 0
	for _, s := range sources {
		if s.Reader.Header.Width > width {
			width = s.Reader.Header.Width
		}
		if s.Reader.Header.Height > height {
			height = s.Reader.Header.Height
		}
	}
	header := sources[0].Reader.Header
	header.Width, header.Height = width, height
	if err := dst.WriteHeader(header); err != nil {
		return &IoError{Op: "write header", Err: err}
	}

	currentTime := 0.0
	for i, s := range sources {
		if i > 0 {
			currentTime += opts.Gap
			label := filepath.Base(s.Path)
			markTime := currentTime - opts.Gap/2
			if markTime < 0 {
				markTime = 0
			}
			if err := dst.WriteEvent(eventlog.Event{Time: markTime, Kind: eventlog.KindMarker, Data: label}); err != nil {
				return &IoError{Op: "write join marker", Err: err}
			}
		}
		base := currentTime
		last := 0.0
		for {
			ev, err := s.Reader.Next()
			if err != nil {
				break
			}
			t := base + ev.Time
			if err := dst.WriteEvent(eventlog.Event{Time: t, Kind: ev.Kind, Data: ev.Data}); err != nil {
				return &IoError{Op: "write event", Err: err}
			}
			last = ev.Time
		}
		currentTime = base + last
	}
	return nil
}

// SourceFile pairs an already-opened Reader with its path, for labeling join markers.
type SourceFile struct {
	Path   string
	Reader *eventlog.Reader
}

// TargetTime resolves a thumbnail request's target time against a recording's total duration
// (spec §4.9: "first/middle/last/explicit seconds").
type TargetTime struct {
	Kind     TargetKind
	Explicit float64
}

type TargetKind int

const (
	TargetFirst TargetKind = iota
	TargetMiddle
	TargetLast
	TargetExplicit
)

// Resolve returns the concrete second offset for t given a recording's known duration.
func (t TargetTime) Resolve(duration float64) float64 {
	switch t.Kind {
	case TargetFirst:
		return 0
	case TargetMiddle:
		return duration / 2
	case TargetLast:
		return duration
	case TargetExplicit:
		return math.Max(0, math.Min(t.Explicit, duration))
	default:
		return 0
	}
}
