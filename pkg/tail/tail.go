// Package tail implements follow/tail mode (SPEC_FULL §4.15): streaming newly appended events
// from a recording file that another process is still writing.
//
// Grounded on fsnotify/fsnotify (listed in go.mod though not
// exercised in the four retrieved files) and cross-checked against csells-tmux-adapter's
// independent confirmation that fsnotify is the idiomatic "watch a file for changes" choice in
// this domain.
package tail

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

// WatchError reports a follow-mode watcher failure (spec §7). Both a setup failure and a
// mid-watch failure are sent on the Events error channel and degrade to polling rather than
// becoming fatal.
type WatchError struct {
	Err error
}

func (e *WatchError) Error() string { return "tail: " + e.Err.Error() }
func (e *WatchError) Unwrap() error { return e.Err }

// pollFallback is the degraded-mode poll interval used when the fsnotify watcher fails
// mid-watch (spec §7: "follow mode degrades to a 200ms poll loop").
const pollFallback = 200 * time.Millisecond

// Follower tails a growing recording file, decoding newly appended event lines one at a time
// without re-parsing already-consumed lines (SPEC_FULL §4.15).
type Follower struct {
	path   string
	file   *os.File
	offset int64
}

// Open opens path, consumes the header line, and returns a Follower positioned right after it.
// It records the byte offset just past the header line and later reads seek to that offset, so
// event lines appended before Open was called are still delivered even though the header is
// read through a read-ahead-buffering reader.
func Open(path string) (*Follower, eventlog.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eventlog.Header{}, err
	}

	line, offset, err := readLine(f, 0)
	if err != nil {
		f.Close()
		return nil, eventlog.Header{}, err
	}

	var header eventlog.Header
	if err := json.Unmarshal(line, &header); err != nil {
		f.Close()
		return nil, eventlog.Header{}, err
	}
	if err := header.Validate(); err != nil {
		f.Close()
		return nil, eventlog.Header{}, err
	}

	return &Follower{path: path, file: f, offset: offset}, header, nil
}

// readLine reads one newline-terminated line starting at byte offset start, returning the line
// (without its trailing newline) and the offset immediately past it.
func readLine(f *os.File, start int64) ([]byte, int64, error) {
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return nil, 0, err
	}
	r := bufio.NewReaderSize(f, 4096)
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, 0, err
	}
	return line[:len(line)-1], start + int64(len(line)), nil
}

// Close releases the underlying file handle.
func (fl *Follower) Close() error { return fl.file.Close() }

// Events starts a goroutine watching the recording's directory for Write events and sends
// newly appended, fully-decoded events on the returned channel. Both channels are closed when
// the file is removed/renamed or the watcher's channels close; a watcher failure is reported
// on the error channel and the goroutine falls back to polling until the file can no longer be
// stat'ed.
func (fl *Follower) Events() (<-chan eventlog.Event, <-chan error) {
	events := make(chan eventlog.Event)
	errs := make(chan error, 1)

	go fl.watchLoop(events, errs)
	return events, errs
}

func (fl *Follower) watchLoop(events chan<- eventlog.Event, errs chan<- error) {
	defer close(events)
	defer close(errs)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		errs <- &WatchError{Err: err}
		fl.pollLoop(events)
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(fl.path)
	if err := watcher.Add(dir); err != nil {
		errs <- &WatchError{Err: err}
		fl.pollLoop(events)
		return
	}

	fl.drainAvailable(events)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(fl.path) {
				continue
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return
			}
			if ev.Op&fsnotify.Write != 0 {
				fl.drainAvailable(events)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			errs <- &WatchError{Err: watchErr}
			fl.pollLoop(events)
			return
		}
	}
}

// pollLoop is the degraded fallback when the fsnotify watcher itself cannot be used (spec §7).
func (fl *Follower) pollLoop(events chan<- eventlog.Event) {
	ticker := time.NewTicker(pollFallback)
	defer ticker.Stop()
	for range ticker.C {
		if _, err := os.Stat(fl.path); err != nil {
			return
		}
		fl.drainAvailable(events)
	}
}

// drainAvailable reads every complete, newly-appended line since the last call and decodes it,
// advancing fl.offset only past lines it has fully consumed (up to and including their
// trailing newline) so a partially-written trailing line is retried on the next call rather
// than lost (spec §4.3/§5: "a partially-written trailing line is just an as-yet-unparseable
// line, skipped until the next poll"). It reopens its read position via Seek rather than
// reusing a single long-lived bufio.Scanner, because a Scanner that has already returned EOF
// cannot be resumed once the writer appends more bytes.
func (fl *Follower) drainAvailable(events chan<- eventlog.Event) {
	if _, err := fl.file.Seek(fl.offset, io.SeekStart); err != nil {
		return
	}
	r := bufio.NewReader(fl.file)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			// Either EOF with no trailing newline yet (partial line) or a genuine read
			// error; either way, leave fl.offset where it was and retry next call.
			return
		}
		fl.offset += int64(len(line))
		line = line[:len(line)-1] // drop the newline
		if len(line) == 0 {
			continue
		}
		if ev, ok := decodeEventLine(line); ok {
			events <- ev
		}
	}
}

func decodeEventLine(line []byte) (eventlog.Event, bool) {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return eventlog.Event{}, false
	}
	var t float64
	if json.Unmarshal(raw[0], &t) != nil {
		return eventlog.Event{}, false
	}
	var kind string
	if json.Unmarshal(raw[1], &kind) != nil {
		return eventlog.Event{}, false
	}
	var data string
	if json.Unmarshal(raw[2], &data) != nil {
		return eventlog.Event{}, false
	}
	return eventlog.Event{Time: t, Kind: eventlog.Kind(kind), Data: data}, true
}
