package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var resizePattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

// ParseResize parses a resize event's "WxH" payload (spec §6.1: data matches ^\d+x\d+$).
func ParseResize(data string) (width, height int, err error) {
	m := resizePattern.FindStringSubmatch(data)
	if m == nil {
		return 0, 0, fmt.Errorf("eventlog: malformed resize payload %q", data)
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("eventlog: resize payload %q has non-positive dimension", data)
	}
	return width, height, nil
}

// FormatResize renders a "WxH" resize payload.
func FormatResize(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// wireEvent is the exact [t, kind, data] JSON array shape (spec §6.1).
type wireEvent struct {
	Time float64
	Kind Kind
	Data string
}

func (e wireEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{e.Time, string(e.Kind), e.Data})
}

func (e *wireEvent) UnmarshalJSON(b []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &e.Time); err != nil {
		return err
	}
	var kind string
	if err := json.Unmarshal(raw[1], &kind); err != nil {
		return err
	}
	e.Kind = Kind(kind)
	return json.Unmarshal(raw[2], &e.Data)
}

// Writer writes a recording file one record at a time (spec §4.3). It never buffers more
// than the current record; Close is idempotent.
type Writer struct {
	w         *bufio.Writer
	closer    io.Closer
	closed    bool
	count     int
	lastTime  float64
	wroteHead bool
}

// NewWriter wraps an io.WriteCloser (typically an append-opened *os.File) as an eventlog
// Writer. WriteHeader must be called exactly once before any WriteEvent call.
func NewWriter(wc io.WriteCloser) *Writer {
	return &Writer{w: bufio.NewWriter(wc), closer: wc}
}

// WriteHeader writes the header as the first line. Refuses to write twice or after Close.
func (w *Writer) WriteHeader(h Header) error {
	if w.closed {
		return fmt.Errorf("eventlog: write on closed writer")
	}
	if w.wroteHead {
		return fmt.Errorf("eventlog: header already written")
	}
	if err := h.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	w.wroteHead = true
	return w.w.Flush()
}

// WriteEvent appends one event record. Events must already be non-decreasing in time; the
// writer does not reorder, it only tracks the last time for Info-style queries.
func (w *Writer) WriteEvent(e Event) error {
	if w.closed {
		return fmt.Errorf("eventlog: write on closed writer")
	}
	if !w.wroteHead {
		return fmt.Errorf("eventlog: must WriteHeader before WriteEvent")
	}
	b, err := json.Marshal(wireEvent{Time: e.Time, Kind: e.Kind, Data: e.Data})
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	w.count++
	w.lastTime = e.Time
	return nil
}

// Count returns the number of events written so far.
func (w *Writer) Count() int { return w.count }

// LastTime returns the last written event's time, or 0 if none have been written.
func (w *Writer) LastTime() float64 { return w.lastTime }

// Close flushes and marks the writer closed. Safe to call repeatedly.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.w.Flush(); err != nil {
		w.closer.Close()
		return err
	}
	return w.closer.Close()
}

// Reader reads a recording file one record at a time (spec §4.3). Malformed lines (neither a
// valid header nor a valid event array) are silently skipped, for forward compatibility with
// comment/extension lines.
type Reader struct {
	sc     *bufio.Scanner
	Header Header
}

// NewReader consumes the first non-empty line as the header and validates it.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header Header
	found := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := json.Unmarshal([]byte(line), &header); err != nil {
			return nil, fmt.Errorf("eventlog: malformed header: %w", err)
		}
		found = true
		break
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("eventlog: empty recording")
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	return &Reader{sc: sc, Header: header}, nil
}

// Next returns the next event, or io.EOF when the stream is exhausted. Lines that fail to
// parse as a valid [t, kind, data] array are skipped rather than returned as errors.
func (r *Reader) Next() (Event, error) {
	for r.sc.Scan() {
		line := strings.TrimSpace(r.sc.Text())
		if line == "" {
			continue
		}
		var we wireEvent
		if err := json.Unmarshal([]byte(line), &we); err != nil {
			continue // malformed/extension line: tolerated, not surfaced
		}
		if we.Time < 0 {
			continue
		}
		if we.Kind == KindResize {
			if _, _, err := ParseResize(we.Data); err != nil {
				continue
			}
		}
		return Event{Time: we.Time, Kind: we.Kind, Data: we.Data}, nil
	}
	if err := r.sc.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// Info is the result of the one-pass info() fast path (spec §4.3).
type Info struct {
	Header     Header
	EventCount int
	Duration   float64
}

// ReadInfo iterates a recording once to count events and compute duration (header duration if
// present, else the last event's time).
func ReadInfo(r io.Reader) (Info, error) {
	reader, err := NewReader(r)
	if err != nil {
		return Info{}, err
	}
	info := Info{Header: reader.Header}
	lastTime := 0.0
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Info{}, err
		}
		info.EventCount++
		lastTime = ev.Time
	}
	if reader.Header.Duration != nil {
		info.Duration = *reader.Header.Duration
	} else {
		info.Duration = lastTime
	}
	return info, nil
}
