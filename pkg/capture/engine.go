// Package capture implements the recording engine (spec §4.4, §5): a background sampler that
// polls a console.Console at a fixed cadence, diffs against the previous snapshot, and appends
// events to an eventlog.Writer.
//
// Grounded on a session-registry Manager pattern (registry +
// mutex-guarded state, callback fan-out) and pkg/termsocket/manager.go's ticker-driven
// monitorSession loop, adapted from "watch a PTY" to "poll a console snapshot on a fixed
// interval, diff against the last one".
package capture

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/console"
	"github.com/amantus-ai/cast/pkg/eventlog"
)

// State is one of the capture state machine's four states (spec §4.11): Idle -> Recording <->
// Paused -> Stopped, Stopped terminal.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// minSampleInterval is the configuration floor (spec §4.4: "sample_interval (floor 33 ms)").
const minSampleInterval = 33 * time.Millisecond

// Config configures one capture Engine (spec §4.4).
type Config struct {
	Title           string
	Command         string
	IdleCap         time.Duration
	SampleInterval  time.Duration
	CapturedEnvKeys []string
}

func (c Config) normalized() Config {
	if c.SampleInterval < minSampleInterval {
		c.SampleInterval = minSampleInterval
	}
	return c
}

// Engine is the capture state machine. Its sampler goroutine owns the writer, the last
// snapshot, and the last event time (spec §5); the foreground communicates only via atomic
// flags, matching a callback-registry style of cross-goroutine signalling.
type Engine struct {
	cfg     Config
	console console.Console

	id uuid.UUID

	mu    sync.Mutex
	state State
	err   error

	stopRequested atomic.Bool
	paused        atomic.Bool
	pendingMark   atomic.Pointer[string]

	startMono time.Time
	writer    *eventlog.Writer
	file      *os.File

	lastSnapshot *cell.GridSnapshot
	lastEventTime float64

	done chan struct{}
}

// New constructs an Engine in the Idle state for the given console adapter.
func New(cfg Config, con console.Console) *Engine {
	return &Engine{
		cfg:     cfg.normalized(),
		console: con,
		id:      uuid.New(),
		state:   StateIdle,
		done:    make(chan struct{}),
	}
}

// ID returns the engine's in-process RecordingID (SPEC_FULL §3); it is never serialized into
// the Header.
func (e *Engine) ID() uuid.UUID { return e.id }

// State returns the engine's current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the fatal error that moved the engine to Stopped, if any.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Start opens path for writing, emits the header from the console's current size and the
// configured captured environment variables, launches the sampler, and enters Recording (spec
// §4.4).
func (e *Engine) Start(path string, flags int) error {
	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return fmt.Errorf("capture: Start called in state %s, want idle", e.state)
	}
	e.mu.Unlock()

	width, height, err := e.console.Size()
	if err != nil {
		return fmt.Errorf("capture: reading console size: %w", err)
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("capture: opening %s: %w", path, err)
	}

	w := eventlog.NewWriter(f)
	ts := nowUnix()
	header := eventlog.Header{
		Version:   eventlog.Version,
		Width:     width,
		Height:    height,
		Timestamp: &ts,
		Command:   e.cfg.Command,
		Title:     e.cfg.Title,
	}
	if e.cfg.IdleCap > 0 {
		idle := e.cfg.IdleCap.Seconds()
		header.IdleTimeLimit = &idle
	}
	if len(e.cfg.CapturedEnvKeys) > 0 {
		header.Env = captureEnv(e.cfg.CapturedEnvKeys)
	}
	if err := w.WriteHeader(header); err != nil {
		f.Close()
		return fmt.Errorf("capture: writing header: %w", err)
	}

	e.mu.Lock()
	e.writer = w
	e.file = f
	e.startMono = monotonicNow()
	e.state = StateRecording
	e.mu.Unlock()

	go e.samplerLoop()
	return nil
}

func captureEnv(keys []string) map[string]string {
	env := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env
}

// Pause flips Recording -> Paused. Sampling cadence continues; samples while paused are
// skipped.
func (e *Engine) Pause() error { return e.transition(StateRecording, StatePaused) }

// Resume flips Paused -> Recording.
func (e *Engine) Resume() error { return e.transition(StatePaused, StateRecording) }

func (e *Engine) transition(from, to State) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != from {
		return fmt.Errorf("capture: cannot move %s -> %s from state %s", from, to, e.state)
	}
	e.state = to
	e.paused.Store(to == StatePaused)
	return nil
}

// Mark requests a Marker event with the given label, consumed by the sampler on its next tick
// (spec §5's "pending-marker slot"). Permitted only in Recording or Paused.
func (e *Engine) Mark(label string) error {
	e.mu.Lock()
	st := e.state
	e.mu.Unlock()
	if st != StateRecording && st != StatePaused {
		return fmt.Errorf("capture: Mark not permitted in state %s", st)
	}
	e.pendingMark.Store(&label)
	return nil
}

// Stop signals the sampler, waits up to one sample interval (bounded at 1s total, per spec
// §5) for it to exit, closes the writer, and enters Stopped.
func (e *Engine) Stop() error {
	e.mu.Lock()
	st := e.state
	e.mu.Unlock()
	if st == StateStopped {
		return nil
	}
	if st == StateIdle {
		e.mu.Lock()
		e.state = StateStopped
		e.mu.Unlock()
		return nil
	}

	e.stopRequested.Store(true)

	select {
	case <-e.done:
	case <-time.After(time.Second):
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	var closeErr error
	if e.writer != nil {
		closeErr = e.writer.Close()
	}
	e.state = StateStopped
	if e.err == nil {
		e.err = closeErr
	}
	return closeErr
}

// samplerLoop is the background sampler goroutine (spec §4.4's "sampling loop contract per
// tick", spec §5's concurrency model).
func (e *Engine) samplerLoop() {
	defer close(e.done)
	ticker := time.NewTicker(e.cfg.SampleInterval)
	defer ticker.Stop()

	for {
		if e.stopRequested.Load() {
			return
		}
		select {
		case <-ticker.C:
			e.tick()
		}
		if e.stopRequested.Load() {
			return
		}
	}
}

func (e *Engine) tick() {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state != StateRecording {
		if label := e.pendingMark.Swap(nil); label != nil {
			e.emitMarker(*label)
		}
		return
	}

	if label := e.pendingMark.Swap(nil); label != nil {
		e.emitMarker(*label)
	}

	snap, err := e.console.Snapshot()
	if err != nil {
		if errors.As(err, new(*console.PlatformError)) {
			e.fail(err)
			return
		}
		// ConsoleUnavailable-class errors: this tick is skipped without logging, and the next
		// tick samples again.
		return
	}

	if e.lastSnapshot != nil && (snap.Width != e.lastSnapshot.Width || snap.Height != e.lastSnapshot.Height) {
		if err := e.appendEvent(eventlog.KindResize, eventlog.FormatResize(snap.Width, snap.Height)); err != nil {
			e.fail(err)
			return
		}
	}

	diff := snap.Diff(e.lastSnapshot)
	if len(diff) == 0 {
		snapCopy := snap
		e.lastSnapshot = &snapCopy
		return
	}

	if err := e.appendEvent(eventlog.KindOutput, string(diff)); err != nil {
		e.fail(err)
		return
	}
	snapCopy := snap
	e.lastSnapshot = &snapCopy
}

func (e *Engine) emitMarker(label string) {
	if err := e.appendEvent(eventlog.KindMarker, label); err != nil {
		e.fail(err)
	}
}

// appendEvent computes this event's capped time and writes it, maintaining the non-decreasing
// ordering guarantee (spec §4.4 step 4/5).
func (e *Engine) appendEvent(kind eventlog.Kind, data string) error {
	t := monotonicNow().Sub(e.startMono).Seconds()
	if e.cfg.IdleCap > 0 {
		cap := e.cfg.IdleCap.Seconds()
		if t-e.lastEventTime > cap {
			t = e.lastEventTime + cap
		}
	}
	if t < e.lastEventTime {
		t = e.lastEventTime
	}
	if err := e.writer.WriteEvent(eventlog.Event{Time: t, Kind: kind, Data: data}); err != nil {
		return err
	}
	e.lastEventTime = t
	return nil
}

func (e *Engine) fail(err error) {
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()
	e.stopRequested.Store(true)
}

// these indirections exist so tests can't accidentally depend on wall-clock skew between
// goroutines; they are trivial wrappers over time.Now, not a clock abstraction.
func nowUnix() int64          { return time.Now().Unix() }
func monotonicNow() time.Time { return time.Now() }
