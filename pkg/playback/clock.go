// Package playback implements the event-paced stdout replayer (spec §4.10): it reads events
// from an eventlog.Reader and writes Output payloads to an io.Writer with inter-event sleeps
// scaled by a speed factor.
//
// Grounded on a debounce-timer pattern
// (time.AfterFunc/time.NewTicker), adapted to a sleep-between-events loop that polls pause/stop
// at the spec's required 50ms granularity.
package playback

import (
	"io"
	"math"
	"time"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

// State mirrors the capture engine's state shape (spec §4.11): Idle -> Playing <-> Paused ->
// Stopped, Stopped terminal.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateStopped
)

// pollGranularity bounds how often Play checks pause/stop while sleeping between events (spec
// §4.10: "interruptible at a 50ms granularity").
const pollGranularity = 50 * time.Millisecond

// Options configures one playback run.
type Options struct {
	Speed          float64 // +Inf disables sleeping entirely (raw-dump mode)
	IdleCap        time.Duration
	PauseOnMarkers bool
}

// Clock drives one playback pass over a reader, exposing Pause/Resume/Stop from another
// goroutine the same way capture.Engine does.
type Clock struct {
	opts Options

	stateCh chan State
	pause   chan struct{}
	resume  chan struct{}
	stop    chan struct{}
	state   State
}

// New creates a Clock in the Idle state.
func New(opts Options) *Clock {
	if opts.Speed == 0 {
		opts.Speed = 1.0
	}
	return &Clock{
		opts:  opts,
		state: StateIdle,
		pause: make(chan struct{}, 1), resume: make(chan struct{}, 1), stop: make(chan struct{}),
	}
}

// Pause and Resume request a state flip, honored at the next poll tick.
func (c *Clock) Pause()  { nonBlockingSend(c.pause) }
func (c *Clock) Resume() { nonBlockingSend(c.resume) }

// Stop requests the run end at the next poll tick.
func (c *Clock) Stop() {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
}

func nonBlockingSend(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Play reads events from r and writes Output payloads to w, pacing with inter-event sleeps of
// (t_i - t_{i-1})/speed (spec §4.10). markerFn, if non-nil, is invoked for every Marker event
// encountered; whether playback also pauses there is governed by Options.PauseOnMarkers.
func (c *Clock) Play(r *eventlog.Reader, w io.Writer, markerFn func(label string)) error {
	c.state = StatePlaying
	lastTime := 0.0
	raw := math.IsInf(c.opts.Speed, 1)

	for {
		select {
		case <-c.stop:
			c.state = StateStopped
			return nil
		default:
		}

		ev, err := r.Next()
		if err != nil {
			break
		}

		if !raw {
			gap := ev.Time - lastTime
			if c.opts.IdleCap > 0 {
				cap := c.opts.IdleCap.Seconds()
				if gap > cap {
					gap = cap
				}
			}
			if gap > 0 {
				if err := c.sleepInterruptible(time.Duration(gap / c.opts.Speed * float64(time.Second))); err != nil {
					return nil // stopped mid-sleep
				}
			}
		}
		lastTime = ev.Time

		switch ev.Kind {
		case eventlog.KindOutput:
			if _, err := io.WriteString(w, ev.Data); err != nil {
				return err
			}
		case eventlog.KindMarker:
			if markerFn != nil {
				markerFn(ev.Data)
			}
			if c.opts.PauseOnMarkers {
				c.waitWhilePaused(true)
			}
		}

		c.waitWhilePaused(false)
	}
	c.state = StateStopped
	return nil
}

// sleepInterruptible sleeps d in pollGranularity slices, returning early (with an error) if
// Stop is requested mid-sleep.
func (c *Clock) sleepInterruptible(d time.Duration) error {
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		wait := pollGranularity
		if remaining < wait {
			wait = remaining
		}
		select {
		case <-c.stop:
			return errStopped
		case <-time.After(wait):
		}
	}
}

// waitWhilePaused blocks in pollGranularity slices until Resume or Stop, honoring an initial
// forced pause (used by --pause-on-markers) or a user-requested Pause.
func (c *Clock) waitWhilePaused(forced bool) {
	paused := forced
	for {
		select {
		case <-c.pause:
			paused = true
		default:
		}
		if !paused {
			return
		}
		select {
		case <-c.stop:
			return
		case <-c.resume:
			return
		case <-time.After(pollGranularity):
		}
	}
}

var errStopped = &stoppedError{}

type stoppedError struct{}

func (*stoppedError) Error() string { return "playback: stopped" }
