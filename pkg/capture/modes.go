package capture

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"time"
)

// RunInteractive drives the engine in interactive mode (spec §4.4.1): sampling runs
// concurrently with a foreground input-watch on stdin that listens for end-of-input and
// marker keystrokes. markerKey, if non-zero, triggers Mark("manual") when read from stdin;
// any other byte is ignored. End-of-input (EOF on stdin) stops the engine.
//
// The "stdin.ready?" ambiguity noted in spec §9's open questions is resolved here as a
// non-blocking read on a 50ms tick, per the spec's own suggested deliberate choice.
func (e *Engine) RunInteractive(ctx context.Context, stdin *os.File, markerKey byte) error {
	r := bufio.NewReader(stdin)
	buf := make([]byte, 1)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	type readResult struct {
		b   byte
		err error
	}
	reads := make(chan readResult, 1)
	go func() {
		for {
			n, err := r.Read(buf)
			if n > 0 {
				reads <- readResult{b: buf[0]}
			}
			if err != nil {
				reads <- readResult{err: err}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return e.Stop()
		case res := <-reads:
			if res.err != nil {
				return e.Stop()
			}
			if markerKey != 0 && res.b == markerKey {
				_ = e.Mark("manual")
			}
		case <-tick.C:
			if e.State() == StateStopped {
				return e.Err()
			}
		}
	}
}

// RunCommand drives the engine in command mode (spec §4.4.2): sampling runs concurrently with
// a launched child process. The engine stops after the child exits plus a drain window equal
// to three sample intervals, to capture trailing output the child may have written just
// before exiting.
func (e *Engine) RunCommand(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-waitErr
		return e.Stop()
	case err := <-waitErr:
		drain := 3 * e.cfg.SampleInterval
		time.Sleep(drain)
		stopErr := e.Stop()
		if err != nil {
			return err
		}
		return stopErr
	}
}
