package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/playback"
	"github.com/amantus-ai/cast/pkg/tail"
)

func playCmd() *cobra.Command {
	var speedFlag float64
	var idleFlag float64
	var pauseOnMarkers bool
	var followFlag bool

	cmd := &cobra.Command{
		Use:   "play <path>",
		Short: "Play back a recording at the terminal's own pace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(args[0], playback.Options{
				Speed:          orDefault(speedFlag, 1.0),
				IdleCap:        time.Duration(idleFlag * float64(time.Second)),
				PauseOnMarkers: pauseOnMarkers,
			}, followFlag)
		},
	}

	cmd.Flags().Float64Var(&speedFlag, "speed", 1.0, "playback speed multiplier")
	cmd.Flags().Float64Var(&idleFlag, "idle-time-limit", 0, "cap idle gaps at this many seconds")
	cmd.Flags().BoolVar(&pauseOnMarkers, "pause-on-markers", false, "pause playback at each marker until resumed")
	cmd.Flags().BoolVar(&followFlag, "follow", false, "keep streaming as the recording grows, ignoring pacing")
	return cmd
}

// catCmd is play --speed +Inf: a raw dump with no terminal mode changes and no pacing.
func catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Dump a recording's output unpaced, like cat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(args[0], playback.Options{Speed: math.Inf(1)}, false)
		},
	}
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// runPlay opens path and either paces it through a playback.Clock or, if follow is set,
// streams newly appended events as they're written via pkg/tail, writing raw Output bytes to
// stdout as they arrive with no artificial pacing.
func runPlay(path string, opts playback.Options, follow bool) error {
	if follow {
		return runFollow(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := eventlog.NewReader(f)
	if err != nil {
		return err
	}

	clock := playback.New(opts)
	return clock.Play(r, os.Stdout, func(label string) {
		fmt.Fprintf(os.Stderr, "marker: %s\n", label)
	})
}

func runFollow(path string) error {
	fl, _, err := tail.Open(path)
	if err != nil {
		return err
	}
	defer fl.Close()

	events, errs := fl.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case eventlog.KindOutput:
				io.WriteString(os.Stdout, ev.Data)
			case eventlog.KindMarker:
				fmt.Fprintf(os.Stderr, "marker: %s\n", ev.Data)
			}
		case werr, ok := <-errs:
			if !ok {
				continue
			}
			fmt.Fprintf(os.Stderr, "cast: %s\n", werr)
		}
	}
}
