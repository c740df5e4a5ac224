package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amantus-ai/cast/pkg/eventlog"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Print a recording's header and summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := eventlog.ReadInfo(f)
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

// printInfo prints a recording's header fields: version, size, duration,
// event count, and whichever optional header fields are present.
func printInfo(w io.Writer, info eventlog.Info) {
	h := info.Header
	fmt.Fprintf(w, "version: %d\n", h.Version)
	fmt.Fprintf(w, "size: %dx%d\n", h.Width, h.Height)
	fmt.Fprintf(w, "duration: %.3fs\n", info.Duration)
	fmt.Fprintf(w, "events: %d\n", info.EventCount)
	if h.Title != "" {
		fmt.Fprintf(w, "title: %s\n", h.Title)
	}
	if h.Command != "" {
		fmt.Fprintf(w, "command: %s\n", h.Command)
	}
	if h.Timestamp != nil {
		fmt.Fprintf(w, "recorded at: %s\n", time.Unix(*h.Timestamp, 0).Format(time.RFC3339))
	}
	if h.IdleTimeLimit != nil {
		fmt.Fprintf(w, "idle time limit: %.3fs\n", *h.IdleTimeLimit)
	}
	for k, v := range h.Env {
		fmt.Fprintf(w, "env %s: %s\n", k, v)
	}
}
