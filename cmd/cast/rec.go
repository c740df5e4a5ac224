package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amantus-ai/cast/pkg/capture"
	"github.com/amantus-ai/cast/pkg/config"
	"github.com/amantus-ai/cast/pkg/console"
)

// markerKey is the interactive-mode keystroke that inserts a Marker event: Ctrl-B, chosen so
// it never collides with the Ctrl-C/Ctrl-D a user would send to end the session.
const markerKey = 0x02

func recCmd() *cobra.Command {
	var titleFlag string
	var commandFlag string
	var idleFlag float64
	var overwriteFlag bool

	cmd := &cobra.Command{
		Use:   "rec <path>",
		Short: "Record a terminal session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			con, err := console.Open()
			if err != nil {
				return err
			}
			defer con.Close()

			idleCap := cfg.IdleCap()
			if idleFlag > 0 {
				idleCap = time.Duration(idleFlag * float64(time.Second))
			}

			engine := capture.New(capture.Config{
				Title:           titleFlag,
				Command:         commandFlag,
				IdleCap:         idleCap,
				CapturedEnvKeys: cfg.CapturedEnvKeys,
			}, con)

			if err := engine.Start(path, recordOpenFlags(overwriteFlag)); err != nil {
				if os.IsExist(err) {
					return fmt.Errorf("%s already exists (use --overwrite)", path)
				}
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var runErr error
			if commandFlag != "" {
				c := exec.Command("sh", "-c", commandFlag)
				c.Stdin = os.Stdin
				c.Stdout = os.Stdout
				c.Stderr = os.Stderr
				runErr = engine.RunCommand(ctx, c)
			} else {
				runErr = engine.RunInteractive(ctx, os.Stdin, markerKey)
			}

			if engine.State() != capture.StateStopped {
				if err := engine.Stop(); err != nil && runErr == nil {
					runErr = err
				}
			}
			if runErr != nil {
				return runErr
			}
			if err := engine.Err(); err != nil {
				return err
			}
			fmt.Printf("recording saved: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "recording title")
	cmd.Flags().StringVar(&commandFlag, "command", "", "launch and record this command instead of an interactive shell")
	cmd.Flags().Float64Var(&idleFlag, "idle-time-limit", 0, "cap idle gaps at this many seconds")
	cmd.Flags().BoolVar(&overwriteFlag, "overwrite", false, "overwrite an existing recording")
	return cmd
}

// recordOpenFlags maps --overwrite to the os.OpenFile flags that make Engine.Start either
// clobber an existing file or fail with an already-exists error.
func recordOpenFlags(overwrite bool) int {
	flags := os.O_CREATE | os.O_WRONLY
	if overwrite {
		return flags | os.O_TRUNC
	}
	return flags | os.O_EXCL
}
