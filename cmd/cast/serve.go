package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amantus-ai/cast/pkg/config"
	"github.com/amantus-ai/cast/pkg/live"
	"github.com/amantus-ai/cast/pkg/theme"
	"github.com/amantus-ai/cast/pkg/tunnel"
)

func serveCmd() *cobra.Command {
	var addrFlag string
	var tunnelFlag bool
	var speedFlag float64
	var themeFlag string

	cmd := &cobra.Command{
		Use:   "serve <path>",
		Short: "Serve a recording for live viewing over HTTP+WebSocket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			themeName := themeFlag
			if themeName == "" {
				themeName = cfg.ThemeName()
			}

			server := live.NewServer(args[0], theme.ByName(themeName), speedFlag)

			l, err := bindListener(cmd, addrFlag, tunnelFlag)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer l.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				server.Close()
				l.Close()
			}()

			if err := server.Serve(l); err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					return fmt.Errorf("serve: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "127.0.0.1:0", "local address to bind")
	cmd.Flags().BoolVar(&tunnelFlag, "tunnel", false, "expose the server on a public ngrok URL instead of binding --addr locally")
	cmd.Flags().Float64Var(&speedFlag, "speed", 1.0, "replay speed for a finished recording")
	cmd.Flags().StringVar(&themeFlag, "theme", "", "color theme for rendered frames")
	return cmd
}

// bindListener opens the server's listener: an ngrok tunnel when --tunnel is set, or a plain
// local listener otherwise. A tunnel failure is surfaced but non-fatal, so serving falls back
// to the local address rather than aborting.
func bindListener(cmd *cobra.Command, addr string, wantTunnel bool) (net.Listener, error) {
	if wantTunnel {
		t, err := tunnel.Open(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "cast: %s (falling back to local address)\n", err)
		} else {
			tunnel.Announce(cmd.OutOrStdout(), t)
			return t, nil
		}
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "serving on %s\n", l.Addr())
	return l, nil
}
