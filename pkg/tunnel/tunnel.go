// Package tunnel optionally exposes the live-view server's local listener on a public ngrok
// URL, printing the URL the way a daemon announces its connection target when it goes
// online. Grounded in a CLI daemon's start-up flow
// (cmd/wt/wing.go's "open https://app.wingthing.ai to start a terminal" announcement), adapted
// to announce an ngrok-issued address instead of a static one.
package tunnel

import (
	"context"
	"fmt"
	"io"
	"net"

	"golang.ngrok.com/ngrok"
	"golang.ngrok.com/ngrok/config"
)

// Error reports an ngrok listen/dial failure. It is a subclass of the export pipeline's
// ExportError in spirit (surfaced verbatim, never fatal to local serving): callers fall back
// to the bare local listener rather than aborting.
type Error struct {
	Err error
}

func (e *Error) Error() string { return "tunnel: " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Listener wraps an ngrok tunnel so it can be used as a net.Listener and later torn down
// alongside the plain listener it fronts. Its embedded ngrok.Tunnel already supplies Accept,
// Close, Addr, and URL.
type Listener struct {
	ngrok.Tunnel
}

// Open starts an ngrok HTTP tunnel. It takes no port and does not bind a local port — the returned Listener *is* the accept loop; callers pass it wherever
// they'd otherwise pass the result of net.Listen.
//
// Authentication follows ngrok's own convention: NGROK_AUTHTOKEN in the environment. A missing
// or rejected token surfaces as *Error so the caller can print it and keep serving locally.
func Open(ctx context.Context) (*Listener, error) {
	t, err := ngrok.Listen(ctx,
		config.HTTPEndpoint(),
		ngrok.WithAuthtokenFromEnv(),
	)
	if err != nil {
		return nil, &Error{Err: err}
	}
	return &Listener{Tunnel: t}, nil
}

// urler is the one method Announce needs; satisfied by *Listener (and by a test fake), so
// formatting the banner doesn't require standing up a real ngrok.Tunnel in tests.
type urler interface {
	URL() string
}

// Announce writes the public URL to w in the same two-line, blank-line-terminated shape the
// a daemon process uses to announce its connection target, so the live-view server's
// startup banner reads consistently whether or not --tunnel was requested.
func Announce(w io.Writer, l urler) {
	fmt.Fprintf(w, "tunnel established\n")
	fmt.Fprintf(w, "  public url: %s\n", l.URL())
	fmt.Fprintln(w)
}

var _ net.Listener = (*Listener)(nil)
