package tunnel

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type fakeURL string

func (f fakeURL) URL() string { return string(f) }

func TestErrorWrapsAndUnwraps(t *testing.T) {
	inner := errors.New("authtoken rejected")
	err := &Error{Err: inner}

	if got := err.Error(); got != "tunnel: authtoken rejected" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected errors.Is to see through Unwrap to the inner error")
	}
}

func TestAnnounceWritesPublicURL(t *testing.T) {
	var buf bytes.Buffer
	Announce(&buf, fakeURL("https://abc123.ngrok.io"))

	out := buf.String()
	if !strings.Contains(out, "https://abc123.ngrok.io") {
		t.Fatalf("expected banner to contain the public URL, got %q", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected banner to end with a blank line like the wing daemon's, got %q", out)
	}
}
