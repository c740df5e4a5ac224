package export

import (
	"strings"
	"testing"
)

func TestWrapHTMLEmbedsSVGAndTitle(t *testing.T) {
	out := WrapHTML("demo recording", "<svg><rect/></svg>")
	if !strings.Contains(out, "demo recording") {
		t.Fatalf("expected title in output, got %q", out)
	}
	if !strings.Contains(out, "<svg><rect/></svg>") {
		t.Fatalf("expected embedded SVG markup, got %q", out)
	}
}
