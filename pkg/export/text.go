package export

import (
	"strings"

	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/term"
)

// TextFrame runs the emulator to the resolved target time, the same way Thumbnail does, and
// renders the grid as plain text: glyphs only, trailing blanks trimmed from each row, rows
// joined with LF. Unlike the SVG/image targets it carries no color or style information — the
// lightest possible export target, useful for piping into grep/diff.
func TextFrame(src *eventlog.Reader, target TargetTime, duration float64) (string, error) {
	targetSeconds := target.Resolve(duration)
	e := term.New(src.Header.Width, src.Header.Height)

	for {
		ev, err := src.Next()
		if err != nil {
			break
		}
		if ev.Time > targetSeconds {
			break
		}
		applyEvent(e, ev)
	}

	rows := e.Rows()
	lines := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Glyph)
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n") + "\n", nil
}
