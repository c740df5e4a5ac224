package export

import (
	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/svgrender"
	"github.com/amantus-ai/cast/pkg/term"
	"github.com/amantus-ai/cast/pkg/theme"
)

// Thumbnail runs the emulator to the resolved target time and renders one SVG frame (spec
// §4.9). duration should be the recording's known total duration (e.g. from
// eventlog.ReadInfo), used to resolve TargetMiddle/TargetLast/TargetExplicit.
func Thumbnail(src *eventlog.Reader, target TargetTime, duration float64, th theme.Theme) (string, error) {
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

	return svgrender.Render(e.Rows(), svgrender.Options{Theme: th}), nil
}

func applyEvent(e *term.Emulator, ev eventlog.Event) {
	switch ev.Kind {
	case eventlog.KindOutput:
		e.Write([]byte(ev.Data))
	case eventlog.KindResize:
		if w, h, err := eventlog.ParseResize(ev.Data); err == nil {
			e.Resize(w, h)
		}
	}
}
