// Package svgrender turns a cell grid into a window-chrome SVG document (spec §4.7).
//
// Grounded on spec.md §4.7/Glossary's explicit chrome description ("rounded rect, title bar
// with three coloured circles") and on the absence of a templating dependency in this repo: no
// example renders SVG or XML, so this package follows a general preference
// for direct, hand-written output construction (fmt/encoding/json used directly
// rather than a templating library for its own wire formats) via stdlib text/template.
package svgrender

import (
	"strings"
	"text/template"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/theme"
)

const cellWidth = 8
const cellHeight = 16
const chromeTop = 32
const chromeMargin = 8

// Options configures one render (full-size by default; a thumbnail supplies explicit pixel
// dimensions and the scale factor is derived from them).
type Options struct {
	Theme           theme.Theme
	OutputWidthPx   int // 0 means "natural size" (cols*cellWidth + margins)
	OutputHeightPx  int
}

type span struct {
	Text       string
	X, Y       int
	Fill       string
	BgFill     string // "" means no background rect
	Bold       bool
	Italic     bool
	Underline  bool
	Strike     bool
}

var tmpl = template.Must(template.New("svg").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="{{.WidthPx}}" height="{{.HeightPx}}" viewBox="0 0 {{.WidthPx}} {{.HeightPx}}">
<rect x="0" y="0" width="{{.WidthPx}}" height="{{.HeightPx}}" rx="8" fill="{{.Background}}"/>
<circle cx="16" cy="16" r="6" fill="#ff5f56"/>
<circle cx="36" cy="16" r="6" fill="#ffbd2e"/>
<circle cx="56" cy="16" r="6" fill="#27c93f"/>
{{range .BgRects}}<rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="{{.Fill}}"/>
{{end}}{{range .Spans}}<text x="{{.X}}" y="{{.Y}}" font-family="monospace" font-size="16" fill="{{.Fill}}"{{if .Bold}} font-weight="bold"{{end}}{{if .Italic}} font-style="italic"{{end}}{{if or .Underline .Strike}} text-decoration="{{if .Underline}}underline{{end}}{{if .Strike}} line-through{{end}}"{{end}}>{{.Text}}</text>
{{end}}</svg>
`))

type bgRect struct {
	X, Y, W, H int
	Fill       string
}

type templateData struct {
	WidthPx, HeightPx int
	Background        string
	BgRects           []bgRect
	Spans             []span
}

// Render produces the full-size SVG document for one grid (spec §4.7).
func Render(rows [][]cell.StyledCell, opts Options) string {
	return render(rows, opts, 1.0)
}

// RenderThumbnail produces an SVG scaled to fit OutputWidthPx/OutputHeightPx (spec §4.7's
// "thumbnail variant accepts explicit output pixel dimensions and scales positions
// accordingly").
func RenderThumbnail(rows [][]cell.StyledCell, opts Options) string {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	naturalW := cols*cellWidth + 2*chromeMargin
	naturalH := len(rows)*cellHeight + chromeTop
	scale := 1.0
	if opts.OutputWidthPx > 0 && naturalW > 0 {
		scale = float64(opts.OutputWidthPx) / float64(naturalW)
	} else if opts.OutputHeightPx > 0 && naturalH > 0 {
		scale = float64(opts.OutputHeightPx) / float64(naturalH)
	}
	return render(rows, opts, scale)
}

func render(rows [][]cell.StyledCell, opts Options, scale float64) string {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	naturalW := cols*cellWidth + 2*chromeMargin
	naturalH := len(rows)*cellHeight + chromeTop

	data := templateData{
		WidthPx:    scalePx(naturalW, scale, opts.OutputWidthPx),
		HeightPx:   scalePx(naturalH, scale, opts.OutputHeightPx),
		Background: rgbHex(opts.Theme.Background),
	}

	for y, row := range rows {
		x := 0
		for x < len(row) {
			c := row[x]
			if isDefaultBlank(c, opts.Theme) {
				x++
				continue
			}
			end := x + 1
			for end < len(row) && coalesces(row[end], c) {
				end++
			}
			text := glyphsToString(row[x:end])
			px := chromeMargin + x*cellWidth
			py := chromeTop + y*cellHeight + cellHeight - 4

			bg := opts.Theme.Resolve(c.Bg)
			if c.Bg.Kind != 0 && bg != opts.Theme.Background {
				data.BgRects = append(data.BgRects, bgRect{
					X: scalePx(px, scale, 0), Y: scalePx(chromeTop+y*cellHeight, scale, 0),
					W: scalePx((end-x)*cellWidth, scale, 0), H: scalePx(cellHeight, scale, 0),
					Fill: rgbHex(bg),
				})
			}

			data.Spans = append(data.Spans, span{
				Text: escapeXML(text),
				X:    scalePx(px, scale, 0), Y: scalePx(py, scale, 0),
				Fill:      rgbHex(opts.Theme.Resolve(c.Fg)),
				Bold:      c.Bold(),
				Italic:    c.Italic(),
				Underline: c.Underline(),
				Strike:    c.Strikethrough(),
			})
			x = end
		}
	}

	var b strings.Builder
	_ = tmpl.Execute(&b, data)
	return b.String()
}

func scalePx(px int, scale float64, override int) int {
	if override > 0 {
		return override
	}
	return int(float64(px)*scale + 0.5)
}

// isDefaultBlank reports a cell that contributes nothing visible: a space with the theme's
// default foreground/background and no attributes (spec §4.7's "whitespace runs with default
// style are omitted entirely").
func isDefaultBlank(c cell.StyledCell, th theme.Theme) bool {
	if c.Glyph != ' ' && c.Glyph != 0 {
		return false
	}
	if c.Attrs != 0 {
		return false
	}
	if !c.Fg.IsDefault() {
		return false
	}
	bg := th.Resolve(c.Bg)
	return c.Bg.IsDefault() || bg == th.Background
}

// coalesces reports whether next has the same style as prev, so they can share one <text>
// span (spec §4.7's "identical adjacent styles... coalesced").
func coalesces(next, prev cell.StyledCell) bool {
	return next.Fg == prev.Fg && next.Bg == prev.Bg && next.Attrs == prev.Attrs
}

func glyphsToString(cells []cell.StyledCell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.Glyph == 0 {
			b.WriteRune(' ')
		} else {
			b.WriteRune(c.Glyph)
		}
	}
	return b.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"'", "&apos;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

func rgbHex(c [3]uint8) string {
	const hex = "0123456789abcdef"
	b := make([]byte, 7)
	b[0] = '#'
	b[1], b[2] = hex[c[0]>>4], hex[c[0]&0xf]
	b[3], b[4] = hex[c[1]>>4], hex[c[1]&0xf]
	b[5], b[6] = hex[c[2]>>4], hex[c[2]&0xf]
	return string(b)
}
