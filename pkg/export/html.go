package export

import (
	"html/template"
	"strings"
)

// htmlTmpl wraps a single rendered SVG frame in a minimal standalone page on a fixed dark
// (#1e1e1e) background, so the page doesn't flash white while the SVG loads; the SVG keeps its
// own theme background. This is the lightest of the export targets — one static file, no video dependencies —
// and is also the skeleton the live-view server's landing page borrows its chrome styling from.
var htmlTmpl = template.Must(template.New("html").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { margin: 0; padding: 24px; background: #1e1e1e; display: flex; justify-content: center; }
  .frame { max-width: 100%; height: auto; }
</style>
</head>
<body>
{{.SVG}}
</body>
</html>
`))

// WrapHTML renders a single SVG frame (produced by Thumbnail) as a standalone HTML document
// (spec §4.9's html export target).
func WrapHTML(title, svg string) string {
	var b strings.Builder
	_ = htmlTmpl.Execute(&b, struct {
		Title string
		SVG   template.HTML
	}{Title: title, SVG: template.HTML(svg)})
	return b.String()
}
