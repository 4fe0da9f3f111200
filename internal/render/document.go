package render

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/couchcryptid/meteorite-map/internal/tooltip"
)

const svgTemplate = `{{define "svg"}}<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Width}} {{.Height}}" preserveAspectRatio="xMidYMid">
<g class="countries">
{{- range .Paths}}
<path id="{{.ID}}" d="{{.D}}"></path>
{{- end}}
</g>
<g class="impacts">
{{- range .Circles}}
<circle class="impact" id="{{.ID}}" cx="{{printf "%.2f" .CX}}" cy="{{printf "%.2f" .CY}}" r="{{printf "%.3f" .R}}" style="fill: {{.Fill}}" data-name="{{.Name}}" data-tooltip="{{.Tooltip}}"></circle>
{{- end}}
</g>
</svg>{{end}}`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
#chart svg { width: 100%; height: auto; }
#chart path { fill: #d9d9d9; stroke: #ffffff; stroke-width: 0.5; }
#chart circle.impact { stroke: #333333; stroke-width: 0.3; fill-opacity: 0.75; }
.tooltip { position: absolute; pointer-events: none; opacity: 0; padding: 4px 8px;
  background: #fffbe6; border: 1px solid #999999; border-radius: 4px; font: 12px sans-serif; }
</style>
</head>
<body>
<div id="chart">{{template "svg" .Surface}}</div>
<div class="tooltip"></div>
<footer>Rendered {{.RenderedAt.Format "2006-01-02T15:04:05Z07:00"}} · {{len .Surface.Circles}} impacts</footer>
<script>
(function () {
  var cfg = {{.Script}};
  var tip = document.querySelector(".tooltip");
  document.querySelectorAll("circle.impact").forEach(function (el) {
    el.addEventListener("mouseover", function (ev) {
      tip.innerHTML = el.getAttribute("data-tooltip");
      tip.style.transition = "opacity " + cfg.fadeInMs + "ms " + cfg.easing;
      tip.style.opacity = cfg.visibleOpacity;
      tip.style.left = ev.pageX + "px";
      tip.style.top = (ev.pageY + cfg.offsetY) + "px";
    });
    el.addEventListener("mouseout", function () {
      tip.style.transition = "opacity " + cfg.fadeOutMs + "ms " + cfg.easing;
      tip.style.opacity = cfg.hiddenOpacity;
    });
  });
})();
</script>
</body>
</html>
`

var (
	svgTmpl  = template.Must(template.New("svg").Parse(svgTemplate))
	pageTmpl = template.Must(template.Must(svgTmpl.Clone()).New("page").Parse(pageTemplate))
)

// Document is everything the HTML page shows.
type Document struct {
	Title      string
	Surface    *Surface
	RenderedAt time.Time
	Script     tooltip.Script
}

// NewDocument wraps a surface with the default title and tooltip behavior.
func NewDocument(s *Surface, renderedAt time.Time) Document {
	return Document{
		Title:      "Meteorite Landings",
		Surface:    s,
		RenderedAt: renderedAt,
		Script:     tooltip.ScriptConfig(),
	}
}

// WriteHTML renders the full interactive page.
func WriteHTML(w io.Writer, doc Document) error {
	if err := pageTmpl.ExecuteTemplate(w, "page", doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// WriteSVG renders the bare SVG, without tooltip behavior.
func WriteSVG(w io.Writer, s *Surface) error {
	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}
	if err := svgTmpl.ExecuteTemplate(w, "svg", s); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}
