package tooltip

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/couchcryptid/meteorite-map/internal/domain"
	"github.com/couchcryptid/meteorite-map/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

var fragment = template.Must(template.New("tooltip").Parse(
	`<strong>{{.Name}}</strong><br>Mass: {{.Mass}}<br>Year: {{.Year}}`,
))

// Content is what a tooltip shows for one record.
type Content struct {
	Mass string
	Name string
	Year string
}

// ContentOf picks the tooltip fields from a record. Mass is shown as published.
func ContentOf(r domain.Record) Content {
	return Content{Mass: r.MassText, Name: r.Name, Year: r.Year}
}

// Renderer renders tooltip fragments, caching them by displayed content so a
// fragment is reused across renders until the record's fields change.
type Renderer struct {
	cache   *lru.Cache[Content, template.HTML]
	metrics *observability.Metrics
}

// NewRenderer creates a renderer holding at most size fragments.
func NewRenderer(size int, metrics *observability.Metrics) (*Renderer, error) {
	cache, err := lru.New[Content, template.HTML](size)
	if err != nil {
		return nil, fmt.Errorf("tooltip cache: %w", err)
	}
	return &Renderer{cache: cache, metrics: metrics}, nil
}

// Render returns the HTML fragment for a marker.
func (r *Renderer) Render(m domain.Marker) (template.HTML, error) {
	c := ContentOf(m.Record)
	if html, ok := r.cache.Get(c); ok {
		r.metrics.TooltipCache.WithLabelValues("hit").Inc()
		return html, nil
	}
	r.metrics.TooltipCache.WithLabelValues("miss").Inc()

	html, err := RenderContent(c)
	if err != nil {
		return "", err
	}
	r.cache.Add(c, html)
	return html, nil
}

// RenderContent executes the fragment template without caching.
func RenderContent(c Content) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragment.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("render tooltip: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}
