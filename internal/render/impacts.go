package render

import (
	"fmt"

	"github.com/couchcryptid/meteorite-map/internal/domain"
	"github.com/couchcryptid/meteorite-map/internal/tooltip"
	geojson "github.com/paulmach/go.geojson"
)

// ImpactReport summarizes one DrawImpacts call.
type ImpactReport struct {
	Markers       []domain.Marker
	Scales        domain.Scales
	Rejected      map[domain.Rejection]int
	Unprojectable int
}

// Plotter turns a strike collection into markers on a surface.
type Plotter struct {
	proj     domain.Projection
	tooltips *tooltip.Renderer
}

// NewPlotter creates a plotter sharing the map's projection.
func NewPlotter(proj domain.Projection, tooltips *tooltip.Renderer) *Plotter {
	return &Plotter{proj: proj, tooltips: tooltips}
}

// DrawImpacts validates the collection, plots the valid records heaviest
// first, and appends one circle per marker with its tooltip fragment attached.
func (p *Plotter) DrawImpacts(s *Surface, fc *geojson.FeatureCollection) (ImpactReport, error) {
	records, rejected := domain.ParseRecords(fc)
	plot := domain.PlotImpacts(records, p.proj)

	report := ImpactReport{
		Markers:       plot.Markers,
		Scales:        plot.Scales,
		Rejected:      rejected,
		Unprojectable: plot.Unprojectable,
	}

	for _, m := range plot.Markers {
		html, err := p.tooltips.Render(m)
		if err != nil {
			return report, fmt.Errorf("marker %s: %w", m.ID, err)
		}
		s.AppendCircle(Circle{
			ID:      "impact-" + m.ID,
			CX:      m.X,
			CY:      m.Y,
			R:       m.Radius,
			Fill:    m.Color,
			Name:    m.Record.Name,
			Tooltip: string(html),
		})
	}
	return report, nil
}
