package render

import (
	"fmt"
	"strconv"

	"github.com/couchcryptid/meteorite-map/internal/domain"
	geojson "github.com/paulmach/go.geojson"
)

// DrawMap appends one path per country feature and returns how many were drawn.
// Features without polygonal geometry are skipped.
func DrawMap(s *Surface, features []*geojson.Feature, proj domain.Projection) (int, error) {
	drawn := 0
	for i, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		d := PathData(f.Geometry, proj)
		if d == "" {
			continue
		}
		id := fmt.Sprintf("country-%d", i)
		if f.ID != nil {
			id = fmt.Sprintf("country-%v", f.ID)
		}
		if err := s.AppendPath(Path{ID: id, D: d}); err != nil {
			return drawn, err
		}
		drawn++
	}
	return drawn, nil
}

// PathData builds SVG path data for a Polygon or MultiPolygon geometry, one
// closed subpath per ring.
func PathData(g *geojson.Geometry, proj domain.Projection) string {
	var polys [][][][]float64
	switch {
	case g.IsPolygon():
		polys = [][][][]float64{g.Polygon}
	case g.IsMultiPolygon():
		polys = g.MultiPolygon
	default:
		return ""
	}

	var buf []byte
	for _, poly := range polys {
		for _, ring := range poly {
			pts := proj.ProjectRing(ring)
			if len(pts) < 3 {
				continue
			}
			for i, pt := range pts {
				if i == 0 {
					buf = append(buf, 'M')
				} else {
					buf = append(buf, 'L')
				}
				buf = strconv.AppendFloat(buf, pt[0], 'f', 2, 64)
				buf = append(buf, ',')
				buf = strconv.AppendFloat(buf, pt[1], 'f', 2, 64)
			}
			buf = append(buf, 'Z')
		}
	}
	return string(buf)
}
