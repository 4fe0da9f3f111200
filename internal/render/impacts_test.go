package render

import (
	"testing"

	"github.com/couchcryptid/meteorite-map/internal/domain"
	"github.com/couchcryptid/meteorite-map/internal/observability"
	"github.com/couchcryptid/meteorite-map/internal/tooltip"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strikesFixture = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [6.08333, 50.775]},
     "properties": {"id": "1", "name": "Aachen", "mass": "21", "year": "1880-01-01T00:00:00.000", "recclass": "L5"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [10.23333, 56.18333]},
     "properties": {"id": "2", "name": "Aarhus", "mass": "720", "year": "1951-01-01T00:00:00.000", "recclass": "H6"}},
    {"type": "Feature", "geometry": null,
     "properties": {"id": "3", "name": "Nowhere", "mass": "5"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]},
     "properties": {"id": "4", "name": "Massless"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-64.95, -33.16667]},
     "properties": {"id": "5", "name": "Achiras", "mass": "780", "year": "1902-01-01T00:00:00.000"}}
  ]
}`

func newTestPlotter(t *testing.T) *Plotter {
	t.Helper()
	tips, err := tooltip.NewRenderer(16, observability.NewMetricsForTesting())
	require.NoError(t, err)
	return NewPlotter(domain.DefaultProjection(), tips)
}

func loadStrikes(t *testing.T) *geojson.FeatureCollection {
	t.Helper()
	fc, err := geojson.UnmarshalFeatureCollection([]byte(strikesFixture))
	require.NoError(t, err)
	return fc
}

func TestDrawImpacts(t *testing.T) {
	s := NewSurface()
	report, err := newTestPlotter(t).DrawImpacts(s, loadStrikes(t))
	require.NoError(t, err)

	require.Len(t, report.Markers, 3)
	assert.Equal(t, 1, report.Rejected[domain.NoGeometry])
	assert.Equal(t, 1, report.Rejected[domain.NoMass])
	assert.Zero(t, report.Unprojectable)
	assert.Equal(t, [2]float64{21, 780}, report.Scales.Mass.Domain)

	circles := s.Circles()
	require.Len(t, circles, 3)
	names := []string{circles[0].Name, circles[1].Name, circles[2].Name}
	assert.Equal(t, []string{"Achiras", "Aarhus", "Aachen"}, names)

	for i, c := range circles {
		m := report.Markers[i]
		assert.Equal(t, "impact-"+m.ID, c.ID)
		assert.Equal(t, m.X, c.CX)
		assert.Equal(t, m.Y, c.CY)
		assert.Equal(t, m.Radius, c.R)
		assert.Equal(t, m.Color, c.Fill)
	}

	aachen := circles[2]
	assert.InDelta(t, 469.74618, aachen.CX, 1e-4)
	assert.InDelta(t, 162.84653, aachen.CY, 1e-4)
	assert.InDelta(t, domain.RadiusOf(1), aachen.R, 1e-12)
	assert.Equal(t, `<strong>Aachen</strong><br>Mass: 21<br>Year: 1880-01-01T00:00:00.000`, aachen.Tooltip)
}

func TestDrawImpacts_AboveCountries(t *testing.T) {
	s := NewSurface()
	_, err := DrawMap(s, []*geojson.Feature{
		geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{square(0, 0, 5)})),
	}, domain.DefaultProjection())
	require.NoError(t, err)

	_, err = newTestPlotter(t).DrawImpacts(s, loadStrikes(t))
	require.NoError(t, err)

	assert.Len(t, s.Paths(), 1)
	assert.Len(t, s.Circles(), 3)
	assert.ErrorIs(t, s.AppendPath(Path{ID: "late"}), ErrLayerOrder)
}

func TestDrawImpacts_EmptyCollection(t *testing.T) {
	s := NewSurface()
	report, err := newTestPlotter(t).DrawImpacts(s, geojson.NewFeatureCollection())

	require.NoError(t, err)
	assert.Empty(t, report.Markers)
	assert.Empty(t, s.Circles())
}
