package domain

import (
	"time"
)

// Marker is one circle on the map.
type Marker struct {
	ID        string    `json:"id"`
	Record    Record    `json:"record"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Radius    float64   `json:"radius"`
	Color     string    `json:"color"`
	PlottedAt time.Time `json:"plotted_at"`
}

// Plot is the outcome of placing a dataset's records on the map.
type Plot struct {
	Markers []Marker
	Scales  Scales
	// Unprojectable counts records whose projected position was not finite.
	Unprojectable int
}

// PlotImpacts sorts records heaviest first, configures scales from their mass
// domain, and builds one marker per record in draw order. The input slice is
// not modified. Callers pass records that already passed ParseRecord.
func PlotImpacts(records []Record, proj Projection) Plot {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	SortByMassDesc(sorted)

	lo, hi, ok := MassDomain(sorted)
	if !ok {
		return Plot{Scales: NewScales(0, 0)}
	}
	scales := NewScales(lo, hi)
	now := Now()

	plot := Plot{
		Markers: make([]Marker, 0, len(sorted)),
		Scales:  scales,
	}
	for _, rec := range sorted {
		x, y := proj.Project(rec.Lon, rec.Lat)
		if !finite(x) || !finite(y) {
			plot.Unprojectable++
			continue
		}
		plot.Markers = append(plot.Markers, Marker{
			ID:        rec.ID,
			Record:    rec,
			X:         x,
			Y:         y,
			Radius:    scales.Radius(rec.Mass),
			Color:     scales.Fill(rec.Mass),
			PlottedAt: now,
		})
	}
	return plot
}
