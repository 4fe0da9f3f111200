package domain

import "math"

// MassRange is the output range of the mass scale, an area proxy in px².
var MassRange = [2]float64{1, 1000}

// Category10 is d3's ten-color categorical palette.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// LinearScale maps a numeric domain onto a numeric range without clamping.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// Scale maps x from the domain onto the range. A zero-width domain maps
// everything onto the start of the range.
func (s LinearScale) Scale(x float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return s.Range[0]
	}
	t := (x - s.Domain[0]) / span
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// RadiusOf converts an area proxy into a circle radius: sqrt(x · 4/π).
// Non-positive and non-finite inputs yield 0.
func RadiusOf(x float64) float64 {
	if !(x > 0) || math.IsInf(x, 1) {
		return 0
	}
	return math.Sqrt(x * 4 / math.Pi)
}

// ColorScale buckets a numeric domain into len(Palette) equal-width bands.
type ColorScale struct {
	Domain  [2]float64
	Palette []string
}

// Color returns the palette entry for v's band. Values outside the domain
// take the nearest end band.
func (c ColorScale) Color(v float64) string {
	n := len(c.Palette)
	if n == 0 {
		return ""
	}
	lo, hi := c.Domain[0], c.Domain[1]
	if n == 1 || !(hi > lo) || math.IsNaN(v) {
		return c.Palette[0]
	}
	i := int(math.Floor((v - lo) / (hi - lo) * float64(n)))
	return c.Palette[max(0, min(n-1, i))]
}

// Scales is the per-dataset scale configuration built from the mass domain.
type Scales struct {
	Mass  LinearScale
	Color ColorScale
}

// NewScales configures the mass scale over [lo, hi] and derives the color
// domain from the radii at those two endpoints.
func NewScales(lo, hi float64) Scales {
	mass := LinearScale{Domain: [2]float64{lo, hi}, Range: MassRange}
	return Scales{
		Mass: mass,
		Color: ColorScale{
			Domain:  [2]float64{RadiusOf(mass.Scale(lo)), RadiusOf(mass.Scale(hi))},
			Palette: Category10,
		},
	}
}

// Radius returns the marker radius for a mass.
func (s Scales) Radius(mass float64) float64 {
	return RadiusOf(s.Mass.Scale(mass))
}

// Fill returns the marker color for a mass, keyed by its radius.
func (s Scales) Fill(mass float64) string {
	return s.Color.Color(s.Radius(mass))
}
