package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearScale(t *testing.T) {
	s := LinearScale{Domain: [2]float64{4, 100}, Range: [2]float64{1, 1000}}

	assert.Equal(t, 1.0, s.Scale(4))
	assert.Equal(t, 1000.0, s.Scale(100))
	assert.InDelta(t, 500.5, s.Scale(52), 1e-9)
}

func TestLinearScale_DegenerateDomain(t *testing.T) {
	s := LinearScale{Domain: [2]float64{7, 7}, Range: [2]float64{1, 1000}}
	assert.Equal(t, 1.0, s.Scale(7))
}

func TestRadiusOf(t *testing.T) {
	assert.InDelta(t, 1.1283791670955126, RadiusOf(1), 1e-12)
	assert.InDelta(t, 35.682482323055424, RadiusOf(1000), 1e-9)
	assert.Equal(t, 0.0, RadiusOf(0))
	assert.Equal(t, 0.0, RadiusOf(-5))
	assert.Equal(t, 0.0, RadiusOf(math.NaN()))
	assert.Equal(t, 0.0, RadiusOf(math.Inf(1)))
}

func TestScales_RadiusIncreasesWithMass(t *testing.T) {
	s := NewScales(4, 100)
	assert.Less(t, s.Radius(4), s.Radius(100))

	prev := -1.0
	for m := 4.0; m <= 100; m += 0.5 {
		r := s.Radius(m)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.GreaterOrEqual(t, r, prev, "radius must not decrease at mass %v", m)
		prev = r
	}
}

func TestScales_AreaIsLinearInMass(t *testing.T) {
	s := NewScales(0, 1000)
	areaAt := func(m float64) float64 { r := s.Radius(m); return r * r * math.Pi / 4 }

	assert.InDelta(t, areaAt(250)-areaAt(0), areaAt(750)-areaAt(500), 1e-9)
}

func TestScales_ColorDomainFromRadii(t *testing.T) {
	s := NewScales(4, 100)

	assert.InDelta(t, RadiusOf(1), s.Color.Domain[0], 1e-12)
	assert.InDelta(t, RadiusOf(1000), s.Color.Domain[1], 1e-9)
	assert.Equal(t, Category10[0], s.Fill(4))
	assert.Equal(t, Category10[9], s.Fill(100))
}

func TestColorScale_Buckets(t *testing.T) {
	c := ColorScale{Domain: [2]float64{0, 10}, Palette: Category10}

	assert.Equal(t, Category10[0], c.Color(0))
	assert.Equal(t, Category10[0], c.Color(0.99))
	assert.Equal(t, Category10[1], c.Color(1))
	assert.Equal(t, Category10[5], c.Color(5.5))
	assert.Equal(t, Category10[9], c.Color(10))
	assert.Equal(t, Category10[0], c.Color(-3), "below domain clamps to first band")
	assert.Equal(t, Category10[9], c.Color(42), "above domain clamps to last band")
}

func TestColorScale_Degenerate(t *testing.T) {
	assert.Empty(t, ColorScale{}.Color(1))
	assert.Equal(t, "#abc", ColorScale{Domain: [2]float64{0, 1}, Palette: []string{"#abc"}}.Color(0.7))
	assert.Equal(t, Category10[0], ColorScale{Domain: [2]float64{3, 3}, Palette: Category10}.Color(3))
	assert.Equal(t, Category10[0], ColorScale{Domain: [2]float64{0, 1}, Palette: Category10}.Color(math.NaN()))
}
