package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProjection_CenterAfterRotation(t *testing.T) {
	p := DefaultProjection()

	// Rotation shifts longitude 10°E onto the translate point; latitude 25° is the center.
	x, y := p.Project(10, 25)
	assert.InDelta(t, 480, x, 1e-9)
	assert.InDelta(t, 250, y, 1e-9)
}

func TestDefaultProjection_KnownPoints(t *testing.T) {
	p := DefaultProjection()

	x, y := p.Project(6.08333, 50.775)
	assert.InDelta(t, 469.74618, x, 1e-4)
	assert.InDelta(t, 162.84653, y, 1e-4)

	x, y = p.Project(10, 0)
	assert.InDelta(t, 480, x, 1e-9)
	assert.InDelta(t, 317.63130, y, 1e-4)
}

func TestDefaultProjection_WrapsAcrossAntimeridian(t *testing.T) {
	p := DefaultProjection()

	// -175° rotated by -10° lands at +175°, the far right of the map.
	x, _ := p.Project(-175, 0)
	assert.InDelta(t, 938.14893, x, 1e-4)
}

func TestDefaultProjection_NorthIsUp(t *testing.T) {
	p := DefaultProjection()
	_, yNorth := p.Project(0, 60)
	_, ySouth := p.Project(0, -30)
	assert.Less(t, yNorth, ySouth)
}

func TestProjectRing_UnwrapsCrossingRing(t *testing.T) {
	p := DefaultProjection()

	// Straddles lon -170°, which the rotation puts on the antimeridian.
	ring := [][]float64{{-172, 60}, {-168, 60}, {-168, 65}, {-172, 65}, {-172, 60}}
	pts := p.ProjectRing(ring)
	require.Len(t, pts, 5)

	for i := 1; i < len(pts); i++ {
		assert.Less(t, abs(pts[i][0]-pts[i-1][0]), 100.0, "segment %d must not jump across the map", i)
	}
}

func TestProjectRing_ClampsPoles(t *testing.T) {
	p := DefaultProjection()
	pts := p.ProjectRing([][]float64{{0, -90}, {10, -90}, {10, -80}, {0, -90}})
	require.Len(t, pts, 4)
	for _, pt := range pts {
		assert.False(t, math.IsNaN(pt[1]))
		assert.Less(t, pt[1], 2000.0)
	}
}

func TestProjectRing_SkipsShortPositions(t *testing.T) {
	p := DefaultProjection()
	assert.Nil(t, p.ProjectRing(nil))
	assert.Len(t, p.ProjectRing([][]float64{{1}, {1, 2}}), 1)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
