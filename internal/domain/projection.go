package domain

import "math"

const (
	ViewWidth  = 960
	ViewHeight = 500

	// maxMercatorLat keeps ring vertices off the poles, where y diverges.
	maxMercatorLat = 85.0511287798
)

// Projection is a rotated spherical Mercator matching d3.geo.mercator().
// Coordinates are degrees in, viewBox pixels out.
type Projection struct {
	scale     float64
	rotateLon float64 // degrees added to every longitude
	dx, dy    float64
}

// NewMercator builds a projection. center is [lon, lat] and is placed at
// translate before rotation is applied, as d3 v3 does.
func NewMercator(center [2]float64, scale, rotateLon float64, translate [2]float64) Projection {
	cx, cy := mercatorRaw(center[0]*math.Pi/180, center[1]*math.Pi/180)
	return Projection{
		scale:     scale,
		rotateLon: rotateLon,
		dx:        translate[0] - cx*scale,
		dy:        translate[1] + cy*scale,
	}
}

// DefaultProjection is the world view: center [0, 25], scale 150, rotate -10°.
func DefaultProjection() Projection {
	return NewMercator([2]float64{0, 25}, 150, -10, [2]float64{ViewWidth / 2, ViewHeight / 2})
}

// Project maps a longitude/latitude pair to viewBox coordinates.
func (p Projection) Project(lon, lat float64) (x, y float64) {
	return p.projectRotated(wrapLon(lon+p.rotateLon), lat)
}

// ProjectRing projects a polygon ring given as [lon, lat] positions. Rotated
// longitudes are unwrapped so a ring that crosses the antimeridian stays
// contiguous and runs off one edge of the view instead of streaking across it.
func (p Projection) ProjectRing(ring [][]float64) [][2]float64 {
	if len(ring) == 0 {
		return nil
	}

	lons := make([]float64, 0, len(ring))
	lats := make([]float64, 0, len(ring))
	var prev, sum float64
	for _, pos := range ring {
		if len(pos) < 2 {
			continue
		}
		lon := wrapLon(pos[0] + p.rotateLon)
		if len(lons) > 0 {
			for lon-prev > 180 {
				lon -= 360
			}
			for lon-prev < -180 {
				lon += 360
			}
		}
		prev = lon
		sum += lon
		lons = append(lons, lon)
		lats = append(lats, math.Max(-maxMercatorLat, math.Min(maxMercatorLat, pos[1])))
	}
	if len(lons) == 0 {
		return nil
	}

	shift := 0.0
	if mean := sum / float64(len(lons)); mean > 180 {
		shift = -360
	} else if mean < -180 {
		shift = 360
	}

	out := make([][2]float64, len(lons))
	for i := range lons {
		x, y := p.projectRotated(lons[i]+shift, lats[i])
		out[i] = [2]float64{x, y}
	}
	return out
}

func (p Projection) projectRotated(lon, lat float64) (x, y float64) {
	mx, my := mercatorRaw(lon*math.Pi/180, lat*math.Pi/180)
	return mx*p.scale + p.dx, p.dy - my*p.scale
}

func mercatorRaw(lambda, phi float64) (x, y float64) {
	return lambda, math.Log(math.Tan(math.Pi/4 + phi/2))
}

// wrapLon folds a longitude into [-180, 180].
func wrapLon(lon float64) float64 {
	if lon > 180 {
		return lon - 360
	}
	if lon < -180 {
		return lon + 360
	}
	return lon
}
