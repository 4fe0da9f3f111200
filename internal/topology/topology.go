// Package topology decodes TopoJSON documents into GeoJSON polygon features.
//
// Only the parts a world map needs are supported: quantized or plain arcs,
// and Polygon, MultiPolygon and GeometryCollection objects. Other geometry
// types are skipped.
package topology

import (
	"encoding/json"
	"errors"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// ErrObjectNotFound is returned when the requested object is absent.
var ErrObjectNotFound = errors.New("topology object not found")

// Topology is a parsed TopoJSON document.
type Topology struct {
	Type      string               `json:"type"`
	Transform *Transform           `json:"transform,omitempty"`
	Objects   map[string]*Geometry `json:"objects"`
	Arcs      [][][]float64        `json:"arcs"`
}

// Transform dequantizes delta-encoded arc positions.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Geometry is a TopoJSON geometry object. Arcs holds arc indexes whose shape
// depends on Type.
type Geometry struct {
	Type       string                 `json:"type"`
	ID         interface{}            `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Arcs       json.RawMessage        `json:"arcs,omitempty"`
	Geometries []*Geometry            `json:"geometries,omitempty"`
}

// Parse decodes a TopoJSON document.
func Parse(data []byte) (*Topology, error) {
	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}
	if t.Type != "Topology" {
		return nil, fmt.Errorf("parse topology: unexpected type %q", t.Type)
	}
	return &t, nil
}

// Features converts the named object into one feature per polygonal geometry.
func (t *Topology) Features(object string) ([]*geojson.Feature, error) {
	obj, ok := t.Objects[object]
	if !ok || obj == nil {
		return nil, fmt.Errorf("%w: %q", ErrObjectNotFound, object)
	}

	arcs := t.decodeArcs()

	var features []*geojson.Feature
	var walk func(g *Geometry) error
	walk = func(g *Geometry) error {
		if g.Type == "GeometryCollection" {
			for _, child := range g.Geometries {
				if child == nil {
					continue
				}
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		}

		geom, err := toGeometry(g, arcs)
		if err != nil {
			return fmt.Errorf("geometry %v: %w", g.ID, err)
		}
		if geom == nil {
			return nil
		}
		f := geojson.NewFeature(geom)
		f.ID = g.ID
		for k, v := range g.Properties {
			f.Properties[k] = v
		}
		features = append(features, f)
		return nil
	}

	if err := walk(obj); err != nil {
		return nil, err
	}
	return features, nil
}

// decodeArcs returns absolute positions for every arc, undoing delta
// encoding and quantization when the topology has a transform.
func (t *Topology) decodeArcs() [][][]float64 {
	out := make([][][]float64, len(t.Arcs))
	for i, arc := range t.Arcs {
		positions := make([][]float64, 0, len(arc))
		var x, y float64
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			if t.Transform == nil {
				positions = append(positions, []float64{p[0], p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			positions = append(positions, []float64{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			})
		}
		out[i] = positions
	}
	return out
}

func toGeometry(g *Geometry, arcs [][][]float64) (*geojson.Geometry, error) {
	switch g.Type {
	case "Polygon":
		var idx [][]int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("polygon arcs: %w", err)
		}
		poly, err := polygon(idx, arcs)
		if err != nil {
			return nil, err
		}
		return geojson.NewPolygonGeometry(poly), nil
	case "MultiPolygon":
		var idx [][][]int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("multipolygon arcs: %w", err)
		}
		polys := make([][][][]float64, 0, len(idx))
		for _, p := range idx {
			poly, err := polygon(p, arcs)
			if err != nil {
				return nil, err
			}
			polys = append(polys, poly)
		}
		return geojson.NewMultiPolygonGeometry(polys...), nil
	default:
		return nil, nil
	}
}

func polygon(rings [][]int, arcs [][][]float64) ([][][]float64, error) {
	out := make([][][]float64, 0, len(rings))
	for _, r := range rings {
		ring, err := stitch(r, arcs)
		if err != nil {
			return nil, err
		}
		out = append(out, ring)
	}
	return out, nil
}

// stitch joins arcs into a ring. A negative index ~i means arc i reversed.
// Consecutive arcs share an endpoint, which is kept once.
func stitch(indexes []int, arcs [][][]float64) ([][]float64, error) {
	var ring [][]float64
	for _, i := range indexes {
		reversed := i < 0
		if reversed {
			i = ^i
		}
		if i >= len(arcs) {
			return nil, fmt.Errorf("arc index %d out of range", i)
		}
		arc := arcs[i]
		n := len(arc)
		for k := 0; k < n; k++ {
			p := arc[k]
			if reversed {
				p = arc[n-1-k]
			}
			if k == 0 && len(ring) > 0 {
				continue
			}
			ring = append(ring, p)
		}
	}
	return ring, nil
}
