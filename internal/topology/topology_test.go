package topology

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quantized = `{
  "type": "Topology",
  "transform": {"scale": [0.5, 0.5], "translate": [10, 20]},
  "objects": {
    "countries": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "id": 4, "arcs": [[0, 1]]},
        {"type": "MultiPolygon", "id": "XYZ", "properties": {"name": "Xyz"}, "arcs": [[[-2, -1]]]},
        {"type": "Point", "coordinates": [1, 1]},
        {"type": null}
      ]
    }
  },
  "arcs": [
    [[0, 0], [2, 0], [0, 2]],
    [[2, 2], [-2, 0], [0, -2]]
  ]
}`

func TestFeatures_Quantized(t *testing.T) {
	topo, err := Parse([]byte(quantized))
	require.NoError(t, err)

	features, err := topo.Features("countries")
	require.NoError(t, err)
	require.Len(t, features, 2)

	poly := features[0]
	assert.True(t, poly.Geometry.IsPolygon())
	assert.EqualValues(t, 4, poly.ID)
	want := [][][]float64{{{10, 20}, {11, 20}, {11, 21}, {10, 21}, {10, 20}}}
	if diff := cmp.Diff(want, poly.Geometry.Polygon); diff != "" {
		t.Errorf("polygon mismatch (-want +got):\n%s", diff)
	}

	multi := features[1]
	assert.True(t, multi.Geometry.IsMultiPolygon())
	assert.Equal(t, "XYZ", multi.ID)
	assert.Equal(t, "Xyz", multi.Properties["name"])
	wantMulti := [][][][]float64{{{{10, 20}, {10, 21}, {11, 21}, {11, 20}, {10, 20}}}}
	if diff := cmp.Diff(wantMulti, multi.Geometry.MultiPolygon); diff != "" {
		t.Errorf("multipolygon mismatch (-want +got):\n%s", diff)
	}
}

func TestFeatures_Unquantized(t *testing.T) {
	doc := `{"type":"Topology","objects":{"land":{"type":"Polygon","arcs":[[0]]}},
		"arcs":[[[0,0],[5,0],[5,5],[0,0]]]}`
	topo, err := Parse([]byte(doc))
	require.NoError(t, err)

	features, err := topo.Features("land")
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, [][][]float64{{{0, 0}, {5, 0}, {5, 5}, {0, 0}}}, features[0].Geometry.Polygon)
}

func TestFeatures_MissingObject(t *testing.T) {
	topo, err := Parse([]byte(quantized))
	require.NoError(t, err)

	_, err = topo.Features("land")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestFeatures_ArcOutOfRange(t *testing.T) {
	doc := `{"type":"Topology","objects":{"bad":{"type":"Polygon","arcs":[[7]]}},"arcs":[]}`
	topo, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = topo.Features("bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)

	_, err = Parse([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FeatureCollection")
}
