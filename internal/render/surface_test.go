package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_LayerOrder(t *testing.T) {
	s := NewSurface()
	assert.Equal(t, 960, s.Width)
	assert.Equal(t, 500, s.Height)

	require.NoError(t, s.AppendPath(Path{ID: "country-1", D: "M0,0L1,0L1,1Z"}))
	s.AppendCircle(Circle{ID: "impact-a"})
	s.AppendCircle(Circle{ID: "impact-b"})

	err := s.AppendPath(Path{ID: "country-2"})
	require.ErrorIs(t, err, ErrLayerOrder)

	assert.Len(t, s.Paths(), 1)
	require.Len(t, s.Circles(), 2)
	assert.Equal(t, "impact-a", s.Circles()[0].ID)
	assert.Equal(t, "impact-b", s.Circles()[1].ID)
}
