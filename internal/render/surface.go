// Package render draws countries and impact markers onto an SVG surface and
// wraps it in the interactive HTML document.
package render

import (
	"errors"

	"github.com/couchcryptid/meteorite-map/internal/domain"
)

// ErrLayerOrder is returned when a country path is appended after a marker.
var ErrLayerOrder = errors.New("country paths must be drawn before impact markers")

// Path is one country outline.
type Path struct {
	ID string
	D  string
}

// Circle is one impact marker.
type Circle struct {
	ID      string
	CX, CY  float64
	R       float64
	Fill    string
	Name    string
	Tooltip string // rendered fragment, shown by the page script
}

// Surface is the append-only drawing region. Country paths form the bottom
// layer and markers are stacked above them in append order.
type Surface struct {
	Width, Height int

	paths   []Path
	circles []Circle
}

// NewSurface creates an empty surface with the world view's viewBox.
func NewSurface() *Surface {
	return &Surface{Width: domain.ViewWidth, Height: domain.ViewHeight}
}

// AppendPath adds a country path. It fails once any marker has been drawn.
func (s *Surface) AppendPath(p Path) error {
	if len(s.circles) > 0 {
		return ErrLayerOrder
	}
	s.paths = append(s.paths, p)
	return nil
}

// AppendCircle adds a marker on top of everything drawn so far.
func (s *Surface) AppendCircle(c Circle) {
	s.circles = append(s.circles, c)
}

// Paths returns the country paths in draw order.
func (s *Surface) Paths() []Path { return s.paths }

// Circles returns the markers in draw order.
func (s *Surface) Circles() []Circle { return s.circles }
