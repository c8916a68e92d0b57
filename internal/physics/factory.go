package physics

import (
	"fmt"

	"github.com/chewxy/math32"

	"rigid2d/internal/vector"
)

// RegularPolygonVertices returns n points on a circle of the given radius.
// Even-sided shapes are turned by half their interior angle so that one edge is
// flat at the bottom (a square comes out axis aligned).
func RegularPolygonVertices(n int, radius float32) []vector.Vec2 {
	if n < 1 {
		return nil
	}
	interior := math32.Pi * (1 - 2/float32(n))
	exterior := 2 * math32.Pi / float32(n)
	var offset float32
	if n%2 == 0 {
		offset = interior / 2
	}
	vertices := make([]vector.Vec2, n)
	for i := range vertices {
		s, c := math32.Sincos(offset + float32(i)*exterior)
		vertices[i] = vector.New(c*radius, s*radius)
	}
	return vertices
}

// NewRegularPolygon returns a movable body of mass 1 shaped as a regular polygon
// with the given number of sides whose circumscribed circle has diameter size.
// One side gives a dot and two sides a line.
func NewRegularPolygon(sides int, size float32) (*Body, error) {
	if sides < 1 {
		return nil, fmt.Errorf("regular polygon with %d sides: %w", sides, ErrInvalidSides)
	}
	if !finite(size) || size <= 0 {
		return nil, fmt.Errorf("regular polygon of size %v: %w", size, ErrInvalidSize)
	}
	return newBody(RegularPolygonVertices(sides, size/2)), nil
}

// MustRegularPolygon is like NewRegularPolygon but panics on invalid arguments.
// It is meant for fixed scenes and tests.
func MustRegularPolygon(sides int, size float32) *Body {
	b, err := NewRegularPolygon(sides, size)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBodyFromVertices returns a movable body of mass 1 with the given local
// vertices. Vertices of a polygon must be convex and consistently wound.
func NewBodyFromVertices(vertices ...vector.Vec2) (*Body, error) {
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}
	for i, v := range vertices {
		if !finite(v.X) || !finite(v.Y) {
			return nil, fmt.Errorf("vertex %d is not finite: %w", i, ErrInvalidSize)
		}
	}
	return newBody(vertices), nil
}

// NewRectangle returns a body with an axis-aligned width x height box centered on its position.
func NewRectangle(width, height float32) (*Body, error) {
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rectangle %vx%v: %w", width, height, ErrInvalidSize)
	}
	hw, hh := width/2, height/2
	b := newBody([]vector.Vec2{
		vector.New(-hw, -hh),
		vector.New(hw, -hh),
		vector.New(hw, hh),
		vector.New(-hw, hh),
	})
	b.Name = "Rectangle"
	return b, nil
}

// ValidateMass reports an error when a movable body has no positive mass.
func ValidateMass(b *Body) error {
	if !b.Anchored && (!finite(b.Mass) || b.Mass <= 0) {
		return fmt.Errorf("body %q with mass %v: %w", b.Name, b.Mass, ErrInvalidMass)
	}
	return nil
}
