package physics

import (
	"github.com/chewxy/math32"

	"rigid2d/internal/vector"
)

// Kind tags a shape by vertex count. The physics core treats every kind as a
// vertex list; renderers may switch on Kind to pick a draw routine.
type Kind int

const (
	KindDot Kind = iota
	KindLine
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindDot:
		return "Dot"
	case KindLine:
		return "Line"
	default:
		return "Polygon"
	}
}

// KindOf returns the kind for a shape with n vertices.
func KindOf(n int) Kind {
	switch {
	case n <= 1:
		return KindDot
	case n == 2:
		return KindLine
	default:
		return KindPolygon
	}
}

var polygonNames = map[int]string{
	1:  "Dot",
	2:  "Line",
	3:  "Triangle",
	4:  "Square",
	5:  "Pentagon",
	6:  "Hexagon",
	7:  "Heptagon",
	8:  "Octagon",
	9:  "Nonagon",
	10: "Decagon",
}

// PolygonName returns the conventional name for a regular shape with the given side count.
func PolygonName(sides int) string {
	if name, ok := polygonNames[sides]; ok {
		return name
	}
	return "Polygon"
}

// Shape is an ordered vertex list in body-local space. Consecutive vertices
// (wrapping around) form the edges; winding must be consistent for convex polygons.
type Shape struct {
	Vertices []vector.Vec2
}

// Kind returns the shape's kind.
func (s Shape) Kind() Kind {
	return KindOf(len(s.Vertices))
}

func (s Shape) clone() Shape {
	out := make([]vector.Vec2, len(s.Vertices))
	copy(out, s.Vertices)
	return Shape{Vertices: out}
}

// inertia returns the moment of inertia about the local origin for a body of
// uniform density and the given mass. Dots and lines are treated as point
// masses and thin rods.
func (s Shape) inertia(mass float32) float32 {
	v := s.Vertices
	switch len(v) {
	case 0:
		return 0
	case 1:
		return mass * v[0].LengthSquared()
	case 2:
		return mass * (v[0].LengthSquared() + v[0].Dot(v[1]) + v[1].LengthSquared()) / 3
	}
	var num, den float32
	for i := range v {
		a, b := v[i], v[(i+1)%len(v)]
		cross := math32.Abs(a.Cross(b))
		num += cross * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		den += cross
	}
	if den == 0 {
		return 0
	}
	return mass * num / (6 * den)
}
