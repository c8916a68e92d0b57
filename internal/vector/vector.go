package vector

import (
	"github.com/chewxy/math32"
)

// Vec2 is a 2D vector in screen space (X right, Y down). It is a value type;
// every operation returns a new vector.
type Vec2 struct {
	X, Y float32
}

// Zero is the zero vector.
var Zero = Vec2{}

// New returns the vector (x, y).
func New(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product (v.X, v.Y, 0) x (o.X, o.Y, 0).
// It equals |v|·|o|·sin(angle from v to o).
func (v Vec2) Cross(o Vec2) float32 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Normalized returns the unit vector in the direction of v.
// A zero-length (or non-finite) vector has no direction; the zero vector is returned
// so callers never see NaN or Inf.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 || math32.IsInf(l, 0) || math32.IsNaN(l) {
		return Zero
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated counter-clockwise (in Y-up terms) by radians.
func (v Vec2) Rotate(radians float32) Vec2 {
	if radians == 0 {
		return v
	}
	s, c := math32.Sincos(radians)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Perpendicular returns v rotated by 90 degrees: (-y, x). Used as an edge normal.
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{-v.Y, v.X}
}

// ProjectOnto returns the projection of v onto o. Projecting onto the zero vector yields zero.
func (v Vec2) ProjectOnto(o Vec2) Vec2 {
	d := o.LengthSquared()
	if d == 0 {
		return Zero
	}
	return o.Scale(v.Dot(o) / d)
}

// AngleTo returns the signed angle in radians from v to o, in (-pi, pi].
// It is 0 when either vector is zero.
func (v Vec2) AngleTo(o Vec2) float32 {
	if v.IsZero() || o.IsZero() {
		return 0
	}
	return math32.Atan2(v.Cross(o), v.Dot(o))
}

func (v Vec2) Distance(o Vec2) float32 {
	return v.Sub(o).Length()
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(o Vec2, eps float32) bool {
	return math32.Abs(v.X-o.X) <= eps && math32.Abs(v.Y-o.Y) <= eps
}

// Centroid returns the arithmetic mean of the points, or zero for an empty slice.
func Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Zero
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(points)))
}
