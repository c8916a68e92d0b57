package vector

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func TestArithmetic(t *testing.T) {
	a := New(3, 4)
	b := New(-1, 2)

	assert.Equal(t, New(2, 6), a.Add(b))
	assert.Equal(t, New(4, 2), a.Sub(b))
	assert.Equal(t, New(6, 8), a.Scale(2))
	assert.Equal(t, New(-3, -4), a.Negate())
	assert.Equal(t, float32(5), a.Dot(b))
	assert.Equal(t, float32(10), a.Cross(b))
	assert.Equal(t, float32(25), a.LengthSquared())
	assert.InDelta(t, 5, a.Length(), eps)
	assert.InDelta(t, 5, a.Distance(New(0, 0)), eps)
}

func TestNormalized(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		n := New(3, 4).Normalized()
		assert.InDelta(t, 1, n.Length(), eps)
		assert.True(t, n.ApproxEqual(New(0.6, 0.8), eps))
	})

	t.Run("zero vector falls back to zero", func(t *testing.T) {
		assert.Equal(t, Zero, Zero.Normalized())
	})

	t.Run("non-finite vector falls back to zero", func(t *testing.T) {
		inf := math32.Inf(1)
		assert.Equal(t, Zero, New(inf, 1).Normalized())
		assert.Equal(t, Zero, New(math32.NaN(), 1).Normalized())
	})
}

func TestRotateAndPerpendicular(t *testing.T) {
	v := New(1, 0)
	assert.True(t, v.Rotate(math32.Pi/2).ApproxEqual(New(0, 1), eps))
	assert.True(t, v.Rotate(math32.Pi).ApproxEqual(New(-1, 0), eps))
	assert.Equal(t, v, v.Rotate(0))

	p := New(2, 5).Perpendicular()
	assert.Equal(t, New(-5, 2), p)
	assert.Zero(t, p.Dot(New(2, 5)))
}

func TestProjectOnto(t *testing.T) {
	assert.True(t, New(3, 4).ProjectOnto(New(10, 0)).ApproxEqual(New(3, 0), eps))
	assert.Equal(t, Zero, New(3, 4).ProjectOnto(Zero))
}

func TestAngleTo(t *testing.T) {
	assert.InDelta(t, math32.Pi/2, New(1, 0).AngleTo(New(0, 3)), eps)
	assert.InDelta(t, -math32.Pi/2, New(1, 0).AngleTo(New(0, -3)), eps)
	assert.Zero(t, Zero.AngleTo(New(1, 1)))

	// sin(angle)·|a|·|b| is the scalar cross product.
	a, b := New(2, 1), New(-1, 3)
	assert.InDelta(t, a.Cross(b), math32.Sin(a.AngleTo(b))*a.Length()*b.Length(), 1e-4)
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Zero, Centroid(nil))
	square := []Vec2{New(0, 0), New(2, 0), New(2, 2), New(0, 2)}
	assert.Equal(t, New(1, 1), Centroid(square))
}
