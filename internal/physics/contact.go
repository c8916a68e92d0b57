package physics

import (
	"github.com/chewxy/math32"

	"rigid2d/internal/vector"
)

// featureTolerance is how close (relative to the projection magnitude) a vertex
// must be to the extreme projection to count as part of the touching feature.
const featureTolerance = 1e-5

// contactPoint picks a representative point for a contact along normal (A toward B).
//
// The touching feature of A is the set of vertices with the largest projection,
// that of B the set with the smallest. A lone vertex against a face is the contact
// point. When both features are faces, the faces are clipped against each other
// along the tangent and the midpoint of their overlap, halfway through the
// penetration, is used.
func contactPoint(normal vector.Vec2, a, b []vector.Vec2) vector.Vec2 {
	_, maxA, _, _ := project(a, normal)
	minB, _, _, _ := project(b, normal)

	faceA := feature(a, normal, maxA, true)
	faceB := feature(b, normal, minB, false)

	switch {
	case len(faceA) == 1 && len(faceB) == 1:
		return faceA[0].Add(faceB[0]).Scale(0.5)
	case len(faceA) == 1:
		return faceA[0]
	case len(faceB) == 1:
		return faceB[0]
	}

	tangent := normal.Perpendicular()
	loA, hiA, _, _ := project(faceA, tangent)
	loB, hiB, _, _ := project(faceB, tangent)
	lo, hi := math32.Max(loA, loB), math32.Min(hiA, hiB)
	if lo > hi {
		// Faces do not overlap along the tangent; fall back to the mean of both.
		return vector.Centroid(append(faceA, faceB...))
	}
	along := (lo + hi) * 0.5
	depth := (maxA + minB) * 0.5
	return normal.Scale(depth).Add(tangent.Scale(along))
}

// feature returns the vertices whose projection onto axis is within tolerance of
// extreme (from below when upper is true, from above otherwise).
func feature(vertices []vector.Vec2, axis vector.Vec2, extreme float32, upper bool) []vector.Vec2 {
	tol := featureTolerance * math32.Max(1, math32.Abs(extreme))
	var out []vector.Vec2
	for _, v := range vertices {
		p := axis.Dot(v)
		if (upper && p >= extreme-tol) || (!upper && p <= extreme+tol) {
			out = append(out, v)
		}
	}
	return out
}
