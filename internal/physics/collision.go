package physics

import (
	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"rigid2d/internal/vector"
)

// axisEpsilon merges candidate axes whose directions differ by less than this
// (|n·m| ≥ 1-axisEpsilon); n and -n are the same separating axis.
const axisEpsilon = 1e-5

// Contact is a detected overlap between two bodies.
type Contact struct {
	A, B *Body
	// Normal is the unit separating axis, pointing from A toward B.
	Normal vector.Vec2
	// Depth is the overlap along Normal; MTV = Normal·Depth.
	Depth float32
	// Point is a representative world-space contact point.
	Point vector.Vec2
	// RelativeVelocity is (vB - vA)·Normal at Point, angular velocity included;
	// negative while the bodies approach.
	RelativeVelocity float32
}

// MTV returns the minimum translation vector, oriented from A to B.
func (c Contact) MTV() vector.Vec2 {
	return c.Normal.Scale(c.Depth)
}

// AxisResult is the outcome of projecting two shapes onto one axis.
type AxisResult struct {
	Separated bool
	Depth     float32
	// IndexA and IndexB are the vertices with the largest projection of A and the
	// smallest projection of B.
	IndexA, IndexB int
}

// EdgeNormals returns the unit normal of every edge v[i] -> v[i+1 mod n].
// Zero-length edges have no normal and are skipped; fewer than two vertices yield none.
func EdgeNormals(vertices []vector.Vec2) []vector.Vec2 {
	n := len(vertices)
	if n < 2 {
		return nil
	}
	normals := make([]vector.Vec2, 0, n)
	for i := range vertices {
		edge := vertices[(i+1)%n].Sub(vertices[i])
		normal := edge.Perpendicular().Normalized()
		if normal.IsZero() {
			continue
		}
		normals = append(normals, normal)
	}
	return normals
}

// project returns the extent of the vertices along axis and the indices of the
// vertices reaching it.
func project(vertices []vector.Vec2, axis vector.Vec2) (lo, hi float32, loIdx, hiIdx int) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for i, v := range vertices {
		p := axis.Dot(v)
		if p < lo {
			lo, loIdx = p, i
		}
		if p > hi {
			hi, hiIdx = p, i
		}
	}
	return lo, hi, loIdx, hiIdx
}

// TestAxis projects a and b onto normal, which must point from a toward b.
// The shapes are separated when a's largest projection does not exceed b's smallest;
// otherwise the overlap depth is maxA - minB.
func TestAxis(normal vector.Vec2, a, b []vector.Vec2) AxisResult {
	_, maxA, _, idxA := project(a, normal)
	minB, _, idxB, _ := project(b, normal)
	if maxA <= minB {
		return AxisResult{Separated: true}
	}
	return AxisResult{Depth: maxA - minB, IndexA: idxA, IndexB: idxB}
}

// orientAxis flips axis when b's projected interval lies before a's, so that the
// result points from a toward b and maxA-minB is the smaller of the two overlaps.
func orientAxis(axis vector.Vec2, a, b []vector.Vec2) vector.Vec2 {
	loA, hiA, _, _ := project(a, axis)
	loB, hiB, _, _ := project(b, axis)
	if loA+hiA > loB+hiB {
		return axis.Negate()
	}
	return axis
}

// candidateAxes is the union of both shapes' edge normals with duplicates removed.
func candidateAxes(na, nb []vector.Vec2) []vector.Vec2 {
	normals := append(append(make([]vector.Vec2, 0, len(na)+len(nb)), na...), nb...)
	axes := normals[:0]
	for _, n := range normals {
		duplicate := false
		for _, m := range axes {
			if math32.Abs(n.Dot(m)) >= 1-axisEpsilon {
				duplicate = true
				break
			}
		}
		if !duplicate {
			axes = append(axes, n)
		}
	}
	return axes
}

// DetectCollision runs SAT on the current world vertices of a and b.
// It returns nil when any axis separates them or when either body has no edge
// normal of its own: a single vertex, or vertices that all coincide.
func DetectCollision(a, b *Body) *Contact {
	return detect(a, b, a.WorldVertices(), b.WorldVertices())
}

func detect(a, b *Body, va, vb []vector.Vec2) *Contact {
	na, nb := EdgeNormals(va), EdgeNormals(vb)
	if len(na) == 0 || len(nb) == 0 {
		return nil
	}
	axes := candidateAxes(na, nb)

	best := AxisResult{Depth: math32.Inf(1)}
	var normal vector.Vec2
	for _, axis := range axes {
		axis = orientAxis(axis, va, vb)
		r := TestAxis(axis, va, vb)
		if r.Separated {
			return nil
		}
		if r.Depth < best.Depth {
			best, normal = r, axis
		}
	}

	point := contactPoint(normal, va, vb)
	return &Contact{
		A:                a,
		B:                b,
		Normal:           normal,
		Depth:            best.Depth,
		Point:            point,
		RelativeVelocity: b.PointVelocity(point).Sub(a.PointVelocity(point)).Dot(normal),
	}
}

// snapshot captures every body's world vertices once per scan so that all pairs
// see the same post-integration state.
func snapshot(bodies []*Body) [][]vector.Vec2 {
	out := make([][]vector.Vec2, len(bodies))
	for i, b := range bodies {
		out[i] = b.WorldVertices()
	}
	return out
}

// scanRow tests body i against every later body.
func scanRow(bodies []*Body, verts [][]vector.Vec2, i int) []Contact {
	var row []Contact
	a := bodies[i]
	for j := i + 1; j < len(bodies); j++ {
		b := bodies[j]
		if a.Anchored && b.Anchored {
			continue
		}
		if c := detect(a, b, verts[i], verts[j]); c != nil {
			row = append(row, *c)
		}
	}
	return row
}

// CheckAllCollisions tests every unordered pair (i, j), i < j, and returns the
// contacts in discovery order. Pairs of two anchored bodies are skipped.
// Cost is O(n²) in the number of bodies.
func CheckAllCollisions(bodies []*Body) []Contact {
	verts := snapshot(bodies)
	var contacts []Contact
	for i := range bodies {
		contacts = append(contacts, scanRow(bodies, verts, i)...)
	}
	return contacts
}

// CheckAllCollisionsParallel scans pair rows on up to workers goroutines. The
// result is identical to CheckAllCollisions, in the same order. Bodies are only read.
func CheckAllCollisionsParallel(bodies []*Body, workers int) []Contact {
	if workers <= 1 || len(bodies) < 3 {
		return CheckAllCollisions(bodies)
	}
	verts := snapshot(bodies)
	rows := make([][]Contact, len(bodies))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range bodies {
		i := i
		g.Go(func() error {
			rows[i] = scanRow(bodies, verts, i)
			return nil
		})
	}
	_ = g.Wait()

	var contacts []Contact
	for _, row := range rows {
		contacts = append(contacts, row...)
	}
	return contacts
}
