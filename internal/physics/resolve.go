package physics

import (
	"rigid2d/internal/vector"
)

// massShares splits a correction between two bodies by inverse mass, so the
// heavier body moves less and anchored bodies not at all. When neither body has
// an inverse mass the split is even.
func massShares(a, b *Body) (shareA, shareB float32) {
	invA, invB := a.inverseMass(), b.inverseMass()
	total := invA + invB
	if total == 0 {
		return 0.5, 0.5
	}
	return invA / total, invB / total
}

// Resolve applies one contact: a velocity impulse queued on each movable body
// (consumed by its next Integrate) and a positional correction that removes the
// penetration. dt is the tick length, used to cancel the gravity a supported body
// would otherwise gain into the contact before its next collision test.
//
// The impulse magnitude accounts for rotation at the contact point:
//
//	j = -(1+e)·vn / (1/mA + 1/mB + (rA×n)²/IA + (rB×n)²/IB)
//
// so an off-centre hit splits the exchange between linear and angular velocity
// without adding energy.
func Resolve(c Contact, cfg Config, dt float32) {
	shareA, shareB := massShares(c.A, c.B)

	if vn := c.RelativeVelocity; vn <= -cfg.SeparationTolerance {
		e := cfg.Elasticity
		if -vn < cfg.RestitutionThreshold {
			e = 0
		}
		if k := effectiveMass(c); k > 0 {
			j := -(1 + e) * vn / k
			applyImpulse(c.A, c.Normal.Scale(-j), c.Normal, c.Point, cfg, dt)
			applyImpulse(c.B, c.Normal.Scale(j), c.Normal.Negate(), c.Point, cfg, dt)
		}
	}

	if depth := c.Depth - cfg.Slop; depth > 0 {
		mtv := c.Normal.Scale(depth)
		if !c.A.Anchored {
			c.A.Position = c.A.Position.Sub(mtv.Scale(shareA))
		}
		if !c.B.Anchored {
			c.B.Position = c.B.Position.Add(mtv.Scale(shareB))
		}
	}

	c.A.supported = true
	c.B.supported = true
}

// effectiveMass is the inverse-mass sum along the contact normal, including
// the rotational terms of both bodies. It is 0 when neither body can move.
func effectiveMass(c Contact) float32 {
	k := c.A.inverseMass() + c.B.inverseMass()
	if ra := c.Point.Sub(c.A.Position).Cross(c.Normal); ra != 0 {
		k += ra * ra * c.A.inverseInertia()
	}
	if rb := c.Point.Sub(c.B.Position).Cross(c.Normal); rb != 0 {
		k += rb * rb * c.B.inverseInertia()
	}
	return k
}

// applyImpulse queues impulse on b at point. into is the unit direction in
// which b presses against the other body.
func applyImpulse(b *Body, impulse, into vector.Vec2, point vector.Vec2, cfg Config, dt float32) {
	if b.Anchored {
		return
	}
	dv := impulse.Scale(b.inverseMass())
	if !b.supported {
		if g := cfg.GravityVector().Dot(into); g > 0 {
			dv = dv.Sub(into.Scale(g * dt))
		}
	}
	if dv.Length() < cfg.ImpulseFloor {
		return
	}
	b.AddImpulseAt(dv.Scale(b.Mass), point)
}
