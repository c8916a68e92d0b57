package physics

import (
	"rigid2d/internal/vector"
)

// AddForce queues a continuous force acting at the body position. Forces apply
// every tick until ClearForces is called. Adding a force wakes a resting body.
func (b *Body) AddForce(force vector.Vec2) {
	b.forces = append(b.forces, Force{Vector: force})
	b.Resting = false
}

// AddForceAt queues a continuous force acting at a world-space origin; the
// offset from the body position produces torque.
func (b *Body) AddForceAt(force, origin vector.Vec2) {
	b.forces = append(b.forces, Force{Vector: force, Offset: origin.Sub(b.Position)})
	b.Resting = false
}

// AddImpulse queues a one-tick impulse at the body position. It is consumed by
// the next Integrate. Adding an impulse wakes a resting body.
func (b *Body) AddImpulse(impulse vector.Vec2) {
	b.impulses = append(b.impulses, Force{Vector: impulse})
	b.Resting = false
}

// AddImpulseAt queues a one-tick impulse acting at a world-space origin.
func (b *Body) AddImpulseAt(impulse, origin vector.Vec2) {
	b.impulses = append(b.impulses, Force{Vector: impulse, Offset: origin.Sub(b.Position)})
	b.Resting = false
}

// ClearForces removes every continuous force.
func (b *Body) ClearForces() {
	b.forces = nil
}

// PendingForces returns a copy of the queued continuous forces.
func (b *Body) PendingForces() []Force {
	return append([]Force(nil), b.forces...)
}

// PendingImpulses returns a copy of the impulses waiting for the next Integrate.
func (b *Body) PendingImpulses() []Force {
	return append([]Force(nil), b.impulses...)
}

// ResolveForces sums the queued forces and impulses.
//
// accel is Σforce/mass plus gravity; angularAccel is Σ(offset × force) divided by
// the moment of inertia, where offset × force equals sin(angle)·|force|·|offset|.
// impulseAccel and impulseAngularAccel are the velocity changes from the queued
// impulses (Σimpulse/mass and the matching angular term). The impulse queue is
// emptied; continuous forces are kept.
func (b *Body) ResolveForces(cfg Config) (accel vector.Vec2, angularAccel float32, impulseAccel vector.Vec2, impulseAngularAccel float32) {
	invMass, invInertia := b.inverseMass(), b.inverseInertia()

	var sum vector.Vec2
	var torque float32
	for _, f := range b.forces {
		sum = sum.Add(f.Vector)
		if !f.Offset.IsZero() {
			torque += f.Offset.Cross(f.Vector)
		}
	}
	accel = sum.Scale(invMass).Add(cfg.GravityVector())
	angularAccel = torque * invInertia

	var impulse vector.Vec2
	var angularImpulse float32
	for _, i := range b.impulses {
		impulse = impulse.Add(i.Vector)
		if !i.Offset.IsZero() {
			angularImpulse += i.Offset.Cross(i.Vector)
		}
	}
	b.impulses = nil
	impulseAccel = impulse.Scale(invMass)
	impulseAngularAccel = angularImpulse * invInertia
	return accel, angularAccel, impulseAccel, impulseAngularAccel
}
