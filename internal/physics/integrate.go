package physics

import (
	"github.com/chewxy/math32"
)

// Integrate advances the body by dt with velocity Verlet. Anchored and resting
// bodies are left untouched.
//
//	position' = position + velocity·dt + acceleration·dt²/2
//	rotation' = rotation + ω·dt + α·dt²/2
//	velocity' = velocity·(1-drag) + (acceleration + acceleration')·dt/2 + Δv(impulses)
//	ω'        = ω + (α + α')·dt/2 + Δω(impulses)
//
// A body that touched another body during the previous tick and whose speeds are
// within the sleep thresholds is marked resting afterwards.
func (b *Body) Integrate(dt float32, cfg Config) {
	if b.Anchored || b.Resting {
		return
	}
	half := dt * 0.5

	position := b.Position.Add(b.Velocity.Scale(dt)).Add(b.Acceleration.Scale(dt * half))
	rotation := b.Rotation + b.AngularVelocity*dt + b.AngularAcceleration*dt*half

	accel, angularAccel, impulseAccel, impulseAngularAccel := b.ResolveForces(cfg)

	velocity := b.Velocity.Scale(1 - cfg.Drag).
		Add(b.Acceleration.Add(accel).Scale(half)).
		Add(impulseAccel)
	angularVelocity := b.AngularVelocity + (b.AngularAcceleration+angularAccel)*half + impulseAngularAccel

	b.Position, b.Velocity, b.Acceleration = position, velocity, accel
	b.Rotation, b.AngularVelocity, b.AngularAcceleration = rotation, angularVelocity, angularAccel

	if b.supported &&
		b.Velocity.Length() <= cfg.VelocitySleepThreshold &&
		math32.Abs(b.AngularVelocity) <= cfg.AngularSleepThreshold {
		b.Resting = true
	}
}
