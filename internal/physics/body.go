package physics

import (
	"github.com/jinzhu/copier"

	"rigid2d/internal/vector"
)

// PhysicsBody is what the physics core needs from a scene object. Any shape kind
// can implement it; *Body does.
type PhysicsBody interface {
	WorldVertices() []vector.Vec2
	GetVelocity() vector.Vec2
	GetMass() float32
	IsAnchored() bool
	SetPosition(vector.Vec2)
	SetVelocity(vector.Vec2)
	SetRotation(float32)
	SetAngularVelocity(float32)
}

var _ PhysicsBody = (*Body)(nil)

// Force is a force or impulse vector together with where it acts, as an offset
// from the body position at the time it was added.
type Force struct {
	Vector vector.Vec2
	Offset vector.Vec2
}

// Body is a 2D rigid body with a convex shape in local space.
// Anchored bodies never move. Resting bodies are skipped by integration until
// a new force or impulse wakes them; positional correction still applies to them.
type Body struct {
	Name string

	Position     vector.Vec2
	Velocity     vector.Vec2
	Acceleration vector.Vec2

	Rotation            float32 // radians
	AngularVelocity     float32
	AngularAcceleration float32

	Mass     float32
	Anchored bool
	Resting  bool

	shape    Shape
	forces   []Force
	impulses []Force
	// supported is set when the body took part in a contact during the last resolve pass.
	supported bool
}

// newBody returns a body owning a copy of the vertices, with mass 1 and zero state.
func newBody(vertices []vector.Vec2) *Body {
	shape := Shape{Vertices: vertices}.clone()
	return &Body{
		Name:  PolygonName(len(vertices)),
		Mass:  1,
		shape: shape,
	}
}

// Kind returns the shape kind of the body.
func (b *Body) Kind() Kind {
	return b.shape.Kind()
}

// LocalVertices returns a copy of the shape vertices in body-local space.
func (b *Body) LocalVertices() []vector.Vec2 {
	return b.shape.clone().Vertices
}

// SetVertices replaces the local shape.
func (b *Body) SetVertices(vertices []vector.Vec2) {
	b.shape = Shape{Vertices: vertices}.clone()
}

// WorldVertices returns the local vertices rotated by Rotation and translated by Position.
func (b *Body) WorldVertices() []vector.Vec2 {
	out := make([]vector.Vec2, len(b.shape.Vertices))
	for i, v := range b.shape.Vertices {
		out[i] = v.Rotate(b.Rotation).Add(b.Position)
	}
	return out
}

// Centroid returns the mean of the world vertices.
func (b *Body) Centroid() vector.Vec2 {
	return vector.Centroid(b.WorldVertices())
}

func (b *Body) GetVelocity() vector.Vec2 { return b.Velocity }
func (b *Body) GetMass() float32         { return b.Mass }
func (b *Body) IsAnchored() bool         { return b.Anchored }

func (b *Body) SetPosition(p vector.Vec2) { b.Position = p }
func (b *Body) SetRotation(r float32)     { b.Rotation = r }

// SetVelocity sets the linear velocity. A non-zero velocity wakes a resting body.
func (b *Body) SetVelocity(v vector.Vec2) {
	b.Velocity = v
	if !v.IsZero() {
		b.Resting = false
	}
}

// SetAngularVelocity sets the angular velocity. A non-zero value wakes a resting body.
func (b *Body) SetAngularVelocity(w float32) {
	b.AngularVelocity = w
	if w != 0 {
		b.Resting = false
	}
}

// Movable reports whether integration and collision response may change the body.
func (b *Body) Movable() bool {
	return !b.Anchored
}

// inverseMass is 0 for anchored bodies and for bodies without positive mass.
func (b *Body) inverseMass() float32 {
	if b.Anchored || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// momentOfInertia falls back to the mass when the shape has no rotational extent,
// so torque on a dot still yields a finite angular acceleration.
func (b *Body) momentOfInertia() float32 {
	if i := b.shape.inertia(b.Mass); i > 0 {
		return i
	}
	return b.Mass
}

// inverseInertia is 0 whenever inverseMass is.
func (b *Body) inverseInertia() float32 {
	if b.inverseMass() == 0 {
		return 0
	}
	return 1 / b.momentOfInertia()
}

// PointVelocity returns the velocity of the world point p carried by the body:
// v + ω×r with r = p - Position.
func (b *Body) PointVelocity(p vector.Vec2) vector.Vec2 {
	return b.Velocity.Add(p.Sub(b.Position).Perpendicular().Scale(b.AngularVelocity))
}

// KineticEnergy is the linear plus rotational kinetic energy; 0 for anchored bodies.
func (b *Body) KineticEnergy() float32 {
	if b.Anchored {
		return 0
	}
	w := b.AngularVelocity
	return 0.5*b.Mass*b.Velocity.LengthSquared() + 0.5*b.momentOfInertia()*w*w
}

// Clone returns a deep copy of the body: shape, state and pending forces and impulses.
func (b *Body) Clone() *Body {
	clone := &Body{}
	if err := copier.CopyWithOption(clone, b, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for *Body -> *Body.
		panic(err)
	}
	clone.shape = b.shape.clone()
	clone.forces = append([]Force(nil), b.forces...)
	clone.impulses = append([]Force(nil), b.impulses...)
	clone.supported = false
	return clone
}
