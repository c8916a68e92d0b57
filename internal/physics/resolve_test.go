package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigid2d/internal/vector"
)

const tick = float32(1.0 / 60)

func TestMassShares(t *testing.T) {
	a := box(t, 2, 0, 0)
	b := box(t, 2, 0, 0)

	shareA, shareB := massShares(a, b)
	assert.InDelta(t, 0.5, shareA, 1e-6)
	assert.InDelta(t, 0.5, shareB, 1e-6)

	b.Mass = 3
	shareA, shareB = massShares(a, b)
	assert.InDelta(t, 0.75, shareA, 1e-6, "the lighter body moves more")
	assert.InDelta(t, 0.25, shareB, 1e-6)

	a.Anchored = true
	shareA, shareB = massShares(a, b)
	assert.Zero(t, shareA)
	assert.InDelta(t, 1, shareB, 1e-6)

	b.Anchored = true
	shareA, shareB = massShares(a, b)
	assert.InDelta(t, 0.5, shareA, 1e-6)
	assert.InDelta(t, 0.5, shareB, 1e-6)

	weightless := box(t, 2, 0, 0)
	weightless.Mass = 0
	other := box(t, 2, 0, 0)
	other.Mass = 0
	shareA, shareB = massShares(weightless, other)
	assert.InDelta(t, 0.5, shareA, 1e-6)
	assert.InDelta(t, 0.5, shareB, 1e-6)
}

// overlapping returns two 2x2 boxes overlapping by 0.5 along x and their contact.
func overlapping(t *testing.T) (*Body, *Body, Contact) {
	t.Helper()
	a := box(t, 2, 0, 0)
	b := box(t, 2, 1.5, 0)
	c := DetectCollision(a, b)
	require.NotNil(t, c)
	return a, b, *c
}

func TestResolvePositionalCorrection(t *testing.T) {
	cfg := zeroGravity()

	t.Run("equal masses split evenly", func(t *testing.T) {
		a, b, c := overlapping(t)
		Resolve(c, cfg, tick)
		assert.InDelta(t, -0.25, a.Position.X, 1e-5)
		assert.InDelta(t, 1.75, b.Position.X, 1e-5)
		assert.Empty(t, a.PendingImpulses(), "no impulse without approach")
		assert.Empty(t, b.PendingImpulses())
		assert.Nil(t, DetectCollision(a, b))
	})

	t.Run("heavier body moves less", func(t *testing.T) {
		a, b, c := overlapping(t)
		b.Mass = 3
		Resolve(c, cfg, tick)
		assert.InDelta(t, -0.375, a.Position.X, 1e-5)
		assert.InDelta(t, 1.625, b.Position.X, 1e-5)
	})

	t.Run("anchored body stays put", func(t *testing.T) {
		a, b, c := overlapping(t)
		a.Anchored = true
		Resolve(c, cfg, tick)
		assert.Equal(t, vector.Zero, a.Position)
		assert.InDelta(t, 2, b.Position.X, 1e-5)
	})

	t.Run("two anchored bodies stay put", func(t *testing.T) {
		a, b, c := overlapping(t)
		a.Anchored, b.Anchored = true, true
		Resolve(c, cfg, tick)
		assert.Equal(t, vector.Zero, a.Position)
		assert.Equal(t, vector.New(1.5, 0), b.Position)
	})

	t.Run("resting body is corrected without waking", func(t *testing.T) {
		_, b, c := overlapping(t)
		b.Resting = true
		Resolve(c, cfg, tick)
		assert.InDelta(t, 1.75, b.Position.X, 1e-5)
		assert.True(t, b.Resting)
	})

	t.Run("slop leaves a little overlap", func(t *testing.T) {
		a, b, c := overlapping(t)
		slop := cfg
		slop.Slop = 0.1
		Resolve(c, slop, tick)
		assert.InDelta(t, -0.2, a.Position.X, 1e-5)
		assert.InDelta(t, 1.7, b.Position.X, 1e-5)
	})

	t.Run("both bodies are marked supported", func(t *testing.T) {
		a, b, c := overlapping(t)
		Resolve(c, cfg, tick)
		assert.True(t, a.supported)
		assert.True(t, b.supported)
	})
}

func TestResolveImpulse(t *testing.T) {
	tests := []struct {
		name       string
		elasticity float32
		mass       float32
		velocity   float32
		want       float32 // x component of the impulse queued on A
	}{
		{"elastic", 1, 1, 100, -200},
		{"elastic heavy", 1, 2, 100, -400},
		{"half elastic", 0.5, 1, 100, -150},
		{"inelastic", 0, 1, 100, -100},
		{"below restitution threshold", 1, 1, 10, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := zeroGravity()
			cfg.Elasticity = tt.elasticity

			a, b, _ := overlapping(t)
			a.Mass = tt.mass
			a.Velocity = vector.New(tt.velocity, 0)
			b.Anchored = true
			c := DetectCollision(a, b)
			require.NotNil(t, c)

			Resolve(*c, cfg, tick)
			impulses := a.PendingImpulses()
			require.Len(t, impulses, 1)
			assert.InDelta(t, tt.want, impulses[0].Vector.X, 1e-3)
			assert.InDelta(t, 0, impulses[0].Vector.Y, 1e-5)
			assert.Empty(t, b.PendingImpulses(), "anchored bodies take no impulse")
		})
	}
}

func TestResolveNoImpulse(t *testing.T) {
	cfg := zeroGravity()

	t.Run("separating", func(t *testing.T) {
		a, b, _ := overlapping(t)
		a.Velocity = vector.New(-5, 0)
		c := DetectCollision(a, b)
		require.NotNil(t, c)
		Resolve(*c, cfg, tick)
		assert.Empty(t, a.PendingImpulses())
		assert.Empty(t, b.PendingImpulses())
	})

	t.Run("within separation tolerance", func(t *testing.T) {
		a, b, _ := overlapping(t)
		a.Velocity = vector.New(cfg.SeparationTolerance/2, 0)
		c := DetectCollision(a, b)
		require.NotNil(t, c)
		Resolve(*c, cfg, tick)
		assert.Empty(t, a.PendingImpulses())
	})

	t.Run("below impulse floor", func(t *testing.T) {
		a, b, _ := overlapping(t)
		a.Mass = 1e4
		b.Velocity = vector.New(-1, 0)
		c := DetectCollision(a, b)
		require.NotNil(t, c)
		Resolve(*c, cfg, tick)
		assert.Empty(t, a.PendingImpulses(), "the heavy body's share is negligible")
		require.Len(t, b.PendingImpulses(), 1)
		assert.InDelta(t, 1, b.PendingImpulses()[0].Vector.X, 1e-3)
	})
}

func TestResolveGravityCompensation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Elasticity = 0

	setup := func(t *testing.T) (*Body, *Body, Contact) {
		crate := box(t, 2, 0, 0)
		crate.Velocity = vector.New(0, 100)
		floor, err := NewRectangle(10, 2)
		require.NoError(t, err)
		floor.Position = vector.New(0, 1.5)
		floor.Anchored = true
		c := DetectCollision(crate, floor)
		require.NotNil(t, c)
		return crate, floor, *c
	}

	t.Run("first contact cancels gravity for the coming tick", func(t *testing.T) {
		crate, _, c := setup(t)
		Resolve(c, cfg, tick)
		impulses := crate.PendingImpulses()
		require.Len(t, impulses, 1)
		assert.InDelta(t, -100-cfg.Gravity*tick, impulses[0].Vector.Y, 1e-3)
	})

	t.Run("applied once per tick", func(t *testing.T) {
		crate, _, c := setup(t)
		crate.supported = true
		Resolve(c, cfg, tick)
		impulses := crate.PendingImpulses()
		require.Len(t, impulses, 1)
		assert.InDelta(t, -100, impulses[0].Vector.Y, 1e-3)
	})

	t.Run("not applied against gravity", func(t *testing.T) {
		crate, floor, _ := setup(t)
		// Swap roles: the crate is hit from above by a body moving up.
		crate.Velocity = vector.Zero
		crate.Anchored = true
		floor.Anchored = false
		floor.Velocity = vector.New(0, -100)
		c := DetectCollision(crate, floor)
		require.NotNil(t, c)
		Resolve(*c, cfg, tick)
		impulses := floor.PendingImpulses()
		require.Len(t, impulses, 1)
		assert.InDelta(t, 100, impulses[0].Vector.Y, 1e-3)
	})
}

// rotatedAgainstWall returns a 20x20 box turned by 0.3 rad whose lowest right
// corner pokes into an anchored wall, away from the box's line of motion.
func rotatedAgainstWall(t *testing.T) (*Body, *Body) {
	t.Helper()
	crate := box(t, 20, 0, 0)
	crate.Rotation = 0.3
	crate.Velocity = vector.New(100, 0)
	wall, err := NewRectangle(10, 200)
	require.NoError(t, err)
	wall.Position = vector.New(17, 0)
	wall.Anchored = true
	return crate, wall
}

func TestResolveOffCentreImpulse(t *testing.T) {
	cfg := zeroGravity()
	cfg.Elasticity = 1

	crate, wall := rotatedAgainstWall(t)
	c := DetectCollision(crate, wall)
	require.NotNil(t, c)
	require.InDelta(t, 1, c.Normal.X, 1e-4)
	arm := c.Point.Sub(crate.Position).Cross(c.Normal)
	require.Greater(t, math32.Abs(arm), float32(1), "the contact must be off the line of motion")
	assert.InDelta(t, -100, c.RelativeVelocity, 1e-3)

	before := crate.KineticEnergy()
	Resolve(*c, cfg, tick)
	_, _, dv, dw := crate.ResolveForces(cfg)
	crate.Velocity = crate.Velocity.Add(dv)
	crate.AngularVelocity += dw

	assert.NotZero(t, crate.AngularVelocity, "an off-centre hit spins the box")
	assert.InDelta(t, -100, crate.PointVelocity(c.Point).Dot(c.Normal), 1e-2,
		"the contact point leaves as fast as it arrived")
	assert.InDelta(t, before, crate.KineticEnergy(), float64(before*1e-4))
	assert.Less(t, crate.Velocity.Length(), float32(100), "part of the exchange goes into rotation")
}
