package physics

import (
	"fmt"

	"github.com/chewxy/math32"

	"rigid2d/internal/vector"
)

// Config holds the simulation constants. It is fixed when a World is created and
// passed by value, so no body or step can change it mid-simulation.
// Units are pixels and seconds; +Y points down.
type Config struct {
	// Gravity is the downward acceleration added to every movable body each tick.
	Gravity float32 `mapstructure:"gravity" yaml:"gravity"`
	// Drag is the fraction of linear velocity lost per tick, in [0, 1].
	Drag float32 `mapstructure:"drag" yaml:"drag"`
	// Elasticity is the coefficient of restitution: 0 fully inelastic, 1 perfectly elastic.
	Elasticity float32 `mapstructure:"elasticity" yaml:"elasticity"`
	// VelocitySleepThreshold and AngularSleepThreshold are the speeds at or below
	// which a supported body is marked resting.
	VelocitySleepThreshold float32 `mapstructure:"velocity_sleep_threshold" yaml:"velocity_sleep_threshold"`
	AngularSleepThreshold  float32 `mapstructure:"angular_sleep_threshold" yaml:"angular_sleep_threshold"`
	// Slop is the penetration depth left uncorrected by positional correction.
	Slop float32 `mapstructure:"slop" yaml:"slop"`
	// ImpulseFloor drops impulses whose velocity change is smaller than this.
	ImpulseFloor float32 `mapstructure:"impulse_floor" yaml:"impulse_floor"`
	// RestitutionThreshold is the approach speed below which collisions are inelastic.
	RestitutionThreshold float32 `mapstructure:"restitution_threshold" yaml:"restitution_threshold"`
	// SeparationTolerance is the approach speed a contact needs before it receives an impulse.
	SeparationTolerance float32 `mapstructure:"separation_tolerance" yaml:"separation_tolerance"`
	// Workers > 1 scans body pairs concurrently. Resolution is always serial.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// DefaultConfig returns constants tuned for a pixel-space sandbox at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Gravity:                500,
		Drag:                   0.01,
		Elasticity:             0.5,
		VelocitySleepThreshold: 2,
		AngularSleepThreshold:  0.05,
		Slop:                   0,
		ImpulseFloor:           0.05,
		RestitutionThreshold:   20,
		SeparationTolerance:    0.5,
		Workers:                0,
	}
}

// GravityVector returns gravity as an acceleration vector.
func (c Config) GravityVector() vector.Vec2 {
	return vector.New(0, c.Gravity)
}

// Validate reports the first constant outside its allowed range.
func (c Config) Validate() error {
	if !finite(c.Gravity) {
		return fmt.Errorf("%w: gravity must be finite, got %v", ErrInvalidConfig, c.Gravity)
	}
	if !within01(c.Drag) {
		return fmt.Errorf("%w: drag must be within [0, 1], got %v", ErrInvalidConfig, c.Drag)
	}
	if !within01(c.Elasticity) {
		return fmt.Errorf("%w: elasticity must be within [0, 1], got %v", ErrInvalidConfig, c.Elasticity)
	}
	nonNegative := []struct {
		name  string
		value float32
	}{
		{"velocity_sleep_threshold", c.VelocitySleepThreshold},
		{"angular_sleep_threshold", c.AngularSleepThreshold},
		{"slop", c.Slop},
		{"impulse_floor", c.ImpulseFloor},
		{"restitution_threshold", c.RestitutionThreshold},
		{"separation_tolerance", c.SeparationTolerance},
	}
	for _, f := range nonNegative {
		if !finite(f.value) || f.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func within01(f float32) bool {
	return finite(f) && f >= 0 && f <= 1
}
