package physics

import "errors"

var (
	// ErrInvalidSides is returned by the polygon factory for fewer than one side.
	ErrInvalidSides = errors.New("physics: polygon needs at least one side")
	// ErrInvalidSize is returned for a non-positive or non-finite shape size.
	ErrInvalidSize = errors.New("physics: shape size must be positive")
	// ErrNoVertices is returned when a body is built from an empty vertex list.
	ErrNoVertices = errors.New("physics: body needs at least one vertex")
	// ErrInvalidMass is returned for a movable body without positive mass.
	ErrInvalidMass = errors.New("physics: movable body needs a positive mass")
	// ErrStaleHandle is returned when a handle no longer refers to a live body.
	ErrStaleHandle = errors.New("physics: stale body handle")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("physics: invalid config")
)
