package physics

import (
	"fmt"

	"go.uber.org/zap"
)

// Handle refers to a body in a World. The generation changes whenever a slot is
// reused, so a handle to a removed body never aliases a newer one. The zero
// Handle is never valid.
type Handle struct {
	Index      uint32
	Generation uint32
}

type slot struct {
	body       *Body
	generation uint32
}

// World owns the active bodies and runs the per-tick update on them.
// It is not safe for concurrent use.
type World struct {
	cfg Config
	log *zap.Logger

	slots []slot
	free  []uint32

	contacts []Contact
	tick     uint64
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for per-tick diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWorld returns an empty world using cfg for its whole lifetime.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	w := &World{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Config returns the constants the world was created with.
func (w *World) Config() Config {
	return w.cfg
}

// Add puts b into the world and returns its handle. Order of addition is the
// order in which bodies are integrated and paired.
func (w *World) Add(b *Body) Handle {
	if b == nil {
		return Handle{}
	}
	if len(EdgeNormals(b.shape.Vertices)) == 0 {
		w.log.Warn("body has no edges and will never collide",
			zap.String("body", b.Name),
			zap.Int("vertices", len(b.shape.Vertices)))
	}
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		s := &w.slots[idx]
		s.generation++
		s.body = b
		return Handle{Index: idx, Generation: s.generation}
	}
	w.slots = append(w.slots, slot{body: b, generation: 1})
	return Handle{Index: uint32(len(w.slots) - 1), Generation: 1}
}

// Remove deletes the body behind h.
func (w *World) Remove(h Handle) error {
	if _, ok := w.Body(h); !ok {
		return fmt.Errorf("remove %v: %w", h, ErrStaleHandle)
	}
	w.slots[h.Index].body = nil
	w.free = append(w.free, h.Index)
	return nil
}

// Body returns the body behind h, if it is still alive.
func (w *World) Body(h Handle) (*Body, bool) {
	if int(h.Index) >= len(w.slots) {
		return nil, false
	}
	s := w.slots[h.Index]
	if s.body == nil || s.generation != h.Generation {
		return nil, false
	}
	return s.body, true
}

// Find returns the first body with the given name.
func (w *World) Find(name string) (*Body, Handle, bool) {
	for i, s := range w.slots {
		if s.body != nil && s.body.Name == name {
			return s.body, Handle{Index: uint32(i), Generation: s.generation}, true
		}
	}
	return nil, Handle{}, false
}

// Handles returns the handles of all live bodies in slot order.
func (w *World) Handles() []Handle {
	out := make([]Handle, 0, len(w.slots))
	for i, s := range w.slots {
		if s.body != nil {
			out = append(out, Handle{Index: uint32(i), Generation: s.generation})
		}
	}
	return out
}

// Bodies returns all live bodies in slot order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.slots))
	for _, s := range w.slots {
		if s.body != nil {
			out = append(out, s.body)
		}
	}
	return out
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.slots) - len(w.free)
}

// Clear removes every body. Outstanding handles become stale.
func (w *World) Clear() {
	for i := range w.slots {
		if w.slots[i].body != nil {
			w.slots[i].body = nil
			w.free = append(w.free, uint32(i))
		}
	}
	w.contacts = nil
}

// Contacts returns the contacts resolved during the last Step.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// Tick returns how many steps have run.
func (w *World) Tick() uint64 {
	return w.tick
}

// Step advances every body by dt; see the package-level Step.
func (w *World) Step(dt float32) {
	bodies := w.Bodies()
	wasResting := make([]bool, len(bodies))
	for i, b := range bodies {
		wasResting[i] = b.Resting
	}

	w.contacts = Step(bodies, w.cfg, dt)
	w.tick++

	if ce := w.log.Check(zap.DebugLevel, "physics step"); ce != nil {
		ce.Write(
			zap.Uint64("tick", w.tick),
			zap.Int("bodies", len(bodies)),
			zap.Int("contacts", len(w.contacts)))
	}
	for i, b := range bodies {
		if b.Resting && !wasResting[i] {
			w.log.Debug("body came to rest",
				zap.String("body", b.Name),
				zap.Float32("x", b.Position.X),
				zap.Float32("y", b.Position.Y))
		}
	}
}
