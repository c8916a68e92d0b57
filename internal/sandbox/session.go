// Package sandbox runs a physics world on a fixed clock and exposes the
// terminal commands that manipulate it. It has no rendering dependency, so the
// same session drives both the window and the headless simulate command.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"rigid2d/internal/commands"
	"rigid2d/internal/engineconfig"
	"rigid2d/internal/physics"
	"rigid2d/internal/scene"
	"rigid2d/internal/vector"
)

// maxCatchUp bounds the ticks run for one frame; a longer backlog is dropped.
const maxCatchUp = 5

// ErrUnknownBody is returned by commands that name a body not in the world.
var ErrUnknownBody = errors.New("sandbox: no body with that name")

// Session owns the world, the scene it was built from and the fixed-step clock.
// It is driven from a single goroutine.
type Session struct {
	cfg   engineconfig.Config
	log   *zap.Logger
	world *physics.World
	scene *scene.Scene
	reg   *commands.Registry

	colors      map[physics.Handle]color.RGBA
	paused      bool
	accumulator float32
	spawned     int
}

// Stats is a snapshot for the overlay.
type Stats struct {
	Tick     uint64
	Bodies   int
	Resting  int
	Contacts int
	Paused   bool
}

// BodyState is the externally visible state of one body.
type BodyState struct {
	Name     string
	Position vector.Vec2
	Velocity vector.Vec2
	Rotation float32
	Anchored bool
	Resting  bool
}

// New creates a world from cfg, fills it from scn and registers the commands.
func New(cfg engineconfig.Config, scn *scene.Scene, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	world, err := physics.NewWorld(cfg.Physics, physics.WithLogger(log.Named("physics")))
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:   cfg,
		log:   log,
		world: world,
		scene: scn,
		reg:   commands.NewRegistry(),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	s.registerCommands()
	return s, nil
}

// Reset empties the world and rebuilds the scene.
func (s *Session) Reset() error {
	s.world.Clear()
	s.colors = make(map[physics.Handle]color.RGBA)
	s.accumulator = 0
	placed, err := s.scene.Build(s.world)
	if err != nil {
		return fmt.Errorf("build scene %q: %w", s.scene.Name, err)
	}
	for _, p := range placed {
		s.colors[p.Handle] = p.Color
	}
	s.log.Info("scene loaded", zap.String("scene", s.scene.Name), zap.Int("bodies", len(placed)))
	return nil
}

// Advance adds frame seconds to the clock and runs every whole tick that fits,
// up to maxCatchUp. It returns the number of ticks run. Nothing runs while paused.
func (s *Session) Advance(frame float32) int {
	if s.paused {
		return 0
	}
	dt := s.cfg.Sandbox.TickSeconds()
	s.accumulator += frame
	n := 0
	for s.accumulator >= dt && n < maxCatchUp {
		s.Tick()
		s.accumulator -= dt
		n++
	}
	if n == maxCatchUp && s.accumulator >= dt {
		s.log.Debug("dropping tick backlog", zap.Float32("seconds", s.accumulator))
		s.accumulator = 0
	}
	return n
}

// Tick advances the world by one fixed step.
func (s *Session) Tick() {
	s.world.Step(s.cfg.Sandbox.TickSeconds())
}

// Run advances ticks steps of dt seconds, checking ctx between steps.
// A non-positive dt uses the configured tick rate.
func (s *Session) Run(ctx context.Context, ticks int, dt float32) error {
	if dt <= 0 {
		dt = s.cfg.Sandbox.TickSeconds()
	}
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped after %d of %d ticks: %w", i, ticks, err)
		}
		s.world.Step(dt)
	}
	return nil
}

// World returns the simulated world.
func (s *Session) World() *physics.World { return s.world }

// Commands returns the terminal command registry.
func (s *Session) Commands() *commands.Registry { return s.reg }

// Paused reports whether Advance is suspended.
func (s *Session) Paused() bool { return s.paused }

// SetPaused suspends or resumes Advance.
func (s *Session) SetPaused(p bool) {
	s.paused = p
	s.accumulator = 0
}

// Color returns the draw color of the body behind h.
func (s *Session) Color(h physics.Handle) color.RGBA {
	if c, ok := s.colors[h]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// Stats returns counters for the overlay.
func (s *Session) Stats() Stats {
	st := Stats{
		Tick:     s.world.Tick(),
		Bodies:   s.world.Len(),
		Contacts: len(s.world.Contacts()),
		Paused:   s.paused,
	}
	for _, b := range s.world.Bodies() {
		if b.Resting {
			st.Resting++
		}
	}
	return st
}

// Summary returns the state of every body in world order.
func (s *Session) Summary() []BodyState {
	bodies := s.world.Bodies()
	out := make([]BodyState, len(bodies))
	for i, b := range bodies {
		out[i] = BodyState{
			Name:     b.Name,
			Position: b.Position,
			Velocity: b.Velocity,
			Rotation: b.Rotation,
			Anchored: b.Anchored,
			Resting:  b.Resting,
		}
	}
	return out
}

// Spawn adds a body described by spec. Unnamed bodies get a numbered name.
func (s *Session) Spawn(spec scene.BodySpec) (physics.Handle, error) {
	if err := spec.Validate(); err != nil {
		return physics.Handle{}, err
	}
	s.spawned++
	if spec.Name == "" {
		spec.Name = fmt.Sprintf("%s%d", physics.PolygonName(spec.Sides), s.spawned)
	}
	p, err := scene.Add(s.world, spec)
	if err != nil {
		return physics.Handle{}, err
	}
	s.colors[p.Handle] = p.Color
	return p.Handle, nil
}

// Impulse queues impulse on the named body, or on every movable body when name is empty.
// It returns the number of bodies affected.
func (s *Session) Impulse(name string, impulse vector.Vec2) (int, error) {
	if name != "" {
		b, _, ok := s.world.Find(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownBody, name)
		}
		if b.Anchored {
			return 0, nil
		}
		b.AddImpulse(impulse)
		return 1, nil
	}
	n := 0
	for _, b := range s.world.Bodies() {
		if b.Movable() {
			b.AddImpulse(impulse)
			n++
		}
	}
	return n, nil
}

// Clone adds a copy of the named body moved by offset. The copy keeps the
// source's shape, mass, motion and color, and is named after it.
func (s *Session) Clone(name string, offset vector.Vec2) (physics.Handle, error) {
	src, h, ok := s.world.Find(name)
	if !ok {
		return physics.Handle{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	s.spawned++
	copied := src.Clone()
	copied.Name = fmt.Sprintf("%sCopy%d", src.Name, s.spawned)
	copied.Position = copied.Position.Add(offset)
	copied.Resting = false
	ch := s.world.Add(copied)
	s.colors[ch] = s.Color(h)
	return ch, nil
}

// Nearest returns the movable body whose position is closest to p.
func (s *Session) Nearest(p vector.Vec2) (*physics.Body, bool) {
	var best *physics.Body
	bestDist := float32(0)
	for _, b := range s.world.Bodies() {
		if !b.Movable() {
			continue
		}
		if d := b.Position.Distance(p); best == nil || d < bestDist {
			best, bestDist = b, d
		}
	}
	return best, best != nil
}

// Kick queues impulse on the movable body nearest to point, acting at point so
// that an off-centre kick also spins it. It returns the body kicked.
func (s *Session) Kick(point, impulse vector.Vec2) (*physics.Body, bool) {
	b, ok := s.Nearest(point)
	if !ok {
		return nil, false
	}
	b.AddImpulseAt(impulse, point)
	return b, true
}
