package sandbox

import (
	"go.uber.org/zap"

	"rigid2d/internal/commands"
	"rigid2d/internal/scene"
	"rigid2d/internal/vector"
)

func (s *Session) registerCommands() {
	spawn := commands.NewFlagSet("spawn")
	sides := spawn.Int("sides", 4, "number of sides (1 = dot, 2 = line)")
	size := spawn.Float64("size", 60, "circumscribed diameter in pixels")
	x := spawn.Float64("x", float64(s.cfg.Sandbox.Width)/2, "x position")
	y := spawn.Float64("y", 100, "y position")
	mass := spawn.Float64("mass", 1, "mass")
	anchored := spawn.Bool("anchored", false, "never moves")
	s.reg.Register("spawn", "-sides 5 -size 60 -x 300 -y 100 -mass 1 [-anchored]", spawn, func() error {
		m := float32(*mass)
		h, err := s.Spawn(scene.BodySpec{
			Sides:    *sides,
			Size:     float32(*size),
			Position: scene.Vec{float32(*x), float32(*y)},
			Mass:     &m,
			Anchored: *anchored,
		})
		if err != nil {
			return err
		}
		b, _ := s.world.Body(h)
		s.log.Info("spawned", zap.String("body", b.Name))
		return nil
	})

	impulse := commands.NewFlagSet("impulse")
	ix := impulse.Float64("x", 0, "impulse x")
	iy := impulse.Float64("y", -500, "impulse y (negative is up)")
	target := impulse.String("body", "", "body name; empty = every movable body")
	s.reg.Register("impulse", "-x 0 -y -500 [-body name]", impulse, func() error {
		n, err := s.Impulse(*target, vector.New(float32(*ix), float32(*iy)))
		if err != nil {
			return err
		}
		s.log.Info("impulse queued", zap.Int("bodies", n))
		return nil
	})

	clone := commands.NewFlagSet("clone")
	source := clone.String("body", "", "body to copy")
	dx := clone.Float64("dx", 0, "x offset of the copy")
	dy := clone.Float64("dy", -80, "y offset of the copy (negative is up)")
	s.reg.Register("clone", "-body name [-dx 0 -dy -80]", clone, func() error {
		h, err := s.Clone(*source, vector.New(float32(*dx), float32(*dy)))
		if err != nil {
			return err
		}
		b, _ := s.world.Body(h)
		s.log.Info("cloned", zap.String("from", *source), zap.String("body", b.Name))
		return nil
	})

	kick := commands.NewFlagSet("kick")
	kx := kick.Float64("x", 0, "world x of the kick")
	ky := kick.Float64("y", 0, "world y of the kick")
	kix := kick.Float64("ix", 0, "impulse x")
	kiy := kick.Float64("iy", -500, "impulse y (negative is up)")
	s.reg.Register("kick", "-x 300 -y 200 [-ix 0 -iy -500]", kick, func() error {
		b, ok := s.Kick(vector.New(float32(*kx), float32(*ky)), vector.New(float32(*kix), float32(*kiy)))
		if !ok {
			s.log.Info("nothing to kick")
			return nil
		}
		s.log.Info("kicked", zap.String("body", b.Name))
		return nil
	})

	s.reg.Register("pause", "toggle the simulation clock", nil, func() error {
		s.SetPaused(!s.paused)
		s.log.Info("paused", zap.Bool("paused", s.paused))
		return nil
	})

	s.reg.Register("step", "pause and advance exactly one tick", nil, func() error {
		s.SetPaused(true)
		s.Tick()
		s.log.Info("stepped", zap.Uint64("tick", s.world.Tick()))
		return nil
	})

	s.reg.Register("reset", "rebuild the scene", nil, s.Reset)

	s.reg.Register("help", "list commands", nil, func() error {
		for _, line := range s.reg.Help() {
			s.log.Info("cmd " + line)
		}
		return nil
	})
}
