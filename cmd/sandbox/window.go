package main

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"rigid2d/internal/cli"
	"rigid2d/internal/debug"
	"rigid2d/internal/graphics"
	"rigid2d/internal/physics"
	"rigid2d/internal/render"
	"rigid2d/internal/terminal"
	"rigid2d/internal/vector"
)

var background = rl.NewColor(18, 18, 24, 255)

// kick is the impulse a left click gives the nearest movable body.
var kick = vector.New(0, -400)

// runWindow drives the session from the raylib loop. While the terminal is
// open it owns the keyboard and mouse; the simulation keeps running underneath.
func runWindow(ctx context.Context, app *cli.Env) error {
	s := app.Session
	term := terminal.New(app.Log, s.Commands())
	dbg := debug.New(app.Config.Sandbox.ShowFPS, app.Config.Sandbox.ShowStats)
	opts := render.Options{Outlines: true}

	update := func(frame float32) {
		term.Update()
		if !term.IsOpen() {
			switch {
			case rl.IsKeyPressed(rl.KeyF3):
				dbg.Toggle()
			case rl.IsKeyPressed(rl.KeyF4):
				opts.Contacts = !opts.Contacts
			case rl.IsKeyPressed(rl.KeySpace):
				s.SetPaused(!s.Paused())
			case rl.IsKeyPressed(rl.KeyR):
				if err := s.Reset(); err != nil {
					app.Log.Error("reset failed", zap.Error(err))
				}
			case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
				m := rl.GetMousePosition()
				if b, ok := s.Kick(vector.New(m.X, m.Y), kick); ok {
					app.Log.Debug("kicked", zap.String("body", b.Name))
				}
			}
		}
		s.Advance(frame)
	}
	color := func(h physics.Handle) rl.Color {
		c := s.Color(h)
		return rl.NewColor(c.R, c.G, c.B, c.A)
	}
	draw := func() {
		render.World(s.World(), color, opts)
		dbg.Draw(s.Stats())
		term.Draw()
	}

	app.Log.Info("window open", zap.Int("width", app.Config.Sandbox.Width), zap.Int("height", app.Config.Sandbox.Height))
	graphics.Run(ctx, graphics.Window{
		Title:      "rigid2d sandbox",
		Width:      app.Config.Sandbox.Width,
		Height:     app.Config.Sandbox.Height,
		FPS:        app.Config.Sandbox.FPS,
		Background: background,
	}, update, draw)
	return nil
}
