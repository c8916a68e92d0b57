package graphics

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the window opened by Run.
type Window struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	Background rl.Color
}

// Run opens the window and drives the main loop. Each frame it calls update
// with the frame time in seconds (input and simulation), then clears the screen
// and calls draw. ESC toggles the terminal; the loop ends when the window is
// closed or ctx is cancelled.
func Run(ctx context.Context, w Window, update func(frame float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(w.FPS))

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
}
