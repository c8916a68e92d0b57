package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rigid2d/internal/sandbox"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime overlays (FPS, simulation stats). All overlays are off by default.
type Debug struct {
	ShowFPS   bool
	ShowStats bool

	frameCount  uint32
	lastFpsText string
	lastStats   []string
	memStats    runtime.MemStats
}

// New returns a Debug system with the given overlays enabled.
func New(showFPS, showStats bool) *Debug {
	return &Debug{ShowFPS: showFPS, ShowStats: showStats}
}

// Toggle flips both overlays; bound to F3.
func (d *Debug) Toggle() {
	on := !(d.ShowFPS || d.ShowStats)
	d.ShowFPS, d.ShowStats = on, on
}

// Draw renders the enabled overlays in the top-right corner. Text is only
// recomputed every updateInterval frames.
func (d *Debug) Draw(stats sandbox.Stats) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 || d.lastFpsText == ""

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	draw := func(text string, c rl.Color) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, c)
		y += lineHeight
	}

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		draw(d.lastFpsText, rl.Green)
	}

	if d.ShowStats {
		if update || d.lastStats == nil {
			runtime.ReadMemStats(&d.memStats)
			d.lastStats = []string{
				fmt.Sprintf("Tick: %d", stats.Tick),
				fmt.Sprintf("Bodies: %d (%d resting)", stats.Bodies, stats.Resting),
				fmt.Sprintf("Contacts: %d", stats.Contacts),
				fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)),
			}
		}
		for _, line := range d.lastStats {
			draw(line, rl.Green)
		}
	}

	if stats.Paused {
		draw("PAUSED", rl.Yellow)
	}
}
