package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"rigid2d/internal/physics"
	"rigid2d/internal/vector"
)

const (
	dotRadius     = 3
	lineThickness = 2
	contactRadius = 3
	normalLength  = 20
)

var (
	outlineColor = rl.NewColor(20, 20, 20, 255)
	contactColor = rl.NewColor(255, 220, 0, 255)
)

// Options selects optional debug drawing.
type Options struct {
	Outlines bool
	Contacts bool
}

// Colorer returns the fill color for a body handle.
type Colorer func(physics.Handle) rl.Color

// World draws every body in w, then the last tick's contacts when enabled.
func World(w *physics.World, color Colorer, opts Options) {
	for _, h := range w.Handles() {
		b, _ := w.Body(h)
		Body(b, color(h), opts.Outlines)
	}
	if opts.Contacts {
		Contacts(w.Contacts())
	}
}

// Body draws b by kind: a dot as a small circle, a line as a thick segment and
// a polygon as a filled triangle fan.
func Body(b *physics.Body, fill rl.Color, outline bool) {
	verts := b.WorldVertices()
	switch b.Kind() {
	case physics.KindDot:
		if len(verts) == 1 {
			rl.DrawCircleV(toRL(verts[0]), dotRadius, fill)
		}
	case physics.KindLine:
		rl.DrawLineEx(toRL(verts[0]), toRL(verts[1]), lineThickness, fill)
	default:
		points := fan(verts)
		rl.DrawTriangleFan(points, fill)
		if outline {
			for i := range points {
				rl.DrawLineV(points[i], points[(i+1)%len(points)], outlineColor)
			}
		}
	}
}

// Contacts marks each contact point and its normal.
func Contacts(contacts []physics.Contact) {
	for _, c := range contacts {
		p := toRL(c.Point)
		rl.DrawCircleV(p, contactRadius, contactColor)
		rl.DrawLineV(p, toRL(c.Point.Add(c.Normal.Scale(normalLength))), contactColor)
	}
}

// fan orders the vertices counter-clockwise on screen, as DrawTriangleFan
// requires; with +Y down that is a negative signed area.
func fan(verts []vector.Vec2) []rl.Vector2 {
	var area float32
	for i := range verts {
		area += verts[i].Cross(verts[(i+1)%len(verts)])
	}
	out := make([]rl.Vector2, len(verts))
	for i, v := range verts {
		if area > 0 {
			v = verts[len(verts)-1-i]
		}
		out[i] = toRL(v)
	}
	return out
}

func toRL(v vector.Vec2) rl.Vector2 {
	return rl.NewVector2(v.X, v.Y)
}
