package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"rigid2d/internal/physics"
	"rigid2d/internal/vector"
)

var (
	// ErrNoShape is returned for a body with neither sides nor vertices.
	ErrNoShape = errors.New("scene: body needs sides or vertices")
	// ErrAmbiguousShape is returned for a body with both sides and vertices.
	ErrAmbiguousShape = errors.New("scene: body has both sides and vertices")
	// ErrUnknownClone is returned when clone names a body not defined earlier.
	ErrUnknownClone = errors.New("scene: clone of unknown body")
	// ErrBadColor is returned for a color that is not #rrggbb or #rrggbbaa.
	ErrBadColor = errors.New("scene: color must be #rrggbb or #rrggbbaa")
)

var (
	wallColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	bodyColor = color.RGBA{R: 150, G: 30, B: 30, A: 255}
)

// Vec is a point written as [x, y].
type Vec [2]float32

func (v Vec) vec2() vector.Vec2 { return vector.New(v[0], v[1]) }

// BodySpec describes one body. A spec with Clone starts as a copy of the
// earlier body of that name; its own non-empty fields then override the copy.
type BodySpec struct {
	Name     string   `yaml:"name"`
	Clone    string   `yaml:"clone,omitempty"`
	Sides    int      `yaml:"sides,omitempty"`
	Size     float32  `yaml:"size,omitempty"`
	Vertices []Vec    `yaml:"vertices,omitempty"`
	Position Vec      `yaml:"position"`
	Velocity Vec      `yaml:"velocity,omitempty"`
	Rotation float32  `yaml:"rotation,omitempty"`
	Mass     *float32 `yaml:"mass,omitempty"` // default 1; anchored bodies may use 0
	Anchored bool     `yaml:"anchored,omitempty"`
	Color    string   `yaml:"color,omitempty"`
	Impulse  Vec      `yaml:"impulse,omitempty"` // queued once when the body is added
}

// Scene is a named list of bodies.
type Scene struct {
	Name   string     `yaml:"name"`
	Bodies []BodySpec `yaml:"bodies"`
}

// Placed pairs a body added to a world with its draw color.
type Placed struct {
	Handle physics.Handle
	Color  color.RGBA
}

// Parse decodes a YAML scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if _, err := s.Resolve(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return Parse(data)
}

// Marshal encodes s as YAML.
func Marshal(s *Scene) ([]byte, error) {
	return yaml.Marshal(s)
}

// Resolve expands clones and checks every spec, returning self-contained specs
// in scene order.
func (s *Scene) Resolve() ([]BodySpec, error) {
	byName := make(map[string]BodySpec, len(s.Bodies))
	out := make([]BodySpec, 0, len(s.Bodies))
	for i, spec := range s.Bodies {
		if spec.Clone != "" {
			base, ok := byName[spec.Clone]
			if !ok {
				return nil, fmt.Errorf("body %d (%s) clones %q: %w", i, spec.Name, spec.Clone, ErrUnknownClone)
			}
			merged, err := overlay(base, spec)
			if err != nil {
				return nil, fmt.Errorf("body %d (%s): %w", i, spec.Name, err)
			}
			spec = merged
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, spec.Name, err)
		}
		if spec.Name != "" {
			byName[spec.Name] = spec
		}
		out = append(out, spec)
	}
	return out, nil
}

// overlay deep-copies base and applies the non-empty fields of override.
func overlay(base, override BodySpec) (BodySpec, error) {
	var merged BodySpec
	if err := copier.CopyWithOption(&merged, &base, copier.Option{DeepCopy: true}); err != nil {
		return BodySpec{}, err
	}
	if err := copier.CopyWithOption(&merged, &override, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		return BodySpec{}, err
	}
	merged.Clone = ""
	return merged, nil
}

// Validate checks the shape, mass and color of a resolved spec.
func (b BodySpec) Validate() error {
	switch {
	case b.Sides == 0 && len(b.Vertices) == 0:
		return ErrNoShape
	case b.Sides != 0 && len(b.Vertices) != 0:
		return ErrAmbiguousShape
	}
	if _, err := b.color(); err != nil {
		return err
	}
	return nil
}

// Body builds the physics body described by b.
func (b BodySpec) Body() (*physics.Body, error) {
	var (
		body *physics.Body
		err  error
	)
	if len(b.Vertices) > 0 {
		vertices := make([]vector.Vec2, len(b.Vertices))
		for i, v := range b.Vertices {
			vertices[i] = v.vec2()
		}
		body, err = physics.NewBodyFromVertices(vertices...)
	} else {
		body, err = physics.NewRegularPolygon(b.Sides, b.Size)
	}
	if err != nil {
		return nil, err
	}

	if b.Name != "" {
		body.Name = b.Name
	}
	body.Position = b.Position.vec2()
	body.Velocity = b.Velocity.vec2()
	body.Rotation = b.Rotation
	body.Anchored = b.Anchored
	if b.Mass != nil {
		body.Mass = *b.Mass
	}
	if err := physics.ValidateMass(body); err != nil {
		return nil, err
	}
	return body, nil
}

func (b BodySpec) color() (color.RGBA, error) {
	if b.Color == "" {
		if b.Anchored {
			return wallColor, nil
		}
		return bodyColor, nil
	}
	return ParseColor(b.Color)
}

// Add builds one body into w and queues its initial impulse.
func Add(w *physics.World, spec BodySpec) (Placed, error) {
	body, err := spec.Body()
	if err != nil {
		return Placed{}, err
	}
	c, err := spec.color()
	if err != nil {
		return Placed{}, err
	}
	if imp := spec.Impulse.vec2(); !imp.IsZero() {
		body.AddImpulse(imp)
	}
	return Placed{Handle: w.Add(body), Color: c}, nil
}

// Build adds every body of s to w in scene order. On error nothing is added.
func (s *Scene) Build(w *physics.World) ([]Placed, error) {
	specs, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	for i, spec := range specs {
		if _, err := spec.Body(); err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, spec.Name, err)
		}
	}
	placed := make([]Placed, 0, len(specs))
	for _, spec := range specs {
		p, err := Add(w, spec)
		if err != nil {
			return nil, err
		}
		placed = append(placed, p)
	}
	return placed, nil
}

// ParseColor reads "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func mass(m float32) *float32 { return &m }

// Default is the demo scene for a width x height workspace: two pentagons
// launched by impulses inside four anchored walls just outside the edges.
func Default(width, height float32) *Scene {
	halfW, halfH := width/2, height/2
	return &Scene{
		Name: "demo",
		Bodies: []BodySpec{
			{
				Name:     "BodyOne",
				Sides:    5,
				Size:     100,
				Rotation: math.Pi / 2,
				Position: Vec{width * 0.75, halfH},
				Mass:     mass(100),
				Color:    "#961e1e",
				Impulse:  Vec{0, -50000},
			},
			{
				Name:     "BodyTwo",
				Clone:    "BodyOne",
				Position: Vec{width * 0.175, height / 3},
				Mass:     mass(500),
				Color:    "#c86464",
				Impulse:  Vec{250000, -150000},
			},
			{
				Name:     "BottomBoundary",
				Vertices: []Vec{{-halfW, -100}, {halfW, -100}, {halfW, 100}, {-halfW, 100}},
				Position: Vec{halfW, height + 99},
				Mass:     mass(0),
				Anchored: true,
			},
			{
				Name:     "TopBoundary",
				Clone:    "BottomBoundary",
				Position: Vec{halfW, -101},
			},
			{
				Name:     "RightBoundary",
				Vertices: []Vec{{-100, -halfH}, {100, -halfH}, {100, halfH}, {-100, halfH}},
				Position: Vec{width + 99, halfH},
				Mass:     mass(0),
				Anchored: true,
			},
			{
				Name:     "LeftBoundary",
				Clone:    "RightBoundary",
				Position: Vec{-100, halfH},
			},
		},
	}
}
