package scenes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/levels"
	"github.com/milk9111/rigid2d/physics"
)

var (
	ErrUnknownBodyType   = errors.New("scenes: unknown body type")
	ErrUnknownShape      = errors.New("scenes: unknown collider shape")
	ErrUnknownIntegrator = errors.New("scenes: unknown integrator")
	ErrInvalidCollider   = errors.New("scenes: invalid collider")
)

// DefaultTimestep is used when a scene leaves timestep unset.
const DefaultTimestep = 1.0 / 60.0

func ParseBodyType(s string) (physics.BodyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "":
		return physics.Static, nil
	case "kinematic":
		return physics.Kinematic, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownBodyType, s)
}

func ParseCollider(spec ColliderSpec) (physics.ColliderSpec, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Shape)) {
	case "circle":
		if spec.Radius <= 0 {
			return physics.ColliderSpec{}, fmt.Errorf("%w: circle radius %v", ErrInvalidCollider, spec.Radius)
		}
		return physics.CircleCollider(spec.Radius), nil
	case "rectangle", "rect", "box":
		if spec.Width <= 0 || spec.Height <= 0 {
			return physics.ColliderSpec{}, fmt.Errorf("%w: rectangle size %vx%v", ErrInvalidCollider, spec.Width, spec.Height)
		}
		return physics.RectangleCollider(spec.Width, spec.Height), nil
	case "tile":
		return physics.TileCollider(), nil
	}
	return physics.ColliderSpec{}, fmt.Errorf("%w %q", ErrUnknownShape, spec.Shape)
}

func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// Settings maps the world section onto physics settings. Zero fields fall
// back to the physics defaults.
func (w WorldSpec) Settings() physics.Settings {
	return physics.Settings{
		TileSize:   cp.Vector{X: w.TileSize, Y: w.TileSize},
		Slop:       w.Slop,
		Relaxation: w.Relaxation,
	}
}

func (w WorldSpec) Integrator() (physics.IntegrationStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(w.IntegratorName)) {
	case "", "kinematic":
		return physics.IntegrateKinematicMotion, nil
	case "sliding":
		return physics.IntegrateSlidingMotion, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownIntegrator, w.IntegratorName)
}

func (w WorldSpec) Step() float64 {
	if w.Timestep <= 0 {
		return DefaultTimestep
	}
	return w.Timestep
}

// BodyDef converts a body spec, rejecting tile colliders on kinematic bodies
// before they reach the world.
func (b BodySpec) BodyDef() (physics.BodyDef, error) {
	bt, err := ParseBodyType(b.Type)
	if err != nil {
		return physics.BodyDef{}, fmt.Errorf("scenes: body %q: %w", b.Name, err)
	}
	col, err := ParseCollider(b.Collider)
	if err != nil {
		return physics.BodyDef{}, fmt.Errorf("scenes: body %q: %w", b.Name, err)
	}
	if bt == physics.Kinematic && col.Type == physics.ColliderTile {
		return physics.BodyDef{}, fmt.Errorf("scenes: body %q: %w: tile on kinematic body", b.Name, ErrInvalidCollider)
	}
	return physics.BodyDef{
		Name:            b.Name,
		Type:            bt,
		Collider:        col,
		Position:        b.Position.Vector(),
		Rotation:        b.Rotation,
		LinearVelocity:  b.Velocity.Vector(),
		AngularVelocity: b.AngularVelocity,
	}, nil
}

// Build creates a world from the scene: the level's tiles first, then the
// listed bodies in order. opts are applied after the scene's own integrator.
func (s *SceneSpec) Build(opts ...physics.Option) (*physics.World, error) {
	integrate, err := s.World.Integrator()
	if err != nil {
		return nil, err
	}

	defs := make([]physics.BodyDef, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		def, err := b.BodyDef()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	var lvl *levels.Level
	if s.Level != "" {
		lvl, err = levels.LoadLevelFromFS(s.Level)
		if err != nil {
			return nil, fmt.Errorf("scenes: scene %q: %w", s.Name, err)
		}
	}

	all := append([]physics.Option{physics.WithIntegrator(integrate)}, opts...)
	w := physics.NewWorld(s.World.Settings(), all...)
	if lvl != nil {
		lvl.Build(w)
	}
	for _, def := range defs {
		w.CreateBody(def)
	}
	return w, nil
}
