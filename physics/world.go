package physics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// BodyDef describes a body to create.
type BodyDef struct {
	Name            string
	Type            BodyType
	Collider        ColliderSpec
	Position        cp.Vector
	Rotation        float64
	LinearVelocity  cp.Vector
	AngularVelocity float64
}

// World owns all bodies and steps the simulation. It is not safe for
// concurrent use.
type World struct {
	settings Settings
	tiles    *TileMap

	static    []*RigidBody
	kinematic []*RigidBody

	logger      *slog.Logger
	sink        StepSink
	integrate   IntegrationStrategy
	solver      PositionSolver
	onKinematic KinematicOverlapFunc

	steps uint64
}

// NewWorld creates an empty world.
func NewWorld(settings Settings, opts ...Option) *World {
	settings = settings.withDefaults()
	w := &World{
		settings:  settings,
		tiles:     NewTileMap(settings.TileSize),
		logger:    slog.New(slog.DiscardHandler),
		integrate: IntegrateKinematicMotion,
		solver:    PositionSolver{Slop: settings.Slop, Relaxation: settings.Relaxation},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Settings returns the effective settings.
func (w *World) Settings() Settings {
	return w.settings
}

// TileMap returns the world's tile grid.
func (w *World) TileMap() *TileMap {
	return w.tiles
}

// StepCount returns the number of completed Simulate calls.
func (w *World) StepCount() uint64 {
	return w.steps
}

// CreateBody adds a body to the world. Panics on an unknown body type or on
// a tile collider for a kinematic body.
func (w *World) CreateBody(def BodyDef) *RigidBody {
	if def.Type != Static && def.Type != Kinematic {
		panic(fmt.Sprintf("physics: unsupported body type %v", def.Type))
	}
	b := newRigidBody(w, def)
	if b.bodyType == Static {
		w.static = append(w.static, b)
	} else {
		w.kinematic = append(w.kinematic, b)
	}
	w.logger.Debug("PhysicsWorld: body created",
		"body", b.id, "name", b.name, "type", b.bodyType, "collider", b.colliderType,
		"x", b.position.X, "y", b.position.Y)
	return b
}

// RemoveBody removes b from the world and reports whether it was present.
// Contacts other bodies hold against b are dropped.
func (w *World) RemoveBody(b *RigidBody) bool {
	if b == nil || b.world != w || b.removed {
		return false
	}

	var removed bool
	switch b.bodyType {
	case Static:
		w.static, removed = removeBody(w.static, b)
	case Kinematic:
		w.kinematic, removed = removeBody(w.kinematic, b)
	}
	if !removed {
		return false
	}

	b.leaveTileGrid()
	b.removed = true
	b.clearContacts()
	for _, k := range w.kinematic {
		k.dropContactsWith(b)
	}
	w.logger.Debug("PhysicsWorld: body removed", "body", b.id, "name", b.name)
	return true
}

func removeBody(bodies []*RigidBody, b *RigidBody) ([]*RigidBody, bool) {
	for i, other := range bodies {
		if other == b {
			return append(bodies[:i], bodies[i+1:]...), true
		}
	}
	return bodies, false
}

func (b *RigidBody) dropContactsWith(other *RigidBody) {
	if len(b.contacts) == 0 {
		return
	}
	kept := make([]*Contact, 0, len(b.contacts))
	for _, c := range b.contacts {
		if c.Other != other {
			kept = append(kept, c)
		}
	}
	b.contacts = kept
}

// Bodies returns all bodies, static first.
func (w *World) Bodies() []*RigidBody {
	out := make([]*RigidBody, 0, len(w.static)+len(w.kinematic))
	out = append(out, w.static...)
	return append(out, w.kinematic...)
}

// StaticBodies returns a copy of the static bodies.
func (w *World) StaticBodies() []*RigidBody {
	return append([]*RigidBody(nil), w.static...)
}

// KinematicBodies returns a copy of the kinematic bodies.
func (w *World) KinematicBodies() []*RigidBody {
	return append([]*RigidBody(nil), w.kinematic...)
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.static) + len(w.kinematic)
}

// Body looks a body up by id.
func (w *World) Body(id uuid.UUID) (*RigidBody, bool) {
	for _, b := range w.static {
		if b.id == id {
			return b, true
		}
	}
	for _, b := range w.kinematic {
		if b.id == id {
			return b, true
		}
	}
	return nil, false
}

// BodyByName returns the first body with the given name.
func (w *World) BodyByName(name string) (*RigidBody, bool) {
	if name == "" {
		return nil, false
	}
	for _, b := range w.kinematic {
		if b.name == name {
			return b, true
		}
	}
	for _, b := range w.static {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

// QueryAABB returns the bodies whose bounds intersect bb.
func (w *World) QueryAABB(bb cp.BB) []*RigidBody {
	var out []*RigidBody
	for _, b := range w.static {
		if b.bounds.Intersects(bb) {
			out = append(out, b)
		}
	}
	for _, b := range w.kinematic {
		if b.bounds.Intersects(bb) {
			out = append(out, b)
		}
	}
	return out
}

// Integrate advances kinematic bodies by dt using the configured strategy.
func (w *World) Integrate(dt float64) {
	w.integrate(w.kinematic, dt)
}

// DetectCollisions rebuilds every body's contact list.
func (w *World) DetectCollisions() DetectionStats {
	return DetectCollisions(w.static, w.kinematic, w.onKinematic)
}

// SolvePositionConstraints pushes kinematic bodies out of penetration and
// returns how many moved.
func (w *World) SolvePositionConstraints() int {
	return w.solver.Solve(w.kinematic)
}

// Simulate advances the world by dt seconds: integrate, detect, solve.
func (w *World) Simulate(dt float64) {
	timing := StepTiming{Step: w.steps + 1, DT: dt}

	start := time.Now()
	w.Integrate(dt)
	integrated := time.Now()
	timing.Detection = w.DetectCollisions()
	detected := time.Now()
	timing.Corrected = w.SolvePositionConstraints()
	solved := time.Now()

	timing.Integrate = integrated.Sub(start)
	timing.Detect = detected.Sub(integrated)
	timing.Solve = solved.Sub(detected)

	w.steps++
	if w.sink != nil {
		w.sink.ObserveStep(timing)
	}
}
