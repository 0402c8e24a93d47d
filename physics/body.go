package physics

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/geom"
)

// RigidBody is a body owned by a World. Handles stay valid after removal but
// are no longer simulated.
type RigidBody struct {
	id    uuid.UUID
	name  string
	world *World

	bodyType     BodyType
	colliderType ColliderType
	radius       float64
	size         cp.Vector

	position        cp.Vector
	rotation        float64
	linearVelocity  cp.Vector
	angularVelocity float64

	collider Collider
	bounds   cp.BB
	filter   NormalFilter
	contacts []*Contact

	// tiled is set while the body is registered in the world's tile map.
	tiled bool
	// removed is set once the world drops the body; it never rejoins.
	removed bool
}

func newRigidBody(w *World, def BodyDef) *RigidBody {
	b := &RigidBody{
		id:       uuid.New(),
		name:     def.Name,
		world:    w,
		bodyType: def.Type,
		position: def.Position,
		rotation: def.Rotation,
		filter:   NormalAll,
	}

	switch def.Collider.Type {
	case ColliderCircle:
		b.SetCircleCollider(def.Collider.Radius)
	case ColliderRectangle:
		b.SetRectangleCollider(def.Collider.Size)
	case ColliderTile:
		b.SetTileCollider()
	default:
		panic(fmt.Sprintf("physics: unsupported collider type %v", def.Collider.Type))
	}

	b.SetLinearVelocity(def.LinearVelocity)
	b.SetAngularVelocity(def.AngularVelocity)
	return b
}

// ID returns the body's unique identifier.
func (b *RigidBody) ID() uuid.UUID {
	return b.id
}

// Name returns the host-supplied name, if any.
func (b *RigidBody) Name() string {
	return b.name
}

// Type returns the body type.
func (b *RigidBody) Type() BodyType {
	return b.bodyType
}

// ColliderType returns the configured collider.
func (b *RigidBody) ColliderType() ColliderType {
	return b.colliderType
}

// Position returns the body's center. Tile bodies report their cell center.
func (b *RigidBody) Position() cp.Vector {
	return b.position
}

// SetPosition moves the body. Tile bodies are snapped to the center of the
// grid cell nearest to p.
func (b *RigidBody) SetPosition(p cp.Vector) {
	if b.tiled {
		p = b.world.tiles.UpdateTile(b, b.position, p)
	}
	b.position = p
	b.RecomputeCollider()
}

// Rotation returns the rotation in radians. Tile bodies always report zero.
func (b *RigidBody) Rotation() float64 {
	if b.colliderType == ColliderTile {
		return 0
	}
	return b.rotation
}

// SetRotation sets the rotation in radians. Ignored for tile bodies.
func (b *RigidBody) SetRotation(r float64) {
	if b.colliderType == ColliderTile {
		return
	}
	b.rotation = r
	b.RecomputeCollider()
}

// LinearVelocity returns the linear velocity.
func (b *RigidBody) LinearVelocity() cp.Vector {
	return b.linearVelocity
}

// SetLinearVelocity sets the linear velocity. Ignored for static bodies.
func (b *RigidBody) SetLinearVelocity(v cp.Vector) {
	if b.bodyType == Static {
		return
	}
	b.linearVelocity = v
}

// AngularVelocity returns the angular velocity in radians per second.
func (b *RigidBody) AngularVelocity() float64 {
	return b.angularVelocity
}

// SetAngularVelocity sets the angular velocity. Ignored for static bodies.
func (b *RigidBody) SetAngularVelocity(w float64) {
	if b.bodyType == Static {
		return
	}
	b.angularVelocity = w
}

// Radius returns the circle radius; zero for other colliders.
func (b *RigidBody) Radius() float64 {
	if b.colliderType != ColliderCircle {
		return 0
	}
	return b.radius
}

// Size returns the rectangle or tile size; zero for circles.
func (b *RigidBody) Size() cp.Vector {
	if b.colliderType == ColliderCircle {
		return cp.Vector{}
	}
	return b.size
}

// SetCircleCollider switches the body to a circle collider.
func (b *RigidBody) SetCircleCollider(radius float64) {
	b.leaveTileGrid()
	b.colliderType = ColliderCircle
	b.radius = radius
	b.RecomputeCollider()
}

// SetRectangleCollider switches the body to a rectangle collider.
func (b *RigidBody) SetRectangleCollider(size cp.Vector) {
	b.leaveTileGrid()
	b.colliderType = ColliderRectangle
	b.size = size
	b.RecomputeCollider()
}

// SetTileCollider switches the body to a tile collider sized by the world's
// tile size and registers it in the tile map. Removed bodies change shape but
// stay out of the map. Panics for kinematic bodies.
func (b *RigidBody) SetTileCollider() {
	if b.bodyType == Kinematic {
		panic("physics: tile collider on kinematic body " + b.id.String())
	}
	b.colliderType = ColliderTile
	b.rotation = 0
	b.size = b.world.tiles.TileSize()
	if !b.tiled && !b.removed {
		b.position = b.world.tiles.CreateTile(b)
		b.tiled = true
	}
	b.RecomputeCollider()
}

func (b *RigidBody) leaveTileGrid() {
	if !b.tiled {
		return
	}
	b.world.tiles.RemoveTile(b)
	b.tiled = false
	b.filter = NormalAll
}

// RecomputeCollider rebuilds the world-space collider and bounding box from
// the current position, rotation and collider configuration.
func (b *RigidBody) RecomputeCollider() {
	switch b.colliderType {
	case ColliderCircle:
		b.collider = Collider{
			Kind:   ShapeCircle,
			Circle: geom.Circle{Center: b.position, Radius: b.radius},
		}
	case ColliderRectangle:
		b.collider = Collider{
			Kind:      ShapeRectangle,
			Rectangle: geom.Rectangle{Center: b.position, Size: b.size, Rotation: b.rotation},
		}
	case ColliderTile:
		b.collider = Collider{
			Kind:      ShapeRectangle,
			Rectangle: geom.Rectangle{Center: b.position, Size: b.size},
		}
	default:
		panic(fmt.Sprintf("physics: unsupported collider type %v", b.colliderType))
	}
	b.bounds = b.collider.Bounds()
}

// Collider returns the transformed collider.
func (b *RigidBody) Collider() Collider {
	return b.collider
}

// Bounds returns the collider's axis-aligned bounding box.
func (b *RigidBody) Bounds() cp.BB {
	return b.bounds
}

// NormalFilter returns the directions in which contacts against this body
// are allowed.
func (b *RigidBody) NormalFilter() NormalFilter {
	return b.filter
}

// Contacts returns the contacts found for this body in the last detection
// pass. The slice is replaced, not reused, on the next pass.
func (b *RigidBody) Contacts() []*Contact {
	return b.contacts
}

func (b *RigidBody) clearContacts() {
	b.contacts = nil
}

// moveBy integrates a kinematic displacement without going through the
// tile grid.
func (b *RigidBody) moveBy(d cp.Vector, dr float64) {
	b.position = b.position.Add(d)
	if b.colliderType != ColliderTile {
		b.rotation += dr
	}
	b.RecomputeCollider()
}

func (b *RigidBody) String() string {
	if b.name != "" {
		return fmt.Sprintf("%s(%s %s)", b.name, b.bodyType, b.colliderType)
	}
	return fmt.Sprintf("%s(%s %s)", b.id, b.bodyType, b.colliderType)
}
