package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/geom"
)

// BodyType decides whether a body is moved by the world.
type BodyType int

const (
	// Static bodies never move on their own and ignore velocity writes.
	Static BodyType = iota
	// Kinematic bodies are integrated from their velocity and pushed out of
	// static geometry by the position solver.
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

// ColliderType is the collider a body was configured with.
type ColliderType int

const (
	ColliderCircle ColliderType = iota
	ColliderRectangle
	// ColliderTile is an axis-aligned rectangle of the world's tile size whose
	// position is quantized to the tile grid.
	ColliderTile
)

func (t ColliderType) String() string {
	switch t {
	case ColliderCircle:
		return "circle"
	case ColliderRectangle:
		return "rectangle"
	case ColliderTile:
		return "tile"
	default:
		return fmt.Sprintf("ColliderType(%d)", int(t))
	}
}

// ShapeKind discriminates the world-space shape held by a Collider.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle

	shapeKindCount
)

func (k ShapeKind) valid() bool {
	return k >= 0 && k < shapeKindCount
}

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Collider is a body's transformed shape in world space. Only the field
// selected by Kind is meaningful.
type Collider struct {
	Kind      ShapeKind
	Circle    geom.Circle
	Rectangle geom.Rectangle
}

// Bounds returns the collider's axis-aligned bounding box.
func (c Collider) Bounds() cp.BB {
	switch c.Kind {
	case ShapeCircle:
		return c.Circle.Bounds()
	case ShapeRectangle:
		return c.Rectangle.Bounds()
	default:
		panic(fmt.Sprintf("physics: bounds of unsupported shape %v", c.Kind))
	}
}

// Center returns the collider's world-space center.
func (c Collider) Center() cp.Vector {
	switch c.Kind {
	case ShapeCircle:
		return c.Circle.Center
	case ShapeRectangle:
		return c.Rectangle.Center
	default:
		panic(fmt.Sprintf("physics: center of unsupported shape %v", c.Kind))
	}
}

// ColliderSpec describes the collider a body is created with.
type ColliderSpec struct {
	Type   ColliderType
	Radius float64
	Size   cp.Vector
}

// CircleCollider returns a circle collider spec.
func CircleCollider(radius float64) ColliderSpec {
	return ColliderSpec{Type: ColliderCircle, Radius: radius}
}

// RectangleCollider returns a rectangle collider spec.
func RectangleCollider(width, height float64) ColliderSpec {
	return ColliderSpec{Type: ColliderRectangle, Size: cp.Vector{X: width, Y: height}}
}

// TileCollider returns a tile collider spec; the size comes from the world.
func TileCollider() ColliderSpec {
	return ColliderSpec{Type: ColliderTile}
}
