package physics

import (
	"fmt"

	"github.com/milk9111/rigid2d/geom"
)

type separateFunc func(a, b Collider) geom.Separation

var separators = [shapeKindCount][shapeKindCount]separateFunc{
	ShapeCircle: {
		ShapeCircle: func(a, b Collider) geom.Separation {
			return geom.CircleCircle(a.Circle, b.Circle)
		},
		ShapeRectangle: func(a, b Collider) geom.Separation {
			return geom.CircleRectangle(a.Circle, b.Rectangle)
		},
	},
	ShapeRectangle: {
		ShapeCircle: func(a, b Collider) geom.Separation {
			return geom.RectangleCircle(a.Rectangle, b.Circle)
		},
		ShapeRectangle: func(a, b Collider) geom.Separation {
			return geom.RectangleRectangle(a.Rectangle, b.Rectangle)
		},
	},
}

// Separate runs the narrow phase between two colliders. The returned normal
// points from b toward a.
func Separate(a, b Collider) geom.Separation {
	if !a.Kind.valid() || !b.Kind.valid() {
		panic(fmt.Sprintf("physics: unsupported collider pair %v/%v", a.Kind, b.Kind))
	}
	return separators[a.Kind][b.Kind](a, b)
}
