package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/geom"
)

const clipEpsilon = 1e-9

type pointsFunc func(a, b Collider, sep geom.Separation) []cp.Vector

var pointGenerators = [shapeKindCount][shapeKindCount]pointsFunc{
	ShapeCircle: {
		ShapeCircle:    circleCirclePoints,
		ShapeRectangle: circleRectanglePoints,
	},
	ShapeRectangle: {
		ShapeCircle:    rectangleCirclePoints,
		ShapeRectangle: rectangleRectanglePoints,
	},
}

// GenerateContact builds the contact between body and other from their
// narrow-phase separation.
func GenerateContact(body, other *RigidBody, sep geom.Separation) *Contact {
	points := ContactPoints(body.collider, other.collider, sep)
	c := &Contact{
		Body:   body,
		Other:  other,
		Normal: sep.Normal,
		Depth:  sep.Depth,
		Points: make([]ContactPoint, 0, len(points)),
	}
	for _, p := range points {
		c.Points = append(c.Points, ContactPoint{
			Position:   p,
			LocalBody:  p.Sub(body.position),
			LocalOther: p.Sub(other.position),
			Normal:     sep.Normal,
			Depth:      sep.Depth,
		})
	}
	return c
}

// ContactPoints returns the world-space contact points of two overlapping
// colliders.
func ContactPoints(a, b Collider, sep geom.Separation) []cp.Vector {
	if !a.Kind.valid() || !b.Kind.valid() {
		panic(fmt.Sprintf("physics: unsupported collider pair %v/%v", a.Kind, b.Kind))
	}
	return pointGenerators[a.Kind][b.Kind](a, b, sep)
}

func circleCirclePoints(a, b Collider, _ geom.Separation) []cp.Vector {
	return []cp.Vector{a.Circle.Center.Add(b.Circle.Center).Mult(0.5)}
}

// The normal points from the rectangle toward the circle.
func circleRectanglePoints(a, _ Collider, sep geom.Separation) []cp.Vector {
	c := a.Circle
	return []cp.Vector{c.Center.Sub(sep.Normal.Mult(c.Radius - sep.Depth/2))}
}

// The normal points from the circle toward the rectangle.
func rectangleCirclePoints(_, b Collider, sep geom.Separation) []cp.Vector {
	c := b.Circle
	return []cp.Vector{c.Center.Add(sep.Normal.Mult(c.Radius - sep.Depth/2))}
}

type edge struct {
	deepest cp.Vector
	a, b    cp.Vector
}

func (e edge) dir() cp.Vector {
	return e.b.Sub(e.a)
}

// significantEdge returns the edge of a polygon that faces furthest along n:
// of the two edges sharing the vertex with the largest projection on n, the
// one closest to perpendicular to n.
func significantEdge(verts [4]cp.Vector, n cp.Vector) edge {
	idx := 0
	best := verts[0].Dot(n)
	for i := 1; i < len(verts); i++ {
		if p := verts[i].Dot(n); p > best {
			best, idx = p, i
		}
	}

	v := verts[idx]
	next := verts[(idx+1)%len(verts)]
	prev := verts[(idx+len(verts)-1)%len(verts)]
	left := v.Sub(next).Normalize()
	right := v.Sub(prev).Normalize()
	if math.Abs(right.Dot(n)) <= math.Abs(left.Dot(n)) {
		return edge{deepest: v, a: prev, b: v}
	}
	return edge{deepest: v, a: v, b: next}
}

// clip keeps the part of segment points that lies on the positive side of
// the plane n.p = o.
func clip(points []cp.Vector, n cp.Vector, o float64) []cp.Vector {
	out := make([]cp.Vector, 0, 2)
	switch len(points) {
	case 0:
		return out
	case 1:
		if n.Dot(points[0])-o >= -clipEpsilon {
			out = append(out, points[0])
		}
		return out
	}

	v1, v2 := points[0], points[1]
	d1 := n.Dot(v1) - o
	d2 := n.Dot(v2) - o
	if d1 >= -clipEpsilon {
		out = append(out, v1)
	}
	if d2 >= -clipEpsilon {
		out = append(out, v2)
	}
	if d1*d2 < 0 && len(out) < 2 {
		u := d1 / (d1 - d2)
		out = append(out, v1.Add(v2.Sub(v1).Mult(u)))
	}
	return out
}

// rectangleRectanglePoints clips the incident edge against the reference
// edge. The normal points from b toward a.
func rectangleRectanglePoints(a, b Collider, sep geom.Separation) []cp.Vector {
	n := sep.Normal
	e1 := significantEdge(a.Rectangle.Vertices(), n.Neg())
	e2 := significantEdge(b.Rectangle.Vertices(), n)

	ref, inc := e1, e2
	toward := n.Neg()
	if math.Abs(e1.dir().Dot(n)) > math.Abs(e2.dir().Dot(n)) {
		ref, inc = e2, e1
		toward = n
	}

	refv := ref.dir().Normalize()
	points := clip([]cp.Vector{inc.a, inc.b}, refv, refv.Dot(ref.a))
	points = clip(points, refv.Neg(), -refv.Dot(ref.b))

	face := refv.Perp()
	if face.Dot(toward) < 0 {
		face = face.Neg()
	}
	limit := face.Dot(ref.deepest)
	kept := points[:0]
	for _, p := range points {
		if face.Dot(p)-limit <= clipEpsilon {
			kept = append(kept, p)
		}
	}

	if len(kept) == 0 {
		panic(fmt.Sprintf("physics: no contact points for overlapping rectangles (depth %v)", sep.Depth))
	}
	return kept
}
