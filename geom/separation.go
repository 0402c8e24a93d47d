package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Separation describes how two shapes overlap. Normal is a unit vector that
// points from the second shape toward the first; moving the first shape by
// Normal*Depth separates them. Depth is positive while the shapes penetrate
// and zero or negative when they are apart.
type Separation struct {
	Normal cp.Vector
	Depth  float64
}

// Overlapping reports whether the shapes penetrate.
func (s Separation) Overlapping() bool {
	return s.Depth > 0
}

// Flip returns the separation seen from the other shape.
func (s Separation) Flip() Separation {
	return Separation{Normal: s.Normal.Neg(), Depth: s.Depth}
}

// MTV returns the translation that moves the first shape out of the second.
func (s Separation) MTV() cp.Vector {
	return s.Normal.Mult(s.Depth)
}

var fallbackNormal = cp.Vector{X: 0, Y: -1}

// CircleCircle separates circle a from circle b.
func CircleCircle(a, b Circle) Separation {
	d := a.Center.Sub(b.Center)
	dist := d.Length()
	depth := a.Radius + b.Radius - dist
	if dist == 0 {
		return Separation{Normal: fallbackNormal, Depth: depth}
	}
	return Separation{Normal: cp.Vector{X: d.X / dist, Y: d.Y / dist}, Depth: depth}
}

// CircleRectangle separates circle c from rectangle r.
func CircleRectangle(c Circle, r Rectangle) Separation {
	rot := cp.ForAngle(r.Rotation)
	local := c.Center.Sub(r.Center).Unrotate(rot)
	h := r.HalfExtents()

	closest := cp.Vector{
		X: math.Max(-h.X, math.Min(h.X, local.X)),
		Y: math.Max(-h.Y, math.Min(h.Y, local.Y)),
	}
	if closest != local {
		diff := local.Sub(closest)
		dist := diff.Length()
		return Separation{
			Normal: cp.Vector{X: diff.X / dist, Y: diff.Y / dist}.Rotate(rot),
			Depth:  c.Radius - dist,
		}
	}

	// center inside: push out through the nearest face
	dx := h.X - math.Abs(local.X)
	dy := h.Y - math.Abs(local.Y)
	if dx < dy {
		return Separation{
			Normal: cp.Vector{X: sign(local.X), Y: 0}.Rotate(rot),
			Depth:  c.Radius + dx,
		}
	}
	return Separation{
		Normal: cp.Vector{X: 0, Y: sign(local.Y)}.Rotate(rot),
		Depth:  c.Radius + dy,
	}
}

// RectangleCircle separates rectangle r from circle c.
func RectangleCircle(r Rectangle, c Circle) Separation {
	return CircleRectangle(c, r).Flip()
}

// RectangleRectangle separates rectangle a from rectangle b using the
// separating axis test over both rectangles' edge directions. On each axis
// the push is the shorter of moving a forward past b or backward past b, so
// a rectangle nested inside a larger one still leaves through the near face.
func RectangleRectangle(a, b Rectangle) Separation {
	axesA := a.Axes()
	axesB := b.Axes()
	axes := [4]cp.Vector{axesA[0], axesA[1], axesB[0], axesB[1]}

	best := Separation{Depth: math.Inf(1)}
	for _, axis := range axes {
		minA, maxA := a.Project(axis)
		minB, maxB := b.Project(axis)
		forward := maxB - minA
		backward := maxA - minB
		if forward <= backward {
			if forward < best.Depth {
				best = Separation{Normal: axis, Depth: forward}
			}
			continue
		}
		if backward < best.Depth {
			best = Separation{Normal: axis.Neg(), Depth: backward}
		}
	}
	return best
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
