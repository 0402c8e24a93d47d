package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rectangle is an oriented rectangle described by its center, full size and
// rotation in radians around the center.
type Rectangle struct {
	Center   cp.Vector
	Size     cp.Vector
	Rotation float64
}

// HalfExtents returns half of the rectangle's size.
func (r Rectangle) HalfExtents() cp.Vector {
	return r.Size.Mult(0.5)
}

// Axes returns the rectangle's two unit edge directions in world space.
func (r Rectangle) Axes() [2]cp.Vector {
	rot := cp.ForAngle(r.Rotation)
	return [2]cp.Vector{
		cp.Vector{X: 1, Y: 0}.Rotate(rot),
		cp.Vector{X: 0, Y: 1}.Rotate(rot),
	}
}

// Vertices returns the four corners in winding order. Edge i runs from
// vertex i to vertex (i+1)%4.
func (r Rectangle) Vertices() [4]cp.Vector {
	h := r.HalfExtents()
	rot := cp.ForAngle(r.Rotation)
	local := [4]cp.Vector{
		{X: -h.X, Y: -h.Y},
		{X: h.X, Y: -h.Y},
		{X: h.X, Y: h.Y},
		{X: -h.X, Y: h.Y},
	}
	var out [4]cp.Vector
	for i, v := range local {
		out[i] = r.Center.Add(v.Rotate(rot))
	}
	return out
}

// Bounds returns the axis-aligned box enclosing the rectangle.
func (r Rectangle) Bounds() cp.BB {
	if r.Rotation == 0 {
		h := r.HalfExtents()
		return cp.NewBBForExtents(r.Center, h.X, h.Y)
	}
	verts := r.Vertices()
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, v := range verts {
		bb.L = math.Min(bb.L, v.X)
		bb.R = math.Max(bb.R, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}

// Project returns the interval covered by the rectangle on a unit axis.
func (r Rectangle) Project(axis cp.Vector) (float64, float64) {
	verts := r.Vertices()
	lo := verts[0].Dot(axis)
	hi := lo
	for _, v := range verts[1:] {
		p := v.Dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}
