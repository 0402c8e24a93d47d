package geom

import "github.com/jakecoffman/cp"

// Circle is a world-space circle.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// Bounds returns the axis-aligned box enclosing the circle.
func (c Circle) Bounds() cp.BB {
	return cp.NewBBForCircle(c.Center, c.Radius)
}

// Project returns the interval covered by the circle on a unit axis.
func (c Circle) Project(axis cp.Vector) (float64, float64) {
	mid := c.Center.Dot(axis)
	return mid - c.Radius, mid + c.Radius
}
