package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// ContactPoint is one world-space point of a contact.
type ContactPoint struct {
	Position cp.Vector
	// LocalBody and LocalOther are offsets from each body's center.
	LocalBody  cp.Vector
	LocalOther cp.Vector
	// Normal and Depth mirror the owning contact.
	Normal cp.Vector
	Depth  float64
}

// Contact records an overlap between Body and Other found during detection.
// Normal points from Other toward Body and Depth is the penetration.
type Contact struct {
	Body   *RigidBody
	Other  *RigidBody
	Normal cp.Vector
	Depth  float64
	Points []ContactPoint
}

// PointCount returns the number of contact points (1 or 2).
func (c *Contact) PointCount() int {
	return len(c.Points)
}

// Point returns the i-th contact point. Panics when i is out of range.
func (c *Contact) Point(i int) ContactPoint {
	if i < 0 || i >= len(c.Points) {
		panic(fmt.Sprintf("physics: contact point index %d out of range [0,%d)", i, len(c.Points)))
	}
	return c.Points[i]
}
