package physics

import (
	"math"
	"strings"

	"github.com/jakecoffman/cp"
)

// NormalFilter is a set of contact normal directions a static body allows.
// A cleared bit suppresses contacts whose normal points in that direction.
type NormalFilter uint8

const (
	NormalNegX NormalFilter = 1 << iota
	NormalPosX
	NormalNegY
	NormalPosY
)

const (
	NormalNone NormalFilter = 0
	NormalAll               = NormalNegX | NormalPosX | NormalNegY | NormalPosY
)

// Allows reports whether every direction in dir is enabled.
func (f NormalFilter) Allows(dir NormalFilter) bool {
	return f&dir == dir
}

// AllowsNormal reports whether a contact normal is enabled. The normal is
// classified by its dominant axis.
func (f NormalFilter) AllowsNormal(n cp.Vector) bool {
	return f.Allows(DirectionOf(n))
}

// DirectionOf classifies a vector by its dominant axis. Ties go to X.
func DirectionOf(n cp.Vector) NormalFilter {
	if math.Abs(n.X) >= math.Abs(n.Y) {
		if n.X < 0 {
			return NormalNegX
		}
		return NormalPosX
	}
	if n.Y < 0 {
		return NormalNegY
	}
	return NormalPosY
}

func (f NormalFilter) String() string {
	if f == NormalNone {
		return "none"
	}
	var parts []string
	for _, d := range []struct {
		bit  NormalFilter
		name string
	}{
		{NormalNegX, "-x"},
		{NormalPosX, "+x"},
		{NormalNegY, "-y"},
		{NormalPosY, "+y"},
	} {
		if f&d.bit != 0 {
			parts = append(parts, d.name)
		}
	}
	return strings.Join(parts, "|")
}
