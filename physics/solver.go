package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// DefaultSlop is the penetration depth left unresolved.
	DefaultSlop = 0.5
	// DefaultRelaxation is the share of the correction applied per step.
	DefaultRelaxation = 0.9
)

// PositionSolver pushes kinematic bodies out of the static bodies they
// penetrate.
type PositionSolver struct {
	Slop       float64
	Relaxation float64
}

// DefaultPositionSolver returns a solver with the default slop and relaxation.
func DefaultPositionSolver() PositionSolver {
	return PositionSolver{Slop: DefaultSlop, Relaxation: DefaultRelaxation}
}

// SolvePositionConstraints runs one pass of the default solver.
func SolvePositionConstraints(bodies []*RigidBody) int {
	return DefaultPositionSolver().Solve(bodies)
}

// Solve accumulates one minimum translation vector per body from its
// contacts, re-measuring each contact against the live colliders, and moves
// the body by the relaxed vector. It returns the number of bodies moved.
func (s PositionSolver) Solve(bodies []*RigidBody) int {
	moved := 0
	for _, b := range bodies {
		var mtv cp.Vector
		for _, c := range b.contacts {
			sep := Separate(b.collider, c.Other.collider)
			if sep.Depth <= s.Slop {
				continue
			}
			if !c.Other.filter.AllowsNormal(sep.Normal) {
				continue
			}
			corr := sep.MTV()
			mtv.X = combineAxis(mtv.X, corr.X)
			mtv.Y = combineAxis(mtv.Y, corr.Y)
		}
		if mtv == (cp.Vector{}) {
			continue
		}
		b.moveBy(mtv.Mult(s.Relaxation), 0)
		moved++
	}
	return moved
}

// combineAxis merges a correction into an accumulated one on a single axis.
// Pushes in the same direction do not stack; opposing pushes cancel out.
func combineAxis(acc, v float64) float64 {
	if acc*v > 0 {
		if math.Abs(v) > math.Abs(acc) {
			return v
		}
		return acc
	}
	return acc + v
}
