package levels

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/physics"
)

// PhysicsTileAt reports whether any physics layer has a non-zero cell at x,y.
func (l *Level) PhysicsTileAt(x, y int) bool {
	if l == nil {
		return false
	}
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}

	idx := y*l.Width + x
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			continue
		}
		if layer[idx] != 0 && l.LayerMeta[i].HasPhysics {
			return true
		}
	}
	return false
}

// Build creates one static tile body per physics cell, positioned on the
// world's tile grid with origin at cell (0,0). It returns the created bodies.
func (l *Level) Build(w *physics.World) []*physics.RigidBody {
	size := w.TileMap().TileSize()
	var bodies []*physics.RigidBody
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !l.PhysicsTileAt(x, y) {
				continue
			}
			bodies = append(bodies, w.CreateBody(physics.BodyDef{
				Type:     physics.Static,
				Collider: physics.TileCollider(),
				Position: cp.Vector{X: float64(x) * size.X, Y: float64(y) * size.Y},
			}))
		}
	}
	return bodies
}
