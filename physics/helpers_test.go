package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func newTestWorld(opts ...Option) *World {
	return NewWorld(Settings{TileSize: cp.Vector{X: 10, Y: 10}}, opts...)
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
