package script

import (
	"fmt"

	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/scenes"
)

// Runner updates a set of controllers in declaration order.
type Runner struct {
	controllers []*Controller
}

// Load compiles every script binding of a scene against w.
func Load(w *physics.World, specs []scenes.ScriptSpec) (*Runner, error) {
	r := &Runner{}
	for _, spec := range specs {
		src, err := scenes.LoadScript(spec.File)
		if err != nil {
			return nil, fmt.Errorf("script: load %s: %w", spec.File, err)
		}
		c, err := NewController(w, spec.Body, spec.File, src)
		if err != nil {
			return nil, err
		}
		r.controllers = append(r.controllers, c)
	}
	return r, nil
}

func (r *Runner) Len() int {
	return len(r.controllers)
}

func (r *Runner) Controllers() []*Controller {
	return r.controllers
}

// Update runs every controller and stops at the first failing script.
func (r *Runner) Update(dt float64) error {
	for _, c := range r.controllers {
		if err := c.Update(dt); err != nil {
			return err
		}
	}
	return nil
}
