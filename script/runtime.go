package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/physics"
)

var (
	ErrBodyNotFound = errors.New("script: body not found")
	ErrScriptBody   = errors.New("script: controlled body must be kinematic")
)

const dispatchScript = `
update(__body, __state, __dt)
`

// Controller runs a tengo script against one kinematic body. The script
// defines update := func(body, state, dt) and steers the body by writing its
// velocity. state persists between calls.
type Controller struct {
	file     string
	body     *physics.RigidBody
	compiled *tengo.Compiled
	state    *tengo.Map
}

// NewController compiles src for the named body.
func NewController(w *physics.World, bodyName, file string, src []byte) (*Controller, error) {
	body, ok := w.BodyByName(bodyName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBodyNotFound, bodyName)
	}
	if body.Type() != physics.Kinematic {
		return nil, fmt.Errorf("%w: %q is %v", ErrScriptBody, bodyName, body.Type())
	}

	s := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = s.Add("__body", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__dt", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", file, err)
	}

	return &Controller{
		file:     file,
		body:     body,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (c *Controller) Body() *physics.RigidBody {
	return c.body
}

func (c *Controller) File() string {
	return c.file
}

// Update runs the script's update function once.
func (c *Controller) Update(dt float64) error {
	if err := c.compiled.Set("__body", bodyObject(c.body)); err != nil {
		return err
	}
	if err := c.compiled.Set("__state", c.state); err != nil {
		return err
	}
	if err := c.compiled.Set("__dt", dt); err != nil {
		return err
	}
	if err := c.compiled.Run(); err != nil {
		return fmt.Errorf("script: run %s for %s: %w", c.file, c.body.Name(), err)
	}
	return nil
}

func bodyObject(b *physics.RigidBody) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["name"] = &tengo.String{Value: b.Name()}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p := b.Position()
		return pair(p.X, p.Y), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v := b.LinearVelocity()
		return pair(v.X, v.Y), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		b.SetLinearVelocity(cp.Vector{X: x, Y: y})
		return tengo.TrueValue, nil
	}}

	values["contacts"] = &tengo.UserFunction{Name: "contacts", Value: func(args ...tengo.Object) (tengo.Object, error) {
		contacts := b.Contacts()
		out := make([]tengo.Object, 0, len(contacts))
		for _, c := range contacts {
			out = append(out, &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"nx":    &tengo.Float{Value: c.Normal.X},
				"ny":    &tengo.Float{Value: c.Normal.Y},
				"depth": &tengo.Float{Value: c.Depth},
				"other": &tengo.String{Value: bodyLabel(c.Other)},
			}})
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["touching"] = &tengo.UserFunction{Name: "touching", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		dir, ok := parseDirection(objectAsString(args[0]))
		if !ok {
			return tengo.FalseValue, nil
		}
		for _, c := range b.Contacts() {
			if physics.DirectionOf(c.Normal) == dir {
				return tengo.TrueValue, nil
			}
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func pair(x, y float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func bodyLabel(b *physics.RigidBody) string {
	if b.Name() != "" {
		return b.Name()
	}
	return b.ID().String()
}

func parseDirection(s string) (physics.NormalFilter, bool) {
	switch strings.TrimSpace(s) {
	case "-x":
		return physics.NormalNegX, true
	case "+x", "x":
		return physics.NormalPosX, true
	case "-y":
		return physics.NormalNegY, true
	case "+y", "y":
		return physics.NormalPosY, true
	}
	return physics.NormalNone, false
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
