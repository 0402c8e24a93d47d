package script

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/scenes"
)

func newWorld() *physics.World {
	w := physics.NewWorld(physics.Settings{})
	w.CreateBody(physics.BodyDef{Name: "floor", Type: physics.Static, Collider: physics.RectangleCollider(200, 20)})
	w.CreateBody(physics.BodyDef{Name: "ball", Type: physics.Kinematic, Collider: physics.CircleCollider(5), Position: cp.Vector{X: 0, Y: -14}})
	return w
}

func TestControllerSetsVelocity(t *testing.T) {
	w := newWorld()
	src := []byte(`
update := func(body, state, dt) {
	p := body.position()
	body.set_velocity(p[0] + 3, dt * 10)
}
`)
	c, err := NewController(w, "ball", "inline.tengo", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := c.Update(0.5); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := c.Body().LinearVelocity(); got != (cp.Vector{X: 3, Y: 5}) {
		t.Fatalf("expected velocity (3,5), got %v", got)
	}
}

func TestControllerStatePersists(t *testing.T) {
	w := newWorld()
	src := []byte(`
update := func(body, state, dt) {
	if is_undefined(state.count) {
		state.count = 0
	}
	state.count += 1
	body.set_velocity(state.count, 0)
}
`)
	c, err := NewController(w, "ball", "counter.tengo", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := c.Update(1); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}
	if got := c.Body().LinearVelocity().X; got != 3 {
		t.Fatalf("expected count 3, got %v", got)
	}
}

func TestControllerReadsContacts(t *testing.T) {
	w := newWorld()
	w.DetectCollisions()
	src := []byte(`
update := func(body, state, dt) {
	cs := body.contacts()
	if len(cs) == 1 && cs[0].other == "floor" && body.touching("-y") && !body.touching("+x") {
		body.set_velocity(1, cs[0].ny)
	}
}
`)
	c, err := NewController(w, "ball", "contacts.tengo", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := c.Update(1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := c.Body().LinearVelocity(); got != (cp.Vector{X: 1, Y: -1}) {
		t.Fatalf("expected velocity (1,-1), got %v", got)
	}
}

func TestControllerErrors(t *testing.T) {
	w := newWorld()
	if _, err := NewController(w, "ghost", "x.tengo", []byte("update := func(b, s, d) {}")); !errors.Is(err, ErrBodyNotFound) {
		t.Fatalf("expected ErrBodyNotFound, got %v", err)
	}
	if _, err := NewController(w, "floor", "x.tengo", []byte("update := func(b, s, d) {}")); !errors.Is(err, ErrScriptBody) {
		t.Fatalf("expected ErrScriptBody, got %v", err)
	}
	if _, err := NewController(w, "ball", "x.tengo", []byte("update := func(")); err == nil {
		t.Fatalf("expected compile error")
	}

	c, err := NewController(w, "ball", "x.tengo", []byte(`update := func(body, state, dt) { body.set_velocity("fast", 0) }`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := c.Update(1); err == nil {
		t.Fatalf("expected runtime error for bad argument")
	}
}

func TestLoadSceneScripts(t *testing.T) {
	spec, err := scenes.LoadScene("sandbox.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	w, err := spec.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	r, err := Load(w, spec.Scripts)
	if err != nil {
		t.Fatalf("load scripts: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 controllers, got %d", r.Len())
	}

	crate, _ := w.BodyByName("crate")
	if err := r.Update(0.1); err != nil {
		t.Fatalf("update: %v", err)
	}
	v := crate.LinearVelocity()
	if v.X != 60 || v.Y <= 0 {
		t.Fatalf("expected crate walking right and falling, got %v", v)
	}

	if _, err := Load(w, []scenes.ScriptSpec{{Body: "crate", File: "missing.tengo"}}); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
