package scenes

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/physics"
)

func TestLoadBasicScene(t *testing.T) {
	spec, err := LoadScene("basic.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "basic" || len(spec.Bodies) != 2 {
		t.Fatalf("unexpected scene %+v", spec)
	}
	if spec.World.Step() != DefaultTimestep {
		t.Fatalf("expected default timestep, got %v", spec.World.Step())
	}

	w, err := spec.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ball, ok := w.BodyByName("ball")
	if !ok {
		t.Fatalf("ball missing")
	}
	if ball.Type() != physics.Kinematic || ball.LinearVelocity() != (cp.Vector{X: 0, Y: 30}) {
		t.Fatalf("unexpected ball %v with velocity %v", ball, ball.LinearVelocity())
	}
	if w.Settings() != physics.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", w.Settings())
	}
}

func TestBasicSceneSettles(t *testing.T) {
	spec, err := LoadScene("basic.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w, err := spec.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ball, _ := w.BodyByName("ball")

	for i := 0; i < 10; i++ {
		w.Simulate(spec.World.Step())
	}
	if ball.LinearVelocity() != (cp.Vector{}) {
		t.Fatalf("expected sliding integrator to stop the ball, got %v", ball.LinearVelocity())
	}
	if math.Abs(ball.Position().Y+14.85) > 1e-9 {
		t.Fatalf("expected ball resting at y=-14.85, got %v", ball.Position())
	}
}

func TestBuildSandboxScene(t *testing.T) {
	spec, err := LoadScene("scenes/sandbox.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w, err := spec.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if w.TileMap().Len() != 29 {
		t.Fatalf("expected 29 level tiles, got %d", w.TileMap().Len())
	}
	if len(w.KinematicBodies()) != 3 || len(w.StaticBodies()) != 30 {
		t.Fatalf("unexpected body counts %d/%d", len(w.KinematicBodies()), len(w.StaticBodies()))
	}
	if len(spec.Scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(spec.Scripts))
	}
	for _, s := range spec.Scripts {
		if _, err := LoadScript(s.File); err != nil {
			t.Fatalf("script %s: %v", s.File, err)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name     string
		yaml     string
		expected error
	}{
		{"body_type", "bodies: [{name: a, type: dynamic, collider: {shape: circle, radius: 1}}]", ErrUnknownBodyType},
		{"shape", "bodies: [{name: a, type: static, collider: {shape: capsule}}]", ErrUnknownShape},
		{"radius", "bodies: [{name: a, type: static, collider: {shape: circle}}]", ErrInvalidCollider},
		{"size", "bodies: [{name: a, type: static, collider: {shape: rectangle, width: 2}}]", ErrInvalidCollider},
		{"kinematic_tile", "bodies: [{name: a, type: kinematic, collider: {shape: tile}}]", ErrInvalidCollider},
		{"integrator", "world: {integrator: verlet}", ErrUnknownIntegrator},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := ParseScene([]byte(c.yaml))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := spec.Build(); !errors.Is(err, c.expected) {
				t.Fatalf("expected %v, got %v", c.expected, err)
			}
		})
	}
}

func TestBuildMissingLevel(t *testing.T) {
	spec, err := ParseScene([]byte("name: x\nlevel: nowhere.json\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := spec.Build(); err == nil {
		t.Fatalf("expected error for missing level")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadScene("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing scene")
	}
	if _, err := ParseScene([]byte("bodies: {")); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, scene, script string
	}{
		{"basic.yaml", "basic.yaml", "scripts/basic.yaml"},
		{"scenes/basic.yaml", "basic.yaml", "scripts/basic.yaml"},
		{"scripts/fall.tengo", "scripts/fall.tengo", "scripts/fall.tengo"},
		{"scenes/scripts/fall.tengo", "scripts/fall.tengo", "scripts/fall.tengo"},
		{"", "", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanScenePath(c.in); got != c.scene {
				t.Fatalf("cleanScenePath(%q) = %q, expected %q", c.in, got, c.scene)
			}
			if got := cleanScriptPath(c.in); got != c.script {
				t.Fatalf("cleanScriptPath(%q) = %q, expected %q", c.in, got, c.script)
			}
		})
	}
}

func TestClassifyChange(t *testing.T) {
	cases := []struct {
		path    string
		kind    ChangeKind
		watched bool
	}{
		{"a.yaml", ChangeScene, true},
		{"a.YML", ChangeScene, true},
		{"level.json", ChangeLevel, true},
		{"scripts/fall.tengo", ChangeScript, true},
		{"notes.txt", 0, false},
		{"scene.yaml~", 0, false},
		{"no_extension", 0, false},
	}
	for _, c := range cases {
		kind, ok := ClassifyChange(c.path)
		if ok != c.watched || (ok && kind != c.kind) {
			t.Fatalf("ClassifyChange(%q) = %v, %v, expected %v, %v", c.path, kind, ok, c.kind, c.watched)
		}
	}
}

func TestWatcherReportsSceneWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	scene := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scene, []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case change := <-w.Events:
		if change.Path != scene || change.Kind != ChangeScene {
			t.Fatalf("expected scene change for %s, got %+v", scene, change)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event received")
	}
}

func TestWatcherBatchesBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	script := filepath.Join(dir, "fall.tengo")
	level := filepath.Join(dir, "level.json")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(script, []byte("x := 1\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(level, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	expected := []Change{{Path: script, Kind: ChangeScript}, {Path: level, Kind: ChangeLevel}}
	for _, want := range expected {
		select {
		case got := <-w.Events:
			if got != want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("missing change %+v", want)
		}
	}
	select {
	case got := <-w.Events:
		t.Fatalf("unexpected extra change %+v", got)
	case <-time.After(3 * settle):
	}
}
