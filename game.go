package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rigid2d/debugdraw"
	"github.com/milk9111/rigid2d/geom"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/scenes"
	"github.com/milk9111/rigid2d/script"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	nudgeSpeed = 120
)

type Game struct {
	sceneName string
	debug     bool
	paused    bool

	scene   *scenes.SceneSpec
	world   *physics.World
	scripts *script.Runner
	stats   *physics.StepStats
	drawer  *debugdraw.Drawer
	watcher *scenes.Watcher
	logger  *slog.Logger
}

func NewGame(sceneName string, debug bool, zoom float64) (*Game, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	g := &Game{
		sceneName: sceneName,
		debug:     debug,
		logger:    slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		drawer: &debugdraw.Drawer{
			Camera:  debugdraw.Camera{Zoom: zoom},
			Options: debugdraw.Options{Bounds: debug, Contacts: true, Suppressed: true},
		},
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

// load builds a fresh world from the scene. On failure the running world is
// kept.
func (g *Game) load() error {
	spec, err := scenes.LoadScene(g.sceneName)
	if err != nil {
		return err
	}
	stats := &physics.StepStats{}
	world, err := spec.Build(
		physics.WithLogger(g.logger),
		physics.WithStepSink(stats),
		physics.WithKinematicOverlap(func(a, b *physics.RigidBody, sep geom.Separation) {
			g.logger.Debug("Sandbox: kinematic overlap", "a", a.Name(), "b", b.Name(), "depth", sep.Depth)
		}),
	)
	if err != nil {
		return err
	}
	runner, err := script.Load(world, spec.Scripts)
	if err != nil {
		return err
	}

	g.scene, g.world, g.scripts, g.stats = spec, world, runner, stats
	log.Printf("Sandbox: loaded scene %q (%d bodies, %d tiles, %d scripts)", spec.Name, world.Len(), world.TileMap().Len(), runner.Len())
	return nil
}

func (g *Game) Watch(dirs ...string) {
	w, err := scenes.NewWatcher(dirs...)
	if err != nil {
		log.Printf("Sandbox: hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// pollWatcher drains settled file changes. Scene and level edits rebuild the
// world; script-only edits reload controllers against the running world.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	rebuild, rescript := false, false
drain:
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				break drain
			}
			log.Printf("Sandbox: %s %s changed", change.Kind, change.Path)
			if change.Kind == scenes.ChangeScript {
				rescript = true
			} else {
				rebuild = true
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				break drain
			}
			log.Printf("Sandbox: watch error: %v", err)
		default:
			break drain
		}
	}
	switch {
	case rebuild:
		g.reload()
	case rescript:
		g.reloadScripts()
	}
}

func (g *Game) reload() {
	if err := g.load(); err != nil {
		log.Printf("Sandbox: reload failed, keeping previous scene: %v", err)
	}
}

func (g *Game) reloadScripts() {
	runner, err := script.Load(g.world, g.scene.Scripts)
	if err != nil {
		log.Printf("Sandbox: script reload failed, keeping previous scripts: %v", err)
		return
	}
	g.scripts = runner
	log.Printf("Sandbox: reloaded %d scripts", runner.Len())
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.drawer.Options.Bounds = !g.drawer.Options.Bounds
	}

	step := !g.paused || inpututil.IsKeyJustPressed(ebiten.KeyN)
	if !step {
		return nil
	}

	dt := g.scene.World.Step()
	if err := g.scripts.Update(dt); err != nil {
		log.Printf("Sandbox: %v", err)
	}
	g.nudgePlayer()
	g.world.Simulate(dt)
	return nil
}

// nudgePlayer lets the arrow keys override the scripted horizontal velocity
// of the body named "player".
func (g *Game) nudgePlayer() {
	player, ok := g.world.BodyByName("player")
	if !ok {
		return
	}
	v := player.LinearVelocity()
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		v.X = -nudgeSpeed
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		v.X = nudgeSpeed
	default:
		v.X = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		v.Y = -2 * nudgeSpeed
	}
	player.SetLinearVelocity(v)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawer.Canvas = debugdraw.ScreenCanvas(screen)
	g.drawer.Draw(g.world)

	if g.debug {
		debugdraw.DrawStats(screen, g.world, g.stats)
		return
	}
	status := ""
	if g.paused {
		status = " [paused]"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s%s    FPS: %.2f", g.scene.Name, status, ebiten.ActualFPS()))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
