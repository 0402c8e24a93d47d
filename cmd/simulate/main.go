package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/milk9111/rigid2d/geom"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/scenes"
	"github.com/milk9111/rigid2d/script"
)

type config struct {
	scene   string
	steps   int
	every   int
	dt      float64
	verbose bool
}

type result struct {
	world    *physics.World
	stats    *physics.StepStats
	overlaps int
}

func main() {
	var cfg config
	flag.StringVar(&cfg.scene, "scene", "basic.yaml", "scene name in scenes/ (disk first, then embedded)")
	flag.IntVar(&cfg.steps, "steps", 120, "number of steps to simulate")
	flag.IntVar(&cfg.every, "every", 30, "log body state every N steps (0 disables)")
	flag.Float64Var(&cfg.dt, "dt", 0, "timestep in seconds (0 uses the scene's)")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging from the physics world")
	flag.Parse()

	res, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	logBodies(res.world)
	log.Printf("Simulate: %d steps, mean %v, slowest %v, %d contacts, %d kinematic overlaps",
		res.stats.Steps, res.stats.Mean(), res.stats.Slowest, res.stats.Contacts, res.overlaps)
}

func run(cfg config) (*result, error) {
	spec, err := scenes.LoadScene(cfg.scene)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	res := &result{stats: &physics.StepStats{}}
	world, err := spec.Build(
		physics.WithLogger(logger),
		physics.WithStepSink(res.stats),
		physics.WithKinematicOverlap(func(a, b *physics.RigidBody, sep geom.Separation) {
			res.overlaps++
		}),
	)
	if err != nil {
		return nil, err
	}
	res.world = world

	runner, err := script.Load(world, spec.Scripts)
	if err != nil {
		return nil, err
	}

	dt := cfg.dt
	if dt <= 0 {
		dt = spec.World.Step()
	}
	for i := 1; i <= cfg.steps; i++ {
		if err := runner.Update(dt); err != nil {
			return nil, err
		}
		world.Simulate(dt)
		if cfg.every > 0 && i%cfg.every == 0 {
			log.Printf("Simulate: step %d: %d contacts, %d corrected", i, res.stats.Last.Detection.Contacts, res.stats.Last.Corrected)
		}
	}
	return res, nil
}

func logBodies(w *physics.World) {
	for _, b := range w.KinematicBodies() {
		p, v := b.Position(), b.LinearVelocity()
		log.Printf("Simulate: %v at (%.3f, %.3f) velocity (%.3f, %.3f) contacts %d", b, p.X, p.Y, v.X, v.Y, len(b.Contacts()))
	}
}
