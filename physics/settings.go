package physics

import (
	"log/slog"

	"github.com/jakecoffman/cp"
)

// DefaultTileSize is the edge length of a tile grid cell.
const DefaultTileSize = 32

// Settings configures a World.
type Settings struct {
	TileSize   cp.Vector
	Slop       float64
	Relaxation float64
}

// DefaultSettings returns the settings used for zero fields.
func DefaultSettings() Settings {
	return Settings{
		TileSize:   cp.Vector{X: DefaultTileSize, Y: DefaultTileSize},
		Slop:       DefaultSlop,
		Relaxation: DefaultRelaxation,
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.TileSize.X <= 0 || s.TileSize.Y <= 0 {
		s.TileSize = def.TileSize
	}
	if s.Slop <= 0 {
		s.Slop = def.Slop
	}
	if s.Relaxation <= 0 || s.Relaxation > 1 {
		s.Relaxation = def.Relaxation
	}
	return s
}

// Option customizes a World.
type Option func(*World)

// WithLogger sets the logger used for body lifecycle records.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithStepSink reports step timing to sink.
func WithStepSink(sink StepSink) Option {
	return func(w *World) {
		w.sink = sink
	}
}

// WithIntegrator replaces the default integration strategy.
func WithIntegrator(s IntegrationStrategy) Option {
	return func(w *World) {
		if s != nil {
			w.integrate = s
		}
	}
}

// WithKinematicOverlap receives overlapping kinematic pairs.
func WithKinematicOverlap(f KinematicOverlapFunc) Option {
	return func(w *World) {
		w.onKinematic = f
	}
}
