package scenes

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SceneSpec describes a world and the bodies in it.
type SceneSpec struct {
	Name    string       `yaml:"name"`
	World   WorldSpec    `yaml:"world"`
	Level   string       `yaml:"level"`
	Bodies  []BodySpec   `yaml:"bodies"`
	Scripts []ScriptSpec `yaml:"scripts"`
}

type WorldSpec struct {
	TileSize       float64 `yaml:"tile_size"`
	Slop           float64 `yaml:"slop"`
	Relaxation     float64 `yaml:"relaxation"`
	IntegratorName string  `yaml:"integrator"`
	Timestep       float64 `yaml:"timestep"`
}

type BodySpec struct {
	Name            string       `yaml:"name"`
	Type            string       `yaml:"type"`
	Collider        ColliderSpec `yaml:"collider"`
	Position        VectorSpec   `yaml:"position"`
	Rotation        float64      `yaml:"rotation"`
	Velocity        VectorSpec   `yaml:"velocity"`
	AngularVelocity float64      `yaml:"angular_velocity"`
}

type ColliderSpec struct {
	Shape  string  `yaml:"shape"`
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ScriptSpec binds a controller script to a named kinematic body.
type ScriptSpec struct {
	Body string `yaml:"body"`
	File string `yaml:"file"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenes: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenes: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadScene(name string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseScene decodes a scene from YAML bytes.
func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("scenes: unmarshal scene: %w", err)
	}
	return &spec, nil
}
