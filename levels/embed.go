package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile map stored as JSON. Each layer is a flat row-major array of
// length Width*Height; zero cells are empty.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	return LoadLevel(LevelsFS, name)
}

func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return lvl, nil
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}

	// layers without metadata are decorative
	if len(lvl.LayerMeta) < len(lvl.Layers) {
		meta := make([]LayerMeta, len(lvl.Layers))
		copy(meta, lvl.LayerMeta)
		lvl.LayerMeta = meta
	}
	return &lvl, nil
}
