// Package gamespec loads declarative game specifications and populates a
// world from them: entities with sparse component dictionaries and tags,
// global physics config, and an optional tilemap whose collision-marked
// tiles become static collision bodies.
package gamespec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is a parsed game specification document.
type Spec struct {
	Entities []EntitySpec `yaml:"entities"`
	Config   GlobalConfig `yaml:"config"`
	Tilemap  *Tilemap     `yaml:"tilemap"`
}

// EntitySpec declares one entity: an optional unique name, a sparse
// components dictionary keyed by component kind, and string tags.
type EntitySpec struct {
	Name       string               `yaml:"name"`
	Components map[string]yaml.Node `yaml:"components"`
	Tags       []string             `yaml:"tags"`
}

// GlobalConfig carries world-level settings.
type GlobalConfig struct {
	Gravity     VecSpec  `yaml:"gravity"`
	WorldBounds SizeSpec `yaml:"worldBounds"`
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Tilemap is a grid of tile ids; ids whose tileset entry is marked with
// collision auto-generate static box colliders, one per tile.
type Tilemap struct {
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	TileSize float64   `yaml:"tileSize"`
	Layers   [][][]int `yaml:"layers"`
	Tileset  []Tile    `yaml:"tileset"`
}

// Tile describes one tile id.
type Tile struct {
	ID        int  `yaml:"id"`
	Collision bool `yaml:"collision"`
}

// collides reports whether a tile id is collision-marked.
func (t *Tilemap) collides(id int) bool {
	for _, tile := range t.Tileset {
		if tile.ID == id {
			return tile.Collision
		}
	}
	return false
}

// Parse decodes a YAML specification document.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse game spec: %w", err)
	}
	return &spec, nil
}

// Load reads and parses a specification file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game spec: %w", err)
	}
	return Parse(data)
}
