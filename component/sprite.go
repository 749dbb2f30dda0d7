package component

import "github.com/halvard/emberline/core"

// Sprite is the renderable appearance of an entity. The renderer is a
// read-only consumer; Frame is advanced by the animation system.
type Sprite struct {
	Name    string     `yaml:"name"`
	Rune    rune       `yaml:"rune"`
	Frame   int        `yaml:"frame"`
	Visible bool       `yaml:"visible"`
	FlipX   bool       `yaml:"flipX"`
	Color   core.Color `yaml:"color"`
}
