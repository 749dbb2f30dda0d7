package component

import "github.com/halvard/emberline/core"

// Camera drives the derived camera state. Only the first active camera found
// is honored; additional active cameras are ignored.
//
// Smoothing is a per-tick-at-60fps retention constant in (0, 1); zero snaps.
// Zoom is copied into the camera state unclamped each tick.
type Camera struct {
	Active       bool        `yaml:"active"`
	Zoom         float64     `yaml:"zoom"`
	FollowTarget core.Entity `yaml:"followTarget"`
	OffsetX      float64     `yaml:"offsetX"`
	OffsetY      float64     `yaml:"offsetY"`
	Smoothing    float64     `yaml:"smoothing"`
}
