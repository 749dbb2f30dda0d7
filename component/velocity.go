package component

// Velocity mirrors the physics body's linear velocity in pixels/second.
// Writing it directly has no effect on simulation; use the physics layer's
// SetVelocity/ApplyForce to change motion.
type Velocity struct {
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}
