package component

// Health tracks damageable state. Current is clamped to [0, Max] by the
// collision rule engine's damage/heal helpers.
type Health struct {
	Current float64 `yaml:"current"`
	Max     float64 `yaml:"max"`
}
