package component

// Transform is the world-space placement of an entity.
// Position and rotation are authoritative in the physics engine for entities
// with a body; the sync layer copies them back here every tick.
type Transform struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	ScaleX   float64 `yaml:"scaleX"`
	ScaleY   float64 `yaml:"scaleY"`
}
