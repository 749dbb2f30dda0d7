package component

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColliderShape selects the physics shape built for an entity.
type ColliderShape uint8

const (
	ShapeBox ColliderShape = iota
	ShapeCircle
)

func (s ColliderShape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// UnmarshalYAML accepts the spec-file names "box" and "circle".
func (s *ColliderShape) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	switch name {
	case "box":
		*s = ShapeBox
	case "circle":
		*s = ShapeCircle
	default:
		return fmt.Errorf("unknown collider shape %q", name)
	}
	return nil
}

// Collider describes the physics body created for an entity.
// Sensors report contact events but never participate in resolution;
// they are always built as static bodies.
type Collider struct {
	Shape      ColliderShape `yaml:"shape"`
	Width      float64       `yaml:"width"`
	Height     float64       `yaml:"height"`
	Radius     float64       `yaml:"radius"`
	Static     bool          `yaml:"static"`
	Sensor     bool          `yaml:"sensor"`
	Friction   float64       `yaml:"friction"`
	Elasticity float64       `yaml:"elasticity"`
}
