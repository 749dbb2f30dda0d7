package component

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Behavior selects the AI locomotion mode.
type Behavior uint8

const (
	BehaviorPatrol Behavior = iota
	BehaviorChase
	BehaviorFlee
)

func (b Behavior) String() string {
	switch b {
	case BehaviorPatrol:
		return "patrol"
	case BehaviorChase:
		return "chase"
	case BehaviorFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// UnmarshalYAML accepts the spec-file names "patrol", "chase" and "flee".
func (b *Behavior) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	switch name {
	case "patrol":
		*b = BehaviorPatrol
	case "chase":
		*b = BehaviorChase
	case "flee":
		*b = BehaviorFlee
	default:
		return fmt.Errorf("unknown ai behavior %q", name)
	}
	return nil
}

// AIBehavior configures simple locomotion. Patrol direction and timers are
// held by the AI system, not here.
type AIBehavior struct {
	Behavior        Behavior `yaml:"behavior"`
	Speed           float64  `yaml:"speed"`
	DetectionRadius float64  `yaml:"detectionRadius"`
}
