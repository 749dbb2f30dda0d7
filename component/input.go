package component

// Input marks an entity as player-controlled and carries its locomotion tuning.
type Input struct {
	Speed     float64 `yaml:"speed"`
	JumpSpeed float64 `yaml:"jumpSpeed"`
}
