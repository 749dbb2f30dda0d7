package component

// Animation advances Sprite.Frame on a fixed per-frame interval.
type Animation struct {
	Frames    int     `yaml:"frames"`
	FrameTime float64 `yaml:"frameTime"`
	Loop      bool    `yaml:"loop"`
	Playing   bool    `yaml:"playing"`

	// Current and Elapsed are managed by the animation system.
	Current int     `yaml:"-"`
	Elapsed float64 `yaml:"-"`
}
