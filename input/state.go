// Package input holds edge- and level-triggered device state polled by
// systems. Providers (terminal, gamepad, tests) push transitions in;
// Update() clears the per-tick "pressed"/"released" edges exactly once,
// after all systems have run.
package input

// Key is a logical action key, already mapped from physical bindings.
type Key string

const (
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyJump   Key = "jump"
	KeyAction Key = "action"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	buttonCount
)

// State is the single input service shared by all systems. Not safe for
// concurrent use; providers must push from the tick thread.
type State struct {
	down     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool

	axes map[string]float64

	pointerX, pointerY float64
	pointerDown        [buttonCount]bool
	pointerPressed     [buttonCount]bool
	pointerReleased    [buttonCount]bool
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{
		down:     make(map[Key]bool),
		pressed:  make(map[Key]bool),
		released: make(map[Key]bool),
		axes:     make(map[string]float64),
	}
}

// SetKey records a key transition from a provider. Repeated "down" reports
// while held do not re-trigger the pressed edge.
func (s *State) SetKey(k Key, down bool) {
	was := s.down[k]
	s.down[k] = down
	if down && !was {
		s.pressed[k] = true
	}
	if !down && was {
		s.released[k] = true
	}
}

// IsKeyDown reports level-triggered key state.
func (s *State) IsKeyDown(k Key) bool {
	return s.down[k]
}

// IsKeyPressed reports a down edge this tick.
func (s *State) IsKeyPressed(k Key) bool {
	return s.pressed[k]
}

// IsKeyReleased reports an up edge this tick.
func (s *State) IsKeyReleased(k Key) bool {
	return s.released[k]
}

// Horizontal returns -1, 0 or +1 from the left/right keys.
func (s *State) Horizontal() float64 {
	v := 0.0
	if s.down[KeyLeft] {
		v -= 1
	}
	if s.down[KeyRight] {
		v += 1
	}
	return v
}

// Vertical returns -1, 0 or +1 from the up/down keys.
func (s *State) Vertical() float64 {
	v := 0.0
	if s.down[KeyUp] {
		v -= 1
	}
	if s.down[KeyDown] {
		v += 1
	}
	return v
}

// SetAxis records an analog axis value from a gamepad provider.
func (s *State) SetAxis(name string, value float64) {
	s.axes[name] = value
}

// Axis returns an analog axis value, 0 when the axis is absent.
func (s *State) Axis(name string) float64 {
	return s.axes[name]
}

// SetPointer records the pointer position.
func (s *State) SetPointer(x, y float64) {
	s.pointerX = x
	s.pointerY = y
}

// Pointer returns the pointer position.
func (s *State) Pointer() (x, y float64) {
	return s.pointerX, s.pointerY
}

// SetButton records a pointer button transition.
func (s *State) SetButton(b Button, down bool) {
	if b < 0 || b >= buttonCount {
		return
	}
	was := s.pointerDown[b]
	s.pointerDown[b] = down
	if down && !was {
		s.pointerPressed[b] = true
	}
	if !down && was {
		s.pointerReleased[b] = true
	}
}

// IsButtonDown reports level-triggered button state.
func (s *State) IsButtonDown(b Button) bool {
	return b >= 0 && b < buttonCount && s.pointerDown[b]
}

// IsButtonPressed reports a down edge this tick.
func (s *State) IsButtonPressed(b Button) bool {
	return b >= 0 && b < buttonCount && s.pointerPressed[b]
}

// Update clears the edge-triggered state. Called once per tick after all
// systems, so a press is visible to exactly one tick's worth of logic.
func (s *State) Update() {
	clear(s.pressed)
	clear(s.released)
	s.pointerPressed = [buttonCount]bool{}
	s.pointerReleased = [buttonCount]bool{}
}
