package systems

import (
	"github.com/halvard/emberline/engine"
	"github.com/halvard/emberline/input"
	"github.com/halvard/emberline/physics"
)

// System priorities fix the per-tick pipeline order at load time:
// movement intent first, then AI, animation, particles, and finally the
// camera reading settled transforms.
const (
	PriorityMovement  = 10
	PriorityAI        = 20
	PriorityAnimation = 30
	PriorityParticles = 40
	PriorityCamera    = 50
)

// MovementSystem turns input state into motion intent for entities carrying
// the Input component. Intent goes through the physics layer; the transform
// itself is never written here.
type MovementSystem struct {
	input   *input.State
	physics *physics.Sync
}

// NewMovementSystem wires the always-present movement stage.
func NewMovementSystem(in *input.State, sync *physics.Sync) *MovementSystem {
	return &MovementSystem{input: in, physics: sync}
}

func (s *MovementSystem) Priority() int {
	return PriorityMovement
}

func (s *MovementSystem) Update(w *engine.World, dt float64) {
	h := s.input.Horizontal()
	jump := s.input.IsKeyPressed(input.KeyJump)

	for _, e := range w.Components.Input.Entities() {
		ctl, _ := w.Components.Input.Get(e)

		vy := 0.0
		if vel, ok := w.Components.Velocity.Get(e); ok {
			vy = vel.VY
		}
		if jump && s.physics.IsGrounded(e) {
			vy = -ctl.JumpSpeed
		}

		s.physics.SetVelocity(e, h*ctl.Speed, vy)
	}
}
