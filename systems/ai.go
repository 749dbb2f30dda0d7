package systems

import (
	"math"
	"math/rand"

	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
	"github.com/halvard/emberline/physics"
)

const (
	patrolTimerMin = 2.0
	patrolTimerMax = 4.0
	// playerTag is the hard-coded chase target and flee threat.
	playerTag = "player"
)

// AISystem drives patrol, chase and flee locomotion. Per-entity patrol
// facing and countdown timers live here, outside the component tables.
// Only horizontal velocity is ever written; the vertical axis stays with
// gravity and jumps.
type AISystem struct {
	physics *physics.Sync
	rng     *rand.Rand

	facing map[core.Entity]float64
	timers map[core.Entity]float64
}

// NewAISystem creates the AI stage. A destroy hook keeps the external timer
// and facing maps from holding recycled handles.
func NewAISystem(w *engine.World, sync *physics.Sync, rng *rand.Rand) *AISystem {
	s := &AISystem{
		physics: sync,
		rng:     rng,
		facing:  make(map[core.Entity]float64),
		timers:  make(map[core.Entity]float64),
	}
	w.AddDestroyHook(func(e core.Entity) {
		delete(s.facing, e)
		delete(s.timers, e)
	})
	return s
}

func (s *AISystem) Priority() int {
	return PriorityAI
}

func (s *AISystem) Update(w *engine.World, dt float64) {
	player := w.FirstWithTag(playerTag)

	for _, e := range w.Components.AI.Entities() {
		ai, _ := w.Components.AI.Get(e)
		switch ai.Behavior {
		case component.BehaviorPatrol:
			s.patrol(w, e, ai, dt)
		case component.BehaviorChase:
			s.pursue(w, e, ai, player, 1)
		case component.BehaviorFlee:
			s.pursue(w, e, ai, player, -1)
		}
	}
}

// patrol walks in the current facing, flipping when the countdown expires.
func (s *AISystem) patrol(w *engine.World, e core.Entity, ai component.AIBehavior, dt float64) {
	if _, ok := s.facing[e]; !ok {
		s.facing[e] = 1
		s.timers[e] = s.patrolInterval()
	}

	s.timers[e] -= dt
	if s.timers[e] <= 0 {
		s.facing[e] = -s.facing[e]
		s.timers[e] = s.patrolInterval()
	}

	s.setHorizontal(w, e, s.facing[e]*ai.Speed)
}

// pursue moves toward (sign=+1) or away from (sign=-1) the player. With no
// player in the world the behavior is a complete no-op; out of detection
// range only the horizontal velocity is zeroed.
func (s *AISystem) pursue(w *engine.World, e core.Entity, ai component.AIBehavior, player core.Entity, sign float64) {
	if player == core.None {
		return
	}
	self, ok := w.Components.Transform.Get(e)
	if !ok {
		return
	}
	target, ok := w.Components.Transform.Get(player)
	if !ok {
		return
	}

	dx := target.X - self.X
	dy := target.Y - self.Y
	if math.Hypot(dx, dy) > ai.DetectionRadius {
		s.setHorizontal(w, e, 0)
		return
	}

	dir := 0.0
	if dx > 0 {
		dir = 1
	} else if dx < 0 {
		dir = -1
	}
	s.setHorizontal(w, e, sign*dir*ai.Speed)
}

// setHorizontal writes vx, preserving the current vertical velocity.
func (s *AISystem) setHorizontal(w *engine.World, e core.Entity, vx float64) {
	vy := 0.0
	if vel, ok := w.Components.Velocity.Get(e); ok {
		vy = vel.VY
	}
	s.physics.SetVelocity(e, vx, vy)
}

func (s *AISystem) patrolInterval() float64 {
	return patrolTimerMin + s.rng.Float64()*(patrolTimerMax-patrolTimerMin)
}
