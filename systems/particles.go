package systems

import (
	"math"
	"math/rand"

	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
	"github.com/halvard/emberline/particle"
)

// Detached particles (direct bursts) fall under this fixed gravity.
const (
	detachedGravityX = 0.0
	detachedGravityY = 400.0
)

// ParticleSystem ages, moves and culls pool particles, then runs emission
// for every emitter entity with a transform. Emission beyond pool capacity
// is dropped silently.
type ParticleSystem struct {
	pool *particle.Pool
	rng  *rand.Rand
}

func NewParticleSystem(pool *particle.Pool, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{pool: pool, rng: rng}
}

func (s *ParticleSystem) Priority() int {
	return PriorityParticles
}

// Pool exposes the pool for the renderer and the direct burst API.
func (s *ParticleSystem) Pool() *particle.Pool {
	return s.pool
}

func (s *ParticleSystem) Update(w *engine.World, dt float64) {
	s.advance(w, dt)
	s.emit(w, dt)
	s.recount(w)
}

// advance integrates and culls the live pool. Gravity comes from the
// particle's originating emitter, or the detached default when the emitter
// handle is gone or was never set.
func (s *ParticleSystem) advance(w *engine.World, dt float64) {
	particles := s.pool.Particles()
	for i := 0; i < len(particles); i++ {
		p := &particles[i]

		p.Life += dt
		if p.Life >= p.MaxLife {
			s.pool.Remove(i)
			particles = s.pool.Particles()
			i--
			continue
		}

		gx, gy := detachedGravityX, detachedGravityY
		if p.Emitter != core.None {
			if em, ok := w.Components.Emitter.Get(p.Emitter); ok {
				gx, gy = em.GravityX, em.GravityY
			}
		}
		p.VX += gx * dt
		p.VY += gy * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
	}
}

// emit runs burst-then-rate emission for every emitter with a transform.
func (s *ParticleSystem) emit(w *engine.World, dt float64) {
	for _, e := range w.Components.Emitter.Entities() {
		tr, ok := w.Components.Transform.Get(e)
		if !ok {
			continue
		}
		em, _ := w.Components.Emitter.Get(e)

		if em.BurstCount > 0 {
			// One-shot: consumed now, never repeated automatically.
			s.spawn(e, &em, tr.X, tr.Y, em.BurstCount)
			em.BurstCount = 0
		} else if em.EmitRate > 0 {
			interval := 1.0 / em.EmitRate
			em.Elapsed += dt
			if n := int(em.Elapsed / interval); n > 0 {
				em.Elapsed -= float64(n) * interval
				s.spawn(e, &em, tr.X, tr.Y, n)
			}
		}

		w.Components.Emitter.Set(e, em)
	}
}

// Burst spawns detached particles at a position using proto's ranges. The
// spawned particles reference no emitter and use the fixed default gravity.
func (s *ParticleSystem) Burst(x, y float64, count int, proto component.ParticleEmitter) {
	s.spawn(core.None, &proto, x, y, count)
}

func (s *ParticleSystem) spawn(owner core.Entity, em *component.ParticleEmitter, x, y float64, count int) {
	for i := 0; i < count; i++ {
		lifetime := s.uniform(em.LifetimeMin, em.LifetimeMax)
		if lifetime <= 0 {
			lifetime = math.SmallestNonzeroFloat64
		}
		speed := s.uniform(em.SpeedMin, em.SpeedMax)
		angle := s.uniform(em.AngleMin, em.AngleMax)

		ok := s.pool.Spawn(particle.Particle{
			X:          x,
			Y:          y,
			VX:         math.Cos(angle) * speed,
			VY:         math.Sin(angle) * speed,
			MaxLife:    lifetime,
			Size:       s.uniform(em.SizeMin, em.SizeMax),
			StartColor: em.StartColor,
			EndColor:   em.EndColor,
			Emitter:    owner,
		})
		if !ok {
			return // pool full: remaining emission drops
		}
	}
}

// recount refreshes every emitter's live particle count.
func (s *ParticleSystem) recount(w *engine.World) {
	counts := make(map[core.Entity]int)
	for i := range s.pool.Particles() {
		p := &s.pool.Particles()[i]
		if p.Emitter != core.None {
			counts[p.Emitter]++
		}
	}
	for _, e := range w.Components.Emitter.Entities() {
		em, _ := w.Components.Emitter.Get(e)
		if em.ActiveParticles != counts[e] {
			em.ActiveParticles = counts[e]
			w.Components.Emitter.Set(e, em)
		}
	}
}

func (s *ParticleSystem) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
