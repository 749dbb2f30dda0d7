// Package particle holds the shared pool of ephemeral particles. Particles
// are plain values, not entities; one bounded pool serves every emitter.
package particle

import "github.com/halvard/emberline/core"

// DefaultCapacity is the hard pool ceiling when none is configured.
const DefaultCapacity = 1000

// Particle is one live pool entry. Emitter is the originating emitter's
// entity handle, or core.None for particles created through the direct
// burst API ("detached").
type Particle struct {
	X, Y       float64
	VX, VY     float64
	Life       float64
	MaxLife    float64
	Size       float64
	StartColor core.Color
	EndColor   core.Color
	Emitter    core.Entity
}

// Color returns the particle's current color, blended over its lifetime.
func (p *Particle) Color() core.Color {
	if p.MaxLife <= 0 {
		return p.StartColor
	}
	return p.StartColor.Lerp(p.EndColor, p.Life/p.MaxLife)
}

// Pool is a fixed-ceiling particle pool. Spawning beyond capacity drops the
// particle silently; nothing queues and nothing errors.
type Pool struct {
	particles []Particle
	capacity  int
}

// NewPool creates a pool with the given ceiling (DefaultCapacity if <= 0).
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		particles: make([]Particle, 0, capacity),
		capacity:  capacity,
	}
}

// Spawn adds a particle; returns false when the pool is at capacity.
func (p *Pool) Spawn(pt Particle) bool {
	if len(p.particles) >= p.capacity {
		return false
	}
	p.particles = append(p.particles, pt)
	return true
}

// Room returns how many more particles fit.
func (p *Pool) Room() int {
	return p.capacity - len(p.particles)
}

// Len returns the live particle count.
func (p *Pool) Len() int {
	return len(p.particles)
}

// Capacity returns the pool ceiling.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Particles exposes the live slice for in-place mutation by the particle
// system and read-only iteration by the renderer.
func (p *Pool) Particles() []Particle {
	return p.particles
}

// Remove swap-removes the particle at index i.
func (p *Pool) Remove(i int) {
	last := len(p.particles) - 1
	p.particles[i] = p.particles[last]
	p.particles = p.particles[:last]
}

// Clear drops every particle.
func (p *Pool) Clear() {
	p.particles = p.particles[:0]
}
