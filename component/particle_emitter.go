package component

import "github.com/halvard/emberline/core"

// ParticleEmitter spawns pooled particles at the entity's transform.
//
// BurstCount is a one-shot instruction: the particle system emits that many
// particles on the next tick and resets it to zero. EmitRate is continuous,
// in particles/second; Elapsed carries the sub-interval remainder across
// ticks so the rate is frame-rate independent.
type ParticleEmitter struct {
	EmitRate   float64 `yaml:"emitRate"`
	BurstCount int     `yaml:"burstCount"`

	LifetimeMin float64 `yaml:"lifetimeMin"`
	LifetimeMax float64 `yaml:"lifetimeMax"`
	SizeMin     float64 `yaml:"sizeMin"`
	SizeMax     float64 `yaml:"sizeMax"`
	SpeedMin    float64 `yaml:"speedMin"`
	SpeedMax    float64 `yaml:"speedMax"`
	AngleMin    float64 `yaml:"angleMin"`
	AngleMax    float64 `yaml:"angleMax"`

	GravityX float64 `yaml:"gravityX"`
	GravityY float64 `yaml:"gravityY"`

	StartColor core.Color `yaml:"startColor"`
	EndColor   core.Color `yaml:"endColor"`

	// Elapsed is the emission accumulator; managed by the particle system.
	Elapsed float64 `yaml:"-"`
	// ActiveParticles is the live pool count referencing this emitter,
	// recomputed by the particle system every tick.
	ActiveParticles int `yaml:"-"`
}
