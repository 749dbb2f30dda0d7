// Package game wires the world, physics, input and scheduler into one
// explicitly constructed runtime. There is no package-level state; every
// collaborator is injected at construction and torn down by Close.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/halvard/emberline/config"
	"github.com/halvard/emberline/engine"
	"github.com/halvard/emberline/gamespec"
	"github.com/halvard/emberline/input"
	"github.com/halvard/emberline/particle"
	"github.com/halvard/emberline/physics"
	"github.com/halvard/emberline/systems"
)

// Renderer consumes final simulation state once per host frame. It must be
// read-only; the runtime never observes its effects.
type Renderer interface {
	Render(frame Frame)
}

// Frame is the state handed to the renderer after a tick.
type Frame struct {
	World     *engine.World
	Camera    systems.CameraState
	Particles []particle.Particle
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

func (f RendererFunc) Render(frame Frame) { f(frame) }

// Runtime owns the simulation for one session. Per-tick order is fixed:
// world systems (intent) → physics step with synchronous collision dispatch
// and sync-back → input edge-state clear. The renderer runs once per host
// frame, after all fixed steps.
type Runtime struct {
	cfg config.Config
	log *zap.Logger

	world   *engine.World
	physics *physics.Sync
	rules   *physics.Rules
	input   *input.State
	loop    *engine.Loop

	camera    *systems.CameraSystem
	particles *systems.ParticleSystem
}

// NewRuntime builds a runtime against the given physics engine. The engine
// and logger must be non-nil collaborators; config controls which optional
// systems join the pipeline (movement and collision rules always do).
func NewRuntime(cfg config.Config, eng physics.Engine, log *zap.Logger) (*Runtime, error) {
	if eng == nil {
		return nil, fmt.Errorf("runtime: physics engine is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	world := engine.NewWorld(cfg.WorldCapacity)
	phys := physics.NewSync(eng, world, log.Named("physics"))
	rules := physics.NewRules(world, phys)
	in := input.NewState()

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	rt := &Runtime{
		cfg:     cfg,
		log:     log,
		world:   world,
		physics: phys,
		rules:   rules,
		input:   in,
		loop:    engine.NewLoop(),
	}

	// System list is resolved once here; the pipeline never re-evaluates
	// enable flags at tick time.
	world.AddSystem(systems.NewMovementSystem(in, phys))
	if cfg.Systems.AI {
		world.AddSystem(systems.NewAISystem(world, phys, rng))
	}
	if cfg.Systems.Animation {
		world.AddSystem(systems.NewAnimationSystem())
	}
	if cfg.Systems.Particles {
		rt.particles = systems.NewParticleSystem(particle.NewPool(cfg.ParticleCapacity), rng)
		world.AddSystem(rt.particles)
	}
	if cfg.Systems.Camera {
		rt.camera = systems.NewCameraSystem(rng)
		world.AddSystem(rt.camera)
	}

	phys.SetGravity(cfg.Gravity.X, cfg.Gravity.Y)

	log.Info("runtime constructed",
		zap.Int("worldCapacity", cfg.WorldCapacity),
		zap.Int("systems", len(world.Systems())),
		zap.Int64("seed", seed))
	return rt, nil
}

// World exposes the entity world.
func (r *Runtime) World() *engine.World { return r.world }

// Physics exposes the synchronization layer.
func (r *Runtime) Physics() *physics.Sync { return r.physics }

// Rules exposes the collision rule engine.
func (r *Runtime) Rules() *physics.Rules { return r.rules }

// Input exposes the input service for device providers.
func (r *Runtime) Input() *input.State { return r.input }

// Camera returns the camera system, or nil when disabled.
func (r *Runtime) Camera() *systems.CameraSystem { return r.camera }

// Particles returns the particle system, or nil when disabled.
func (r *Runtime) Particles() *systems.ParticleSystem { return r.particles }

// FPS returns the measured host frame rate.
func (r *Runtime) FPS() float64 { return r.loop.FPS() }

// FixedDelta returns the simulation timestep in seconds.
func (r *Runtime) FixedDelta() float64 { return r.loop.FixedDelta() }

// LoadSpec populates the world from a parsed game specification and creates
// physics bodies for everything that qualifies. The spec's gravity, when
// set, overrides the configured one.
func (r *Runtime) LoadSpec(spec *gamespec.Spec) error {
	if err := gamespec.Populate(r.world, spec, r.log.Named("gamespec")); err != nil {
		return err
	}
	if spec.Config.Gravity != (gamespec.VecSpec{}) {
		r.physics.SetGravity(spec.Config.Gravity.X, spec.Config.Gravity.Y)
	}
	r.physics.Initialize()
	return nil
}

// Tick runs exactly one fixed simulation step. Exposed for deterministic
// headless stepping; Run drives it from the scheduler.
func (r *Runtime) Tick(dt float64) {
	r.world.Update(dt)
	r.physics.Update(dt)
	r.input.Update()
}

// Run starts the scheduler, wiring the renderer into the per-frame phase.
// Returns immediately; use Stop to end the session.
func (r *Runtime) Run(renderer Renderer) {
	render := func() {}
	if renderer != nil {
		render = func() { renderer.Render(r.frame()) }
	}
	r.loop.Start(r.Tick, render)
}

func (r *Runtime) frame() Frame {
	f := Frame{World: r.world}
	if r.camera != nil {
		f.Camera = r.camera.State()
	}
	if r.particles != nil {
		f.Particles = r.particles.Pool().Particles()
	}
	return f
}

// Pause suspends the scheduler, keeping session state.
func (r *Runtime) Pause() { r.loop.Pause() }

// Resume continues after Pause.
func (r *Runtime) Resume() { r.loop.Resume() }

// Stop ends the scheduler.
func (r *Runtime) Stop() { r.loop.Stop() }

// Close stops the loop and releases the session.
func (r *Runtime) Close() {
	r.loop.Stop()
	r.log.Info("runtime closed")
}
