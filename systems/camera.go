package systems

import (
	"math"
	"math/rand"

	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
)

// CameraState is the derived view state consumed by the renderer. Shake
// offsets are kept separate from position so the renderer applies them last.
type CameraState struct {
	X, Y           float64
	Zoom           float64
	ShakeX, ShakeY float64
}

// CameraSystem resolves the single active camera entity into CameraState
// each tick: follow-target resolution, frame-rate-independent smoothing and
// decaying shake. With no active camera the state holds its last value.
type CameraSystem struct {
	state CameraState
	rng   *rand.Rand

	shakeIntensity float64
	shakeDuration  float64
	shakeElapsed   float64
}

func NewCameraSystem(rng *rand.Rand) *CameraSystem {
	return &CameraSystem{
		state: CameraState{Zoom: 1},
		rng:   rng,
	}
}

func (s *CameraSystem) Priority() int {
	return PriorityCamera
}

// State returns the camera state computed on the last tick.
func (s *CameraSystem) State() CameraState {
	return s.state
}

// Shake starts (or restarts) a shake: intensity decays linearly to zero over
// duration, with offsets re-randomized every tick for jitter.
func (s *CameraSystem) Shake(intensity, duration float64) {
	if duration <= 0 {
		return
	}
	s.shakeIntensity = intensity
	s.shakeDuration = duration
	s.shakeElapsed = 0
}

// SetZoom clamps to [0.1, 10] and writes the active camera's component.
// Component-driven zoom copied during Update is intentionally left
// unclamped, so data-driven specs can push extreme values; only this public
// path clamps.
func (s *CameraSystem) SetZoom(w *engine.World, zoom float64) {
	zoom = core.Clamp(zoom, 0.1, 10)
	if e := s.activeCamera(w); e != core.None {
		cam, _ := w.Components.Camera.Get(e)
		cam.Zoom = zoom
		w.Components.Camera.Set(e, cam)
	}
	s.state.Zoom = zoom
}

func (s *CameraSystem) activeCamera(w *engine.World) core.Entity {
	for _, e := range w.Components.Camera.Entities() {
		if cam, ok := w.Components.Camera.Get(e); ok && cam.Active {
			return e
		}
	}
	return core.None
}

func (s *CameraSystem) Update(w *engine.World, dt float64) {
	e := s.activeCamera(w)
	if e == core.None {
		s.updateShake(dt)
		return
	}
	cam, _ := w.Components.Camera.Get(e)

	// Target: the camera's own transform, overridden by a live follow
	// target, plus the configured offset.
	tx, ty := s.state.X, s.state.Y
	if tr, ok := w.Components.Transform.Get(e); ok {
		tx, ty = tr.X, tr.Y
	}
	if cam.FollowTarget != core.None && w.Alive(cam.FollowTarget) {
		if tr, ok := w.Components.Transform.Get(cam.FollowTarget); ok {
			tx, ty = tr.X, tr.Y
		}
	}
	tx += cam.OffsetX
	ty += cam.OffsetY

	if cam.Smoothing > 0 && cam.Smoothing < 1 {
		// Smoothing is a per-tick retention constant defined at 60fps;
		// exponentiating by dt*60 keeps the visual response rate the same
		// at any frame rate.
		lerp := 1 - math.Pow(cam.Smoothing, dt*60)
		s.state.X += (tx - s.state.X) * lerp
		s.state.Y += (ty - s.state.Y) * lerp
	} else {
		s.state.X = tx
		s.state.Y = ty
	}

	s.state.Zoom = cam.Zoom

	s.updateShake(dt)
}

func (s *CameraSystem) updateShake(dt float64) {
	if s.shakeDuration <= 0 {
		return
	}
	s.shakeElapsed += dt
	if s.shakeElapsed >= s.shakeDuration {
		s.shakeIntensity = 0
		s.shakeDuration = 0
		s.shakeElapsed = 0
		s.state.ShakeX = 0
		s.state.ShakeY = 0
		return
	}
	decayed := s.shakeIntensity * (1 - s.shakeElapsed/s.shakeDuration)
	s.state.ShakeX = (s.rng.Float64()*2 - 1) * decayed
	s.state.ShakeY = (s.rng.Float64()*2 - 1) * decayed
}
