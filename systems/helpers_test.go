package systems

import (
	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
	"github.com/halvard/emberline/physics"
)

// stubEngine satisfies physics.Engine with just enough state for velocity
// assertions. Systems under test only write intent; nothing moves.
type stubEngine struct {
	nextID physics.BodyID
	alive  map[physics.BodyID]bool
	vels   map[physics.BodyID][2]float64

	begin func(physics.Contact)
	end   func(physics.Contact)
}

func newStubEngine() *stubEngine {
	return &stubEngine{
		alive: make(map[physics.BodyID]bool),
		vels:  make(map[physics.BodyID][2]float64),
	}
}

func (f *stubEngine) CreateBody(def physics.BodyDef) physics.BodyID {
	f.nextID++
	f.alive[f.nextID] = true
	return f.nextID
}

func (f *stubEngine) RemoveBody(id physics.BodyID) {
	delete(f.alive, id)
	delete(f.vels, id)
}

func (f *stubEngine) Step(dt float64) {}

func (f *stubEngine) Position(id physics.BodyID) (float64, float64, float64, bool) {
	return 0, 0, 0, f.alive[id]
}

func (f *stubEngine) Velocity(id physics.BodyID) (float64, float64, bool) {
	if !f.alive[id] {
		return 0, 0, false
	}
	v := f.vels[id]
	return v[0], v[1], true
}

func (f *stubEngine) SetVelocity(id physics.BodyID, vx, vy float64) {
	if f.alive[id] {
		f.vels[id] = [2]float64{vx, vy}
	}
}

func (f *stubEngine) ApplyForce(id physics.BodyID, fx, fy float64) {}

func (f *stubEngine) SetGravity(gx, gy float64) {}

func (f *stubEngine) OnContact(begin, end func(physics.Contact)) {
	f.begin, f.end = begin, end
}

// velocityOf returns the last intent written for the entity's body, assuming
// bodies were issued in entity creation order starting at 1.
func (f *stubEngine) velocityOf(id physics.BodyID) (float64, float64) {
	v := f.vels[id]
	return v[0], v[1]
}

func newPhysicsFixture() (*stubEngine, *engine.World, *physics.Sync) {
	eng := newStubEngine()
	w := engine.NewWorld(64)
	return eng, w, physics.NewSync(eng, w, nil)
}

// addActor creates an entity with a transform, dynamic box collider and body.
func addActor(w *engine.World, s *physics.Sync, x, y float64, tags ...string) core.Entity {
	e := w.CreateEntity()
	w.Components.Transform.Set(e, component.Transform{X: x, Y: y})
	w.Components.Collider.Set(e, component.Collider{Shape: component.ShapeBox, Width: 16, Height: 16})
	for _, tag := range tags {
		w.AddTag(e, tag)
	}
	s.CreateBodyFor(e)
	return e
}
