package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
)

// fakeEngine records body defs and lets tests inject contact events.
type fakeEngine struct {
	nextID BodyID
	bodies map[BodyID]BodyDef
	vels   map[BodyID][2]float64
	forces map[BodyID][2]float64

	gravityX, gravityY float64
	steps              int

	begin func(Contact)
	end   func(Contact)
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		bodies: make(map[BodyID]BodyDef),
		vels:   make(map[BodyID][2]float64),
		forces: make(map[BodyID][2]float64),
	}
}

func (f *fakeEngine) CreateBody(def BodyDef) BodyID {
	f.nextID++
	f.bodies[f.nextID] = def
	return f.nextID
}

func (f *fakeEngine) RemoveBody(id BodyID) {
	delete(f.bodies, id)
	delete(f.vels, id)
}

func (f *fakeEngine) Step(dt float64) { f.steps++ }

func (f *fakeEngine) Position(id BodyID) (float64, float64, float64, bool) {
	def, ok := f.bodies[id]
	if !ok {
		return 0, 0, 0, false
	}
	return def.X, def.Y, def.Angle, true
}

func (f *fakeEngine) Velocity(id BodyID) (float64, float64, bool) {
	if _, ok := f.bodies[id]; !ok {
		return 0, 0, false
	}
	v := f.vels[id]
	return v[0], v[1], true
}

func (f *fakeEngine) SetVelocity(id BodyID, vx, vy float64) {
	if _, ok := f.bodies[id]; ok {
		f.vels[id] = [2]float64{vx, vy}
	}
}

func (f *fakeEngine) ApplyForce(id BodyID, fx, fy float64) {
	if _, ok := f.bodies[id]; ok {
		f.forces[id] = [2]float64{fx, fy}
	}
}

func (f *fakeEngine) SetGravity(gx, gy float64) {
	f.gravityX, f.gravityY = gx, gy
}

func (f *fakeEngine) OnContact(begin, end func(Contact)) {
	f.begin, f.end = begin, end
}

// moveBody repositions a fake body so Update sync-back is observable.
func (f *fakeEngine) moveBody(id BodyID, x, y, angle float64) {
	def := f.bodies[id]
	def.X, def.Y, def.Angle = x, y, angle
	f.bodies[id] = def
}

func newSyncFixture() (*fakeEngine, *engine.World, *Sync) {
	eng := newFakeEngine()
	w := engine.NewWorld(64)
	s := NewSync(eng, w, nil)
	return eng, w, s
}

func addBody(w *engine.World, s *Sync, col component.Collider, tags ...string) core.Entity {
	e := w.CreateEntity()
	w.Components.Transform.Set(e, component.Transform{X: 10, Y: 20})
	w.Components.Collider.Set(e, col)
	for _, tag := range tags {
		w.AddTag(e, tag)
	}
	s.CreateBodyFor(e)
	return e
}

func TestSyncInitializeRequiresTransformAndCollider(t *testing.T) {
	eng, w, s := newSyncFixture()

	full := w.CreateEntity()
	w.Components.Transform.Set(full, component.Transform{X: 1})
	w.Components.Collider.Set(full, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})

	colliderOnly := w.CreateEntity()
	w.Components.Collider.Set(colliderOnly, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})

	transformOnly := w.CreateEntity()
	w.Components.Transform.Set(transformOnly, component.Transform{X: 2})

	s.Initialize()

	assert.True(t, s.HasBody(full))
	assert.False(t, s.HasBody(colliderOnly))
	assert.False(t, s.HasBody(transformOnly))
	assert.Len(t, eng.bodies, 1)
}

func TestSyncStaticResolution(t *testing.T) {
	eng, w, s := newSyncFixture()

	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8, Static: true})
	addBody(w, s, component.Collider{Shape: component.ShapeCircle, Radius: 4, Sensor: true})
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "platform")

	assert.False(t, eng.bodies[1].Static, "plain collider stays dynamic")
	assert.True(t, eng.bodies[2].Static, "static flag forces static")
	assert.True(t, eng.bodies[3].Static, "sensors are created static")
	assert.True(t, eng.bodies[3].Sensor)
	assert.True(t, eng.bodies[4].Static, "marker tag forces static")
}

func TestSyncCreateBodyForIsIdempotent(t *testing.T) {
	eng, w, s := newSyncFixture()
	e := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})

	assert.False(t, s.CreateBodyFor(e))
	assert.Len(t, eng.bodies, 1)
}

func TestSyncUpdateCopiesStateBack(t *testing.T) {
	eng, w, s := newSyncFixture()
	e := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	w.Components.Velocity.Set(e, component.Velocity{})

	eng.moveBody(1, 42, 24, 0.5)
	eng.SetVelocity(1, 3, -7)

	s.Update(1.0 / 60.0)

	assert.Equal(t, 1, eng.steps)
	tr, _ := w.Components.Transform.Get(e)
	assert.Equal(t, 42.0, tr.X)
	assert.Equal(t, 24.0, tr.Y)
	assert.Equal(t, 0.5, tr.Rotation)
	vel, _ := w.Components.Velocity.Get(e)
	assert.Equal(t, 3.0, vel.VX)
	assert.Equal(t, -7.0, vel.VY)
}

func TestSyncUpdateSkipsVelocityWithoutComponent(t *testing.T) {
	eng, w, s := newSyncFixture()
	e := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	eng.SetVelocity(1, 5, 5)

	s.Update(1.0 / 60.0)
	assert.False(t, w.Components.Velocity.Has(e))
}

func TestSyncOpsNoopWithoutBody(t *testing.T) {
	eng, w, s := newSyncFixture()
	e := w.CreateEntity()

	s.SetVelocity(e, 1, 2)
	s.ApplyForce(e, 3, 4)
	s.RemoveBody(e)
	_, _, ok := s.Velocity(e)

	assert.False(t, ok)
	assert.False(t, s.HasBody(e))
	assert.Empty(t, eng.vels)
	assert.Empty(t, eng.forces)
}

func TestSyncGravityScale(t *testing.T) {
	eng, _, s := newSyncFixture()

	s.SetGravity(0, 900)
	assert.InDelta(t, 0.0, eng.gravityX, 1e-12)
	assert.InDelta(t, 0.9, eng.gravityY, 1e-12)
}

func TestSyncContactFanOutAndResolution(t *testing.T) {
	eng, w, s := newSyncFixture()
	a := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	b := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})

	var begins, ends [][2]core.Entity
	s.OnContactBegin(func(x, y core.Entity) { begins = append(begins, [2]core.Entity{x, y}) })
	s.OnContactEnd(func(x, y core.Entity) { ends = append(ends, [2]core.Entity{x, y}) })

	eng.begin(Contact{A: 1, B: 2, NormalX: 1})
	eng.end(Contact{A: 1, B: 2, NormalX: 1})

	require.Len(t, begins, 1)
	assert.Equal(t, [2]core.Entity{a, b}, begins[0])
	require.Len(t, ends, 1)
	assert.Equal(t, [2]core.Entity{a, b}, ends[0])
}

func TestSyncUnresolvableContactDropped(t *testing.T) {
	eng, w, s := newSyncFixture()
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})

	var begins int
	s.OnContactBegin(func(_, _ core.Entity) { begins++ })

	// BodyID 99 was never issued by the sync layer.
	eng.begin(Contact{A: 1, B: 99, NormalY: 1})
	assert.Zero(t, begins)
}

func TestSyncGroundContactCounting(t *testing.T) {
	eng, w, s := newSyncFixture()
	player := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "ground")
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "ground")

	assert.False(t, s.IsGrounded(player))

	// Normal from player toward the ground is downward (+y on screen).
	eng.begin(Contact{A: 1, B: 2, NormalY: 1})
	assert.True(t, s.IsGrounded(player))

	// Straddling two tiles: the second supporter keeps the state grounded
	// when the first contact ends.
	eng.begin(Contact{A: 1, B: 3, NormalY: 1})
	eng.end(Contact{A: 1, B: 2, NormalY: 1})
	assert.True(t, s.IsGrounded(player))

	eng.end(Contact{A: 1, B: 3, NormalY: 1})
	assert.False(t, s.IsGrounded(player))
}

func TestSyncGroundContactReversedNormal(t *testing.T) {
	eng, w, s := newSyncFixture()
	player := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	ground := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "ground")

	// Pair order flipped: normal points from ground up toward the player.
	eng.begin(Contact{A: 2, B: 1, NormalY: -1})
	assert.True(t, s.IsGrounded(player))
	assert.False(t, s.IsGrounded(ground))
}

func TestSyncWallContactIsNotGround(t *testing.T) {
	eng, w, s := newSyncFixture()
	player := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "wall")

	eng.begin(Contact{A: 1, B: 2, NormalX: 1, NormalY: 0.3})
	assert.False(t, s.IsGrounded(player))
}

func TestSyncRemoveBodyPurgesContacts(t *testing.T) {
	eng, w, s := newSyncFixture()
	player := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	platform := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "platform")

	eng.begin(Contact{A: 1, B: 2, NormalY: 1})
	require.True(t, s.IsGrounded(player))

	// Removing the supporter must un-ground everything standing on it,
	// even without a contact-end event from the engine.
	s.RemoveBody(platform)
	assert.False(t, s.IsGrounded(player))
	assert.False(t, s.HasBody(platform))
	assert.Len(t, eng.bodies, 1)
}

func TestSyncDestroyEntityReleasesBody(t *testing.T) {
	eng, w, s := newSyncFixture()
	e := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8})
	require.True(t, s.HasBody(e))

	w.DestroyEntity(e)
	assert.False(t, s.HasBody(e))
	assert.Empty(t, eng.bodies)

	// The recycled handle starts with no body association.
	r := w.CreateEntity()
	require.Equal(t, e, r)
	assert.False(t, s.HasBody(r))
	assert.False(t, s.IsGrounded(r))
}
