package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChipmunkBodyLifecycle(t *testing.T) {
	c := NewChipmunk()

	id := c.CreateBody(BodyDef{X: 50, Y: 10, Width: 16, Height: 16})
	x, y, angle, ok := c.Position(id)
	require.True(t, ok)
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 10.0, y)
	assert.Zero(t, angle)

	c.SetVelocity(id, 30, -5)
	vx, vy, ok := c.Velocity(id)
	require.True(t, ok)
	assert.Equal(t, 30.0, vx)
	assert.Equal(t, -5.0, vy)

	c.RemoveBody(id)
	_, _, _, ok = c.Position(id)
	assert.False(t, ok)

	// Unknown handles are harmless.
	c.RemoveBody(id)
	c.SetVelocity(id, 1, 1)
	c.ApplyForce(id, 1, 1)
}

func TestChipmunkGravityPullsBodiesDown(t *testing.T) {
	c := NewChipmunk()
	c.SetGravity(0, 900*GravityScale) // engine units in, pixels out

	id := c.CreateBody(BodyDef{X: 0, Y: 0, Width: 16, Height: 16})
	for i := 0; i < 30; i++ {
		c.Step(1.0 / 60.0)
	}

	_, y, _, ok := c.Position(id)
	require.True(t, ok)
	assert.Greater(t, y, 50.0, "half a second of 900px/s² gravity")
}

func TestChipmunkStaticBodiesDoNotFall(t *testing.T) {
	c := NewChipmunk()
	c.SetGravity(0, 900*GravityScale)

	id := c.CreateBody(BodyDef{X: 0, Y: 100, Width: 64, Height: 16, Static: true})
	for i := 0; i < 30; i++ {
		c.Step(1.0 / 60.0)
	}

	_, y, _, ok := c.Position(id)
	require.True(t, ok)
	assert.Equal(t, 100.0, y)
}

func TestChipmunkContactCallbacks(t *testing.T) {
	c := NewChipmunk()
	c.SetGravity(0, 900*GravityScale)

	var begins []Contact
	c.OnContact(func(ct Contact) { begins = append(begins, ct) }, func(Contact) {})

	ground := c.CreateBody(BodyDef{X: 0, Y: 50, Width: 200, Height: 16, Static: true, Friction: 0.8})
	faller := c.CreateBody(BodyDef{X: 0, Y: 0, Width: 16, Height: 16, Friction: 0.8})

	for i := 0; i < 120 && len(begins) == 0; i++ {
		c.Step(1.0 / 60.0)
	}

	require.NotEmpty(t, begins)
	got := begins[0]
	ids := []BodyID{got.A, got.B}
	assert.Contains(t, ids, ground)
	assert.Contains(t, ids, faller)
}

func TestChipmunkRemoveDuringStepIsDeferred(t *testing.T) {
	c := NewChipmunk()
	c.SetGravity(0, 900*GravityScale)

	var victim BodyID
	c.OnContact(func(ct Contact) {
		// Removing from inside the callback must not mutate the space
		// mid-step.
		c.RemoveBody(victim)
	}, func(Contact) {})

	c.CreateBody(BodyDef{X: 0, Y: 50, Width: 200, Height: 16, Static: true})
	victim = c.CreateBody(BodyDef{X: 0, Y: 0, Width: 16, Height: 16})

	for i := 0; i < 120; i++ {
		c.Step(1.0 / 60.0)
		if _, _, _, ok := c.Position(victim); !ok {
			return
		}
	}
	t.Fatal("falling body never contacted the ground")
}

func TestChipmunkSensorReportsButDoesNotBlock(t *testing.T) {
	c := NewChipmunk()
	c.SetGravity(0, 900*GravityScale)

	contacts := 0
	c.OnContact(func(Contact) { contacts++ }, func(Contact) {})

	c.CreateBody(BodyDef{X: 0, Y: 60, Circle: true, Radius: 8, Static: true, Sensor: true})
	faller := c.CreateBody(BodyDef{X: 0, Y: 0, Width: 16, Height: 16})

	for i := 0; i < 180; i++ {
		c.Step(1.0 / 60.0)
	}

	assert.Positive(t, contacts, "sensor overlap still fires contact events")
	_, y, _, ok := c.Position(faller)
	require.True(t, ok)
	assert.Greater(t, y, 100.0, "the falling body passes through the sensor")
}
