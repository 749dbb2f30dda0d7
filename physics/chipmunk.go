package physics

import (
	"github.com/jakecoffman/cp"
)

// collisionTypeAll is assigned to every shape so one pair handler sees all
// contacts exactly once.
const collisionTypeAll cp.CollisionType = 1

// Chipmunk adapts a Chipmunk2D space to the Engine interface. Chipmunk works
// directly in pixel units and seconds, so gravity is scaled back up from
// engine units and dt passes through unchanged.
type Chipmunk struct {
	space  *cp.Space
	bodies map[BodyID]*cp.Body
	shapes map[BodyID]*cp.Shape
	nextID BodyID

	begin func(Contact)
	end   func(Contact)

	// Removal requested from inside a contact callback is deferred until
	// Step returns; Chipmunk forbids mutating the space mid-step.
	stepping bool
	deferred []BodyID
}

// NewChipmunk creates an empty space.
func NewChipmunk() *Chipmunk {
	c := &Chipmunk{
		space:  cp.NewSpace(),
		bodies: make(map[BodyID]*cp.Body),
		shapes: make(map[BodyID]*cp.Shape),
		nextID: 1,
	}

	handler := c.space.NewCollisionHandler(collisionTypeAll, collisionTypeAll)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		if c.begin != nil {
			c.begin(c.contactFromArbiter(arb))
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if c.end != nil {
			c.end(c.contactFromArbiter(arb))
		}
	}

	return c
}

func (c *Chipmunk) contactFromArbiter(arb *cp.Arbiter) Contact {
	ba, bb := arb.Bodies()
	n := arb.Normal()
	contact := Contact{NormalX: n.X, NormalY: n.Y}
	if id, ok := ba.UserData.(BodyID); ok {
		contact.A = id
	}
	if id, ok := bb.UserData.(BodyID); ok {
		contact.B = id
	}
	return contact
}

// CreateBody builds a box or circle body with its single shape.
func (c *Chipmunk) CreateBody(def BodyDef) BodyID {
	var body *cp.Body
	if def.Static {
		body = cp.NewStaticBody()
	} else {
		mass := 1.0
		var moment float64
		if def.Circle {
			moment = cp.MomentForCircle(mass, 0, def.Radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, def.Width, def.Height)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
	body.SetAngle(def.Angle)
	c.space.AddBody(body)

	var shape *cp.Shape
	if def.Circle {
		shape = cp.NewCircle(body, def.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, def.Width, def.Height, 0)
	}
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetSensor(def.Sensor)
	shape.SetCollisionType(collisionTypeAll)
	c.space.AddShape(shape)

	id := c.nextID
	c.nextID++
	body.UserData = id
	c.bodies[id] = body
	c.shapes[id] = shape
	return id
}

// RemoveBody detaches the body and its shape; unknown handles are no-ops.
func (c *Chipmunk) RemoveBody(id BodyID) {
	if _, ok := c.bodies[id]; !ok {
		return
	}
	if c.stepping {
		c.deferred = append(c.deferred, id)
		return
	}
	c.removeNow(id)
}

func (c *Chipmunk) removeNow(id BodyID) {
	body, ok := c.bodies[id]
	if !ok {
		return
	}
	if shape, ok := c.shapes[id]; ok {
		c.space.RemoveShape(shape)
		delete(c.shapes, id)
	}
	c.space.RemoveBody(body)
	delete(c.bodies, id)
}

// Step advances the space by dt seconds and flushes deferred removals.
func (c *Chipmunk) Step(dt float64) {
	c.stepping = true
	c.space.Step(dt)
	c.stepping = false
	for _, id := range c.deferred {
		c.removeNow(id)
	}
	c.deferred = c.deferred[:0]
}

func (c *Chipmunk) Position(id BodyID) (x, y, angle float64, ok bool) {
	body, ok := c.bodies[id]
	if !ok {
		return 0, 0, 0, false
	}
	p := body.Position()
	return p.X, p.Y, body.Angle(), true
}

func (c *Chipmunk) Velocity(id BodyID) (vx, vy float64, ok bool) {
	body, ok := c.bodies[id]
	if !ok {
		return 0, 0, false
	}
	v := body.Velocity()
	return v.X, v.Y, true
}

func (c *Chipmunk) SetVelocity(id BodyID, vx, vy float64) {
	if body, ok := c.bodies[id]; ok {
		body.SetVelocity(vx, vy)
	}
}

func (c *Chipmunk) ApplyForce(id BodyID, fx, fy float64) {
	if body, ok := c.bodies[id]; ok {
		body.ApplyForceAtWorldPoint(cp.Vector{X: fx, Y: fy}, body.Position())
	}
}

// SetGravity converts engine gravity units back to pixels/s².
func (c *Chipmunk) SetGravity(gx, gy float64) {
	c.space.SetGravity(cp.Vector{X: gx / GravityScale, Y: gy / GravityScale})
}

func (c *Chipmunk) OnContact(begin func(Contact), end func(Contact)) {
	c.begin = begin
	c.end = end
}
