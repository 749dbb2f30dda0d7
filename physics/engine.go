// Package physics synchronizes the entity-component world with an external
// 2D physics engine. The engine owns authoritative positions; the sync layer
// copies them back into component tables once per fixed tick.
package physics

// BodyID is an opaque handle to a body owned by the external engine.
// Zero means "no body".
type BodyID int

// GravityScale converts the simulation's pixel/s² gravity into the engine's
// non-dimensional gravity unit: 1 engine unit = 1000 px/s². Adapters for
// pixel-dimensioned engines convert back internally.
const GravityScale = 1.0 / 1000.0

// BodyDef describes a body to create. Box bodies use Width/Height, circle
// bodies use Radius. Sensors report contacts but never resolve collisions.
type BodyDef struct {
	X, Y          float64
	Angle         float64
	Circle        bool
	Width, Height float64
	Radius        float64
	Static        bool
	Sensor        bool
	Friction      float64
	Elasticity    float64
}

// Contact is one contact-start or contact-end pair event. The normal points
// from body A toward body B, unit length.
type Contact struct {
	A, B             BodyID
	NormalX, NormalY float64
}

// Engine is the narrow surface consumed from the external physics engine.
//
// Step advances the simulation by dt seconds; adapters convert to the
// engine's own time unit. Contact events are delivered synchronously from
// inside Step. Operations on an unknown BodyID are no-ops.
type Engine interface {
	CreateBody(def BodyDef) BodyID
	RemoveBody(id BodyID)
	Step(dt float64)

	Position(id BodyID) (x, y, angle float64, ok bool)
	Velocity(id BodyID) (vx, vy float64, ok bool)
	SetVelocity(id BodyID, vx, vy float64)
	ApplyForce(id BodyID, fx, fy float64)

	// SetGravity takes engine gravity units (see GravityScale).
	SetGravity(gx, gy float64)

	// OnContact registers the begin/end pair listeners. Only one pair of
	// listeners is supported; the sync layer fans out.
	OnContact(begin func(Contact), end func(Contact))
}
