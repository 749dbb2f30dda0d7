package physics

import (
	"go.uber.org/zap"

	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
)

// groundNormalThreshold is the cosine threshold (~60° from vertical) above
// which a contact normal counts as a resting contact.
const groundNormalThreshold = 0.5

// staticMarkerTags force a body static regardless of its collider flags.
var staticMarkerTags = []string{"static", "ground", "wall", "platform"}

// Sync associates entities with physics bodies and reconciles state in both
// directions: intent flows in through SetVelocity/ApplyForce, and after each
// engine step positions, angles and velocities flow back into the component
// tables. Collision events are resolved to entity pairs through the
// bidirectional body index and fanned out to subscribers synchronously.
type Sync struct {
	engine Engine
	world  *engine.World
	log    *zap.Logger

	bodies   map[core.Entity]BodyID
	entities map[BodyID]core.Entity

	// contacts[e] is the set of entities currently supporting e.
	contacts map[core.Entity]map[core.Entity]struct{}
	grounded map[core.Entity]bool

	beginSubs []func(a, b core.Entity)
	endSubs   []func(a, b core.Entity)
}

// NewSync wires the sync layer to an engine and a world. A destroy hook is
// registered so an entity's body and ground contacts are released before its
// handle is recycled.
func NewSync(eng Engine, w *engine.World, log *zap.Logger) *Sync {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sync{
		engine:   eng,
		world:    w,
		log:      log,
		bodies:   make(map[core.Entity]BodyID),
		entities: make(map[BodyID]core.Entity),
		contacts: make(map[core.Entity]map[core.Entity]struct{}),
		grounded: make(map[core.Entity]bool),
	}
	eng.OnContact(s.handleBegin, s.handleEnd)
	w.AddDestroyHook(s.RemoveBody)
	return s
}

// OnContactBegin subscribes to contact-start entity pairs.
func (s *Sync) OnContactBegin(fn func(a, b core.Entity)) {
	s.beginSubs = append(s.beginSubs, fn)
}

// OnContactEnd subscribes to contact-end entity pairs.
func (s *Sync) OnContactEnd(fn func(a, b core.Entity)) {
	s.endSubs = append(s.endSubs, fn)
}

// Initialize creates a body for every entity carrying both Transform and
// Collider. Entities missing either component never get a body.
func (s *Sync) Initialize() {
	count := 0
	for _, e := range s.world.Components.Collider.Entities() {
		if s.CreateBodyFor(e) {
			count++
		}
	}
	s.log.Info("physics initialized", zap.Int("bodies", count))
}

// CreateBodyFor builds the body for one entity if it qualifies and has none
// yet. A body is static when the entity carries a static-marker tag, its
// collider is flagged static, or it is a sensor; trigger volumes must not
// be pushed around by resolution.
func (s *Sync) CreateBodyFor(e core.Entity) bool {
	if _, exists := s.bodies[e]; exists {
		return false
	}
	col, ok := s.world.Components.Collider.Get(e)
	if !ok {
		return false
	}
	tr, ok := s.world.Components.Transform.Get(e)
	if !ok {
		return false
	}

	static := col.Static || col.Sensor
	if !static {
		for _, tag := range staticMarkerTags {
			if s.world.HasTag(e, tag) {
				static = true
				break
			}
		}
	}

	id := s.engine.CreateBody(BodyDef{
		X:          tr.X,
		Y:          tr.Y,
		Angle:      tr.Rotation,
		Circle:     col.Shape == component.ShapeCircle,
		Width:      col.Width,
		Height:     col.Height,
		Radius:     col.Radius,
		Static:     static,
		Sensor:     col.Sensor,
		Friction:   col.Friction,
		Elasticity: col.Elasticity,
	})
	s.bodies[e] = id
	s.entities[id] = e
	return true
}

// Update steps the engine and copies resulting state back into the component
// tables. This is a pure physics→ECS copy; the reverse direction only happens
// through SetVelocity/ApplyForce.
func (s *Sync) Update(dt float64) {
	s.engine.Step(dt)

	for e, id := range s.bodies {
		x, y, angle, ok := s.engine.Position(id)
		if !ok {
			continue
		}
		if tr, ok := s.world.Components.Transform.Get(e); ok {
			tr.X = x
			tr.Y = y
			tr.Rotation = angle
			s.world.Components.Transform.Set(e, tr)
		}
		if _, ok := s.world.Components.Velocity.Get(e); ok {
			if vx, vy, ok := s.engine.Velocity(id); ok {
				s.world.Components.Velocity.Set(e, component.Velocity{VX: vx, VY: vy})
			}
		}
	}
}

// SetGravity accepts pixels/s² and applies the fixed unit scale when
// assigning the engine's gravity field.
func (s *Sync) SetGravity(gx, gy float64) {
	s.engine.SetGravity(gx*GravityScale, gy*GravityScale)
}

// SetVelocity sets the body's linear velocity; no-op for entities without a
// body.
func (s *Sync) SetVelocity(e core.Entity, vx, vy float64) {
	if id, ok := s.bodies[e]; ok {
		s.engine.SetVelocity(id, vx, vy)
	}
}

// Velocity reads the body's linear velocity.
func (s *Sync) Velocity(e core.Entity) (vx, vy float64, ok bool) {
	id, ok := s.bodies[e]
	if !ok {
		return 0, 0, false
	}
	return s.engine.Velocity(id)
}

// ApplyForce applies a force at the body's center; no-op without a body.
func (s *Sync) ApplyForce(e core.Entity, fx, fy float64) {
	if id, ok := s.bodies[e]; ok {
		s.engine.ApplyForce(id, fx, fy)
	}
}

// HasBody reports whether the entity is tracked by the engine.
func (s *Sync) HasBody(e core.Entity) bool {
	_, ok := s.bodies[e]
	return ok
}

// IsGrounded reports whether the entity currently rests on at least one
// supporter.
func (s *Sync) IsGrounded(e core.Entity) bool {
	return s.grounded[e]
}

// RemoveBody releases the entity's body and every side-table reference to
// the handle. No-op for untracked entities.
func (s *Sync) RemoveBody(e core.Entity) {
	id, ok := s.bodies[e]
	if !ok {
		return
	}
	s.engine.RemoveBody(id)
	delete(s.bodies, e)
	delete(s.entities, id)
	delete(s.contacts, e)
	delete(s.grounded, e)
	for other, supporters := range s.contacts {
		if _, ok := supporters[e]; ok {
			delete(supporters, e)
			s.refreshGrounded(other)
		}
	}
}

func (s *Sync) resolve(c Contact) (a, b core.Entity, ok bool) {
	a, okA := s.entities[c.A]
	b, okB := s.entities[c.B]
	if !okA || !okB {
		// Unresolvable pair: dropped without side effects.
		return 0, 0, false
	}
	return a, b, true
}

func (s *Sync) handleBegin(c Contact) {
	a, b, ok := s.resolve(c)
	if !ok {
		return
	}

	for _, fn := range s.beginSubs {
		fn(a, b)
	}

	// The normal points from A to B. With screen coordinates (y grows down)
	// a mostly-vertical normal means one body rests on the other.
	if c.NormalY > groundNormalThreshold {
		s.addSupport(a, b)
	} else if c.NormalY < -groundNormalThreshold {
		s.addSupport(b, a)
	}
}

func (s *Sync) handleEnd(c Contact) {
	a, b, ok := s.resolve(c)
	if !ok {
		return
	}

	for _, fn := range s.endSubs {
		fn(a, b)
	}

	s.removeSupport(a, b)
	s.removeSupport(b, a)
}

func (s *Sync) addSupport(e, supporter core.Entity) {
	set := s.contacts[e]
	if set == nil {
		set = make(map[core.Entity]struct{})
		s.contacts[e] = set
	}
	was := len(set)
	set[supporter] = struct{}{}
	if was == 0 {
		s.refreshGrounded(e)
	}
}

func (s *Sync) removeSupport(e, supporter core.Entity) {
	set := s.contacts[e]
	if set == nil {
		return
	}
	if _, ok := set[supporter]; !ok {
		return
	}
	delete(set, supporter)
	if len(set) == 0 {
		s.refreshGrounded(e)
	}
}

func (s *Sync) refreshGrounded(e core.Entity) {
	s.grounded[e] = len(s.contacts[e]) > 0
}
