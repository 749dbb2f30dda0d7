package physics

import (
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
)

// CollisionFunc is a general contact-start listener.
type CollisionFunc func(a, b core.Entity, nameA, nameB string, tagsA, tagsB []string)

// RuleFunc handles a matched tag-pair rule. The first argument is always the
// entity matching the rule's tagA, regardless of physical collision order.
type RuleFunc func(first, second core.Entity)

type rule struct {
	tagA, tagB string
	fn         RuleFunc
}

// Rules dispatches collision-start events to general listeners and tag-pair
// rules, and carries the health/removal helpers used by handlers. All
// matching rules and listeners fire; there is no first-match-wins.
type Rules struct {
	world *engine.World
	sync  *Sync
	rules []rule
	subs  []CollisionFunc
}

// NewRules attaches a rule engine to the sync layer's contact stream.
func NewRules(w *engine.World, s *Sync) *Rules {
	r := &Rules{world: w, sync: s}
	s.OnContactBegin(r.dispatch)
	return r
}

// OnCollision registers a listener for every contact-start pair.
func (r *Rules) OnCollision(fn CollisionFunc) {
	r.subs = append(r.subs, fn)
}

// AddRule registers a handler for contacts between a tagA entity and a tagB
// entity. Arguments are canonically ordered: the tagA match comes first.
func (r *Rules) AddRule(tagA, tagB string, fn RuleFunc) {
	r.rules = append(r.rules, rule{tagA: tagA, tagB: tagB, fn: fn})
}

func (r *Rules) dispatch(a, b core.Entity) {
	if len(r.subs) > 0 {
		nameA, nameB := r.world.Name(a), r.world.Name(b)
		tagsA, tagsB := r.world.Tags(a), r.world.Tags(b)
		for _, fn := range r.subs {
			fn(a, b, nameA, nameB, tagsA, tagsB)
		}
	}

	for _, rl := range r.rules {
		if r.world.HasTag(a, rl.tagA) && r.world.HasTag(b, rl.tagB) {
			rl.fn(a, b)
		} else if r.world.HasTag(a, rl.tagB) && r.world.HasTag(b, rl.tagA) {
			rl.fn(b, a)
		}
	}
}

// DamageEntity subtracts health, clamping at zero. Returns true when the
// resulting health is zero or below; every call on an already-dead entity
// keeps reporting true, not just the killing blow. Entities without Health
// are untouched and report false.
func (r *Rules) DamageEntity(e core.Entity, amount float64) bool {
	h, ok := r.world.Components.Health.Get(e)
	if !ok {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	r.world.Components.Health.Set(e, h)
	return h.Current <= 0
}

// HealEntity adds health, clamping at the component's max.
func (r *Rules) HealEntity(e core.Entity, amount float64) {
	h, ok := r.world.Components.Health.Get(e)
	if !ok {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
	r.world.Components.Health.Set(e, h)
}

// RemoveEntity removes the physics body first, then destroys the ECS entity.
// Destroying first would invalidate the lookups needed to find the body.
func (r *Rules) RemoveEntity(e core.Entity) {
	r.sync.RemoveBody(e)
	r.world.DestroyEntity(e)
}
