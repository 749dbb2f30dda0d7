package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
)

func newRulesFixture() (*fakeEngine, *engine.World, *Sync, *Rules) {
	eng, w, s := newSyncFixture()
	return eng, w, s, NewRules(w, s)
}

func TestRulesCanonicalOrdering(t *testing.T) {
	eng, w, s, r := newRulesFixture()
	player := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "player")
	coin := addBody(w, s, component.Collider{Shape: component.ShapeCircle, Radius: 4, Sensor: true}, "coin")

	var calls [][2]core.Entity
	r.AddRule("player", "coin", func(first, second core.Entity) {
		calls = append(calls, [2]core.Entity{first, second})
	})

	// Physical order player→coin.
	eng.begin(Contact{A: 1, B: 2, NormalX: 1})
	// Physical order coin→player: arguments must still arrive player-first.
	eng.begin(Contact{A: 2, B: 1, NormalX: -1})

	require.Len(t, calls, 2)
	assert.Equal(t, [2]core.Entity{player, coin}, calls[0])
	assert.Equal(t, [2]core.Entity{player, coin}, calls[1])
}

func TestRulesAllMatchesFire(t *testing.T) {
	eng, w, s, r := newRulesFixture()
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "player", "hero")
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "enemy")

	fired := []string{}
	r.AddRule("player", "enemy", func(_, _ core.Entity) { fired = append(fired, "player") })
	r.AddRule("hero", "enemy", func(_, _ core.Entity) { fired = append(fired, "hero") })
	r.AddRule("player", "coin", func(_, _ core.Entity) { fired = append(fired, "coin") })

	eng.begin(Contact{A: 1, B: 2})
	assert.Equal(t, []string{"player", "hero"}, fired)
}

func TestRulesCollisionListenerReceivesIdentity(t *testing.T) {
	eng, w, s, r := newRulesFixture()
	a := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "player")
	w.SetName(a, "hero")
	b := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "enemy", "flying")

	var gotA, gotB core.Entity
	var nameA, nameB string
	var tagsA, tagsB []string
	r.OnCollision(func(x, y core.Entity, nx, ny string, tx, ty []string) {
		gotA, gotB = x, y
		nameA, nameB = nx, ny
		tagsA, tagsB = tx, ty
	})

	eng.begin(Contact{A: 1, B: 2})
	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)
	assert.Equal(t, "hero", nameA)
	assert.Empty(t, nameB)
	assert.Equal(t, []string{"player"}, tagsA)
	assert.ElementsMatch(t, []string{"enemy", "flying"}, tagsB)
}

func TestDamageEntityClampsAndReportsDeath(t *testing.T) {
	_, w, _, r := newRulesFixture()
	e := w.CreateEntity()
	w.Components.Health.Set(e, component.Health{Current: 25, Max: 100})

	assert.False(t, r.DamageEntity(e, 10))
	h, _ := w.Components.Health.Get(e)
	assert.Equal(t, 15.0, h.Current)

	// Overkill clamps at zero and reports death.
	assert.True(t, r.DamageEntity(e, 100))
	h, _ = w.Components.Health.Get(e)
	assert.Zero(t, h.Current)

	// Hitting a dead entity keeps reporting death, not just the killing blow.
	assert.True(t, r.DamageEntity(e, 1))
}

func TestDamageEntityWithoutHealth(t *testing.T) {
	_, w, _, r := newRulesFixture()
	e := w.CreateEntity()
	assert.False(t, r.DamageEntity(e, 10))
}

func TestHealEntityClampsAtMax(t *testing.T) {
	_, w, _, r := newRulesFixture()
	e := w.CreateEntity()
	w.Components.Health.Set(e, component.Health{Current: 90, Max: 100})

	r.HealEntity(e, 50)
	h, _ := w.Components.Health.Get(e)
	assert.Equal(t, 100.0, h.Current)

	// No Health component: silently ignored.
	r.HealEntity(w.CreateEntity(), 50)
}

func TestRemoveEntityReleasesBodyAndHandle(t *testing.T) {
	eng, w, s, r := newRulesFixture()
	e := addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "coin")

	r.RemoveEntity(e)
	assert.False(t, w.Alive(e))
	assert.False(t, s.HasBody(e))
	assert.Empty(t, eng.bodies)
}

func TestRemoveEntityFromRuleHandler(t *testing.T) {
	eng, w, s, r := newRulesFixture()
	addBody(w, s, component.Collider{Shape: component.ShapeBox, Width: 8, Height: 8}, "player")
	coin := addBody(w, s, component.Collider{Shape: component.ShapeCircle, Radius: 4, Sensor: true}, "coin")

	r.AddRule("player", "coin", func(_, picked core.Entity) {
		r.RemoveEntity(picked)
	})

	eng.begin(Contact{A: 1, B: 2})
	assert.False(t, w.Alive(coin))
	assert.Len(t, eng.bodies, 1)
}
