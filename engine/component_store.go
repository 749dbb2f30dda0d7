package engine

import (
	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
)

// ComponentStore holds the typed arena for every component kind.
// Systems capture the pointers they need once at construction; the pointers
// stay valid for the life of the world.
type ComponentStore struct {
	Transform *Store[component.Transform]
	Velocity  *Store[component.Velocity]
	Collider  *Store[component.Collider]
	Input     *Store[component.Input]
	Camera    *Store[component.Camera]
	Emitter   *Store[component.ParticleEmitter]
	AI        *Store[component.AIBehavior]
	Health    *Store[component.Health]
	Sprite    *Store[component.Sprite]
	Animation *Store[component.Animation]
}

func newComponentStore(capacity int) ComponentStore {
	return ComponentStore{
		Transform: NewStore[component.Transform](capacity),
		Velocity:  NewStore[component.Velocity](capacity),
		Collider:  NewStore[component.Collider](capacity),
		Input:     NewStore[component.Input](capacity),
		Camera:    NewStore[component.Camera](capacity),
		Emitter:   NewStore[component.ParticleEmitter](capacity),
		AI:        NewStore[component.AIBehavior](capacity),
		Health:    NewStore[component.Health](capacity),
		Sprite:    NewStore[component.Sprite](capacity),
		Animation: NewStore[component.Animation](capacity),
	}
}

// purge detaches every component of an entity.
func (c *ComponentStore) purge(e core.Entity) {
	c.Transform.Remove(e)
	c.Velocity.Remove(e)
	c.Collider.Remove(e)
	c.Input.Remove(e)
	c.Camera.Remove(e)
	c.Emitter.Remove(e)
	c.AI.Remove(e)
	c.Health.Remove(e)
	c.Sprite.Remove(e)
	c.Animation.Remove(e)
}

// clearAll resets every store.
func (c *ComponentStore) clearAll() {
	c.Transform.Clear()
	c.Velocity.Clear()
	c.Collider.Clear()
	c.Input.Clear()
	c.Camera.Clear()
	c.Emitter.Clear()
	c.AI.Clear()
	c.Health.Clear()
	c.Sprite.Clear()
	c.Animation.Clear()
}
