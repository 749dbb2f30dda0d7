package engine

import (
	"sort"

	"github.com/halvard/emberline/core"
)

// World owns entity lifecycle, component tables and the ordered system list.
// Handles are dense integers; a destroyed handle is recycled only after every
// side table (components, tags, names, destroy-hook subscribers) has been
// purged.
type World struct {
	capacity int
	alive    bitset
	freeList []core.Entity
	nextID   core.Entity

	Components ComponentStore

	tags       map[string][]core.Entity
	entityTags map[core.Entity][]string
	names      map[string]core.Entity
	nameOf     map[core.Entity]string

	systems      []System
	destroyHooks []func(core.Entity)
}

// DefaultCapacity bounds the number of live entities when no explicit
// capacity is configured.
const DefaultCapacity = 4096

// NewWorld creates a world with room for capacity entities.
// Component arenas are sized once here and never resized mid-tick.
func NewWorld(capacity int) *World {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &World{
		capacity:   capacity,
		alive:      newBitset(capacity),
		nextID:     1,
		Components: newComponentStore(capacity),
		tags:       make(map[string][]core.Entity),
		entityTags: make(map[core.Entity][]string),
		names:      make(map[string]core.Entity),
		nameOf:     make(map[core.Entity]string),
	}
}

// Capacity returns the fixed entity capacity.
func (w *World) Capacity() int {
	return w.capacity
}

// CreateEntity returns a fresh handle, reusing destroyed ones.
// Returns core.None when the world is full.
func (w *World) CreateEntity() core.Entity {
	var e core.Entity
	if n := len(w.freeList); n > 0 {
		e = w.freeList[n-1]
		w.freeList = w.freeList[:n-1]
	} else {
		if int(w.nextID) >= w.capacity {
			return core.None
		}
		e = w.nextID
		w.nextID++
	}
	w.alive.set(int(e))
	return e
}

// DestroyEntity removes an entity, purging all side tables before the handle
// goes back on the free list. Destroy hooks run first so external indices
// (physics bodies, ground contacts) release the handle before recycling.
func (w *World) DestroyEntity(e core.Entity) {
	if !w.alive.test(int(e)) {
		return
	}
	for _, hook := range w.destroyHooks {
		hook(e)
	}
	w.Components.purge(e)
	w.clearTags(e)
	if name, ok := w.nameOf[e]; ok {
		delete(w.names, name)
		delete(w.nameOf, e)
	}
	w.alive.clear(int(e))
	w.freeList = append(w.freeList, e)
}

// Alive reports whether a handle currently refers to an entity.
func (w *World) Alive(e core.Entity) bool {
	return w.alive.test(int(e))
}

// AddDestroyHook registers fn to run at the start of every DestroyEntity.
func (w *World) AddDestroyHook(fn func(core.Entity)) {
	w.destroyHooks = append(w.destroyHooks, fn)
}

// SetName assigns a unique name; a previous holder of the name loses it.
func (w *World) SetName(e core.Entity, name string) {
	if !w.alive.test(int(e)) || name == "" {
		return
	}
	if prev, ok := w.names[name]; ok {
		delete(w.nameOf, prev)
	}
	if old, ok := w.nameOf[e]; ok {
		delete(w.names, old)
	}
	w.names[name] = e
	w.nameOf[e] = name
}

// Name returns the entity's name, or "".
func (w *World) Name(e core.Entity) string {
	return w.nameOf[e]
}

// ByName resolves a name to a handle.
func (w *World) ByName(name string) (core.Entity, bool) {
	e, ok := w.names[name]
	return e, ok
}

// AddTag attaches a string tag; duplicates are ignored.
func (w *World) AddTag(e core.Entity, tag string) {
	if !w.alive.test(int(e)) || tag == "" {
		return
	}
	for _, t := range w.entityTags[e] {
		if t == tag {
			return
		}
	}
	w.entityTags[e] = append(w.entityTags[e], tag)
	w.tags[tag] = append(w.tags[tag], e)
}

// RemoveTag detaches a tag if present.
func (w *World) RemoveTag(e core.Entity, tag string) {
	list := w.entityTags[e]
	for i, t := range list {
		if t == tag {
			w.entityTags[e] = append(list[:i], list[i+1:]...)
			break
		}
	}
	members := w.tags[tag]
	for i, m := range members {
		if m == e {
			members[i] = members[len(members)-1]
			w.tags[tag] = members[:len(members)-1]
			break
		}
	}
}

// HasTag reports whether the entity carries the tag.
func (w *World) HasTag(e core.Entity, tag string) bool {
	for _, t := range w.entityTags[e] {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns a copy of the entity's tags.
func (w *World) Tags(e core.Entity) []string {
	src := w.entityTags[e]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// WithTag returns all entities carrying the tag.
func (w *World) WithTag(tag string) []core.Entity {
	src := w.tags[tag]
	out := make([]core.Entity, len(src))
	copy(out, src)
	return out
}

// FirstWithTag returns the first entity carrying the tag, or core.None.
func (w *World) FirstWithTag(tag string) core.Entity {
	if list := w.tags[tag]; len(list) > 0 {
		return list[0]
	}
	return core.None
}

func (w *World) clearTags(e core.Entity) {
	for _, tag := range w.entityTags[e] {
		members := w.tags[tag]
		for i, m := range members {
			if m == e {
				members[i] = members[len(members)-1]
				w.tags[tag] = members[:len(members)-1]
				break
			}
		}
	}
	delete(w.entityTags, e)
}

// AddSystem registers a system. The list is sorted by priority here, at
// load time; it is not re-sorted per tick.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns the registered systems in run order.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Update runs every registered system once, in order.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}

// Clear removes all entities, components, tags and names.
func (w *World) Clear() {
	w.alive.reset()
	w.freeList = w.freeList[:0]
	w.nextID = 1
	w.Components.clearAll()
	w.tags = make(map[string][]core.Entity)
	w.entityTags = make(map[core.Entity][]string)
	w.names = make(map[string]core.Entity)
	w.nameOf = make(map[core.Entity]string)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	count := 0
	for _, word := range w.alive.words {
		for ; word != 0; word &= word - 1 {
			count++
		}
	}
	return count
}
