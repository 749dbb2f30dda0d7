package engine

import "github.com/halvard/emberline/core"

// Store is a fixed-capacity arena for one component kind, indexed by entity
// handle. Presence is tracked in an explicit bitset, separate from values:
// a slot holds its previous (stale) value after removal, so callers must go
// through the (T, bool) accessors rather than assume zero means absent.
// The arena is never resized after construction.
type Store[T any] struct {
	data     []T
	present  bitset
	entities []core.Entity // iteration order; removal swaps, so not sorted
}

// NewStore creates a store holding up to capacity entity handles.
func NewStore[T any](capacity int) *Store[T] {
	return &Store[T]{
		data:     make([]T, capacity),
		present:  newBitset(capacity),
		entities: make([]core.Entity, 0, 64),
	}
}

// Set attaches or updates the component for an entity.
// Out-of-range handles are ignored.
func (s *Store[T]) Set(e core.Entity, val T) {
	i := int(e)
	if i <= 0 || i >= len(s.data) {
		return
	}
	if !s.present.test(i) {
		s.present.set(i)
		s.entities = append(s.entities, e)
	}
	s.data[i] = val
}

// Get returns the component and whether the entity has one.
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	i := int(e)
	if !s.present.test(i) {
		var zero T
		return zero, false
	}
	return s.data[i], true
}

// Has reports component presence without copying the value.
func (s *Store[T]) Has(e core.Entity) bool {
	return s.present.test(int(e))
}

// Remove detaches the component. The slot value is left as-is; only the
// presence bit changes.
func (s *Store[T]) Remove(e core.Entity) {
	i := int(e)
	if !s.present.test(i) {
		return
	}
	s.present.clear(i)
	for j, ent := range s.entities {
		if ent == e {
			s.entities[j] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
}

// Entities returns a copy of all handles carrying this component.
func (s *Store[T]) Entities() []core.Entity {
	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Each calls fn for every entity carrying this component. Mutating the store
// during iteration is safe for the current entity only.
func (s *Store[T]) Each(fn func(e core.Entity, val T)) {
	for _, e := range s.entities {
		fn(e, s.data[int(e)])
	}
}

// Count returns the number of entities carrying this component.
func (s *Store[T]) Count() int {
	return len(s.entities)
}

// Clear detaches every component.
func (s *Store[T]) Clear() {
	s.present.reset()
	s.entities = s.entities[:0]
}
