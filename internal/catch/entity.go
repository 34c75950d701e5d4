package catch

import "github.com/vovakirdan/catcher/internal/core"

// Entity is one falling item. Velocity is fixed at spawn.
type Entity struct {
	ID       uint64
	Category Category
	Pos      core.Vec2 // Center, field units
	Vel      core.Vec2 // Units per second
	Points   int
	Size     core.Vec2
}

// Box returns the entity's bounding box.
func (e Entity) Box() core.Box {
	return core.Box{Center: e.Pos, Size: e.Size}
}

// EntitySet holds the live entities of a round in a flat slice.
// IDs increase monotonically within a round and are never reused.
type EntitySet struct {
	items  []Entity
	nextID uint64
}

// Insert adds e with a fresh ID and returns the stored copy.
func (s *EntitySet) Insert(e Entity) Entity {
	s.nextID++
	e.ID = s.nextID
	s.items = append(s.items, e)
	return e
}

// All returns the live entities. The slice is only valid until the next mutation.
func (s *EntitySet) All() []Entity {
	return s.items
}

// Len returns the number of live entities.
func (s *EntitySet) Len() int {
	return len(s.items)
}

// Clear removes every entity and restarts ID assignment.
func (s *EntitySet) Clear() {
	s.items = s.items[:0]
	s.nextID = 0
}

// RemoveIf deletes every entity for which fn returns true, preserving the
// order of the rest, and returns the removed entities.
func (s *EntitySet) RemoveIf(fn func(*Entity) bool) []Entity {
	var removed []Entity
	kept := s.items[:0]
	for i := range s.items {
		if fn(&s.items[i]) {
			removed = append(removed, s.items[i])
			continue
		}
		kept = append(kept, s.items[i])
	}
	clear(s.items[len(kept):])
	s.items = kept
	return removed
}

// Freeze zeroes the velocity of every entity.
func (s *EntitySet) Freeze() {
	for i := range s.items {
		s.items[i].Vel = core.Vec2{}
	}
}
