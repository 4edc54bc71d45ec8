package ecs

import (
	"github.com/kamstrup/intmap"
)

// SystemHandle identifies a system registered with a model. Handles are
// monotonically increasing and never reused, so a handle to a removed system
// stays detectable for the lifetime of the model.
type SystemHandle uint64

// ProcessFunc is a system's processing callback. It receives a snapshot of
// the system's current members and the owning model for data access. The
// callback may mutate the model freely, including removing entities or
// systems; see Model.Process for the snapshot guarantees.
type ProcessFunc func(members []Entity, m *Model)

// system pairs a required signature with an incrementally maintained
// membership set and a processing callback. Membership is mutated only by
// the model as entities gain and lose components.
type system struct {
	handle   SystemHandle
	name     string
	required Signature
	members  *entitySet
	fn       ProcessFunc
}

// entitySet is a dense entity slice paired with an entity-to-position index,
// giving O(1) add, remove and membership tests plus plain-slice iteration.
// Removal swaps the last element into the vacated position, mirroring the
// component tables' compaction strategy.
type entitySet struct {
	dense []Entity
	index *intmap.Map[Entity, int]
}

func newEntitySet(capacity int) *entitySet {
	return &entitySet{
		index: intmap.New[Entity, int](capacity),
	}
}

func (s *entitySet) add(e Entity) {
	if _, ok := s.index.Get(e); ok {
		return
	}
	s.index.Put(e, len(s.dense))
	s.dense = append(s.dense, e)
}

func (s *entitySet) remove(e Entity) {
	pos, ok := s.index.Get(e)
	if !ok {
		return
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[pos] = moved
	s.index.Put(moved, pos)
	s.dense = s.dense[:last]
	s.index.Del(e)
}

func (s *entitySet) has(e Entity) bool {
	_, ok := s.index.Get(e)
	return ok
}

func (s *entitySet) len() int {
	return len(s.dense)
}

// snapshot returns a copy of the current members, safe to iterate while the
// set itself is being mutated.
func (s *entitySet) snapshot() []Entity {
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
