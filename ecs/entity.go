package ecs

import "fmt"

// Entity encodes both the access-record slot (upper 32 bits) and the slot's
// generation at allocation time (lower 32 bits). The slot addresses a fixed
// record inside the model's block arena; the generation makes a handle to a
// freed-and-reused slot detectable instead of silently aliasing the new owner.
//
// Entities are plain values: copyable, comparable with ==, and totally
// ordered by the underlying integer. The zero Entity is never live.
type Entity uint64

func newEntity(slot, generation uint32) Entity {
	return Entity(uint64(slot)<<32 | uint64(generation))
}

// Index extracts the access-record slot from the entity.
func (e Entity) Index() uint32 {
	return uint32(e >> 32)
}

// Generation extracts the allocation generation from the entity.
func (e Entity) Generation() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// IsZero reports whether e is the zero handle. The zero handle never refers
// to a live entity because slot generations start at 1.
func (e Entity) IsZero() bool {
	return e == 0
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d@%d)", e.Index(), e.Generation())
}
