package ecs

// absent marks an access-record slot that holds no table offset.
const absent = ^uint32(0)

// DefaultBlockSize is the number of access records per arena block when the
// model is built with NewModel.
const DefaultBlockSize = 2048

// accessArena hands out stable access-record slots. Each block is a single
// flat []uint32 of blockSize records with arity offsets each, allocated once
// and never resized, so a record's backing storage never moves while the
// arena grows. Freed slots are recycled logically; memory is retained for
// the lifetime of the arena.
type accessArena struct {
	blockSize int
	arity     int
	blocks    [][]uint32
	// generations is indexed by slot and starts at 1; it is bumped on every
	// release so stale handles can be detected.
	generations []uint32
	// free is a stack: freed slots are reused most-recently-freed first, and
	// a fresh block's slots pop in ascending record order.
	free []uint32
}

func newAccessArena(blockSize, arity int) *accessArena {
	return &accessArena{
		blockSize: blockSize,
		arity:     arity,
	}
}

// alloc returns a slot whose record is reset to all-absent, together with
// the slot's current generation.
func (a *accessArena) alloc() (slot, generation uint32) {
	if len(a.free) == 0 {
		a.expand()
	}
	slot = a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	return slot, a.generations[slot]
}

// release resets the record at slot to all-absent, bumps its generation and
// pushes the slot back onto the free stack. Block storage is never shrunk.
func (a *accessArena) release(slot uint32) {
	rec := a.record(slot)
	for p := range rec {
		rec[p] = absent
	}
	a.generations[slot]++
	a.free = append(a.free, slot)
}

// expand appends one block and pushes its slots in descending order so that
// alloc hands them out front-to-back within the block.
func (a *accessArena) expand() {
	block := make([]uint32, a.blockSize*a.arity)
	for i := range block {
		block[i] = absent
	}
	base := uint32(len(a.blocks) * a.blockSize)
	a.blocks = append(a.blocks, block)

	for i := 0; i < a.blockSize; i++ {
		a.generations = append(a.generations, 1)
	}
	for i := a.blockSize - 1; i >= 0; i-- {
		a.free = append(a.free, base+uint32(i))
	}
}

// record returns the slot's offset array. The returned slice aliases block
// storage and stays valid for the lifetime of the arena.
func (a *accessArena) record(slot uint32) []uint32 {
	block := a.blocks[int(slot)/a.blockSize]
	i := (int(slot) % a.blockSize) * a.arity
	return block[i : i+a.arity]
}

func (a *accessArena) get(slot uint32, p ComponentID) uint32 {
	return a.record(slot)[p]
}

func (a *accessArena) set(slot uint32, p ComponentID, offset uint32) {
	a.record(slot)[p] = offset
}

func (a *accessArena) has(slot uint32, p ComponentID) bool {
	return a.record(slot)[p] != absent
}

func (a *accessArena) reset(slot uint32, p ComponentID) {
	a.record(slot)[p] = absent
}

func (a *accessArena) generation(slot uint32) uint32 {
	if int(slot) >= len(a.generations) {
		return 0
	}
	return a.generations[slot]
}

func (a *accessArena) blockCount() int {
	return len(a.blocks)
}

func (a *accessArena) capacity() int {
	return len(a.blocks) * a.blockSize
}

func (a *accessArena) freeSlots() int {
	return len(a.free)
}
