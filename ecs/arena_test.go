package ecs

import "testing"

func TestArenaHandsOutSlotsInBlockOrder(t *testing.T) {
	a := newAccessArena(4, 2)

	for want := uint32(0); want < 8; want++ {
		slot, gen := a.alloc()
		if slot != want {
			t.Errorf("alloc %d: got slot %d", want, slot)
		}
		if gen != 1 {
			t.Errorf("fresh slot %d: got generation %d, want 1", slot, gen)
		}
	}
	if a.blockCount() != 2 {
		t.Errorf("expected 2 blocks, got %d", a.blockCount())
	}
}

func TestArenaBlockGrowthKeepsRecordsStable(t *testing.T) {
	// Block capacity 2: five allocations must produce three blocks without
	// moving the first four records' backing storage.
	a := newAccessArena(2, 3)

	slots := make([]uint32, 0, 4)
	addrs := make([]*uint32, 0, 4)
	for i := 0; i < 4; i++ {
		slot, _ := a.alloc()
		slots = append(slots, slot)
		addrs = append(addrs, &a.record(slot)[0])
	}

	a.alloc() // forces the third block
	if a.blockCount() != 3 {
		t.Fatalf("expected 3 blocks after 5 allocations, got %d", a.blockCount())
	}

	for i, slot := range slots {
		if &a.record(slot)[0] != addrs[i] {
			t.Errorf("record %d moved when the arena grew", slot)
		}
	}
}

func TestArenaRecordsStartAbsent(t *testing.T) {
	a := newAccessArena(2, 4)
	slot, _ := a.alloc()

	for p := ComponentID(0); p < 4; p++ {
		if a.has(slot, p) {
			t.Errorf("fresh record has slot %d populated", p)
		}
	}

	a.set(slot, 2, 99)
	if !a.has(slot, 2) || a.get(slot, 2) != 99 {
		t.Error("set/get mismatch")
	}
	a.reset(slot, 2)
	if a.has(slot, 2) {
		t.Error("reset did not clear the offset")
	}
}

func TestArenaReleaseClearsAndRecycles(t *testing.T) {
	a := newAccessArena(4, 2)

	slot, gen := a.alloc()
	a.set(slot, 0, 7)
	a.set(slot, 1, 8)
	a.release(slot)

	if a.generation(slot) != gen+1 {
		t.Errorf("release did not bump generation: got %d", a.generation(slot))
	}

	// Most recently freed slot is reused first, with a clean record.
	again, gen2 := a.alloc()
	if again != slot {
		t.Errorf("expected freed slot %d to be reused, got %d", slot, again)
	}
	if gen2 != gen+1 {
		t.Errorf("reused slot generation: got %d, want %d", gen2, gen+1)
	}
	if a.has(again, 0) || a.has(again, 1) {
		t.Error("reused record not reset to absent")
	}
}

func TestArenaCapacityRetained(t *testing.T) {
	a := newAccessArena(2, 1)

	slots := make([]uint32, 6)
	for i := range slots {
		slots[i], _ = a.alloc()
	}
	for _, s := range slots {
		a.release(s)
	}

	if a.blockCount() != 3 {
		t.Errorf("release must not drop blocks: got %d", a.blockCount())
	}
	if a.freeSlots() != 6 {
		t.Errorf("expected 6 free slots, got %d", a.freeSlots())
	}
}
