package ecs

import "testing"

type velocity struct {
	dx, dy float64
}

func TestComponentTableInsertAccess(t *testing.T) {
	var table componentTable[velocity]

	a := newEntity(0, 1)
	b := newEntity(1, 1)

	offA := table.insert(a, velocity{1, 2})
	offB := table.insert(b, velocity{3, 4})
	if offA != 0 || offB != 1 {
		t.Fatalf("offsets: got %d, %d", offA, offB)
	}

	if *table.access(offA) != (velocity{1, 2}) {
		t.Error("access(0) returned wrong value")
	}
	if table.ownerAt(offB) != b {
		t.Error("owner tracking mismatch")
	}
}

func TestComponentTableSwapRemoval(t *testing.T) {
	var table componentTable[velocity]

	a := newEntity(0, 1)
	b := newEntity(1, 1)
	c := newEntity(2, 1)
	table.insert(a, velocity{1, 0})
	table.insert(b, velocity{2, 0})
	table.insert(c, velocity{3, 0})

	// Removing the middle element relocates the last one into its place.
	moved := table.removeAt(1)
	if moved != c {
		t.Fatalf("expected displaced owner %v, got %v", c, moved)
	}
	if table.len() != 2 {
		t.Fatalf("expected len 2, got %d", table.len())
	}
	if *table.access(1) != (velocity{3, 0}) || table.ownerAt(1) != c {
		t.Error("last element was not relocated in lock-step")
	}
	if *table.access(0) != (velocity{1, 0}) || table.ownerAt(0) != a {
		t.Error("unrelated element corrupted by removal")
	}

	// Removing the last element moves nothing; the removed owner is returned.
	moved = table.removeAt(1)
	if moved != c {
		t.Fatalf("expected removed owner %v, got %v", c, moved)
	}
	if table.len() != 1 {
		t.Fatalf("expected len 1, got %d", table.len())
	}
}

func TestPatchDisplacedOwner(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[velocity](registry)
	m := NewModel(registry)

	a := m.CreateEntity()
	b := m.CreateEntity()
	c := m.CreateEntity()
	for i, e := range []Entity{a, b, c} {
		if err := Insert(m, e, velocity{dx: float64(i)}); err != nil {
			t.Fatal(err)
		}
	}

	// a sits at offset 0; removing it moves c's data there. c's access
	// record must now point at offset 0, b's must be untouched.
	if err := Remove[velocity](m, a); err != nil {
		t.Fatal(err)
	}
	if got := m.arena.get(c.Index(), 0); got != 0 {
		t.Errorf("displaced owner not patched: offset %d", got)
	}
	if got := m.arena.get(b.Index(), 0); got != 1 {
		t.Errorf("unrelated record changed: offset %d", got)
	}
	if Get[velocity](m, c).dx != 2 {
		t.Error("displaced owner's data unreachable after patch")
	}

	// Self-removal of the table's last element must not resurrect the slot.
	if err := Remove[velocity](m, c); err != nil {
		t.Fatal(err)
	}
	if m.arena.has(c.Index(), 0) {
		t.Error("removed entity still marked present")
	}
}

func TestRegisterComponentPanics(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[velocity](registry)

	assertPanics(t, "duplicate registration", func() {
		RegisterComponent[velocity](registry)
	})

	NewModel(registry)
	assertPanics(t, "sealed registry", func() {
		RegisterComponent[int](registry)
	})
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
