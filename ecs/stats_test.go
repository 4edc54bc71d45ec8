package ecs

import "testing"

type statPos struct{ x, y float64 }
type statVel struct{ dx, dy float64 }

func TestCollectStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[statPos](registry)
	RegisterComponent[statVel](registry)

	m := NewModelWithBlockSize(registry, 2)

	stats := m.CollectStats()
	if stats.EntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.EntityCount)
	}
	if stats.BlockCount != 0 {
		t.Errorf("expected 0 blocks, got %d", stats.BlockCount)
	}
	if stats.SingletonCount != 0 {
		t.Errorf("expected 0 singletons, got %d", stats.SingletonCount)
	}

	a := m.CreateEntity()
	b := m.CreateEntity()
	m.CreateEntity()
	if err := Insert(m, a, statPos{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := Insert(m, b, statPos{3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := Insert(m, b, statVel{5, 6}); err != nil {
		t.Fatal(err)
	}
	m.CreateNamedSystem("movers", func([]Entity, *Model) {},
		m.registry.typeOf(0), m.registry.typeOf(1))
	m.AddSingleton(42)

	stats = m.CollectStats()
	if stats.EntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.EntityCount)
	}
	if stats.BlockCount != 2 {
		t.Errorf("expected 2 blocks, got %d", stats.BlockCount)
	}
	if stats.CapacitySlots != 4 {
		t.Errorf("expected capacity 4, got %d", stats.CapacitySlots)
	}
	if stats.FreeSlots != 1 {
		t.Errorf("expected 1 free slot, got %d", stats.FreeSlots)
	}

	if len(stats.ComponentTables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(stats.ComponentTables))
	}
	if stats.ComponentTables[0].Len != 2 || stats.ComponentTables[1].Len != 1 {
		t.Errorf("table lengths: got %d and %d",
			stats.ComponentTables[0].Len, stats.ComponentTables[1].Len)
	}

	if len(stats.Systems) != 1 {
		t.Fatalf("expected 1 system, got %d", len(stats.Systems))
	}
	sys := stats.Systems[0]
	if sys.Name != "movers" {
		t.Errorf("system name: got %q", sys.Name)
	}
	if sys.MemberCount != 1 {
		t.Errorf("expected 1 member, got %d", sys.MemberCount)
	}
	if len(sys.RequiredTypes) != 2 {
		t.Errorf("expected 2 required types, got %v", sys.RequiredTypes)
	}

	if stats.SingletonCount != 1 || len(stats.SingletonTypes) != 1 {
		t.Errorf("singleton stats: %d/%v", stats.SingletonCount, stats.SingletonTypes)
	}
}
