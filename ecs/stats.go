package ecs

// ModelStats is a point-in-time summary of a model's storage and systems.
type ModelStats struct {
	EntityCount int
	BlockCount  int
	// CapacitySlots counts allocated access-record slots, live or free.
	CapacitySlots int
	FreeSlots     int

	ComponentTables []ComponentTableStats
	Systems         []SystemMembershipStats

	SingletonCount int
	SingletonTypes []string
}

// ComponentTableStats summarizes one dense component table.
type ComponentTableStats struct {
	ID   ComponentID
	Type string
	Len  int
}

// SystemMembershipStats summarizes one system's requirement and membership.
type SystemMembershipStats struct {
	Handle        SystemHandle
	Name          string
	RequiredTypes []string
	MemberCount   int
}

// CollectStats gathers current model statistics. Cost is proportional to the
// number of component types, systems and singletons, not entities.
func (m *Model) CollectStats() *ModelStats {
	stats := &ModelStats{
		EntityCount:    m.spawned.len(),
		BlockCount:     m.arena.blockCount(),
		CapacitySlots:  m.arena.capacity(),
		FreeSlots:      m.arena.freeSlots(),
		SingletonCount: len(m.singletons),
	}

	for p, table := range m.tables {
		stats.ComponentTables = append(stats.ComponentTables, ComponentTableStats{
			ID:   ComponentID(p),
			Type: m.registry.typeOf(ComponentID(p)).String(),
			Len:  table.len(),
		})
	}

	for _, h := range m.order {
		sys := m.systems[h]
		var required []string
		for p := range m.tables {
			if sys.required.Has(ComponentID(p)) {
				required = append(required, m.registry.typeOf(ComponentID(p)).String())
			}
		}
		stats.Systems = append(stats.Systems, SystemMembershipStats{
			Handle:        h,
			Name:          sys.name,
			RequiredTypes: required,
			MemberCount:   sys.members.len(),
		})
	}

	for t := range m.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	return stats
}
