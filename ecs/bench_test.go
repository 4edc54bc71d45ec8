package ecs_test

import (
	"testing"

	"github.com/plus3/strata/ecs"
)

func BenchmarkCreateEntity(b *testing.B) {
	m := newTestModel()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.CreateEntity()
	}
}

func BenchmarkInsert(b *testing.B) {
	m := newTestModel()

	entities := make([]ecs.Entity, b.N)
	for i := range entities {
		entities[i] = m.CreateEntity()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.Insert(m, entities[i], Position{X: 1, Y: 2})
	}
}

func BenchmarkGet(b *testing.B) {
	m := newTestModel()
	e := m.CreateEntity()
	_ = ecs.Insert(m, e, Position{X: 1, Y: 2})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.Get[Position](m, e)
	}
}

func BenchmarkRemoveEntity(b *testing.B) {
	m := newTestModel()

	entities := make([]ecs.Entity, b.N)
	for i := range entities {
		entities[i] = m.CreateEntity()
		_ = ecs.Insert(m, entities[i], Position{})
		_ = ecs.Insert(m, entities[i], Velocity{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.RemoveEntity(entities[i])
	}
}

func BenchmarkMembershipMaintenance(b *testing.B) {
	m := newTestModel()
	for i := 0; i < 8; i++ {
		m.CreateSystem(func([]ecs.Entity, *ecs.Model) {}, positionType, velocityType)
	}

	entities := make([]ecs.Entity, b.N)
	for i := range entities {
		entities[i] = m.CreateEntity()
		_ = ecs.Insert(m, entities[i], Position{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Each pair of calls moves the entity across every system boundary.
		_ = ecs.Insert(m, entities[i], Velocity{})
		_ = ecs.Remove[Velocity](m, entities[i])
	}
}

func BenchmarkProcess(b *testing.B) {
	m := newTestModel()
	m.CreateSystem(func(members []ecs.Entity, model *ecs.Model) {
		for _, e := range members {
			ecs.Get[Position](model, e).X += 1
		}
	}, positionType)

	for i := 0; i < 1024; i++ {
		e := m.CreateEntity()
		_ = ecs.Insert(m, e, Position{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Process()
	}
}
