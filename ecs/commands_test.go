package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/strata/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlushOrdering(t *testing.T) {
	m := newTestModel()
	cmds := ecs.NewCommands()

	doomed := m.CreateEntity()
	kept := m.CreateEntity()
	require.NoError(t, ecs.Insert(m, kept, Position{X: 1}))
	require.NoError(t, ecs.Insert(m, kept, Tag("keep")))

	deferRan := false
	cmds.Remove(doomed)
	cmds.RemoveComponent(kept, reflect.TypeFor[Tag]())
	cmds.AddComponent(kept, Velocity{DX: 2})
	cmds.Create(Position{X: 5}, Name{Value: "spawned"})
	cmds.Defer(func() { deferRan = true })

	require.NoError(t, cmds.Flush(m))

	assert.False(t, m.Alive(doomed))
	assert.False(t, ecs.Has[Tag](m, kept))
	assert.True(t, ecs.Has[Velocity](m, kept))
	assert.True(t, deferRan)
	assert.Equal(t, 2, m.EntityCount())

	spawned := m.NewFilter(reflect.TypeFor[Name]()).Entities()
	require.Len(t, spawned, 1)
	assert.Equal(t, "spawned", ecs.Get[Name](m, spawned[0]).Value)
}

func TestCommandsSkipOpsOnRemovedEntities(t *testing.T) {
	m := newTestModel()
	cmds := ecs.NewCommands()

	e := m.CreateEntity()
	require.NoError(t, ecs.Insert(m, e, Position{}))

	// Component commands against an entity removed in the same flush are
	// dropped, not failed.
	cmds.Remove(e)
	cmds.AddComponent(e, Velocity{})
	cmds.RemoveComponent(e, reflect.TypeFor[Position]())

	require.NoError(t, cmds.Flush(m))
	assert.False(t, m.Alive(e))
}

func TestCommandsFlushCollectsErrors(t *testing.T) {
	m := newTestModel()
	cmds := ecs.NewCommands()

	e := m.CreateEntity()
	require.NoError(t, ecs.Insert(m, e, Position{}))

	cmds.AddComponent(e, Position{}) // duplicate
	cmds.AddComponent(e, Velocity{}) // still applied

	err := cmds.Flush(m)
	assert.ErrorAs(t, err, &ecs.ComponentExistsError{})
	assert.True(t, ecs.Has[Velocity](m, e))

	// The buffer resets after a flush, errors included.
	require.NoError(t, cmds.Flush(m))
}

func TestCommandsFromSystemCallback(t *testing.T) {
	m := newTestModel()
	cmds := ecs.NewCommands()

	e := m.CreateEntity()
	require.NoError(t, ecs.Insert(m, e, Health{Current: 0, Max: 10}))

	m.CreateSystem(func(members []ecs.Entity, model *ecs.Model) {
		for _, member := range members {
			if ecs.Get[Health](model, member).Current <= 0 {
				cmds.Remove(member)
			}
		}
	}, reflect.TypeFor[Health]())

	m.Process()
	assert.True(t, m.Alive(e), "removal is deferred until flush")

	require.NoError(t, cmds.Flush(m))
	assert.False(t, m.Alive(e))
}
