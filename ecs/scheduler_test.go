package ecs_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/plus3/strata/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerOnce(t *testing.T) {
	m := newTestModel()
	s := ecs.NewScheduler(m)

	e := m.CreateEntity()
	require.NoError(t, ecs.Insert(m, e, Position{}))
	require.NoError(t, ecs.Insert(m, e, Velocity{DX: 3}))

	frame := ecs.NewSingleton[ecs.FrameInfo](m)
	m.CreateNamedSystem("movement", func(members []ecs.Entity, model *ecs.Model) {
		dt := float32(frame.Get().DeltaTime)
		for _, member := range members {
			ecs.Get[Position](model, member).X += ecs.Get[Velocity](model, member).DX * dt
		}
	}, positionType, velocityType)

	require.NoError(t, s.Once(0.5))
	require.NoError(t, s.Once(0.5))

	assert.InDelta(t, 3.0, float64(ecs.Get[Position](m, e).X), 1e-6)
	assert.Equal(t, int64(2), frame.Get().Frame)
}

func TestSchedulerStats(t *testing.T) {
	m := newTestModel()
	s := ecs.NewScheduler(m)

	m.CreateNamedSystem("alpha", func([]ecs.Entity, *ecs.Model) {})
	m.CreateNamedSystem("beta", func([]ecs.Entity, *ecs.Model) {
		time.Sleep(time.Millisecond)
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Once(1.0/60.0))
	}

	stats := s.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)

	assert.Equal(t, "alpha", stats.Systems[0].Name)
	assert.Equal(t, "beta", stats.Systems[1].Name)
	for _, sys := range stats.Systems {
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.MaxDuration)
		assert.Equal(t, sys.TotalDuration/3, sys.AvgDuration)
	}
	assert.GreaterOrEqual(t, stats.Systems[1].MinDuration, time.Millisecond)
}

func TestSchedulerFlushesCommands(t *testing.T) {
	m := newTestModel()
	s := ecs.NewScheduler(m)

	e := m.CreateEntity()
	require.NoError(t, ecs.Insert(m, e, Health{Current: -1, Max: 5}))

	m.CreateSystem(func(members []ecs.Entity, model *ecs.Model) {
		for _, member := range members {
			if ecs.Get[Health](model, member).Current < 0 {
				s.Commands().Remove(member)
			}
		}
	}, reflect.TypeFor[Health]())

	require.NoError(t, s.Once(1.0/60.0))
	assert.False(t, m.Alive(e))
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	m := newTestModel()
	s := ecs.NewScheduler(m)

	passes := 0
	m.CreateSystem(func([]ecs.Entity, *ecs.Model) {
		passes++
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Run(ctx, time.Millisecond)

	assert.Greater(t, passes, 0)
}
