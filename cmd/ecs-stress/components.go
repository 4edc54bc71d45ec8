package main

import (
	"math/rand"
	"reflect"

	"github.com/plus3/strata/ecs"
)

type Position struct{ X, Y, Z float64 }
type Velocity struct{ DX, DY, DZ float64 }
type Acceleration struct{ AX, AY, AZ float64 }
type Health struct{ Current, Max int32 }
type Lifetime struct{ Remaining float64 }
type Spin struct{ Angle, Rate float64 }
type Mass struct{ Kg float64 }
type Label struct{ Name string }

var componentTypes = []reflect.Type{
	reflect.TypeFor[Position](),
	reflect.TypeFor[Velocity](),
	reflect.TypeFor[Acceleration](),
	reflect.TypeFor[Health](),
	reflect.TypeFor[Lifetime](),
	reflect.TypeFor[Spin](),
	reflect.TypeFor[Mass](),
	reflect.TypeFor[Label](),
}

func RegisterStressComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Acceleration](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Spin](registry)
	ecs.RegisterComponent[Mass](registry)
	ecs.RegisterComponent[Label](registry)
}

func randomComponent(rng *rand.Rand, id int) any {
	switch id {
	case 0:
		return Position{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 100}
	case 1:
		return Velocity{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	case 2:
		return Acceleration{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	case 3:
		return Health{Current: int32(rng.Intn(100) + 1), Max: 100}
	case 4:
		return Lifetime{Remaining: rng.Float64() * 30}
	case 5:
		return Spin{Rate: rng.Float64() * 6.28}
	case 6:
		return Mass{Kg: rng.Float64() * 10}
	default:
		return Label{Name: "stress"}
	}
}

// SpawnRandomEntity creates an entity with numComponents distinct random
// component types and returns it.
func SpawnRandomEntity(m *ecs.Model, rng *rand.Rand, numComponents int) ecs.Entity {
	e := m.CreateEntity()
	for _, id := range rng.Perm(len(componentTypes))[:numComponents] {
		if err := m.AddComponent(e, randomComponent(rng, id)); err != nil {
			panic(err)
		}
	}
	return e
}

// InstallStressSystems registers the simulation systems and returns how many
// it created. Deaths go through the scheduler's command buffer so membership
// stays stable within a pass.
func InstallStressSystems(m *ecs.Model, s *ecs.Scheduler) int {
	frame := ecs.NewSingleton[ecs.FrameInfo](m)

	m.CreateNamedSystem("movement", func(members []ecs.Entity, model *ecs.Model) {
		dt := frame.Get().DeltaTime
		for _, e := range members {
			p := ecs.Get[Position](model, e)
			v := ecs.Get[Velocity](model, e)
			p.X += v.DX * dt
			p.Y += v.DY * dt
			p.Z += v.DZ * dt
		}
	}, reflect.TypeFor[Position](), reflect.TypeFor[Velocity]())

	m.CreateNamedSystem("acceleration", func(members []ecs.Entity, model *ecs.Model) {
		dt := frame.Get().DeltaTime
		for _, e := range members {
			v := ecs.Get[Velocity](model, e)
			a := ecs.Get[Acceleration](model, e)
			v.DX += a.AX * dt
			v.DY += a.AY * dt
			v.DZ += a.AZ * dt
		}
	}, reflect.TypeFor[Velocity](), reflect.TypeFor[Acceleration]())

	m.CreateNamedSystem("spin", func(members []ecs.Entity, model *ecs.Model) {
		dt := frame.Get().DeltaTime
		for _, e := range members {
			sp := ecs.Get[Spin](model, e)
			sp.Angle += sp.Rate * dt
		}
	}, reflect.TypeFor[Spin]())

	m.CreateNamedSystem("aging", func(members []ecs.Entity, model *ecs.Model) {
		dt := frame.Get().DeltaTime
		for _, e := range members {
			lt := ecs.Get[Lifetime](model, e)
			lt.Remaining -= dt
			if lt.Remaining <= 0 {
				s.Commands().Remove(e)
			}
		}
	}, reflect.TypeFor[Lifetime]())

	m.CreateNamedSystem("regen", func(members []ecs.Entity, model *ecs.Model) {
		for _, e := range members {
			h := ecs.Get[Health](model, e)
			if h.Current < h.Max {
				h.Current++
			}
		}
	}, reflect.TypeFor[Health]())

	return m.SystemCount()
}
