package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/strata/ecs"
)

type Pos struct{ X, Y float64 }
type Vel struct{ DX, DY float64 }

func Example() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Pos](registry)
	ecs.RegisterComponent[Vel](registry)

	model := ecs.NewModel(registry)

	mover := model.CreateEntity()
	_ = ecs.Insert(model, mover, Pos{X: 0, Y: 0})
	_ = ecs.Insert(model, mover, Vel{DX: 1, DY: 2})

	stationary := model.CreateEntity()
	_ = ecs.Insert(model, stationary, Pos{X: 5, Y: 5})

	model.CreateNamedSystem("movement", func(members []ecs.Entity, m *ecs.Model) {
		for _, e := range members {
			p := ecs.Get[Pos](m, e)
			v := ecs.Get[Vel](m, e)
			p.X += v.DX
			p.Y += v.DY
		}
	}, reflect.TypeFor[Pos](), reflect.TypeFor[Vel]())

	model.Process()
	model.Process()

	fmt.Println(*ecs.Get[Pos](model, mover))
	fmt.Println(*ecs.Get[Pos](model, stationary))
	// Output:
	// {2 4}
	// {5 5}
}
