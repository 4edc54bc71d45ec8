package ecs

import (
	"iter"
	"reflect"
)

// Each iterates T's dense table in storage order, calling fn with each
// owning entity and a pointer to its value. Return false from fn to stop.
// fn must not structurally mutate the model: table compaction during
// iteration would skip or repeat elements. Use a system or a Commands buffer
// for mutating passes.
func Each[T any](m *Model, fn func(Entity, *T) bool) {
	id, ok := m.registry.lookup(reflect.TypeFor[T]())
	if !ok {
		return
	}
	table := m.tables[id].(*componentTable[T])
	for i := range table.data {
		if !fn(table.owners[i], &table.data[i]) {
			return
		}
	}
}

// Filter matches entities that currently hold all of a set of component
// types. Unlike a system, a filter maintains no membership set: each
// iteration walks the smallest required table and signature-checks the
// rest, so it is suited to ad-hoc queries. Panics on unregistered types.
type Filter struct {
	model    *Model
	required Signature
	ids      []ComponentID
}

// NewFilter creates a filter over the given component types.
func (m *Model) NewFilter(types ...reflect.Type) *Filter {
	f := &Filter{model: m}
	for _, t := range types {
		id, ok := m.registry.lookup(t)
		if !ok {
			panic("component type " + t.String() + " not registered")
		}
		f.required.set(id)
		f.ids = append(f.ids, id)
	}
	return f
}

// Iter returns an iterator over the matching entities. The model must not be
// structurally mutated during iteration; collect with Entities first if the
// consumer mutates.
func (f *Filter) Iter() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		m := f.model
		if len(f.ids) == 0 {
			for _, e := range m.spawned.dense {
				if !yield(e) {
					return
				}
			}
			return
		}

		smallest := f.ids[0]
		for _, id := range f.ids[1:] {
			if m.tables[id].len() < m.tables[smallest].len() {
				smallest = id
			}
		}

		table := m.tables[smallest]
		for i := 0; i < table.len(); i++ {
			e := table.ownerAt(uint32(i))
			if m.signatureOf(e.Index()).ContainsAll(f.required) {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Entities collects the matching entities into a fresh slice.
func (f *Filter) Entities() []Entity {
	var out []Entity
	for e := range f.Iter() {
		out = append(out, e)
	}
	return out
}

// Count returns the number of matching entities.
func (f *Filter) Count() int {
	n := 0
	for range f.Iter() {
		n++
	}
	return n
}
