package ecs

import (
	"errors"
	"reflect"
)

// Commands buffers structural mutations for deferred execution. System
// callbacks already get snapshot semantics from Model.Process and may mutate
// immediately; Commands is for callers that prefer to collect a pass's
// mutations and apply them in one place, such as the Scheduler's end of
// frame.
type Commands struct {
	creates []createCommand
	deletes []Entity
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type createCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Create queues creation of one entity carrying the given components.
func (c *Commands) Create(components ...any) {
	c.creates = append(c.creates, createCommand{components: components})
}

// Remove queues removal of an entity.
func (c *Commands) Remove(e Entity) {
	c.deletes = append(c.deletes, e)
}

// AddComponent queues a component insertion.
func (c *Commands) AddComponent(e Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: e, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(e Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: e, compType: compType})
}

// Defer queues an arbitrary function, run after all structural commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies the buffered commands to m and resets the buffer. Order:
// entity removals, component removals, component insertions, entity
// creations, deferred functions. Component commands against an entity
// removed in the same flush are skipped rather than failed. Individual
// command errors are collected and joined; later commands still run.
func (c *Commands) Flush(m *Model) error {
	var errs []error

	removed := make(map[Entity]bool, len(c.deletes))
	for _, e := range c.deletes {
		if err := m.RemoveEntity(e); err != nil {
			errs = append(errs, err)
			continue
		}
		removed[e] = true
	}

	for _, cmd := range c.removes {
		if removed[cmd.entity] {
			continue
		}
		if err := m.RemoveComponent(cmd.entity, cmd.compType); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.adds {
		if removed[cmd.entity] {
			continue
		}
		if err := m.AddComponent(cmd.entity, cmd.component); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.creates {
		e := m.CreateEntity()
		for _, component := range cmd.components {
			if err := m.AddComponent(e, component); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.creates = c.creates[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
