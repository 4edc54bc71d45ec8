package ecs

import (
	"fmt"
	"reflect"
)

// DeadEntityError reports an operation on an entity that is not alive:
// either never created by this model or already removed (possibly with its
// slot since reused under a newer generation).
type DeadEntityError struct {
	Entity Entity
}

func (e DeadEntityError) Error() string {
	return fmt.Sprintf("%v is not alive", e.Entity)
}

// ComponentExistsError reports an insert for a component type the entity
// already has.
type ComponentExistsError struct {
	Type reflect.Type
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already present on entity: %s", e.Type)
}

// ComponentMissingError reports a removal of a component type the entity
// does not have.
type ComponentMissingError struct {
	Type reflect.Type
}

func (e ComponentMissingError) Error() string {
	return fmt.Sprintf("component not present on entity: %s", e.Type)
}

// UnregisteredComponentError reports use of a component type that was never
// registered with the model's registry.
type UnregisteredComponentError struct {
	Type reflect.Type
}

func (e UnregisteredComponentError) Error() string {
	return fmt.Sprintf("component type not registered: %s", e.Type)
}

// DeadSystemError reports an operation on a system handle that was never
// issued by this model or whose system has been removed.
type DeadSystemError struct {
	Handle SystemHandle
}

func (e DeadSystemError) Error() string {
	return fmt.Sprintf("system %d does not exist", e.Handle)
}
