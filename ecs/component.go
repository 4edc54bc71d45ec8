package ecs

import (
	"reflect"
	"slices"
)

// ComponentID is the dense table index assigned to a component type at
// registration time. It doubles as the type's bit position in signatures.
type ComponentID uint32

// ComponentRegistry assigns dense ComponentIDs to component types for one or
// more models. Registration happens once at startup; building a model seals
// the registry so the table set stays fixed for the model's lifetime.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentID
	types     []reflect.Type
	factories []func() iComponentTable
	sealed    bool
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentID),
	}
}

// RegisterComponent registers T and returns its assigned ComponentID.
// It must be called for each component type before any model using the
// registry is built. Registering a duplicate type, registering after the
// registry is sealed, or exceeding MaxComponentTypes panics: these are
// construction-time logic errors, never runtime conditions.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	t := reflect.TypeFor[T]()
	if r.sealed {
		panic("component registry is sealed: register all types before building a model")
	}
	if _, exists := r.ids[t]; exists {
		panic("component type " + t.String() + " registered twice")
	}
	if len(r.types) >= MaxComponentTypes {
		panic("component registry full: at most 256 component types")
	}

	id := ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func() iComponentTable {
		return &componentTable[T]{}
	})
	return id
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Types returns the registered component types in ComponentID order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return slices.Clone(r.types)
}

func (r *ComponentRegistry) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

func (r *ComponentRegistry) typeOf(id ComponentID) reflect.Type {
	return r.types[id]
}

// iComponentTable is the type-erased view of one component table, used for
// entity teardown, the command buffer and stats collection.
type iComponentTable interface {
	// insertErased appends value (a T or *T) for owner and returns the new
	// offset. It reports false if value is not of the table's type.
	insertErased(owner Entity, value any) (uint32, bool)
	// removeAt swap-removes the element at offset and returns the entity
	// whose data now occupies that offset (the removed entity itself if it
	// was last). The caller must patch the returned entity's access record.
	removeAt(offset uint32) Entity
	// accessErased returns a *T for the element at offset.
	accessErased(offset uint32) any
	ownerAt(offset uint32) Entity
	len() int
}

// componentTable stores all T values across all entities that currently have
// one, in two dense parallel sequences. owners[off] is the entity whose
// access-record slot for this table equals off; the two are kept in
// lock-step through every mutation.
type componentTable[T any] struct {
	data   []T
	owners []Entity
}

// insert appends value for owner and returns the offset it was placed at.
func (t *componentTable[T]) insert(owner Entity, value T) uint32 {
	offset := uint32(len(t.data))
	t.data = append(t.data, value)
	t.owners = append(t.owners, owner)
	return offset
}

// removeAt overwrites the element at offset with the last element and
// shrinks the table by one. O(1) regardless of offset.
func (t *componentTable[T]) removeAt(offset uint32) Entity {
	last := len(t.data) - 1
	t.data[offset] = t.data[last]
	t.owners[offset] = t.owners[last]
	moved := t.owners[offset]

	var zero T
	t.data[last] = zero // release references held by the vacated slot
	t.data = t.data[:last]
	t.owners = t.owners[:last]
	return moved
}

// access returns a pointer to the element at offset. The pointer is
// invalidated by the next insert or removal on this table.
func (t *componentTable[T]) access(offset uint32) *T {
	return &t.data[offset]
}

func (t *componentTable[T]) insertErased(owner Entity, value any) (uint32, bool) {
	switch v := value.(type) {
	case T:
		return t.insert(owner, v), true
	case *T:
		return t.insert(owner, *v), true
	default:
		return 0, false
	}
}

func (t *componentTable[T]) accessErased(offset uint32) any {
	return &t.data[offset]
}

func (t *componentTable[T]) ownerAt(offset uint32) Entity {
	return t.owners[offset]
}

func (t *componentTable[T]) len() int {
	return len(t.data)
}
