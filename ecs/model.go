package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// Model coordinates entity lifecycle, component storage and system
// membership. It owns a stable-address access arena (one record per entity,
// one offset slot per component type), one dense table per registered
// component type, and every registered system.
//
// A Model is not safe for concurrent structural mutation: entity and system
// creation/removal and component insertion/removal share unsynchronized
// state. Wrap calls with external locking if multiple goroutines mutate the
// same model.
type Model struct {
	registry *ComponentRegistry
	arena    *accessArena
	tables   []iComponentTable

	spawned *entitySet

	systems    map[SystemHandle]*system
	order      []SystemHandle
	nextSystem SystemHandle
	singletons map[reflect.Type]any
}

// NewModel builds a model over the given registry with DefaultBlockSize
// access records per arena block.
func NewModel(registry *ComponentRegistry) *Model {
	return NewModelWithBlockSize(registry, DefaultBlockSize)
}

// NewModelWithBlockSize builds a model whose arena allocates blockSize
// access records at a time. Larger blocks amortize allocation; smaller ones
// waste less on tiny populations. Panics if the registry is nil or empty or
// blockSize is not positive: model configuration errors are rejected at
// construction, never discovered at runtime.
func NewModelWithBlockSize(registry *ComponentRegistry, blockSize int) *Model {
	if registry == nil {
		panic("model requires a component registry")
	}
	if registry.Len() == 0 {
		panic("model requires at least one registered component type")
	}
	if blockSize <= 0 {
		panic(fmt.Sprintf("block size must be positive, got %d", blockSize))
	}
	registry.sealed = true

	tables := make([]iComponentTable, registry.Len())
	for i, factory := range registry.factories {
		tables[i] = factory()
	}

	return &Model{
		registry:   registry,
		arena:      newAccessArena(blockSize, registry.Len()),
		tables:     tables,
		spawned:    newEntitySet(256),
		systems:    make(map[SystemHandle]*system),
		nextSystem: 1,
		singletons: make(map[reflect.Type]any),
	}
}

// CreateEntity allocates a fresh entity with no components. Its access
// record address stays valid until RemoveEntity, no matter how many further
// entities are created.
func (m *Model) CreateEntity() Entity {
	slot, generation := m.arena.alloc()
	e := newEntity(slot, generation)
	m.spawned.add(e)
	m.addToSystems(e, Signature{})
	return e
}

// RemoveEntity releases every component the entity holds, patches any
// displaced owners, frees its access record for reuse and drops it from
// every system's membership.
func (m *Model) RemoveEntity(e Entity) error {
	if !m.Alive(e) {
		return DeadEntityError{e}
	}
	for p := range m.tables {
		if m.arena.has(e.Index(), ComponentID(p)) {
			m.removeComponentAt(e, ComponentID(p))
		}
	}
	m.arena.release(e.Index())
	m.spawned.remove(e)
	for _, sys := range m.systems {
		sys.members.remove(e)
	}
	return nil
}

// Alive reports whether e refers to a currently spawned entity. A handle
// whose slot has been freed (and possibly reused) is not alive.
func (m *Model) Alive(e Entity) bool {
	return !e.IsZero() && m.arena.generation(e.Index()) == e.Generation()
}

// Registry returns the (sealed) component registry the model was built with.
func (m *Model) Registry() *ComponentRegistry {
	return m.registry
}

// EntityCount returns the number of currently spawned entities.
func (m *Model) EntityCount() int {
	return m.spawned.len()
}

// Entities returns a copy of the currently spawned entities, in no
// particular order.
func (m *Model) Entities() []Entity {
	return m.spawned.snapshot()
}

// SignatureOf recomputes the entity's signature from its access record.
func (m *Model) SignatureOf(e Entity) (Signature, error) {
	if !m.Alive(e) {
		return Signature{}, DeadEntityError{e}
	}
	return m.signatureOf(e.Index()), nil
}

func (m *Model) signatureOf(slot uint32) Signature {
	var s Signature
	for p := range m.tables {
		if m.arena.has(slot, ComponentID(p)) {
			s.set(ComponentID(p))
		}
	}
	return s
}

// Insert stores value in T's table for e and records the offset in e's
// access record. Inserting a type the entity already has is rejected:
// silently allowing it would orphan the old offset and desynchronize owner
// tracking.
func Insert[T any](m *Model, e Entity, value T) error {
	id, ok := m.registry.lookup(reflect.TypeFor[T]())
	if !ok {
		return UnregisteredComponentError{reflect.TypeFor[T]()}
	}
	if !m.Alive(e) {
		return DeadEntityError{e}
	}
	if m.arena.has(e.Index(), id) {
		return ComponentExistsError{m.registry.typeOf(id)}
	}

	table := m.tables[id].(*componentTable[T])
	offset := table.insert(e, value)
	m.arena.set(e.Index(), id, offset)
	m.addToSystems(e, m.signatureOf(e.Index()))
	return nil
}

// Remove releases e's T value, patches the entity whose data was relocated
// by the swap removal, and drops e from every system whose required
// signature is no longer satisfied.
func Remove[T any](m *Model, e Entity) error {
	id, ok := m.registry.lookup(reflect.TypeFor[T]())
	if !ok {
		return UnregisteredComponentError{reflect.TypeFor[T]()}
	}
	return m.removeComponent(e, id)
}

// Get returns a pointer to e's T value, or nil if e is not alive or does not
// have T. The pointer is invalidated by the next structural mutation on T's
// table.
func Get[T any](m *Model, e Entity) *T {
	id, ok := m.registry.lookup(reflect.TypeFor[T]())
	if !ok || !m.Alive(e) || !m.arena.has(e.Index(), id) {
		return nil
	}
	table := m.tables[id].(*componentTable[T])
	return table.access(m.arena.get(e.Index(), id))
}

// Has reports whether e is alive and currently has a T value.
func Has[T any](m *Model, e Entity) bool {
	id, ok := m.registry.lookup(reflect.TypeFor[T]())
	return ok && m.Alive(e) && m.arena.has(e.Index(), id)
}

// AddComponent is the type-erased counterpart of Insert, accepting a T or *T
// value. Used by the command buffer and reflection-driven tooling.
func (m *Model) AddComponent(e Entity, component any) error {
	t := reflect.TypeOf(component)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	id, ok := m.registry.lookup(t)
	if !ok {
		return UnregisteredComponentError{t}
	}
	if !m.Alive(e) {
		return DeadEntityError{e}
	}
	if m.arena.has(e.Index(), id) {
		return ComponentExistsError{t}
	}

	offset, ok := m.tables[id].insertErased(e, component)
	if !ok {
		return UnregisteredComponentError{reflect.TypeOf(component)}
	}
	m.arena.set(e.Index(), id, offset)
	m.addToSystems(e, m.signatureOf(e.Index()))
	return nil
}

// RemoveComponent is the type-erased counterpart of Remove.
func (m *Model) RemoveComponent(e Entity, t reflect.Type) error {
	id, ok := m.registry.lookup(t)
	if !ok {
		return UnregisteredComponentError{t}
	}
	return m.removeComponent(e, id)
}

// GetComponent returns a pointer (as any) to e's value of the given type, or
// nil if e is not alive or does not have it.
func (m *Model) GetComponent(e Entity, t reflect.Type) any {
	id, ok := m.registry.lookup(t)
	if !ok || !m.Alive(e) || !m.arena.has(e.Index(), id) {
		return nil
	}
	return m.tables[id].accessErased(m.arena.get(e.Index(), id))
}

// HasComponent reports whether e is alive and has a value of the given type.
func (m *Model) HasComponent(e Entity, t reflect.Type) bool {
	id, ok := m.registry.lookup(t)
	return ok && m.Alive(e) && m.arena.has(e.Index(), id)
}

// ComponentTypesOf returns the types e currently holds, in ComponentID order.
func (m *Model) ComponentTypesOf(e Entity) []reflect.Type {
	if !m.Alive(e) {
		return nil
	}
	var types []reflect.Type
	for p := range m.tables {
		if m.arena.has(e.Index(), ComponentID(p)) {
			types = append(types, m.registry.typeOf(ComponentID(p)))
		}
	}
	return types
}

func (m *Model) removeComponent(e Entity, id ComponentID) error {
	if !m.Alive(e) {
		return DeadEntityError{e}
	}
	if !m.arena.has(e.Index(), id) {
		return ComponentMissingError{m.registry.typeOf(id)}
	}
	m.removeComponentAt(e, id)
	m.dropFromSystems(e, m.signatureOf(e.Index()))
	return nil
}

// removeComponentAt releases e's entry in table id. The caller must know the
// entry is present.
func (m *Model) removeComponentAt(e Entity, id ComponentID) {
	offset := m.arena.get(e.Index(), id)
	moved := m.tables[id].removeAt(offset)
	m.arena.reset(e.Index(), id)
	m.patchDisplacedOwner(e, moved, id, offset)
}

// patchDisplacedOwner redirects the displaced entity's access record to the
// offset its data now occupies after a swap removal. Skipped when the
// removed entity was last in the table and nothing moved. Forgetting this
// step desynchronizes owner tracking silently, so it lives in one place.
func (m *Model) patchDisplacedOwner(removed, moved Entity, id ComponentID, offset uint32) {
	if moved != removed {
		m.arena.set(moved.Index(), id, offset)
	}
}

// CreateSystem registers fn over the given required component types and
// returns its handle. Membership is seeded by scanning every spawned entity;
// this is the one O(entities) operation, paid once per system. A system with
// no required types matches every entity. Panics on unregistered types.
func (m *Model) CreateSystem(fn ProcessFunc, types ...reflect.Type) SystemHandle {
	return m.CreateNamedSystem("", fn, types...)
}

// CreateNamedSystem is CreateSystem with a label used by scheduler stats and
// debug tooling.
func (m *Model) CreateNamedSystem(name string, fn ProcessFunc, types ...reflect.Type) SystemHandle {
	var required Signature
	for _, t := range types {
		id, ok := m.registry.lookup(t)
		if !ok {
			panic("component type " + t.String() + " not registered")
		}
		required.set(id)
	}

	handle := m.nextSystem
	m.nextSystem++
	if name == "" {
		name = fmt.Sprintf("system-%d", handle)
	}

	sys := &system{
		handle:   handle,
		name:     name,
		required: required,
		members:  newEntitySet(256),
		fn:       fn,
	}
	m.systems[handle] = sys
	m.order = append(m.order, handle)

	for _, e := range m.spawned.dense {
		if m.signatureOf(e.Index()).ContainsAll(required) {
			sys.members.add(e)
		}
	}
	return handle
}

// RemoveSystem drops the system entirely; no further membership maintenance
// references it and its handle is never reissued.
func (m *Model) RemoveSystem(h SystemHandle) error {
	if _, ok := m.systems[h]; !ok {
		return DeadSystemError{h}
	}
	delete(m.systems, h)
	m.order = slices.DeleteFunc(m.order, func(o SystemHandle) bool { return o == h })
	return nil
}

// Members returns a copy of the system's current membership set.
func (m *Model) Members(h SystemHandle) ([]Entity, error) {
	sys, ok := m.systems[h]
	if !ok {
		return nil, DeadSystemError{h}
	}
	return sys.members.snapshot(), nil
}

// RequiredSignature returns the signature the system was created with.
func (m *Model) RequiredSignature(h SystemHandle) (Signature, error) {
	sys, ok := m.systems[h]
	if !ok {
		return Signature{}, DeadSystemError{h}
	}
	return sys.required, nil
}

// SystemName returns the system's label.
func (m *Model) SystemName(h SystemHandle) (string, error) {
	sys, ok := m.systems[h]
	if !ok {
		return "", DeadSystemError{h}
	}
	return sys.name, nil
}

// Systems returns the registered system handles in creation order.
func (m *Model) Systems() []SystemHandle {
	return slices.Clone(m.order)
}

// SystemCount returns the number of registered systems.
func (m *Model) SystemCount() int {
	return len(m.systems)
}

// Process invokes every system's callback with a snapshot of its membership,
// in system creation order. Both the system list and each membership set are
// snapshotted before their iteration, so callbacks may create and remove
// entities, mutate components, and create or remove systems mid-pass. A
// snapshot can contain entities removed earlier in the same pass; callbacks
// observe those through Alive returning false and Get returning nil. Systems
// created during the pass run on the next Process.
func (m *Model) Process() {
	for _, h := range slices.Clone(m.order) {
		_ = m.ProcessSystem(h) // removed mid-pass by an earlier callback
	}
}

// ProcessSystem invokes one system's callback with a membership snapshot.
func (m *Model) ProcessSystem(h SystemHandle) error {
	sys, ok := m.systems[h]
	if !ok {
		return DeadSystemError{h}
	}
	sys.fn(sys.members.snapshot(), m)
	return nil
}

// addToSystems adds e to every system whose requirement sig now satisfies
// and that does not already contain it. Incremental: cost scales with the
// number of systems, not entities.
func (m *Model) addToSystems(e Entity, sig Signature) {
	for _, sys := range m.systems {
		if sig.ContainsAll(sys.required) {
			sys.members.add(e)
		}
	}
}

// dropFromSystems removes e from every system whose requirement is no longer
// a subset of sig.
func (m *Model) dropFromSystems(e Entity, sig Signature) {
	for _, sys := range m.systems {
		if !sig.ContainsAll(sys.required) {
			sys.members.remove(e)
		}
	}
}
