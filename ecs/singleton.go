package ecs

import "reflect"

// AddSingleton stores a single component instance on the model that is not
// associated with any entity. Use this for global state such as world
// configuration or frame timing. The value (a T or *T) is copied; later
// reads share one instance. Adding a second singleton of the same type
// replaces the first.
func (m *Model) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	v := reflect.ValueOf(value)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		v = v.Elem()
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	m.singletons[t] = ptr.Interface()
}

// SingletonCount returns the number of singleton instances on the model.
func (m *Model) SingletonCount() int {
	return len(m.singletons)
}

func (m *Model) getSingleton(t reflect.Type) any {
	return m.singletons[t]
}

// Singleton provides typed access to a model singleton.
type Singleton[T any] struct {
	model *Model
	ptr   *T
}

// NewSingleton creates a Singleton accessor for the given model. If the
// singleton does not exist yet it is created, from initializer when given or
// the zero value otherwise, so it is guaranteed to exist after the call.
func NewSingleton[T any](m *Model, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if m.getSingleton(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		m.AddSingleton(value)
	}
	s := &Singleton[T]{}
	s.Init(m)
	return s
}

// Init binds the accessor to a model and refreshes the cached pointer.
func (s *Singleton[T]) Init(m *Model) {
	s.model = m
	s.refresh()
}

// Get returns a pointer to the singleton, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added to the model.
func (s *Singleton[T]) Exists() bool {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr != nil
}

func (s *Singleton[T]) refresh() {
	if s.model == nil {
		return
	}
	if v := s.model.getSingleton(reflect.TypeFor[T]()); v != nil {
		s.ptr = v.(*T)
	} else {
		s.ptr = nil
	}
}
