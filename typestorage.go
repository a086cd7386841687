package ecsforge

import "reflect"

// TypeStorage is a by-type singleton map, used for world-level resources
// that don't belong to any entity: at most one value of each dynamic
// type is stored, keyed by reflect.Type.
type TypeStorage struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// NewTypeStorage creates an empty by-type store.
func NewTypeStorage() *TypeStorage {
	return &TypeStorage{types: make(map[reflect.Type]int)}
}

// Put stores v, keyed by its dynamic type. Panics if a value of the same
// type already exists — callers wanting update-in-place should Remove
// first.
func (s *TypeStorage) Put(v any) {
	if v == nil {
		panic("ecsforge: TypeStorage.Put(nil)")
	}
	t := reflect.TypeOf(v)
	if _, ok := s.types[t]; ok {
		panic("ecsforge: TypeStorage already holds a value of type " + t.String())
	}
	var id int
	if n := len(s.freeIDs); n > 0 {
		id = s.freeIDs[n-1]
		s.freeIDs = s.freeIDs[:n-1]
		s.items[id] = v
	} else {
		s.items = append(s.items, v)
		id = len(s.items) - 1
	}
	s.types[t] = id
}

// TypeContains reports whether a value of type T is stored.
func TypeContains[T any](s *TypeStorage) bool {
	_, ok := s.types[reflect.TypeFor[T]()]
	return ok
}

// TypeGetOpt returns the stored value of type T and true, or the zero value and
// false.
func TypeGetOpt[T any](s *TypeStorage) (T, bool) {
	var zero T
	id, ok := s.types[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return s.items[id].(T), true
}

// TypeGet returns the stored value of type T, panicking if absent — a
// programmer error, matching the rest of the core's accessor contract.
func TypeGet[T any](s *TypeStorage) T {
	v, ok := TypeGetOpt[T](s)
	if !ok {
		panic("ecsforge: TypeStorage has no value of the requested type")
	}
	return v
}

// TypeRemove deletes and returns the stored value of type T, if any,
// freeing its slot for reuse.
func TypeRemove[T any](s *TypeStorage) (T, bool) {
	var zero T
	t := reflect.TypeFor[T]()
	id, ok := s.types[t]
	if !ok {
		return zero, false
	}
	v := s.items[id].(T)
	s.items[id] = nil
	delete(s.types, t)
	s.freeIDs = append(s.freeIDs, id)
	return v, true
}

// Clone produces a copy with its own items slice and a fresh keying map,
// so adding/removing entries in one never affects the other. The items
// are copied as interface values, not deep-copied: a value stored by
// value cannot be changed through either copy, but a value stored as a
// pointer (or one holding slices or maps) shares its referenced data
// between the clone and the original.
func (s *TypeStorage) Clone() *TypeStorage {
	c := &TypeStorage{
		items:   make([]any, len(s.items)),
		types:   make(map[reflect.Type]int, len(s.types)),
		freeIDs: append([]int(nil), s.freeIDs...),
	}
	copy(c.items, s.items)
	for k, v := range s.types {
		c.types[k] = v
	}
	return c
}
