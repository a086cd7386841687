package ecsforge

import (
	"hash/fnv"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ComponentId is a small, world-scoped integer identifying a component.
// It is assigned monotonically the first time a descriptor's
// InstanceTypeID is seen by a given World and never reassigned.
type ComponentId uint32

// ComponentDescriptor describes a stored component type.
type ComponentDescriptor struct {
	TypeID         uint64
	TypeName       string
	InstanceTypeID uint64
	Align          uintptr
	Size           uintptr
	Drop           func(ptr unsafe.Pointer) // nil means no-op
}

// hash64 is a 64-bit FNV-1a, used to derive stable identifiers from type
// names and bundle type keys.
func hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func hash64Bytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}

// DescriptorFor builds the compile-time descriptor for T, optionally named
// to distinguish two columns backed by the same underlying type (e.g. two
// int fields named "hp" and "mp"). Unnamed registrations share an
// InstanceTypeID with TypeID; named ones hash TypeID together with the
// name.
func DescriptorFor[T any](name string) ComponentDescriptor {
	var zero T
	t := reflect.TypeOf(zero)
	typeID := hash64(t.String())
	instanceID := typeID
	if name != "" {
		var buf [9]byte
		buf[8] = 1
		for i := 0; i < 8; i++ {
			buf[i] = byte(typeID >> (8 * i))
		}
		instanceID = hash64Bytes(append(buf[:], name...))
	}
	return ComponentDescriptor{
		TypeID:         typeID,
		TypeName:       t.String(),
		InstanceTypeID: instanceID,
		Align:          t.Align(),
		Size:           t.Size(),
		Drop:           makeDropFn(t),
	}
}

// makeDropFn returns a drop function that zeroes out any pointer-shaped
// data a row holds before its bytes are recycled. Components built only of
// plain value fields get a nil (no-op) drop function. This exists because
// BlobVector stores rows as raw bytes reached via unsafe casts (see
// columnAt), so the garbage collector never sees pointers held
// inside a column directly; zeroing them on drop prevents a swap-removed
// row from pinning whatever it used to point to.
func makeDropFn(t reflect.Type) func(unsafe.Pointer) {
	if !containsPointerData(t) {
		return nil
	}
	return func(ptr unsafe.Pointer) {
		reflect.NewAt(t, ptr).Elem().Set(reflect.Zero(t))
	}
}

func containsPointerData(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Slice, reflect.String, reflect.UnsafePointer:
		return true
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsPointerData(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Array:
		return t.Len() > 0 && containsPointerData(t.Elem())
	default:
		return false
	}
}

// typeRegistry interns ComponentDescriptors by InstanceTypeID into
// world-scoped ComponentIds. The intern map uses intmap.Map since
// InstanceTypeID is a plain uint64 key with no need for Go's
// general-purpose map machinery.
type typeRegistry struct {
	descriptors []ComponentDescriptor
	byInstance  *intmap.Map[uint64, ComponentId]
}

func newTypeRegistry(capacity int) *typeRegistry {
	return &typeRegistry{
		descriptors: make([]ComponentDescriptor, 0, capacity),
		byInstance:  intmap.New[uint64, ComponentId](capacity),
	}
}

func (r *typeRegistry) intern(desc ComponentDescriptor) ComponentId {
	if id, ok := r.byInstance.Get(desc.InstanceTypeID); ok {
		return id
	}
	id := ComponentId(len(r.descriptors))
	r.descriptors = append(r.descriptors, desc)
	r.byInstance.Put(desc.InstanceTypeID, id)
	return id
}

func (r *typeRegistry) lookup(instanceTypeID uint64) (ComponentId, bool) {
	return r.byInstance.Get(instanceTypeID)
}

func (r *typeRegistry) descriptor(id ComponentId) ComponentDescriptor {
	return r.descriptors[id]
}
