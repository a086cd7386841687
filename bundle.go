package ecsforge

import "reflect"

// Bundle is a compile-time-known tuple of component values inserted
// atomically. Implementations are the hand-written BundleN family below.
type Bundle interface {
	// descriptors returns one ComponentDescriptor per field, in field
	// order.
	descriptors() []ComponentDescriptor
	// write stores each field into its column at row, given the
	// already-interned ComponentIds in the same field order.
	write(ids []ComponentId, t *ComponentTable, row uint32)
	// typeKey identifies this concrete Bundle type (including its type
	// parameters and field names) for the edge cache. Two distinct
	// Bundle types that expand to the same component set share an
	// archetype but not an edge-cache entry — accepted, not a bug.
	typeKey() uint64
}

func bundleTypeKey(shape string) uint64 {
	return hash64(shape)
}

func writeComponent[T any](col *ComponentColumn, row uint32, v T) {
	if col.Blob.ItemSize() == 0 {
		return
	}
	*columnAt[T](col, int(row)) = v
}

// Bundle1 inserts a single component.
type Bundle1[A any] struct {
	A     A
	NameA string
}

func (b Bundle1[A]) descriptors() []ComponentDescriptor {
	return []ComponentDescriptor{DescriptorFor[A](b.NameA)}
}

func (b Bundle1[A]) write(ids []ComponentId, t *ComponentTable, row uint32) {
	col, _ := t.Column(ids[0])
	writeComponent(col, row, b.A)
}

func (b Bundle1[A]) typeKey() uint64 {
	return bundleTypeKey(reflect.TypeOf(b).String() + "|" + b.NameA)
}

// Bundle2 inserts two components atomically.
type Bundle2[A, B any] struct {
	A     A
	B     B
	NameA string
	NameB string
}

func (b Bundle2[A, B]) descriptors() []ComponentDescriptor {
	return []ComponentDescriptor{DescriptorFor[A](b.NameA), DescriptorFor[B](b.NameB)}
}

func (b Bundle2[A, B]) write(ids []ComponentId, t *ComponentTable, row uint32) {
	col0, _ := t.Column(ids[0])
	writeComponent(col0, row, b.A)
	col1, _ := t.Column(ids[1])
	writeComponent(col1, row, b.B)
}

func (b Bundle2[A, B]) typeKey() uint64 {
	return bundleTypeKey(reflect.TypeOf(b).String() + "|" + b.NameA + "|" + b.NameB)
}

// Bundle3 inserts three components atomically.
type Bundle3[A, B, C any] struct {
	A     A
	B     B
	C     C
	NameA string
	NameB string
	NameC string
}

func (b Bundle3[A, B, C]) descriptors() []ComponentDescriptor {
	return []ComponentDescriptor{DescriptorFor[A](b.NameA), DescriptorFor[B](b.NameB), DescriptorFor[C](b.NameC)}
}

func (b Bundle3[A, B, C]) write(ids []ComponentId, t *ComponentTable, row uint32) {
	col0, _ := t.Column(ids[0])
	writeComponent(col0, row, b.A)
	col1, _ := t.Column(ids[1])
	writeComponent(col1, row, b.B)
	col2, _ := t.Column(ids[2])
	writeComponent(col2, row, b.C)
}

func (b Bundle3[A, B, C]) typeKey() uint64 {
	return bundleTypeKey(reflect.TypeOf(b).String() + "|" + b.NameA + "|" + b.NameB + "|" + b.NameC)
}

// Bundle4 inserts four components atomically.
type Bundle4[A, B, C, D any] struct {
	A     A
	B     B
	C     C
	D     D
	NameA string
	NameB string
	NameC string
	NameD string
}

func (b Bundle4[A, B, C, D]) descriptors() []ComponentDescriptor {
	return []ComponentDescriptor{
		DescriptorFor[A](b.NameA), DescriptorFor[B](b.NameB),
		DescriptorFor[C](b.NameC), DescriptorFor[D](b.NameD),
	}
}

func (b Bundle4[A, B, C, D]) write(ids []ComponentId, t *ComponentTable, row uint32) {
	col0, _ := t.Column(ids[0])
	writeComponent(col0, row, b.A)
	col1, _ := t.Column(ids[1])
	writeComponent(col1, row, b.B)
	col2, _ := t.Column(ids[2])
	writeComponent(col2, row, b.C)
	col3, _ := t.Column(ids[3])
	writeComponent(col3, row, b.D)
}

func (b Bundle4[A, B, C, D]) typeKey() uint64 {
	return bundleTypeKey(reflect.TypeOf(b).String() + "|" + b.NameA + "|" + b.NameB + "|" + b.NameC + "|" + b.NameD)
}

// CombineBundles flattens any number of bundles into one, associatively,
// de-duplicating components by InstanceTypeID — later bundles win on
// overlap, mirroring how inserting an already-present component onto a
// live entity clobbers its value rather than erroring.
func CombineBundles(bundles ...Bundle) Bundle {
	return combinedBundle{bundles: bundles}
}

type combinedBundle struct {
	bundles []Bundle
}

func (c combinedBundle) descriptors() []ComponentDescriptor {
	byInstance := make(map[uint64]int)
	var out []ComponentDescriptor
	for _, b := range c.bundles {
		for _, d := range b.descriptors() {
			if idx, ok := byInstance[d.InstanceTypeID]; ok {
				out[idx] = d
				continue
			}
			byInstance[d.InstanceTypeID] = len(out)
			out = append(out, d)
		}
	}
	return out
}

func (c combinedBundle) write(ids []ComponentId, t *ComponentTable, row uint32) {
	// Re-derive per-sub-bundle id slices by descriptor position, since the
	// combined id slice is keyed to the combined (de-duplicated)
	// descriptor list.
	descs := c.descriptors()
	idByInstance := make(map[uint64]ComponentId, len(descs))
	for i, d := range descs {
		idByInstance[d.InstanceTypeID] = ids[i]
	}
	for _, b := range c.bundles {
		subDescs := b.descriptors()
		subIDs := make([]ComponentId, len(subDescs))
		for i, d := range subDescs {
			subIDs[i] = idByInstance[d.InstanceTypeID]
		}
		b.write(subIDs, t, row)
	}
}

func (c combinedBundle) typeKey() uint64 {
	var keys []byte
	for _, b := range c.bundles {
		k := b.typeKey()
		for i := 0; i < 8; i++ {
			keys = append(keys, byte(k>>(8*i)))
		}
	}
	return hash64Bytes(keys)
}
