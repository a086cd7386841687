package ecsforge

import "unsafe"

// ComponentColumn is one archetype's storage for a single component: the
// blob vector holding its rows plus the drop function for releasing a
// row's resources. Invariant: column.Len() == table.EntityCount() for
// every column of a table at rest.
type ComponentColumn struct {
	ID   ComponentId
	Drop func(ptr unsafe.Pointer)
	Blob *BlobVector
}

func newColumn(id ComponentId, desc ComponentDescriptor, capacity int) *ComponentColumn {
	return &ComponentColumn{
		ID:   id,
		Drop: desc.Drop,
		Blob: NewBlobVectorCapacity(int(desc.Size), capacity),
	}
}

func (c *ComponentColumn) dropRow(row int) {
	if c.Drop == nil || c.Blob.ItemSize() == 0 {
		return
	}
	bytes := c.Blob.BytesAt(row)
	c.Drop(unsafe.Pointer(&bytes[0]))
}

// columnAt reinterprets the column's row as *T. Caller guarantees the static
// type matches the descriptor this column was created from.
func columnAt[T any](c *ComponentColumn, row int) *T {
	bytes := c.Blob.BytesAt(row)
	if len(bytes) == 0 {
		var zero T
		return &zero
	}
	return (*T)(unsafe.Pointer(&bytes[0]))
}
