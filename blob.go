package ecsforge

import "github.com/kastelyn/ecsforge/errkit"

// BlobVector is a growable array of fixed-size opaque rows. It backs every
// ComponentColumn as a flat byte buffer regardless of the component's
// static Go type.
type BlobVector struct {
	itemSize int
	data     []byte
	len      int
	capacity int // rows; tracked separately so zero-sized items still have a capacity
}

// NewBlobVector creates an empty vector of items of the given byte size.
func NewBlobVector(itemSize int) *BlobVector {
	return &BlobVector{itemSize: itemSize}
}

// NewBlobVectorCapacity creates a vector pre-reserved for n rows.
func NewBlobVectorCapacity(itemSize, n int) *BlobVector {
	b := NewBlobVector(itemSize)
	_ = b.Reserve(n)
	return b
}

// Len returns the number of logical rows.
func (b *BlobVector) Len() int { return b.len }

// Capacity returns the row capacity.
func (b *BlobVector) Capacity() int { return b.capacity }

// ItemSize returns the byte size of one row.
func (b *BlobVector) ItemSize() int { return b.itemSize }

// Reserve grows the backing buffer so at least n rows fit, doubling when it
// must grow and preserving existing content. Zero-sized items only grow the
// tracked capacity counter, never the backing slice.
func (b *BlobVector) Reserve(n int) error {
	if n <= b.capacity {
		return nil
	}
	newCap := b.capacity
	if newCap == 0 {
		newCap = n
	}
	for newCap < n {
		doubled := newCap * 2
		if doubled <= newCap {
			// overflow guard: newCap*2 wrapped or failed to grow
			return errkit.AllocationFailure{Requested: n}
		}
		newCap = doubled
	}
	if b.itemSize == 0 {
		b.capacity = newCap
		return nil
	}
	byteCap := newCap * b.itemSize
	if byteCap/b.itemSize != newCap {
		return errkit.AllocationFailure{Requested: n}
	}
	nd := make([]byte, b.len*b.itemSize, byteCap)
	copy(nd, b.data)
	b.data = nd
	b.capacity = newCap
	return nil
}

// BytesAt returns the row slice for row i. Precondition: i < Capacity().
func (b *BlobVector) BytesAt(i int) []byte {
	if b.itemSize == 0 {
		return nil
	}
	start := i * b.itemSize
	return b.data[start : start+b.itemSize : start+b.itemSize]
}

// PushBytes copies size bytes into row Len(), then increments Len().
// Precondition: Len() < Capacity().
func (b *BlobVector) PushBytes(src []byte) {
	if b.itemSize > 0 {
		start := b.len * b.itemSize
		if start+b.itemSize > len(b.data) {
			b.data = b.data[:start+b.itemSize]
		}
		copy(b.data[start:start+b.itemSize], src)
	}
	b.len++
}

// PushZero appends a zero-valued row.
func (b *BlobVector) PushZero() {
	if b.itemSize > 0 {
		start := b.len * b.itemSize
		if start+b.itemSize > len(b.data) {
			b.data = b.data[:start+b.itemSize]
		}
		clear(b.data[start : start+b.itemSize])
	}
	b.len++
}

// PopBytes decrements Len() and copies the prior last row into dst.
func (b *BlobVector) PopBytes(dst []byte) {
	b.len--
	if b.itemSize > 0 {
		start := b.len * b.itemSize
		copy(dst, b.data[start:start+b.itemSize])
	}
}

// SwapRemove overwrites row i with the last row (unless i is already the
// last row) and shrinks Len() by one. It never invokes a drop function;
// callers own that.
func (b *BlobVector) SwapRemove(i int) {
	last := b.len - 1
	if b.itemSize > 0 && i != last {
		iStart := i * b.itemSize
		lStart := last * b.itemSize
		copy(b.data[iStart:iStart+b.itemSize], b.data[lStart:lStart+b.itemSize])
	}
	if b.itemSize > 0 {
		b.data = b.data[:last*b.itemSize]
	}
	b.len--
}

// Swap exchanges rows i and j using a 64-byte stack buffer, avoiding heap
// allocation for rows that fit in it; larger rows use a heap-allocated
// temporary.
func (b *BlobVector) Swap(i, j int) {
	if i == j || b.itemSize == 0 {
		return
	}
	var stackBuf [64]byte
	var buf []byte
	if b.itemSize <= len(stackBuf) {
		buf = stackBuf[:b.itemSize]
	} else {
		buf = make([]byte, b.itemSize)
	}
	iStart, jStart := i*b.itemSize, j*b.itemSize
	copy(buf, b.data[iStart:iStart+b.itemSize])
	copy(b.data[iStart:iStart+b.itemSize], b.data[jStart:jStart+b.itemSize])
	copy(b.data[jStart:jStart+b.itemSize], buf)
}
