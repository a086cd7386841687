package ecsforge

// SparseSet maps a sparse index space to a dense [0, count) slot space with
// O(1) insert, membership test, lookup, and swap-remove. Membership is
// encoded with a 1-based slot: a sparse entry of 0 means absent, so the
// sparse array can be zero-initialized.
type SparseSet[T any] struct {
	sparse  []uint32 // sparse[index] == 0 means absent, else dense slot+1
	dense   []T
	indices []uint32 // indices[k] == the sparse index owning dense[k]
}

// GetOrCreate returns a pointer to the value at index, creating a
// zero-valued entry if absent.
func (s *SparseSet[T]) GetOrCreate(index uint32) *T {
	s.growSparse(index)
	slot := s.sparse[index]
	if slot == 0 {
		var zero T
		s.dense = append(s.dense, zero)
		s.indices = append(s.indices, index)
		slot = uint32(len(s.dense))
		s.sparse[index] = slot
	}
	return &s.dense[slot-1]
}

// GetOpt returns the value at index and whether it is present.
func (s *SparseSet[T]) GetOpt(index uint32) (*T, bool) {
	if int(index) >= len(s.sparse) {
		return nil, false
	}
	slot := s.sparse[index]
	if slot == 0 {
		return nil, false
	}
	return &s.dense[slot-1], true
}

// Contains reports whether index is present.
func (s *SparseSet[T]) Contains(index uint32) bool {
	_, ok := s.GetOpt(index)
	return ok
}

// SlotOf returns index's 0-based position in Dense(), and whether index is
// present. Callers that need repeated, allocation-free access to the same
// entry (rather than a one-off GetOpt) can cache this and index Dense()
// directly instead of hashing index again.
func (s *SparseSet[T]) SlotOf(index uint32) (int, bool) {
	if int(index) >= len(s.sparse) {
		return 0, false
	}
	slot := s.sparse[index]
	if slot == 0 {
		return 0, false
	}
	return int(slot - 1), true
}

// Len returns the number of live entries.
func (s *SparseSet[T]) Len() int { return len(s.dense) }

// Dense returns the compact backing array of values, in no particular
// order relative to sparse index.
func (s *SparseSet[T]) Dense() []T { return s.dense }

// SwapRemove removes index, returning its prior value. Panics if index is
// not present — callers are expected to check Contains first.
func (s *SparseSet[T]) SwapRemove(index uint32) T {
	slot := s.sparse[index]
	if slot == 0 {
		panic("ecsforge: SwapRemove on absent sparse index")
	}
	k := slot - 1
	last := uint32(len(s.dense) - 1)
	val := s.dense[k]
	if k != last {
		s.dense[k] = s.dense[last]
		s.indices[k] = s.indices[last]
		s.sparse[s.indices[k]] = k + 1
	}
	s.dense = s.dense[:last]
	s.indices = s.indices[:last]
	s.sparse[index] = 0
	return val
}

func (s *SparseSet[T]) growSparse(index uint32) {
	if int(index) < len(s.sparse) {
		return
	}
	newLen := index + 1
	ns := make([]uint32, newLen)
	copy(ns, s.sparse)
	s.sparse = ns
}

// SparseBlobSet is the opaque-blob flavor of the sparse set: it backs its
// dense array with a BlobVector instead of a typed Go slice, so a single
// implementation can hold arbitrarily-typed rows behind one set of byte
// operations. It mirrors SparseSet's bookkeeping exactly.
type SparseBlobSet struct {
	sparse  []uint32
	blob    *BlobVector
	indices []uint32
}

// NewSparseBlobSet creates an empty set storing rows of itemSize bytes.
func NewSparseBlobSet(itemSize int) *SparseBlobSet {
	return &SparseBlobSet{blob: NewBlobVector(itemSize)}
}

// Insert ensures index is present, growing the dense blob if needed, and
// writes src into its row.
func (s *SparseBlobSet) Insert(index uint32, src []byte) error {
	if int(index) >= len(s.sparse) {
		ns := make([]uint32, index+1)
		copy(ns, s.sparse)
		s.sparse = ns
	}
	slot := s.sparse[index]
	if slot != 0 {
		copy(s.blob.BytesAt(int(slot-1)), src)
		return nil
	}
	if s.blob.Len() >= s.blob.Capacity() {
		if err := s.blob.Reserve(s.blob.Len() + 1); err != nil {
			return err
		}
	}
	s.blob.PushBytes(src)
	s.indices = append(s.indices, index)
	s.sparse[index] = uint32(s.blob.Len())
	return nil
}

// GetOpt returns the row bytes at index and whether it is present.
func (s *SparseBlobSet) GetOpt(index uint32) ([]byte, bool) {
	if int(index) >= len(s.sparse) {
		return nil, false
	}
	slot := s.sparse[index]
	if slot == 0 {
		return nil, false
	}
	return s.blob.BytesAt(int(slot - 1)), true
}

// Contains reports whether index is present.
func (s *SparseBlobSet) Contains(index uint32) bool {
	_, ok := s.GetOpt(index)
	return ok
}

// Len returns the number of live entries.
func (s *SparseBlobSet) Len() int { return s.blob.Len() }

// Discard removes index, swap-removing the dense row and shrinking indices
// by exactly one so the two stay the same length after every call.
func (s *SparseBlobSet) Discard(index uint32) {
	slot := s.sparse[index]
	if slot == 0 {
		panic("ecsforge: Discard on absent sparse index")
	}
	k := int(slot - 1)
	last := s.blob.Len() - 1
	if k != last {
		s.indices[k] = s.indices[last]
		s.sparse[s.indices[k]] = uint32(k + 1)
	}
	s.blob.SwapRemove(k)
	s.indices = s.indices[:last]
	s.sparse[index] = 0
}
