package ecsforge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSparseSetSwapRemovePreservesMembership(t *testing.T) {
	var s SparseSet[int]
	*s.GetOrCreate(1) = 10
	*s.GetOrCreate(2) = 20

	removed := s.SwapRemove(1)
	require.Equal(t, 10, removed)

	require.True(t, s.Contains(2))
	v, ok := s.GetOpt(2)
	require.True(t, ok)
	require.Equal(t, 20, *v)
}

func TestSparseSetGetOrCreateIsIdempotent(t *testing.T) {
	var s SparseSet[int]
	p1 := s.GetOrCreate(5)
	*p1 = 42
	p2 := s.GetOrCreate(5)
	require.Equal(t, 42, *p2)
	require.Equal(t, 1, s.Len())
}

func TestSparseSetSwapRemoveLastElement(t *testing.T) {
	var s SparseSet[int]
	*s.GetOrCreate(0) = 1
	*s.GetOrCreate(1) = 2
	require.Equal(t, 2, s.SwapRemove(1))
	require.False(t, s.Contains(1))
	require.True(t, s.Contains(0))
}

func TestSparseBlobSetDiscardShrinksIndices(t *testing.T) {
	s := NewSparseBlobSet(4)
	require.NoError(t, s.Insert(1, []byte{1, 1, 1, 1}))
	require.NoError(t, s.Insert(2, []byte{2, 2, 2, 2}))
	require.NoError(t, s.Insert(3, []byte{3, 3, 3, 3}))

	s.Discard(1)
	require.Equal(t, 2, s.Len())
	require.Len(t, s.indices, 2)
	require.True(t, s.Contains(2))
	require.True(t, s.Contains(3))
	require.False(t, s.Contains(1))

	v, ok := s.GetOpt(2)
	require.True(t, ok)
	require.Equal(t, []byte{2, 2, 2, 2}, v)
}

func TestSparseBlobSetInsertOverwrites(t *testing.T) {
	s := NewSparseBlobSet(4)
	require.NoError(t, s.Insert(0, []byte{1, 2, 3, 4}))
	require.NoError(t, s.Insert(0, []byte{5, 6, 7, 8}))
	v, ok := s.GetOpt(0)
	require.True(t, ok)
	require.Equal(t, []byte{5, 6, 7, 8}, v)
	require.Equal(t, 1, s.Len())
}
