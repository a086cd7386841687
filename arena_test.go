package ecsforge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaHandleZeroInvalid(t *testing.T) {
	var a Arena[string]
	require.Nil(t, a.Get(0))
	require.False(t, a.Contains(0))
}

func TestArenaFreeListLIFO(t *testing.T) {
	a := NewArena[string]()
	h1 := a.Insert("a")
	h2 := a.Insert("b")
	h3 := a.Insert("c")
	_ = h1
	_ = h3

	v, ok := a.Remove(h2)
	require.True(t, ok)
	require.Equal(t, "b", v)

	h4 := a.Insert("d")
	require.Equal(t, h2.Index(), h4.Index())
	require.Equal(t, h2.Version()+1, h4.Version())
}

func TestArenaStaleHandleFailsAfterRemove(t *testing.T) {
	a := NewArena[int]()
	h := a.Insert(7)
	_, ok := a.Remove(h)
	require.True(t, ok)
	require.Nil(t, a.Get(h))
}

func TestArenaFirstAllocationIsVersionOne(t *testing.T) {
	a := NewArena[int]()
	h := a.Insert(1)
	require.Equal(t, uint32(1), h.Version())
	require.Equal(t, uint32(0), h.Index())
}

func TestArenaClearAllInvalidatesOutstandingHandles(t *testing.T) {
	a := NewArena[int]()
	h1 := a.Insert(1)
	h2 := a.Insert(2)
	a.ClearAll()
	require.Nil(t, a.Get(h1))
	require.Nil(t, a.Get(h2))
	require.Equal(t, 0, a.Len())

	h3 := a.Insert(3)
	require.NotNil(t, a.Get(h3))
}

func TestArenaItemsSkipsFreeSlots(t *testing.T) {
	a := NewArena[int]()
	h1 := a.Insert(10)
	_ = a.Insert(20)
	a.Remove(h1)

	count := 0
	a.Items(func(h Handle, v *int) bool {
		count++
		require.Equal(t, 20, *v)
		return true
	})
	require.Equal(t, 1, count)
}
