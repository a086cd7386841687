package ecsforge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityRegistryAllocFreeReuse(t *testing.T) {
	r := NewEntityRegistry(5)
	var allocated []Entity
	for i := 0; i < 5; i++ {
		e, err := r.Alloc()
		require.NoError(t, err)
		allocated = append(allocated, e)
	}
	require.Equal(t, 5, r.LiveCount())

	last := allocated[4]
	require.NoError(t, r.Free(last))
	require.Equal(t, 4, r.LiveCount())

	next, err := r.Alloc()
	require.NoError(t, err)
	require.Equal(t, last.ID, next.ID)
	require.NotEqual(t, last.Generation, next.Generation)
}

func TestEntityRegistryFreeAndGetFailOnStale(t *testing.T) {
	r := NewEntityRegistry(4)
	e, err := r.Alloc()
	require.NoError(t, err)
	require.NoError(t, r.Free(e))

	_, err = r.Get(e)
	require.Error(t, err)
	require.Error(t, r.Free(e))
}

func TestEntityRegistryGrowsOnExhaustion(t *testing.T) {
	r := NewEntityRegistry(1)
	for i := 0; i < entityRegistryMinGrowth+5; i++ {
		_, err := r.Alloc()
		require.NoError(t, err)
	}
	require.Equal(t, entityRegistryMinGrowth+5, r.LiveCount())
}

func TestEntityRegistryClearBumpsGenerations(t *testing.T) {
	r := NewEntityRegistry(4)
	e0, err := r.Alloc()
	require.NoError(t, err)

	r.Clear()
	require.Equal(t, 0, r.LiveCount())

	e1, err := r.Alloc()
	require.NoError(t, err)
	require.Equal(t, e0.ID, e1.ID)
	require.NotEqual(t, e0.Generation, e1.Generation)

	_, err = r.Get(e0)
	require.Error(t, err, "a pre-clear entity must not alias its post-clear successor")
}
