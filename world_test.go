package ecsforge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type wPosition struct{ X, Y float64 }
type wVelocity struct{ DX, DY float64 }

func TestWorldSpawnDespawnGeneration(t *testing.T) {
	w := NewWorld(WorldConfig{EntityCap: 8})

	e1, err := w.Spawn()
	require.NoError(t, err)
	require.Equal(t, uint32(0), e1.Generation)
	require.Equal(t, uint32(0), e1.ID)

	require.NoError(t, w.Despawn(e1))
	require.Equal(t, 0, w.EntityCount())
	require.False(t, Contains[int](w, e1))

	e2, err := w.Spawn()
	require.NoError(t, err)
	require.Equal(t, uint32(1), e2.Generation)
	require.Equal(t, uint32(0), e2.ID)
}

func TestComponentIDInterningIsStablePerInstance(t *testing.T) {
	w := NewWorld(WorldConfig{})
	id0 := w.ComponentID(DescriptorFor[int](""))
	id1 := w.ComponentID(DescriptorFor[int]("x"))
	id0Again := w.ComponentID(DescriptorFor[int](""))

	require.Equal(t, ComponentId(0), id0)
	require.Equal(t, ComponentId(1), id1)
	require.Equal(t, ComponentId(0), id0Again)
}

func TestWorldArchetypeReuseAcrossEntities(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e1, err := w.Spawn()
	require.NoError(t, err)
	e2, err := w.Spawn()
	require.NoError(t, err)

	require.NoError(t, w.InsertBundle(e1, Bundle1[int]{A: 5}))
	require.NoError(t, w.InsertBundle(e1, Bundle1[float32]{A: 1.0}))
	countAfterFirst := len(w.archetypes)

	require.NoError(t, w.InsertBundle(e2, Bundle1[int]{A: 5}))
	require.NoError(t, w.InsertBundle(e2, Bundle2[float32, int]{A: 1.0, B: 5}))
	countAfterSecond := len(w.archetypes)

	require.Equal(t, countAfterFirst, countAfterSecond)
}

func TestWorldInsertBundleSelfEdgeNoNewArchetype(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e, err := w.Spawn()
	require.NoError(t, err)
	require.NoError(t, w.InsertBundle(e, Bundle1[int]{A: 1}))
	before := len(w.archetypes)

	require.NoError(t, w.InsertBundle(e, Bundle1[int]{A: 2}))
	after := len(w.archetypes)
	require.Equal(t, before, after)

	v, ok := Get[int](w, e)
	require.True(t, ok)
	require.Equal(t, 2, *v, "re-inserting an already-present component clobbers its value")
}

func TestWorldInsertBundleMovesRowAndWritesValues(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e, err := w.Spawn()
	require.NoError(t, err)

	require.NoError(t, w.InsertBundle(e, Bundle2[wPosition, wVelocity]{
		A: wPosition{X: 1, Y: 2},
		B: wVelocity{DX: 3, DY: 4},
	}))

	pos, ok := Get[wPosition](w, e)
	require.True(t, ok)
	require.Equal(t, wPosition{X: 1, Y: 2}, *pos)

	vel, ok := Get[wVelocity](w, e)
	require.True(t, ok)
	require.Equal(t, wVelocity{DX: 3, DY: 4}, *vel)
}

func TestWorldDespawnFixesUpReplacementSlot(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e1, _ := w.Spawn()
	e2, _ := w.Spawn()
	e3, _ := w.Spawn()

	require.NoError(t, w.Despawn(e1))

	// e3 (the prior tail) should now answer at e1's old row; verify via a
	// component write/read round trip instead of reaching into internals.
	require.NoError(t, w.InsertBundle(e3, Bundle1[int]{A: 99}))
	v, ok := Get[int](w, e3)
	require.True(t, ok)
	require.Equal(t, 99, *v)

	_, err := w.registry.Get(e1)
	require.Error(t, err)

	require.NoError(t, w.Despawn(e2))
	require.NoError(t, w.Despawn(e3))
	require.Equal(t, 0, w.EntityCount())
}

func TestWorldMustGetPanicsOnAbsentComponent(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e, _ := w.Spawn()
	require.Panics(t, func() {
		MustGet[int](w, e)
	})
}

func TestWorldNamedComponentsAreDistinctColumns(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e, _ := w.Spawn()
	require.NoError(t, w.InsertBundle(e, Bundle2[int, int]{A: 10, B: 20, NameA: "hp", NameB: "mp"}))

	hp, ok := Get[int](w, e, "hp")
	require.True(t, ok)
	require.Equal(t, 10, *hp)

	mp, ok := Get[int](w, e, "mp")
	require.True(t, ok)
	require.Equal(t, 20, *mp)
}

func TestCombineBundlesDeduplicatesAndLastWins(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e, _ := w.Spawn()

	combined := CombineBundles(
		Bundle1[int]{A: 1},
		Bundle1[int]{A: 2},
		Bundle1[float64]{A: 9.5},
	)
	require.NoError(t, w.InsertBundle(e, combined))

	v, ok := Get[int](w, e)
	require.True(t, ok)
	require.Equal(t, 2, *v)

	f, ok := Get[float64](w, e)
	require.True(t, ok)
	require.Equal(t, 9.5, *f)
}
