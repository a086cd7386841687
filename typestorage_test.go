package ecsforge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct{ MaxPlayers int }

func TestTypeStoragePutGetRemove(t *testing.T) {
	s := NewTypeStorage()
	s.Put(testConfig{MaxPlayers: 4})

	require.True(t, TypeContains[testConfig](s))
	cfg := TypeGet[testConfig](s)
	require.Equal(t, 4, cfg.MaxPlayers)

	removed, ok := TypeRemove[testConfig](s)
	require.True(t, ok)
	require.Equal(t, 4, removed.MaxPlayers)
	require.False(t, TypeContains[testConfig](s))
}

func TestTypeStoragePutPanicsOnDuplicateType(t *testing.T) {
	s := NewTypeStorage()
	s.Put(testConfig{MaxPlayers: 1})
	require.Panics(t, func() {
		s.Put(testConfig{MaxPlayers: 2})
	})
}

func TestTypeStorageCloneIsIndependent(t *testing.T) {
	s := NewTypeStorage()
	s.Put(testConfig{MaxPlayers: 4})

	clone := s.Clone()
	_, _ = TypeRemove[testConfig](clone)
	clone.Put(testConfig{MaxPlayers: 100})

	original := TypeGet[testConfig](s)
	require.Equal(t, 4, original.MaxPlayers)

	cloned := TypeGet[testConfig](clone)
	require.Equal(t, 100, cloned.MaxPlayers)
}
