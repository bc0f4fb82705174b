package oram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionMapRegisterAndLookup(t *testing.T) {
	m := NewPositionMap(8, NewSeededLeafSource(1))

	leaf, err := m.Register(5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, leaf, 0)
	assert.Less(t, leaf, 8)

	got, err := m.Lookup(5)
	require.NoError(t, err)
	assert.Equal(t, leaf, got)

	_, err = m.Register(5)
	require.ErrorIs(t, err, ErrDuplicateBlock)

	_, err = m.Lookup(6)
	require.ErrorIs(t, err, ErrUnknownBlock)
	assert.Equal(t, 1, m.Size())
}

func TestPositionMapReassign(t *testing.T) {
	m := NewPositionMap(1024, NewSeededLeafSource(2))

	_, err := m.Register(1)
	require.NoError(t, err)

	_, err = m.Reassign(9)
	require.ErrorIs(t, err, ErrUnknownBlock)

	// With 1024 leaves, consecutive draws repeating every time would be
	// astronomically unlikely; a handful of reassignments must move.
	moved := false
	prev, err := m.Lookup(1)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := m.Reassign(1)
		require.NoError(t, err)
		got, err := m.Lookup(1)
		require.NoError(t, err)
		assert.Equal(t, next, got)
		if next != prev {
			moved = true
		}
		prev = next
	}
	assert.True(t, moved)
}
