package oram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStashAbsorbDiscardsDummies(t *testing.T) {
	s := NewStash(4)
	s.Absorb(
		Block{ID: 1, Leaf: 0},
		Block{ID: DummyBlockID, Leaf: -1},
		Block{ID: 2, Leaf: 3},
	)
	assert.Equal(t, 2, s.Size())
}

func TestStashTakeAndRemove(t *testing.T) {
	s := NewStash(4)
	s.Absorb(Block{ID: 1, Leaf: 0, Data: []byte{9}}, Block{ID: 2, Leaf: 1})

	b, ok := s.Take(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, []byte{9}, b.Data)
	assert.Equal(t, 1, s.Size())

	_, ok = s.Take(1)
	assert.False(t, ok)

	s.Remove(2)
	assert.Zero(t, s.Size())
	s.Remove(2) // absent, no-op
}

func TestStashCandidatesFilterByPath(t *testing.T) {
	s := NewStash(4)
	s.Absorb(
		Block{ID: 1, Leaf: 0}, // path 0,1,3,7
		Block{ID: 2, Leaf: 1}, // path 0,1,3,8
		Block{ID: 3, Leaf: 7}, // path 0,2,6,14
	)

	root := s.Candidates(0)
	assert.Len(t, root, 3)
	// Insertion order is the deterministic tie-break.
	assert.Equal(t, int64(1), root[0].ID)
	assert.Equal(t, int64(2), root[1].ID)

	shared := s.Candidates(3)
	require.Len(t, shared, 2)
	assert.Equal(t, int64(1), shared[0].ID)
	assert.Equal(t, int64(2), shared[1].ID)

	leaf := s.Candidates(14)
	require.Len(t, leaf, 1)
	assert.Equal(t, int64(3), leaf[0].ID)
}
