package oram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeStoragePathGeometry(t *testing.T) {
	s := NewTreeStorage(4, 2)

	// Leaf 0 and leaf 1 share everything except the leaf bucket; leaf 0 and
	// leaf 7 share only the root.
	assert.Equal(t, []int{0, 1, 3, 7}, pathIndices(4, 0))
	assert.Equal(t, []int{0, 1, 3, 8}, pathIndices(4, 1))
	assert.Equal(t, []int{0, 2, 6, 14}, pathIndices(4, 7))

	path, err := s.ReadPath(0)
	require.NoError(t, err)
	assert.Len(t, path, 4)
	for _, bucket := range path {
		assert.Len(t, bucket, 2)
		for _, b := range bucket {
			assert.True(t, b.IsDummy())
		}
	}
}

func TestTreeStorageRejectsOutOfRangeLeaf(t *testing.T) {
	s := NewTreeStorage(4, 2)

	_, err := s.ReadPath(-1)
	require.ErrorIs(t, err, ErrLeafOutOfRange)
	_, err = s.ReadPath(8)
	require.ErrorIs(t, err, ErrLeafOutOfRange)

	err = s.WritePath(8, make([]Bucket, 4))
	require.ErrorIs(t, err, ErrLeafOutOfRange)
}

func TestTreeStorageRejectsOversizedAssignment(t *testing.T) {
	s := NewTreeStorage(3, 2)

	overfull := []Bucket{
		{{ID: 1, Leaf: 0}, {ID: 2, Leaf: 0}, {ID: 3, Leaf: 0}},
		{},
		{},
	}
	err := s.WritePath(0, overfull)
	require.ErrorIs(t, err, ErrBucketOverflow)

	err = s.WritePath(0, make([]Bucket, 2))
	require.ErrorIs(t, err, ErrBucketOverflow, "assignment must cover every level")
}

func TestTreeStorageWritePadsWithDummies(t *testing.T) {
	s := NewTreeStorage(3, 3)

	assignment := []Bucket{
		{{ID: 7, Leaf: 1, Data: []byte{1}}},
		{},
		{{ID: 9, Leaf: 1, Data: []byte{2}}},
	}
	require.NoError(t, s.WritePath(1, assignment))

	path, err := s.ReadPath(1)
	require.NoError(t, err)
	for _, bucket := range path {
		assert.Len(t, bucket, 3)
	}
	assert.Equal(t, int64(7), path[0][0].ID)
	assert.True(t, path[0][1].IsDummy())
	assert.Equal(t, int64(9), path[2][0].ID)

	// Writing the sibling path must not disturb the shared root.
	require.NoError(t, s.WritePath(0, []Bucket{{{ID: 7, Leaf: 1, Data: []byte{1}}}, {}, {}}))
	path, err = s.ReadPath(1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), path[0][0].ID)
}

func TestTreeStorageReturnsCopies(t *testing.T) {
	s := NewTreeStorage(3, 2)
	require.NoError(t, s.WritePath(0, []Bucket{{{ID: 1, Leaf: 0, Data: []byte{5}}}, {}, {}}))

	path, err := s.ReadPath(0)
	require.NoError(t, err)
	path[0][0].Data[0] = 99

	again, err := s.ReadPath(0)
	require.NoError(t, err)
	assert.Equal(t, byte(5), again[0][0].Data[0])
}

func TestOnPath(t *testing.T) {
	// Bucket 3 covers leaves 0 and 1 in a 4-layer tree; bucket 0 covers all.
	assert.True(t, onPath(4, 0, 3))
	assert.True(t, onPath(4, 1, 3))
	assert.False(t, onPath(4, 2, 3))
	for leaf := 0; leaf < 8; leaf++ {
		assert.True(t, onPath(4, leaf, 0))
	}
	assert.True(t, onPath(4, 5, 12))
	assert.False(t, onPath(4, 4, 12))
}
