package oram

import "fmt"

// PositionMap tracks the leaf each registered block was most recently
// assigned to. Between accesses the invariant holds that every registered
// block is findable on the path to its mapped leaf, or in the stash.
type PositionMap struct {
	leaves    map[int64]int
	numLeaves int
	src       LeafSource
}

// NewPositionMap creates an empty position map drawing from src.
func NewPositionMap(numLeaves int, src LeafSource) *PositionMap {
	return &PositionMap{
		leaves:    make(map[int64]int),
		numLeaves: numLeaves,
		src:       src,
	}
}

// Register assigns an initial uniform random leaf to a new block id.
func (m *PositionMap) Register(id int64) (int, error) {
	if _, ok := m.leaves[id]; ok {
		return 0, fmt.Errorf("%w: %d", ErrDuplicateBlock, id)
	}
	leaf, err := m.src.Leaf(m.numLeaves)
	if err != nil {
		return 0, err
	}
	m.leaves[id] = leaf
	return leaf, nil
}

// Lookup returns the currently mapped leaf for id.
func (m *PositionMap) Lookup(id int64) (int, error) {
	leaf, ok := m.leaves[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBlock, id)
	}
	return leaf, nil
}

// Reassign draws a fresh uniform leaf for id, independent of its previous
// assignment, records it, and returns it. Must be called exactly once per
// completed access, reads included: skipping it on reads would let the
// server correlate repeated accesses to the same block with a fixed path.
func (m *PositionMap) Reassign(id int64) (int, error) {
	if _, ok := m.leaves[id]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBlock, id)
	}
	leaf, err := m.src.Leaf(m.numLeaves)
	if err != nil {
		return 0, err
	}
	m.leaves[id] = leaf
	return leaf, nil
}

// Size returns the number of registered blocks.
func (m *PositionMap) Size() int {
	return len(m.leaves)
}

// Snapshot returns a copy of the current id-to-leaf mapping.
func (m *PositionMap) Snapshot() map[int64]int {
	out := make(map[int64]int, len(m.leaves))
	for id, leaf := range m.leaves {
		out[id] = leaf
	}
	return out
}
