package oram

// Stash holds real blocks not currently resident in the tree. Blocks keep
// their insertion order, which gives eviction a stable deterministic
// tie-break between candidates for the same bucket.
type Stash struct {
	blocks    []Block
	numLayers int
}

// NewStash creates an empty stash for a tree of the given depth.
func NewStash(numLayers int) *Stash {
	return &Stash{numLayers: numLayers}
}

// Absorb appends blocks to the stash. Dummies are discarded. Callers
// maintain the uniqueness invariant: a given id appears at most once
// across tree and stash, so no deduplication happens here.
func (s *Stash) Absorb(blocks ...Block) {
	for _, b := range blocks {
		if b.IsDummy() {
			continue
		}
		s.blocks = append(s.blocks, b)
	}
}

// Take removes and returns the block with the given id.
func (s *Stash) Take(id int64) (Block, bool) {
	for i, b := range s.blocks {
		if b.ID == id {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return b, true
		}
	}
	return Block{}, false
}

// Remove deletes the block with the given id, if present.
func (s *Stash) Remove(id int64) {
	for i, b := range s.blocks {
		if b.ID == id {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return
		}
	}
}

// Candidates returns, in insertion order, the stashed blocks whose mapped
// leaf's path passes through the bucket at bucketIdx. These are exactly
// the blocks eviction may legally place in that bucket.
func (s *Stash) Candidates(bucketIdx int) []Block {
	var out []Block
	for _, b := range s.blocks {
		if onPath(s.numLayers, b.Leaf, bucketIdx) {
			out = append(out, b)
		}
	}
	return out
}

// Size returns the number of stashed blocks.
func (s *Stash) Size() int {
	return len(s.blocks)
}

// Blocks returns a copy of the stash contents for diagnostics.
func (s *Stash) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}
