package oram

// Block is a single slot entry: a real block carries its logical id, its
// currently mapped leaf, and an opaque payload. Dummy slots carry
// DummyBlockID and no payload.
type Block struct {
	ID   int64
	Leaf int
	Data []byte
}

// IsDummy reports whether the slot holds no real block.
func (b Block) IsDummy() bool {
	return b.ID == DummyBlockID
}

// Bucket is the fixed-capacity ordered group of slots at one tree node.
type Bucket []Block

// Storage provides path-granular access to the bucket tree. Buckets are
// never read or written individually: partial bucket access would reveal
// which slot on a path was the one of interest, so the interface only
// exposes whole root-to-leaf paths.
//
// Implementations may keep buckets in memory or on a remote service.
type Storage interface {
	// ReadPath returns the full contents of every bucket on the path from
	// the root to the given leaf, in root-to-leaf order.
	ReadPath(leaf int) ([]Bucket, error)

	// WritePath overwrites every bucket on the path to the given leaf.
	// The assignment must contain one bucket per level in root-to-leaf
	// order, each with at most BucketSize blocks; short buckets are padded
	// with dummies. Oversized buckets are rejected, never truncated.
	WritePath(leaf int, assignment []Bucket) error

	// NumLayers returns the number of levels in the tree.
	NumLayers() int

	// BucketSize returns the number of slots per bucket.
	BucketSize() int
}

// pathIndices returns the bucket indices on the path from the root to the
// given leaf, in root-to-leaf order. The tree is array-backed: the root is
// bucket 0 and leaf i lives at bucket numLeaves-1+i.
func pathIndices(numLayers, leaf int) []int {
	path := make([]int, numLayers)
	bucket := (1 << (numLayers - 1)) - 1 + leaf
	for i := numLayers - 1; i >= 0; i-- {
		path[i] = bucket
		bucket = (bucket - 1) / 2
	}
	return path
}

// onPath reports whether bucketIdx lies on the path to the given leaf.
func onPath(numLayers, leaf, bucketIdx int) bool {
	bucket := (1 << (numLayers - 1)) - 1 + leaf
	for {
		if bucket == bucketIdx {
			return true
		}
		if bucket == 0 {
			return false
		}
		bucket = (bucket - 1) / 2
	}
}

// TreeStorage is the in-memory Storage implementation: a complete binary
// tree of 2^L - 1 buckets backed by a flat slice.
type TreeStorage struct {
	buckets    []Bucket
	numLayers  int
	bucketSize int
}

// NewTreeStorage creates an in-memory tree with every slot a dummy.
func NewTreeStorage(numLayers, bucketSize int) *TreeStorage {
	total := (1 << numLayers) - 1
	buckets := make([]Bucket, total)
	for i := range buckets {
		buckets[i] = emptyBucket(bucketSize)
	}
	return &TreeStorage{
		buckets:    buckets,
		numLayers:  numLayers,
		bucketSize: bucketSize,
	}
}

func emptyBucket(size int) Bucket {
	b := make(Bucket, size)
	for i := range b {
		b[i] = Block{ID: DummyBlockID, Leaf: -1}
	}
	return b
}

// ReadPath returns copies of all buckets from the root to leaf.
func (s *TreeStorage) ReadPath(leaf int) ([]Bucket, error) {
	if leaf < 0 || leaf >= 1<<(s.numLayers-1) {
		return nil, ErrLeafOutOfRange
	}
	idxs := pathIndices(s.numLayers, leaf)
	path := make([]Bucket, len(idxs))
	for i, idx := range idxs {
		path[i] = copyBucket(s.buckets[idx])
	}
	return path, nil
}

// WritePath replaces all buckets from the root to leaf with the given
// assignment, padding each bucket to capacity with dummies.
func (s *TreeStorage) WritePath(leaf int, assignment []Bucket) error {
	if leaf < 0 || leaf >= 1<<(s.numLayers-1) {
		return ErrLeafOutOfRange
	}
	if len(assignment) != s.numLayers {
		return ErrBucketOverflow
	}
	for _, bucket := range assignment {
		if len(bucket) > s.bucketSize {
			return ErrBucketOverflow
		}
	}
	idxs := pathIndices(s.numLayers, leaf)
	for i, idx := range idxs {
		padded := copyBucket(assignment[i])
		for len(padded) < s.bucketSize {
			padded = append(padded, Block{ID: DummyBlockID, Leaf: -1})
		}
		s.buckets[idx] = padded
	}
	return nil
}

// NumLayers returns the number of levels in the tree.
func (s *TreeStorage) NumLayers() int {
	return s.numLayers
}

// BucketSize returns slots per bucket.
func (s *TreeStorage) BucketSize() int {
	return s.bucketSize
}

func copyBucket(src Bucket) Bucket {
	dst := make(Bucket, len(src))
	for i, b := range src {
		dst[i] = Block{ID: b.ID, Leaf: b.Leaf}
		if b.Data != nil {
			dst[i].Data = make([]byte, len(b.Data))
			copy(dst[i].Data, b.Data)
		}
	}
	return dst
}
