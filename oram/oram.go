package oram

import "fmt"

// Store is one Path ORAM instance: the bucket tree, the stash, and the
// position map, owned together. All fields are explicit so independent
// stores can coexist; there is no package-level state.
//
// A Store is not safe for concurrent use. Every access mutates the tree,
// the stash, and the position map as one unit, and interleaving two
// accesses would let a storage observer correlate them. Callers serialize
// all operations through a single owner (see the server package).
type Store struct {
	cfg     Config
	storage Storage
	posmap  *PositionMap
	stash   *Stash
	sealer  Sealer
}

// Result reports the outcome of one completed access.
type Result struct {
	// Data is the block's value at the end of the access: the stored value
	// for a read, the newly written value for a write.
	Data []byte

	// StashSize is the stash occupancy after eviction.
	StashSize int

	// StashAlarm is set when StashSize exceeds the configured limit. The
	// access still completed; a sustained alarm means NumLayers/BucketSize
	// are undersized for the registered block count.
	StashAlarm bool
}

// Setup builds a store over the given collaborators and registers the
// block ids. Every id is assigned a uniform random leaf and a zero-valued
// block, pre-distributed into the tree along its assigned path (spilling
// to the stash only when the path is full).
func Setup(cfg Config, ids []int64, storage Storage, sealer Sealer, src LeafSource) (*Store, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	if storage.NumLayers() != cfg.NumLayers || storage.BucketSize() != cfg.BucketSize {
		return nil, fmt.Errorf("%w: storage geometry mismatch", ErrInvalidConfig)
	}
	if len(ids) > cfg.NumBuckets()*cfg.BucketSize {
		return nil, fmt.Errorf("%w: %d blocks exceed tree capacity", ErrInvalidConfig, len(ids))
	}
	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("%w: negative block id %d", ErrInvalidConfig, id)
		}
	}

	s := &Store{
		cfg:     cfg,
		storage: storage,
		posmap:  NewPositionMap(cfg.NumLeaves(), src),
		stash:   NewStash(cfg.NumLayers),
		sealer:  sealer,
	}

	leaves := make(map[int]struct{})
	for _, id := range ids {
		leaf, err := s.posmap.Register(id)
		if err != nil {
			return nil, err
		}
		s.stash.Absorb(Block{ID: id, Leaf: leaf, Data: make([]byte, cfg.BlockSize)})
		leaves[leaf] = struct{}{}
	}

	// Drain the seeded stash into the tree along each assigned path.
	for leaf := range leaves {
		if err := s.fetchPath(leaf); err != nil {
			return nil, err
		}
		if err := s.evictPath(leaf); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetupInMemory builds a store over in-memory tree storage with no
// encryption and a crypto/rand leaf source.
func SetupInMemory(cfg Config, ids []int64) (*Store, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	storage := NewTreeStorage(cfg.NumLayers, cfg.BucketSize)
	return Setup(cfg, ids, storage, PassthroughSealer{}, CryptoLeafSource{})
}

// Read performs one oblivious access in read mode.
func (s *Store) Read(id int64) (Result, error) {
	return s.access(id, nil)
}

// Write performs one oblivious access that replaces the block's value.
func (s *Store) Write(id int64, data []byte) (Result, error) {
	if len(data) != s.cfg.BlockSize {
		return Result{}, ErrInvalidDataSize
	}
	return s.access(id, data)
}

// access runs the per-access state machine: locate, fetch path, serve,
// remap, evict. If newData is nil it is a read, otherwise a write. The
// physical path touched is always the one the block was mapped to before
// the access; the fresh leaf only steers future evictions.
func (s *Store) access(id int64, newData []byte) (Result, error) {
	leaf, err := s.posmap.Lookup(id)
	if err != nil {
		return Result{}, err
	}

	if err := s.fetchPath(leaf); err != nil {
		return Result{}, err
	}

	target, ok := s.stash.Take(id)
	if !ok {
		// The block must be on its mapped path or in the stash. Its absence
		// means the structure is broken; abort without writing anything.
		return Result{}, fmt.Errorf("%w: block %d missing from path %d and stash", ErrCorrupted, id, leaf)
	}

	if newData != nil {
		target.Data = make([]byte, s.cfg.BlockSize)
		copy(target.Data, newData)
	}
	out := make([]byte, len(target.Data))
	copy(out, target.Data)

	newLeaf, err := s.posmap.Reassign(id)
	if err != nil {
		return Result{}, err
	}
	target.Leaf = newLeaf
	s.stash.Absorb(target)

	if err := s.evictPath(leaf); err != nil {
		return Result{}, err
	}

	return Result{
		Data:       out,
		StashSize:  s.stash.Size(),
		StashAlarm: s.stash.Size() > s.cfg.StashLimit,
	}, nil
}

// fetchPath reads the full path to leaf and absorbs every real block into
// the stash, opening sealed payloads on the way in.
func (s *Store) fetchPath(leaf int) error {
	path, err := s.storage.ReadPath(leaf)
	if err != nil {
		return fmt.Errorf("read path %d: %w", leaf, err)
	}
	for _, bucket := range path {
		for _, b := range bucket {
			if b.IsDummy() {
				continue
			}
			plain, err := s.sealer.Open(b.ID, b.Leaf, b.Data)
			if err != nil {
				return fmt.Errorf("open block %d: %w", b.ID, err)
			}
			s.stash.Absorb(Block{ID: b.ID, Leaf: b.Leaf, Data: plain})
		}
	}
	return nil
}

// evictPath writes the path to leaf back in one shot using the greedy
// reverse-order assignment: buckets are filled leaf to root, each taking
// up to BucketSize stash candidates whose mapped leaf passes through it.
// Processing deeper buckets first pushes every block as far from the root
// as its mapping allows, which is what keeps the stash bounded.
func (s *Store) evictPath(leaf int) error {
	idxs := pathIndices(s.cfg.NumLayers, leaf)
	assignment := make([]Bucket, s.cfg.NumLayers)

	for level := s.cfg.NumLayers - 1; level >= 0; level-- {
		bucketIdx := idxs[level]
		bucket := make(Bucket, 0, s.cfg.BucketSize)
		for _, cand := range s.stash.Candidates(bucketIdx) {
			if len(bucket) == s.cfg.BucketSize {
				break
			}
			s.stash.Remove(cand.ID)
			sealed, err := s.sealer.Seal(cand.ID, cand.Leaf, cand.Data)
			if err != nil {
				return fmt.Errorf("seal block %d: %w", cand.ID, err)
			}
			bucket = append(bucket, Block{ID: cand.ID, Leaf: cand.Leaf, Data: sealed})
		}
		assignment[level] = bucket
	}

	if err := s.storage.WritePath(leaf, assignment); err != nil {
		return fmt.Errorf("%w: write back path %d: %v", ErrCorrupted, leaf, err)
	}
	return nil
}

// Size returns the number of registered blocks.
func (s *Store) Size() int {
	return s.posmap.Size()
}

// NumLeaves returns the number of leaves in the tree.
func (s *Store) NumLeaves() int {
	return s.cfg.NumLeaves()
}

// StashSize returns the current stash occupancy.
func (s *Store) StashSize() int {
	return s.stash.Size()
}

// Config returns the store's validated configuration.
func (s *Store) Config() Config {
	return s.cfg
}
