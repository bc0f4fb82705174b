package server

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tumichaels/oramd/metrics"
	"github.com/tumichaels/oramd/oram"
)

var (
	ErrAlreadyInitialized = errors.New("store already initialized")
	ErrNotInitialized     = errors.New("store not initialized")
	ErrLengthMismatch     = errors.New("indices and blocks must have the same length")
)

// ServerImpl owns the oblivious store. The mutex is the single
// serialization point the core requires: every access, including each
// element of a batch, runs to completion before the next one starts, so a
// storage observer never sees two accesses interleaved. Setup replaces the
// store wholesale and never merges with prior state.
type ServerImpl struct {
	log    *slog.Logger
	sealer oram.Sealer
	leaves oram.LeafSource

	mu    sync.Mutex
	store *oram.Store
}

// BatchStatus reports the stash condition after a batch of accesses.
type BatchStatus struct {
	StashSize  int
	StashAlarm bool
}

// BlockResult pairs a logical id with the value read for it.
type BlockResult struct {
	Index int64
	Value []byte
}

// NewServer creates an uninitialized server with the given collaborators.
func NewServer(log *slog.Logger, sealer oram.Sealer, leaves oram.LeafSource) *ServerImpl {
	return &ServerImpl{
		log:    log,
		sealer: sealer,
		leaves: leaves,
	}
}

// Setup initializes the store. A second call is rejected; restart the
// process to re-key.
func (s *ServerImpl) Setup(cfg oram.Config, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return ErrAlreadyInitialized
	}

	validated, err := cfg.Validate()
	if err != nil {
		return err
	}

	storage := oram.NewTreeStorage(validated.NumLayers, validated.BucketSize)
	store, err := oram.Setup(validated, ids, storage, s.sealer, s.leaves)
	if err != nil {
		return err
	}

	s.store = store
	s.log.Info("Store initialized",
		"numLayers", validated.NumLayers,
		"bucketSize", validated.BucketSize,
		"blockSize", validated.BlockSize,
		"numBlocks", len(ids))
	metrics.RecordSetup()
	return nil
}

// ReadBlocks runs one oblivious read per index, in order. An unknown id
// fails the whole call: no results are returned and the remaining indices
// are not accessed (accesses already completed for earlier indices stand,
// each was independently valid).
func (s *ServerImpl) ReadBlocks(indices []int64) ([]BlockResult, BatchStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, BatchStatus{}, ErrNotInitialized
	}

	results := make([]BlockResult, 0, len(indices))
	var status BatchStatus
	for _, id := range indices {
		res, err := s.store.Read(id)
		if err != nil {
			metrics.RecordError()
			return nil, BatchStatus{}, fmt.Errorf("read block %d: %w", id, err)
		}
		metrics.RecordRead()
		results = append(results, BlockResult{Index: id, Value: res.Data})
		status = s.noteAccess(res)
	}
	return results, status, nil
}

// WriteBlocks writes blocks[i] to indices[i], one oblivious access per
// pair. Length mismatches and wrong payload sizes are rejected up front,
// before any access mutates state.
func (s *ServerImpl) WriteBlocks(indices []int64, values [][]byte) (BatchStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return BatchStatus{}, ErrNotInitialized
	}
	if len(indices) != len(values) {
		return BatchStatus{}, ErrLengthMismatch
	}
	blockSize := s.store.Config().BlockSize
	for i, v := range values {
		if len(v) != blockSize {
			return BatchStatus{}, fmt.Errorf("%w: block %d has %d bytes, want %d",
				oram.ErrInvalidDataSize, indices[i], len(v), blockSize)
		}
	}

	var status BatchStatus
	for i, id := range indices {
		res, err := s.store.Write(id, values[i])
		if err != nil {
			metrics.RecordError()
			return BatchStatus{}, fmt.Errorf("write block %d: %w", id, err)
		}
		metrics.RecordWrite()
		status = s.noteAccess(res)
	}
	return status, nil
}

// Dump renders the store state for diagnostics without mutating it.
func (s *ServerImpl) Dump() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return "", ErrNotInitialized
	}
	return s.store.DumpState()
}

func (s *ServerImpl) noteAccess(res oram.Result) BatchStatus {
	metrics.ObserveStash(res.StashSize, res.StashAlarm)
	if res.StashAlarm {
		s.log.Warn("Stash exceeds configured bound",
			"stashSize", res.StashSize,
			"stashLimit", s.store.Config().StashLimit)
	}
	return BatchStatus{StashSize: res.StashSize, StashAlarm: res.StashAlarm}
}
