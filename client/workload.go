package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/tumichaels/oramd/api"
)

// WorkloadConfig parameterizes a benchmark run against a fresh store.
type WorkloadConfig struct {
	NumLayers  int
	BucketSize int
	NumBlocks  int

	// Ops is the number of randomized accesses to run after setup.
	Ops int

	// WriteRatio in [0,1] is the fraction of accesses that are writes.
	WriteRatio float64

	// Seed makes the access sequence reproducible.
	Seed int64

	// ReportEvery emits a progress log line every N operations.
	ReportEvery int

	// StashOut, when non-nil, receives one line per access with the
	// server-reported stash size, for offline analysis of the stash bound.
	StashOut io.Writer

	Log *slog.Logger
}

// RunWorkload initializes the store with NumBlocks sequential ids, writes
// an initial value to every block, then runs a randomized access loop,
// verifying every read against a local model of the expected values.
func RunWorkload(ctx context.Context, c *Client, cfg WorkloadConfig) error {
	if cfg.ReportEvery <= 0 {
		cfg.ReportEvery = 10000
	}
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	ids := make([]int64, cfg.NumBlocks)
	for i := range ids {
		ids[i] = int64(i)
	}

	start := time.Now()
	if err := c.Setup(ctx, &api.SetupRequest{
		NumLayers:  cfg.NumLayers,
		BucketSize: cfg.BucketSize,
		BlockIDs:   ids,
	}); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	// Seed every block with a known value, one access per block.
	expected := make(map[int64]uint64, cfg.NumBlocks)
	for _, id := range ids {
		v := uint64(id) * 1000
		if _, err := c.WriteBlock(ctx, []int64{id}, []api.WireBlock{{Index: id, Value: Uint64Value(v)}}); err != nil {
			return fmt.Errorf("seed block %d: %w", id, err)
		}
		expected[id] = v
	}
	log.Info("Store seeded", "numBlocks", cfg.NumBlocks, "elapsed", time.Since(start))

	rng := rand.New(rand.NewSource(cfg.Seed))
	start = time.Now()
	for i := 0; i < cfg.Ops; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		id := ids[rng.Intn(len(ids))]
		var stashSize int
		if rng.Float64() < cfg.WriteRatio {
			v := rng.Uint64()
			resp, err := c.WriteBlock(ctx, []int64{id}, []api.WireBlock{{Index: id, Value: Uint64Value(v)}})
			if err != nil {
				return fmt.Errorf("op %d write block %d: %w", i, id, err)
			}
			expected[id] = v
			stashSize = resp.StashSize
		} else {
			resp, err := c.ReadBlock(ctx, []int64{id})
			if err != nil {
				return fmt.Errorf("op %d read block %d: %w", i, id, err)
			}
			got, err := DecodeUint64(resp.Blocks[0].Value)
			if err != nil {
				return err
			}
			if got != expected[id] {
				return fmt.Errorf("op %d block %d: read %d, want %d", i, id, got, expected[id])
			}
			stashSize = resp.StashSize
		}

		if cfg.StashOut != nil {
			fmt.Fprintf(cfg.StashOut, "%d\n", stashSize)
		}
		if (i+1)%cfg.ReportEvery == 0 {
			log.Info("Workload progress",
				"ops", i+1,
				"elapsed", time.Since(start),
				"stashSize", stashSize)
			start = time.Now()
		}
	}

	return nil
}
