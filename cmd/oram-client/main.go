// Command oram-client initializes a remote store and drives a randomized
// access workload against it, verifying every read and recording
// per-access stash sizes for offline analysis.
//
// # Usage
//
//	go run ./cmd/oram-client --url=http://localhost:8080 --n=8 --z=4 --ops=10000
//
// --n is the log2 of the block count; the tree depth is derived so every
// block maps to its own leaf on average.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tumichaels/oramd/client"
	"github.com/tumichaels/oramd/cmd/common"
)

func main() {
	var (
		url        = flag.String("url", "http://localhost:8080", "server URL")
		n          = flag.Int("n", 8, "log2 of the number of blocks")
		z          = flag.Int("z", 4, "bucket size")
		ops        = flag.Int("ops", 10000, "number of randomized accesses")
		writeRatio = flag.Float64("write-ratio", 0.2, "fraction of accesses that are writes")
		seed       = flag.Int64("seed", 11, "workload RNG seed")
		stashOut   = flag.String("stash-out", "", "file to record per-access stash sizes")
		logJSON    = flag.Bool("log-json", false, "log in JSON format")
	)
	flag.Parse()

	log := common.SetupLogger(*logJSON, false)

	numBlocks := 1 << *n
	cfg := client.WorkloadConfig{
		NumLayers:  *n + 1, // 2^n leaves
		BucketSize: *z,
		NumBlocks:  numBlocks,
		Ops:        *ops,
		WriteRatio: *writeRatio,
		Seed:       *seed,
		Log:        log,
	}

	if *stashOut != "" {
		f, err := os.Create(*stashOut)
		if err != nil {
			fmt.Printf("Open stash output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		cfg.StashOut = f
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("Starting workload", "url", *url, "numBlocks", numBlocks, "ops", *ops)
	if err := client.RunWorkload(ctx, client.New(*url), cfg); err != nil {
		fmt.Printf("Workload error: %v\n", err)
		os.Exit(1)
	}
	log.Info("Workload complete")
}
