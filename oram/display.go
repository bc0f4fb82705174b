package oram

import (
	"fmt"
	"sort"
	"strings"
)

// DumpState renders the tree, the stash, and the position map for
// diagnostics. It observes state only: the full tree is reconstructed from
// whole-path reads, and nothing is mutated. Slots print as "id->leaf",
// dummies as "_".
func (s *Store) DumpState() (string, error) {
	buckets := make([]Bucket, s.cfg.NumBuckets())
	for leaf := 0; leaf < s.cfg.NumLeaves(); leaf++ {
		path, err := s.storage.ReadPath(leaf)
		if err != nil {
			return "", fmt.Errorf("dump path %d: %w", leaf, err)
		}
		for i, idx := range pathIndices(s.cfg.NumLayers, leaf) {
			buckets[idx] = path[i]
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "tree L=%d Z=%d\n", s.cfg.NumLayers, s.cfg.BucketSize)
	for level := 0; level < s.cfg.NumLayers; level++ {
		start := (1 << level) - 1
		end := (1 << (level + 1)) - 1
		fmt.Fprintf(&sb, "level %d:", level)
		for idx := start; idx < end; idx++ {
			sb.WriteString(" ")
			sb.WriteString(renderBucket(buckets[idx]))
		}
		sb.WriteString("\n")
	}

	stashed := s.stash.Blocks()
	fmt.Fprintf(&sb, "stash (%d):", len(stashed))
	for _, b := range stashed {
		fmt.Fprintf(&sb, " %d->%d", b.ID, b.Leaf)
	}
	sb.WriteString("\n")

	snap := s.posmap.Snapshot()
	ids := make([]int64, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	sb.WriteString("posmap:")
	for _, id := range ids {
		fmt.Fprintf(&sb, " %d->%d", id, snap[id])
	}
	sb.WriteString("\n")

	return sb.String(), nil
}

func renderBucket(b Bucket) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, blk := range b {
		if i > 0 {
			sb.WriteString(" ")
		}
		if blk.IsDummy() {
			sb.WriteString("_")
		} else {
			fmt.Fprintf(&sb, "%d->%d", blk.ID, blk.Leaf)
		}
	}
	sb.WriteString("]")
	return sb.String()
}
