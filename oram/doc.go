// Package oram implements the Path ORAM storage engine: a complete binary
// tree of fixed-capacity buckets, a position map from logical block ids to
// leaves, a stash for blocks temporarily off the tree, and the per-access
// algorithm (path read, remap, greedy write-back) that keeps the sequence
// of physical locations the storage backend observes independent of the
// logical access pattern.
//
// Correctness here is a security property: every access reads and rewrites
// one whole root-to-leaf path, remaps the touched block to a fresh uniform
// leaf even on reads, and never touches a bucket outside a full-path
// operation.
package oram
