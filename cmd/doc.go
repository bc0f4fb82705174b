// Package cmd contains the oramd binaries.
//
//   - oramd: the oblivious storage server
//   - oram-client: a client driving setup and randomized benchmark
//     workloads against a running server
package cmd
