// Package zksudoku implements an interactive zero-knowledge proof that a
// prover knows a valid solution to a Sudoku grid, without revealing any cell
// value.
//
// The construction reduces the solved grid to a graph 9-coloring instance
// (package graph), commits to a freshly shuffled coloring every round
// (packages protocol and commitment) and lets the verifier challenge one
// random edge per round. Each round a cheating prover survives with
// probability at most 1-1/E where E is the number of edges, so the
// orchestrator (package protocol) runs enough independent rounds to reach a
// caller-chosen confidence level.
package zksudoku

import "github.com/blang/semver/v4"

// Version of the library; also stamped into serialized protocol messages.
var Version = semver.MustParse("0.1.0")
