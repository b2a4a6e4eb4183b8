package protocol

import (
	"github.com/SamBroomy/zk-sudoku-prover/commitment"
	"github.com/SamBroomy/zk-sudoku-prover/graph"
)

// RoundCommitments opens a round: one hidden commitment per graph node,
// indexed by node identifier. Ownership of the commitments transfers to the
// verifier; the prover keeps only the opening keys.
type RoundCommitments struct {
	RoundID     uint64
	Commitments []*commitment.Hidden
}

// Challenge is the verifier's pick for a round: a single edge whose two
// endpoint colors the prover must reveal.
type Challenge struct {
	RoundID uint64
	Edge    graph.Edge
}

// Reveal answers a challenge with the opening keys of the edge's endpoints.
// The keys are consumed by the verifier's check and retained by no one.
type Reveal struct {
	RoundID uint64
	Edge    graph.Edge
	KeyU    commitment.Key
	KeyV    commitment.Key
}
