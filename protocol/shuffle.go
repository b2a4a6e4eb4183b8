package protocol

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
)

// Shuffle is a random bijection over the nine colors, drawn fresh for every
// round. Revealing shuffled colors proves two cells differ without ever tying
// a cell to its true value across rounds; without the per-round reshuffle the
// verifier could correlate reveals and reconstruct the solution.
type Shuffle struct {
	forward [sudoku.Size]sudoku.Value
	inverse [sudoku.Size]sudoku.Value
}

// NewShuffle draws a uniformly random permutation of the nine colors from
// crypto/rand. Never seeded, never shared.
func NewShuffle() (*Shuffle, error) {
	var s Shuffle
	for i := range s.forward {
		s.forward[i] = sudoku.Value(i + 1)
	}
	// Fisher-Yates over the color array
	for i := len(s.forward) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return nil, err
		}
		s.forward[i], s.forward[j] = s.forward[j], s.forward[i]
	}
	for i, v := range s.forward {
		s.inverse[v.Index()] = sudoku.Value(i + 1)
	}
	return &s, nil
}

// Apply maps a color through the permutation.
func (s *Shuffle) Apply(v sudoku.Value) sudoku.Value {
	return s.forward[v.Index()]
}

// ReverseApply maps a color through the inverse permutation, so that
// ReverseApply(Apply(v)) == v for every v.
func (s *Shuffle) ReverseApply(v sudoku.Value) sudoku.Value {
	return s.inverse[v.Index()]
}

// randInt returns a uniform integer in [0, n) from crypto/rand.
func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("protocol: drawing randomness: %w", err)
	}
	return int(v.Int64()), nil
}
