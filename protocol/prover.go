package protocol

import (
	"fmt"
	"runtime"

	"github.com/SamBroomy/zk-sudoku-prover/commitment"
	"github.com/SamBroomy/zk-sudoku-prover/graph"
	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
	"golang.org/x/sync/errgroup"
)

// Prover owns the true solution coloring and runs the committing side of each
// round: draw a fresh shuffle, commit every node, hand over the hidden
// commitments, then reveal exactly the two keys the verifier challenges.
type Prover struct {
	g        *graph.Graph
	coloring []sudoku.Value
	workers  int

	roundID uint64
	round   *proverRound
}

// proverRound is the ephemeral secret state of one round. It is discarded,
// keys zeroed, as soon as the round's challenge has been answered.
type proverRound struct {
	shuffle *Shuffle
	keys    []commitment.Key
}

// NewProver builds a prover for the graph reduced from grid.
func NewProver(g *graph.Graph, grid *sudoku.Grid) (*Prover, error) {
	coloring, err := g.ExtendColoring(grid.Assignment())
	if err != nil {
		return nil, err
	}
	return newProver(g, coloring, runtime.NumCPU()), nil
}

func newProver(g *graph.Graph, coloring []sudoku.Value, workers int) *Prover {
	if workers < 1 {
		workers = 1
	}
	return &Prover{g: g, coloring: coloring, workers: workers}
}

// StartRound opens a new round: a fresh shuffle, one commitment per node.
// Commitment generation is chunked across workers; the per-node commitments
// are independent. Any round still in flight is abandoned and its keys
// destroyed first.
func (p *Prover) StartRound() (*RoundCommitments, error) {
	p.discardRound()

	shuffle, err := NewShuffle()
	if err != nil {
		return nil, err
	}

	n := p.g.NbNodes()
	hidden := make([]*commitment.Hidden, n)
	keys := make([]commitment.Key, n)

	var eg errgroup.Group
	chunk := (n + p.workers - 1) / p.workers
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		eg.Go(func() error {
			for node := start; node < end; node++ {
				h, k, err := commitment.Commit(shuffle.Apply(p.coloring[node]), node)
				if err != nil {
					return err
				}
				hidden[node] = h
				keys[node] = k
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	p.roundID++
	p.round = &proverRound{shuffle: shuffle, keys: keys}
	return &RoundCommitments{RoundID: p.roundID, Commitments: hidden}, nil
}

// Respond answers the round's challenge with the two opening keys of the
// edge's endpoints, then discards the round: the shuffle and every
// non-challenged key are destroyed, so nothing can be revealed twice or
// reused across rounds.
func (p *Prover) Respond(c Challenge) (Reveal, error) {
	if p.round == nil {
		return Reveal{}, fmt.Errorf("%w: no round in flight", ErrOutOfOrder)
	}
	if c.RoundID != p.roundID {
		return Reveal{}, fmt.Errorf("%w: got round %d, current is %d", ErrRoundMismatch, c.RoundID, p.roundID)
	}
	if !p.g.HasEdge(c.Edge.U, c.Edge.V) {
		return Reveal{}, fmt.Errorf("%w: (%d,%d)", ErrUnknownEdge, c.Edge.U, c.Edge.V)
	}

	r := Reveal{
		RoundID: c.RoundID,
		Edge:    c.Edge,
		KeyU:    p.round.keys[c.Edge.U],
		KeyV:    p.round.keys[c.Edge.V],
	}
	p.discardRound()
	return r, nil
}

func (p *Prover) discardRound() {
	if p.round == nil {
		return
	}
	for i := range p.round.keys {
		p.round.keys[i].Destroy()
	}
	p.round = nil
}
