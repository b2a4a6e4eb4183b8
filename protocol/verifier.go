package protocol

import (
	"errors"
	"fmt"

	"github.com/SamBroomy/zk-sudoku-prover/commitment"
	"github.com/SamBroomy/zk-sudoku-prover/graph"
)

// roundState tracks the strictly linear round sequence
// Init -> Committed -> Challenged -> verdict. Out-of-order calls are
// sequencing errors, never undefined behavior.
type roundState uint8

const (
	stateInit roundState = iota
	stateCommitted
	stateChallenged
)

// Verifier owns only the graph structure and, per round, the hidden
// commitments received from the prover. It never sees the solution; it only
// checks that the two endpoints of a random edge open correctly and differ.
type Verifier struct {
	g *graph.Graph

	state       roundState
	roundID     uint64
	commitments []*commitment.Hidden
	challenge   graph.Edge
}

// NewVerifier builds a verifier over the shared read-only graph.
func NewVerifier(g *graph.Graph) *Verifier {
	return &Verifier{g: g}
}

// ReceiveCommitments stores a round's hidden commitments, one per node.
// Must be called before ChooseChallenge; the verifier commits to nothing
// until it has seen every digest.
func (v *Verifier) ReceiveCommitments(rc *RoundCommitments) error {
	if v.state != stateInit {
		return fmt.Errorf("%w: commitments while in state %d", ErrOutOfOrder, v.state)
	}
	if len(rc.Commitments) != v.g.NbNodes() {
		return fmt.Errorf("%w: expected %d commitments, got %d", ErrMalformedMessage, v.g.NbNodes(), len(rc.Commitments))
	}
	for node, c := range rc.Commitments {
		if c == nil || c.NodeID() != node {
			return fmt.Errorf("%w: bad commitment in slot %d", ErrMalformedMessage, node)
		}
	}
	v.roundID = rc.RoundID
	v.commitments = rc.Commitments
	v.state = stateCommitted
	return nil
}

// ChooseChallenge selects one edge uniformly at random from the edge set.
// Uniform selection is what the soundness bound is computed against.
func (v *Verifier) ChooseChallenge() (Challenge, error) {
	if v.state != stateCommitted {
		return Challenge{}, fmt.Errorf("%w: challenge before commitments", ErrOutOfOrder)
	}
	if v.g.NbEdges() == 0 {
		return Challenge{}, ErrNoEdges
	}
	i, err := randInt(v.g.NbEdges())
	if err != nil {
		return Challenge{}, err
	}
	e, err := v.g.Edge(i)
	if err != nil {
		return Challenge{}, err
	}
	v.challenge = e
	v.state = stateChallenged
	return Challenge{RoundID: v.roundID, Edge: e}, nil
}

// Check opens the two challenged commitments with the revealed keys and
// returns the round verdict. A reveal that does not open is VerdictInvalid,
// equal colors are VerdictSameColor; both are definitive evidence of cheating
// and are never retried within the round. Whatever the outcome, the round is
// over and the verifier resets for the next one.
func (v *Verifier) Check(r Reveal) (Verdict, error) {
	if v.state != stateChallenged {
		return VerdictInvalid, fmt.Errorf("%w: reveal before challenge", ErrOutOfOrder)
	}
	if r.RoundID != v.roundID {
		return VerdictInvalid, fmt.Errorf("%w: got round %d, current is %d", ErrRoundMismatch, r.RoundID, v.roundID)
	}
	if r.Edge != v.challenge {
		return VerdictInvalid, fmt.Errorf("%w: reveal for edge (%d,%d), challenged (%d,%d)",
			ErrRoundMismatch, r.Edge.U, r.Edge.V, v.challenge.U, v.challenge.V)
	}
	defer v.reset()

	revealedU, err := v.commitments[r.Edge.U].Open(r.KeyU)
	if err != nil {
		return v.openVerdict(err)
	}
	revealedV, err := v.commitments[r.Edge.V].Open(r.KeyV)
	if err != nil {
		return v.openVerdict(err)
	}
	if revealedU.Value() == revealedV.Value() {
		return VerdictSameColor, nil
	}
	return VerdictPass, nil
}

// openVerdict turns a failed reveal into a verdict: a key mismatch is proof
// of inconsistency, anything else is an internal fault surfaced to the
// caller.
func (v *Verifier) openVerdict(err error) (Verdict, error) {
	if errors.Is(err, commitment.ErrKeyMismatch) {
		return VerdictInvalid, nil
	}
	return VerdictInvalid, err
}

func (v *Verifier) reset() {
	v.state = stateInit
	v.commitments = nil
	v.challenge = graph.Edge{}
}
