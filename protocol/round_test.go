package protocol

import (
	"testing"

	"github.com/SamBroomy/zk-sudoku-prover/commitment"
	"github.com/SamBroomy/zk-sudoku-prover/graph"
	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGrid = "296541378851273694743698251915764832387152946624839517139486725478325169562917483"

func testGraph(t *testing.T) (*graph.Graph, []sudoku.Value) {
	t.Helper()
	grid, err := sudoku.Parse(validGrid)
	require.NoError(t, err)
	g, err := graph.Build(grid.Assignment())
	require.NoError(t, err)
	coloring, err := g.ExtendColoring(grid.Assignment())
	require.NoError(t, err)
	return g, coloring
}

// cheatingColoring corrupts one cell so that some edges connect equal colors.
func cheatingColoring(coloring []sudoku.Value) []sudoku.Value {
	bad := make([]sudoku.Value, len(coloring))
	copy(bad, coloring)
	bad[1] = bad[0]
	return bad
}

func TestHonestRoundPasses(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 2)
	verifier := NewVerifier(g)

	for i := 0; i < 50; i++ {
		verdict, err := runRound(prover, verifier)
		require.NoError(t, err)
		assert.Equal(t, VerdictPass, verdict)
	}
}

func TestCheatingProverGetsCaught(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, cheatingColoring(coloring), 2)
	verifier := NewVerifier(g)

	// corrupting one cell makes at least one of the 810 edges monochromatic,
	// so each round catches the cheat with probability >= 1/810; surviving
	// 20000 rounds has probability under e^-24, so a miss here means the
	// verifier is broken
	caught := false
	for i := 0; i < 20000 && !caught; i++ {
		verdict, err := runRound(prover, verifier)
		require.NoError(t, err)
		caught = verdict == VerdictSameColor
		require.NotEqual(t, VerdictInvalid, verdict)
	}
	assert.True(t, caught, "cheating prover was never challenged on a bad edge")
}

func TestTamperedRevealIsInvalid(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 1)
	verifier := NewVerifier(g)

	rc, err := prover.StartRound()
	require.NoError(t, err)
	require.NoError(t, verifier.ReceiveCommitments(rc))
	challenge, err := verifier.ChooseChallenge()
	require.NoError(t, err)
	reveal, err := prover.Respond(challenge)
	require.NoError(t, err)

	// swap in a key that does not open the commitment
	reveal.KeyU = commitment.NewKey(reveal.KeyU.Value(), [commitment.NonceSize]byte{0xAA})

	verdict, err := verifier.Check(reveal)
	require.NoError(t, err)
	assert.Equal(t, VerdictInvalid, verdict)
}

func TestVerifierSequencing(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 1)
	verifier := NewVerifier(g)

	// challenge before commitments
	_, err := verifier.ChooseChallenge()
	require.ErrorIs(t, err, ErrOutOfOrder)

	// reveal before challenge
	rc, err := prover.StartRound()
	require.NoError(t, err)
	require.NoError(t, verifier.ReceiveCommitments(rc))
	_, err = verifier.Check(Reveal{})
	require.ErrorIs(t, err, ErrOutOfOrder)

	// commitments twice in a row
	rc2, err := prover.StartRound()
	require.NoError(t, err)
	err = verifier.ReceiveCommitments(rc2)
	require.ErrorIs(t, err, ErrOutOfOrder)
}

func TestVerifierRejectsMalformedCommitments(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 1)
	verifier := NewVerifier(g)

	rc, err := prover.StartRound()
	require.NoError(t, err)

	short := &RoundCommitments{RoundID: rc.RoundID, Commitments: rc.Commitments[:10]}
	require.ErrorIs(t, verifier.ReceiveCommitments(short), ErrMalformedMessage)

	rc.Commitments[3] = nil
	require.ErrorIs(t, verifier.ReceiveCommitments(rc), ErrMalformedMessage)
}

func TestRespondGuards(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 1)

	// respond with no round in flight
	_, err := prover.Respond(Challenge{})
	require.ErrorIs(t, err, ErrOutOfOrder)

	rc, err := prover.StartRound()
	require.NoError(t, err)

	// stale round id
	_, err = prover.Respond(Challenge{RoundID: rc.RoundID + 1, Edge: graph.Edge{U: 0, V: 1}})
	require.ErrorIs(t, err, ErrRoundMismatch)

	// edge outside the graph
	_, err = prover.Respond(Challenge{RoundID: rc.RoundID, Edge: graph.Edge{U: 0, V: 80}})
	require.ErrorIs(t, err, ErrUnknownEdge)

	// a valid respond consumes the round
	_, err = prover.Respond(Challenge{RoundID: rc.RoundID, Edge: graph.Edge{U: 0, V: 1}})
	require.NoError(t, err)
	_, err = prover.Respond(Challenge{RoundID: rc.RoundID, Edge: graph.Edge{U: 0, V: 1}})
	require.ErrorIs(t, err, ErrOutOfOrder)
}

func TestCheckRejectsWrongRoundOrEdge(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 1)
	verifier := NewVerifier(g)

	rc, err := prover.StartRound()
	require.NoError(t, err)
	require.NoError(t, verifier.ReceiveCommitments(rc))
	challenge, err := verifier.ChooseChallenge()
	require.NoError(t, err)
	reveal, err := prover.Respond(challenge)
	require.NoError(t, err)

	wrongRound := reveal
	wrongRound.RoundID++
	_, err = verifier.Check(wrongRound)
	require.ErrorIs(t, err, ErrRoundMismatch)

	wrongEdge := reveal
	wrongEdge.Edge = graph.Edge{U: challenge.Edge.U, V: challenge.Edge.V + 1}
	_, err = verifier.Check(wrongEdge)
	require.ErrorIs(t, err, ErrRoundMismatch)

	// the round is still checkable with the genuine reveal
	verdict, err := verifier.Check(reveal)
	require.NoError(t, err)
	assert.Equal(t, VerdictPass, verdict)
}

func TestCommitmentsDifferAcrossRounds(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 2)

	rc1, err := prover.StartRound()
	require.NoError(t, err)
	rc2, err := prover.StartRound()
	require.NoError(t, err)

	same := 0
	for node := range rc1.Commitments {
		if rc1.Commitments[node].Digest() == rc2.Commitments[node].Digest() {
			same++
		}
	}
	assert.Zero(t, same, "fresh nonces must make every digest differ across rounds")
}
