package protocol

import (
	"testing"

	"github.com/SamBroomy/zk-sudoku-prover/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCommitmentsRoundTrip(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 2)

	rc, err := prover.StartRound()
	require.NoError(t, err)

	data, err := rc.MarshalBinary()
	require.NoError(t, err)

	var decoded RoundCommitments
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, rc.RoundID, decoded.RoundID)
	require.Len(t, decoded.Commitments, len(rc.Commitments))
	for node := range rc.Commitments {
		assert.Equal(t, rc.Commitments[node].Digest(), decoded.Commitments[node].Digest())
		assert.Equal(t, node, decoded.Commitments[node].NodeID())
	}
}

func TestDecodedCommitmentsVerify(t *testing.T) {
	// a full round across the wire boundary: the verifier only ever sees
	// reconstructed messages
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 2)
	verifier := NewVerifier(g)

	rc, err := prover.StartRound()
	require.NoError(t, err)
	rcData, err := rc.MarshalBinary()
	require.NoError(t, err)
	var rcWire RoundCommitments
	require.NoError(t, rcWire.UnmarshalBinary(rcData))
	require.NoError(t, verifier.ReceiveCommitments(&rcWire))

	challenge, err := verifier.ChooseChallenge()
	require.NoError(t, err)
	chData, err := challenge.MarshalBinary()
	require.NoError(t, err)
	var chWire Challenge
	require.NoError(t, chWire.UnmarshalBinary(chData))

	reveal, err := prover.Respond(chWire)
	require.NoError(t, err)
	revData, err := reveal.MarshalBinary()
	require.NoError(t, err)
	var revWire Reveal
	require.NoError(t, revWire.UnmarshalBinary(revData))

	verdict, err := verifier.Check(revWire)
	require.NoError(t, err)
	assert.Equal(t, VerdictPass, verdict)
}

func TestChallengeRoundTrip(t *testing.T) {
	c := Challenge{RoundID: 7, Edge: graph.Edge{U: 3, V: 42}}
	data, err := c.MarshalBinary()
	require.NoError(t, err)

	var decoded Challenge
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, c, decoded)
}

func TestResultRoundTrip(t *testing.T) {
	r := Result{Accepted: true, RoundsPlanned: 3731, RoundsRun: 3731, Confidence: 99.0}
	data, err := r.MarshalBinary()
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, r, decoded)
}

func TestUnmarshalRejectsWrongKind(t *testing.T) {
	c := Challenge{RoundID: 1, Edge: graph.Edge{U: 0, V: 1}}
	data, err := c.MarshalBinary()
	require.NoError(t, err)

	var r Result
	require.ErrorIs(t, r.UnmarshalBinary(data), ErrMalformedMessage)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	var c Challenge
	require.ErrorIs(t, c.UnmarshalBinary([]byte{0xDE, 0xAD, 0xBE, 0xEF}), ErrMalformedMessage)

	var rc RoundCommitments
	require.ErrorIs(t, rc.UnmarshalBinary(nil), ErrMalformedMessage)
}

func TestRevealRejectsBadKeyMaterial(t *testing.T) {
	g, coloring := testGraph(t)
	prover := newProver(g, coloring, 1)

	rc, err := prover.StartRound()
	require.NoError(t, err)
	reveal, err := prover.Respond(Challenge{RoundID: rc.RoundID, Edge: graph.Edge{U: 0, V: 1}})
	require.NoError(t, err)

	data, err := reveal.MarshalBinary()
	require.NoError(t, err)

	// value 0 is not constructible on the receiving side
	var w wireReveal
	require.NoError(t, openEnvelope(data, KindReveal, &w))
	w.ValueU = 0
	bad, err := sealEnvelope(KindReveal, w)
	require.NoError(t, err)

	var decoded Reveal
	require.ErrorIs(t, decoded.UnmarshalBinary(bad), ErrMalformedMessage)

	w.ValueU = 5
	w.NonceU = w.NonceU[:8]
	bad, err = sealEnvelope(KindReveal, w)
	require.NoError(t, err)
	require.ErrorIs(t, decoded.UnmarshalBinary(bad), ErrMalformedMessage)
}
