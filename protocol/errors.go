package protocol

import "errors"

var (
	// ErrInvalidConfidence rejects confidence targets outside (0, 100);
	// 100% is unattainable in finitely many rounds.
	ErrInvalidConfidence = errors.New("protocol: confidence must be in (0, 100) exclusive")

	// ErrNoEdges rejects degenerate graphs with nothing to challenge.
	ErrNoEdges = errors.New("protocol: graph has no edges to challenge")

	// ErrUnknownEdge flags a challenge for an edge the graph does not contain.
	ErrUnknownEdge = errors.New("protocol: challenged edge is not part of the graph")

	// ErrRoundMismatch flags a message carrying a stale or foreign round id.
	ErrRoundMismatch = errors.New("protocol: message does not belong to the current round")

	// ErrOutOfOrder flags a call that violates the commit-challenge-reveal
	// sequencing of a round.
	ErrOutOfOrder = errors.New("protocol: call out of protocol order")

	// ErrTimeout reports a round abandoned through context cancellation.
	ErrTimeout = errors.New("protocol: round cancelled")

	// ErrMalformedMessage flags a structurally invalid protocol message.
	ErrMalformedMessage = errors.New("protocol: malformed message")
)
