package protocol

// Result is the aggregate outcome of a proof run.
type Result struct {
	// Accepted is true iff every executed round passed.
	Accepted bool
	// RoundsPlanned is the round count derived from the confidence target.
	RoundsPlanned int
	// RoundsRun is the number of rounds actually executed; with the default
	// fail-fast policy it can be lower than RoundsPlanned on rejection.
	RoundsRun int
	// Confidence is the nominal confidence percentage the planned rounds
	// achieve against a cheating prover.
	Confidence float64
}
