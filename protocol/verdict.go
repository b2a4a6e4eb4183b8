package protocol

// Verdict is the outcome of one verified round.
type Verdict uint8

const (
	// VerdictPass: both reveals opened and the colors differ.
	VerdictPass Verdict = iota
	// VerdictInvalid: a reveal failed to open its commitment. Definitive
	// evidence of cheating or corruption.
	VerdictInvalid
	// VerdictSameColor: both reveals opened but the colors are equal, so the
	// claimed solution violates the challenged constraint.
	VerdictSameColor
)

// String returns the verdict in string format.
func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictInvalid:
		return "invalid"
	case VerdictSameColor:
		return "same-color"
	default:
		return "unknown"
	}
}
