package protocol

import (
	"fmt"
	"sync"

	zksudoku "github.com/SamBroomy/zk-sudoku-prover"
	"github.com/SamBroomy/zk-sudoku-prover/commitment"
	"github.com/SamBroomy/zk-sudoku-prover/graph"
	"github.com/SamBroomy/zk-sudoku-prover/logger"
	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
)

// The wire layer lets collocated roles be split behind any message channel:
// every protocol message serializes to a deterministic CBOR envelope carrying
// the library version and a message kind. No transport is mandated.

// MessageKind tags the payload carried by an envelope.
type MessageKind uint8

const (
	KindUnknown MessageKind = iota
	KindCommitments
	KindChallenge
	KindReveal
	KindResult
)

// String returns the message kind in string format.
func (k MessageKind) String() string {
	switch k {
	case KindCommitments:
		return "commitments"
	case KindChallenge:
		return "challenge"
	case KindReveal:
		return "reveal"
	case KindResult:
		return "result"
	default:
		return "unknown"
	}
}

type envelope struct {
	Version string          `cbor:"1,keyasint"`
	Kind    MessageKind     `cbor:"2,keyasint"`
	Payload cbor.RawMessage `cbor:"3,keyasint"`
}

type wireCommitments struct {
	RoundID uint64   `cbor:"1,keyasint"`
	Digests [][]byte `cbor:"2,keyasint"`
}

type wireChallenge struct {
	RoundID uint64 `cbor:"1,keyasint"`
	U       int    `cbor:"2,keyasint"`
	V       int    `cbor:"3,keyasint"`
}

type wireReveal struct {
	RoundID uint64 `cbor:"1,keyasint"`
	U       int    `cbor:"2,keyasint"`
	V       int    `cbor:"3,keyasint"`
	ValueU  uint8  `cbor:"4,keyasint"`
	NonceU  []byte `cbor:"5,keyasint"`
	ValueV  uint8  `cbor:"6,keyasint"`
	NonceV  []byte `cbor:"7,keyasint"`
}

type wireResult struct {
	Accepted      bool    `cbor:"1,keyasint"`
	RoundsPlanned int     `cbor:"2,keyasint"`
	RoundsRun     int     `cbor:"3,keyasint"`
	Confidence    float64 `cbor:"4,keyasint"`
}

var (
	encModeOnce sync.Once
	encMode     cbor.EncMode
)

func wireEncMode() cbor.EncMode {
	encModeOnce.Do(func() {
		var err error
		encMode, err = cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			panic(err)
		}
	})
	return encMode
}

func sealEnvelope(kind MessageKind, payload any) ([]byte, error) {
	em := wireEncMode()
	raw, err := em.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("protocol: encoding %s: %w", kind, err)
	}
	return em.Marshal(envelope{
		Version: zksudoku.Version.String(),
		Kind:    kind,
		Payload: raw,
	})
}

func openEnvelope(data []byte, kind MessageKind, payload any) error {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	if env.Kind != kind {
		return fmt.Errorf("%w: expected %s, got %s", ErrMalformedMessage, kind, env.Kind)
	}
	wireVersion, err := semver.Parse(env.Version)
	if err != nil {
		return fmt.Errorf("%w: bad version %q", ErrMalformedMessage, env.Version)
	}
	if wireVersion.Compare(zksudoku.Version) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", zksudoku.Version.String()).Str("message", wireVersion.String()).
			Msg("version mismatch with protocol message. there are no guarantees on compatibility")
	}
	if err := cbor.Unmarshal(env.Payload, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (rc *RoundCommitments) MarshalBinary() ([]byte, error) {
	w := wireCommitments{
		RoundID: rc.RoundID,
		Digests: make([][]byte, len(rc.Commitments)),
	}
	for node, c := range rc.Commitments {
		if c == nil || c.NodeID() != node {
			return nil, fmt.Errorf("%w: bad commitment in slot %d", ErrMalformedMessage, node)
		}
		d := c.Digest()
		w.Digests[node] = d[:]
	}
	return sealEnvelope(KindCommitments, w)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (rc *RoundCommitments) UnmarshalBinary(data []byte) error {
	var w wireCommitments
	if err := openEnvelope(data, KindCommitments, &w); err != nil {
		return err
	}
	commitments := make([]*commitment.Hidden, len(w.Digests))
	for node, raw := range w.Digests {
		if len(raw) != commitment.DigestSize {
			return fmt.Errorf("%w: digest %d has %d bytes", ErrMalformedMessage, node, len(raw))
		}
		var d [commitment.DigestSize]byte
		copy(d[:], raw)
		commitments[node] = commitment.FromDigest(node, d)
	}
	rc.RoundID = w.RoundID
	rc.Commitments = commitments
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Challenge) MarshalBinary() ([]byte, error) {
	return sealEnvelope(KindChallenge, wireChallenge{RoundID: c.RoundID, U: c.Edge.U, V: c.Edge.V})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *Challenge) UnmarshalBinary(data []byte) error {
	var w wireChallenge
	if err := openEnvelope(data, KindChallenge, &w); err != nil {
		return err
	}
	c.RoundID = w.RoundID
	c.Edge = graph.Edge{U: w.U, V: w.V}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *Reveal) MarshalBinary() ([]byte, error) {
	nonceU := r.KeyU.Nonce()
	nonceV := r.KeyV.Nonce()
	return sealEnvelope(KindReveal, wireReveal{
		RoundID: r.RoundID,
		U:       r.Edge.U,
		V:       r.Edge.V,
		ValueU:  uint8(r.KeyU.Value()),
		NonceU:  nonceU[:],
		ValueV:  uint8(r.KeyV.Value()),
		NonceV:  nonceV[:],
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Reveal) UnmarshalBinary(data []byte) error {
	var w wireReveal
	if err := openEnvelope(data, KindReveal, &w); err != nil {
		return err
	}
	keyU, err := unmarshalKey(w.ValueU, w.NonceU)
	if err != nil {
		return err
	}
	keyV, err := unmarshalKey(w.ValueV, w.NonceV)
	if err != nil {
		return err
	}
	r.RoundID = w.RoundID
	r.Edge = graph.Edge{U: w.U, V: w.V}
	r.KeyU = keyU
	r.KeyV = keyV
	return nil
}

func unmarshalKey(rawValue uint8, rawNonce []byte) (commitment.Key, error) {
	value, err := sudoku.NewValue(rawValue)
	if err != nil {
		return commitment.Key{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	if len(rawNonce) != commitment.NonceSize {
		return commitment.Key{}, fmt.Errorf("%w: nonce has %d bytes", ErrMalformedMessage, len(rawNonce))
	}
	var nonce [commitment.NonceSize]byte
	copy(nonce[:], rawNonce)
	return commitment.NewKey(value, nonce), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *Result) MarshalBinary() ([]byte, error) {
	return sealEnvelope(KindResult, wireResult{
		Accepted:      r.Accepted,
		RoundsPlanned: r.RoundsPlanned,
		RoundsRun:     r.RoundsRun,
		Confidence:    r.Confidence,
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Result) UnmarshalBinary(data []byte) error {
	var w wireResult
	if err := openEnvelope(data, KindResult, &w); err != nil {
		return err
	}
	r.Accepted = w.Accepted
	r.RoundsPlanned = w.RoundsPlanned
	r.RoundsRun = w.RoundsRun
	r.Confidence = w.Confidence
	return nil
}
