// Package commitment implements the binding and hiding commitments that carry
// a node's shuffled color through a proof round.
//
// A commitment digest is blake2b-256 over the domain-separated tuple
// (node, value, nonce). Binding comes from collision resistance: the prover
// cannot open a digest to a different value after committing. Hiding comes
// from the 32-byte random nonce: even though the value space is only nine
// symbols, brute-forcing (value, nonce) pairs against the digest is
// infeasible. Including the node identifier stops a digest from being
// replayed in another node's slot.
package commitment

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
	"golang.org/x/crypto/blake2b"
)

const (
	// NonceSize is the entropy, in bytes, behind each commitment.
	NonceSize = 32
	// DigestSize is the commitment digest length in bytes.
	DigestSize = blake2b.Size256
)

// domain separation tag, versioned with the digest layout
var dst = []byte("zk-sudoku-prover/commitment/v1")

var (
	ErrKeyMismatch = errors.New("commitment: key does not open this commitment")
	ErrConsumed    = errors.New("commitment: already consumed by a reveal attempt")
)

// Key is the secret that opens one commitment: the committed value and its
// nonce. Generated once per commitment, sent to the verifier only when that
// node is challenged, and destroyed otherwise.
type Key struct {
	value sudoku.Value
	nonce [NonceSize]byte
}

// NewKey reassembles a key from its parts, typically on the verifier side of
// a wire boundary.
func NewKey(value sudoku.Value, nonce [NonceSize]byte) Key {
	return Key{value: value, nonce: nonce}
}

// Value returns the committed value the key claims.
func (k Key) Value() sudoku.Value {
	return k.value
}

// Nonce returns the key's nonce.
func (k Key) Nonce() [NonceSize]byte {
	return k.nonce
}

// Destroy zeroes the key material in place. A destroyed key opens nothing.
func (k *Key) Destroy() {
	k.value = 0
	for i := range k.nonce {
		k.nonce[i] = 0
	}
}

// Hidden is an unopened commitment: a digest plus the owning node identifier,
// with no accessible value. It is single-use; the first Open attempt,
// successful or not, consumes it.
type Hidden struct {
	digest   [DigestSize]byte
	node     int
	consumed bool
}

// Revealed is an opened commitment exposing its verified value.
type Revealed struct {
	digest [DigestSize]byte
	node   int
	value  sudoku.Value
}

// Commit binds value into a fresh commitment for the given node and returns
// the hidden commitment together with its opening key.
func Commit(value sudoku.Value, node int) (*Hidden, Key, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, Key{}, fmt.Errorf("commitment: drawing nonce: %w", err)
	}
	return &Hidden{
		digest: digest(node, value, nonce),
		node:   node,
	}, Key{value: value, nonce: nonce}, nil
}

// FromDigest reconstructs a hidden commitment received over a wire boundary.
func FromDigest(node int, d [DigestSize]byte) *Hidden {
	return &Hidden{digest: d, node: node}
}

// NodeID returns the node this commitment is for.
func (c *Hidden) NodeID() int {
	return c.node
}

// Digest returns the commitment digest.
func (c *Hidden) Digest() [DigestSize]byte {
	return c.digest
}

// Open consumes the commitment and verifies the key against it. On success it
// returns the revealed commitment; on digest mismatch it fails with
// ErrKeyMismatch. Either way the hidden commitment is spent: a second call
// fails with ErrConsumed, so there is no second guess.
func (c *Hidden) Open(key Key) (Revealed, error) {
	if c.consumed {
		return Revealed{}, ErrConsumed
	}
	c.consumed = true

	want := digest(c.node, key.value, key.nonce)
	if subtle.ConstantTimeCompare(want[:], c.digest[:]) != 1 {
		return Revealed{}, fmt.Errorf("%w: node %d", ErrKeyMismatch, c.node)
	}
	return Revealed{digest: c.digest, node: c.node, value: key.value}, nil
}

// NodeID returns the node this commitment is for.
func (r Revealed) NodeID() int {
	return r.node
}

// Value returns the verified committed value.
func (r Revealed) Value() sudoku.Value {
	return r.value
}

func digest(node int, value sudoku.Value, nonce [NonceSize]byte) [DigestSize]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only fails on a bad key argument
	}
	var id [4]byte
	binary.LittleEndian.PutUint32(id[:], uint32(node))
	h.Write(dst)
	h.Write(id[:])
	h.Write([]byte{byte(value)})
	h.Write(nonce[:])

	var out [DigestSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
