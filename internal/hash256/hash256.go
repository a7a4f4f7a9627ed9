// Package hash256 implements the 256-bit hash type shared by every
// masternode and LLMQ record: a plain big-endian byte array with two
// distinct orderings, natural and reversed (block-explorer display order).
package hash256

import (
	"bytes"
	"encoding/hex"
	"errors"

	sha256simd "github.com/minio/sha256-simd"
)

// Size is the length in bytes of a Hash256 value.
const Size = 32

// Hash256 is an opaque 256-bit value. The zero value represents "unset" or
// "unconfirmed" depending on context (see MasternodeEntry.ConfirmedHash).
type Hash256 [Size]byte

// Zero is the all-zero hash.
var Zero Hash256

// IsZero reports whether h is the all-zero value.
func (h Hash256) IsZero() bool {
	return h == Zero
}

// Less implements the natural (stored byte order) ordering.
func (h Hash256) Less(other Hash256) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

// Compare returns -1, 0, or 1 comparing h to other in natural byte order.
func (h Hash256) Compare(other Hash256) int {
	return bytes.Compare(h[:], other[:])
}

// Reversed returns h with its bytes reversed.
func (h Hash256) Reversed() Hash256 {
	var out Hash256
	for i, b := range h {
		out[Size-1-i] = b
	}
	return out
}

// ReversedLess compares h and other under the reversed ordering — the
// canonical block-explorer display order and the sort/tie-break key used
// throughout masternode and quorum processing.
func (h Hash256) ReversedLess(other Hash256) bool {
	return h.Reversed().Less(other.Reversed())
}

// ReversedCompare returns -1, 0, or 1 comparing h to other under the
// reversed ordering.
func (h Hash256) ReversedCompare(other Hash256) int {
	return h.Reversed().Compare(other.Reversed())
}

// String renders h in display order (reversed-byte hex), matching how
// block explorers and wire-format debug logs print Bitcoin-family hashes.
func (h Hash256) String() string {
	return hex.EncodeToString(h.Reversed().Bytes())
}

// Bytes returns a copy of the raw (natural-order) bytes.
func (h Hash256) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, h[:])
	return out
}

// FromBytes builds a Hash256 from a natural-order byte slice of exactly
// Size bytes.
func FromBytes(b []byte) (Hash256, bool) {
	var h Hash256
	if len(b) != Size {
		return h, false
	}
	copy(h[:], b)
	return h, true
}

// FromDisplayHex parses a reversed-byte-order (display) hex string, the
// inverse of String.
func FromDisplayHex(s string) (Hash256, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash256{}, err
	}
	var h Hash256
	if len(b) != Size {
		return h, errBadLength
	}
	copy(h[:], b)
	return h.Reversed(), nil
}

var errBadLength = errors.New("hash256: expected 32 bytes")

// SHA256D computes SHA256(SHA256(data)), the double hash used throughout
// the Bitcoin/Dash wire protocol.
func SHA256D(data []byte) Hash256 {
	first := sha256simd.Sum256(data)
	return Hash256(sha256simd.Sum256(first[:]))
}

// SHA256 computes a single SHA-256 digest, returned as a raw 32-byte value
// (used by confirmed_hash_hashed_with_pro_reg_tx_hash_at and quorum scoring,
// which are single-hashed per spec).
func SHA256(data []byte) [Size]byte {
	return sha256simd.Sum256(data)
}

// SortedReversed returns a copy of hs sorted ascending under the reversed
// ordering — the canonical sort used for masternode and quorum selection.
func SortedReversed(hs []Hash256) []Hash256 {
	out := make([]Hash256, len(hs))
	copy(out, hs)
	insertionSortReversed(out)
	return out
}

// insertionSortReversed keeps this package free of a sort.Interface
// boilerplate type for the handful of small slices (candidate lists,
// quorum member sets) the quorum engine sorts.
func insertionSortReversed(hs []Hash256) {
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0 && hs[j].ReversedLess(hs[j-1]); j-- {
			hs[j], hs[j-1] = hs[j-1], hs[j]
		}
	}
}
