// Package merkle builds and verifies the Bitcoin-style merkle trees used to
// commit a block's transaction set and to prove a single transaction's
// membership without shipping the whole block (spec §4.2 step 6).
package merkle

import (
	"errors"

	"github.com/dashpay/mnlist-engine/internal/hash256"
)

// ErrMalformedPartialTree is returned when a (merkle_hashes, merkle_flags,
// total_transactions) triple cannot be parsed as a well-formed partial
// merkle tree.
var ErrMalformedPartialTree = errors.New("merkle: malformed partial tree")

// RootFromHashes computes the classic Bitcoin merkle root over leaves,
// duplicating the last element of an odd-sized level (spec glossary:
// "Merkle root"). An empty input yields the zero hash.
func RootFromHashes(leaves []hash256.Hash256) hash256.Hash256 {
	if len(leaves) == 0 {
		return hash256.Hash256{}
	}
	level := make([]hash256.Hash256, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]hash256.Hash256, len(level)/2)
		for i := range next {
			next[i] = combine(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}

func combine(left, right hash256.Hash256) hash256.Hash256 {
	var buf [64]byte
	copy(buf[:32], left.Bytes())
	copy(buf[32:], right.Bytes())
	return hash256.SHA256D(buf[:])
}

// PartialTree is a BIP37-style partial merkle tree: enough hashes and flag
// bits to recompute the root and identify which leaves were "matched"
// (spec §4.2 step 6, where the coinbase transaction is always the matched
// leaf of interest).
type PartialTree struct {
	TotalTransactions int
	Hashes            []hash256.Hash256
	Flags             []byte

	bitsUsed  int
	hashesUsed int
}

// NewPartialTree wraps a decoded (merkle_hashes, merkle_flags,
// total_transactions) triple for traversal.
func NewPartialTree(totalTransactions int, hashes []hash256.Hash256, flags []byte) *PartialTree {
	return &PartialTree{TotalTransactions: totalTransactions, Hashes: hashes, Flags: flags}
}

// Root reconstructs the merkle root and the set of matched leaf hashes (in
// tree order) implied by the tree's flags and hashes.
func (t *PartialTree) Root() (hash256.Hash256, []hash256.Hash256, error) {
	if t.TotalTransactions == 0 {
		return hash256.Hash256{}, nil, ErrMalformedPartialTree
	}
	height := 0
	for t.calcTreeWidth(height) > 1 {
		height++
	}

	t.bitsUsed = 0
	t.hashesUsed = 0
	var matched []hash256.Hash256
	root, err := t.traverse(height, 0, &matched)
	if err != nil {
		return hash256.Hash256{}, nil, err
	}
	// Every flag bit and hash must be consumed exactly; leftovers mean the
	// encoding was not minimal / was tampered with.
	if t.hashesUsed != len(t.Hashes) {
		return hash256.Hash256{}, nil, ErrMalformedPartialTree
	}
	if (t.bitsUsed+7)/8 != len(t.Flags) {
		return hash256.Hash256{}, nil, ErrMalformedPartialTree
	}
	return root, matched, nil
}

func (t *PartialTree) calcTreeWidth(height int) int {
	return (t.TotalTransactions + (1 << uint(height)) - 1) >> uint(height)
}

func (t *PartialTree) traverse(height, pos int, matched *[]hash256.Hash256) (hash256.Hash256, error) {
	if t.bitsUsed >= len(t.Flags)*8 {
		return hash256.Hash256{}, ErrMalformedPartialTree
	}
	parentOfMatch := t.flagBit(t.bitsUsed)
	t.bitsUsed++

	if height == 0 || !parentOfMatch {
		if t.hashesUsed >= len(t.Hashes) {
			return hash256.Hash256{}, ErrMalformedPartialTree
		}
		h := t.Hashes[t.hashesUsed]
		t.hashesUsed++
		if height == 0 && parentOfMatch {
			*matched = append(*matched, h)
		}
		return h, nil
	}

	left, err := t.traverse(height-1, pos*2, matched)
	if err != nil {
		return hash256.Hash256{}, err
	}
	width := t.calcTreeWidth(height - 1)
	if pos*2+1 < width {
		right, err := t.traverse(height-1, pos*2+1, matched)
		if err != nil {
			return hash256.Hash256{}, err
		}
		return combine(left, right), nil
	}
	return combine(left, left), nil
}

func (t *PartialTree) flagBit(bit int) bool {
	byteIdx := bit / 8
	if byteIdx >= len(t.Flags) {
		return false
	}
	return t.Flags[byteIdx]&(1<<uint(bit%8)) != 0
}
