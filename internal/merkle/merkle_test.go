package merkle

import (
	"testing"

	"github.com/dashpay/mnlist-engine/internal/hash256"
)

func leaf(b byte) hash256.Hash256 {
	return hash256.SHA256D([]byte{b})
}

func TestRootFromHashesSingle(t *testing.T) {
	l := leaf(1)
	if RootFromHashes([]hash256.Hash256{l}) != l {
		t.Fatal("single-leaf tree root must equal the leaf itself")
	}
}

func TestRootFromHashesOddDuplicatesLast(t *testing.T) {
	a, b, c := leaf(1), leaf(2), leaf(3)
	withDup := RootFromHashes([]hash256.Hash256{a, b, c, c})
	odd := RootFromHashes([]hash256.Hash256{a, b, c})
	if withDup != odd {
		t.Fatal("odd-sized level must duplicate the last hash, per Bitcoin's rule")
	}
}

func TestRootFromHashesEmpty(t *testing.T) {
	if RootFromHashes(nil) != (hash256.Hash256{}) {
		t.Fatal("empty input should yield the zero hash")
	}
}

// buildFlagsAllMatched constructs a partial tree that matches every leaf,
// which lets us assert PartialTree.Root() recomputes the same root as
// RootFromHashes over the full leaf set.
func buildFlagsAllMatched(n int) (hashes []hash256.Hash256, flags []byte) {
	leaves := make([]hash256.Hash256, n)
	for i := range leaves {
		leaves[i] = leaf(byte(i + 1))
	}
	// A tree where every leaf matches degenerates to carrying every leaf
	// hash with a "1" flag bit down to height 0, and "1" bits on every
	// internal node above it.
	height := 0
	width := func(h int) int { return (n + (1 << uint(h)) - 1) >> uint(h) }
	for width(height) > 1 {
		height++
	}
	var bits []bool
	var collectedHashes []hash256.Hash256
	var rec func(h, pos int)
	rec = func(h, pos int) {
		bits = append(bits, true)
		if h == 0 {
			collectedHashes = append(collectedHashes, leaves[pos])
			return
		}
		rec(h-1, pos*2)
		if pos*2+1 < width(h-1) {
			rec(h-1, pos*2+1)
		}
	}
	rec(height, 0)

	flags = make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			flags[i/8] |= 1 << uint(i%8)
		}
	}
	return collectedHashes, flags
}

func TestPartialTreeRootMatchesFullRoot(t *testing.T) {
	const n = 5
	leaves := make([]hash256.Hash256, n)
	for i := range leaves {
		leaves[i] = leaf(byte(i + 1))
	}
	want := RootFromHashes(leaves)

	hashes, flags := buildFlagsAllMatched(n)
	pt := NewPartialTree(n, hashes, flags)
	got, matched, err := pt.Root()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("partial tree root mismatch: got %s want %s", got, want)
	}
	if len(matched) != n {
		t.Fatalf("expected all %d leaves matched, got %d", n, len(matched))
	}
}

func TestPartialTreeMalformedInsufficientHashes(t *testing.T) {
	pt := NewPartialTree(4, nil, []byte{0xff})
	if _, _, err := pt.Root(); err == nil {
		t.Fatal("expected error for a tree with no hashes at all")
	}
}
