// Package bitset wraps bits-and-blooms/bitset for the fixed-width,
// LSB-first bit vectors the wire format carries: signers_bitset,
// valid_members_bitset, and a snapshot's member_bitset (spec §3).
package bitset

import (
	"errors"

	bbbitset "github.com/bits-and-blooms/bitset"
)

// ErrCount is returned when a bit count does not agree with the supplied
// byte slice length.
var ErrCount = errors.New("bitset: count does not fit in the given bytes")

// BitSet is a fixed-width bit vector: it knows its intended bit count even
// though the underlying byte encoding is always a whole number of bytes.
type BitSet struct {
	bits  *bbbitset.BitSet
	count uint32 // logical bit count (the wire format's signers_count/valid_members_count)
}

// New allocates an empty BitSet able to hold count bits.
func New(count uint32) *BitSet {
	return &BitSet{bits: bbbitset.New(uint(count)), count: count}
}

// FromBytes decodes a LSB-first-packed bitset from raw wire bytes. count is
// the number of logical bits (which may be less than len(data)*8).
func FromBytes(data []byte, count uint32) (*BitSet, error) {
	minBytes := (count + 7) / 8
	if uint32(len(data)) < minBytes {
		return nil, ErrCount
	}
	b := bbbitset.New(uint(count))
	for i := uint32(0); i < count; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		if data[byteIdx]&(1<<bitIdx) != 0 {
			b.Set(uint(i))
		}
	}
	return &BitSet{bits: b, count: count}, nil
}

// Test reports whether bit i is set. Out-of-range indices report false.
func (b *BitSet) Test(i uint32) bool {
	if b == nil || i >= b.count {
		return false
	}
	return b.bits.Test(uint(i))
}

// Set sets bit i.
func (b *BitSet) Set(i uint32) {
	if i < b.count {
		b.bits.Set(uint(i))
	}
}

// Count returns the logical bit count.
func (b *BitSet) Count() uint32 { return b.count }

// PopCount returns the number of set bits.
func (b *BitSet) PopCount() uint32 {
	if b == nil {
		return 0
	}
	return uint32(b.bits.Count())
}

// Bytes packs the bitset back into LSB-first bytes, the inverse of
// FromBytes.
func (b *BitSet) Bytes() []byte {
	n := (b.count + 7) / 8
	out := make([]byte, n)
	for i := uint32(0); i < b.count; i++ {
		if b.bits.Test(uint(i)) {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}
