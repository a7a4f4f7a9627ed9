package model

import "github.com/dashpay/mnlist-engine/internal/bitset"

// SkipListMode selects how LLMQSnapshot.ApplySkipStrategy filters the
// combined candidate list before distributing it across quarters
// (spec §3, §8 "testable properties").
type SkipListMode uint32

const (
	SkipListModeNoSkipping SkipListMode = 0
	SkipListModeSkipFirst  SkipListMode = 1
	SkipListModeSkipExcept SkipListMode = 2
	SkipListModeSkipAll    SkipListMode = 3
)

// LLMQSnapshot captures the bit-vector + skip-list needed to reconstruct a
// past quarter without replaying history (spec §3).
type LLMQSnapshot struct {
	MemberBitset *bitset.BitSet
	SkipList     []int32
	Mode         SkipListMode
}

// MemberIsTrueAtIndex reports whether candidate i was a "used" member at
// the snapshotted height.
func (s *LLMQSnapshot) MemberIsTrueAtIndex(i int) bool {
	if s == nil || s.MemberBitset == nil || i < 0 {
		return false
	}
	return s.MemberBitset.Test(uint32(i))
}

// ApplySkipStrategy filters combined (already reversed-score sorted,
// unused-then-used per spec §4.3.2 step 6) according to the snapshot's
// skip-list mode, then round-robin distributes survivors across
// quorumCount quarters, each capped at quarterSize.
//
//   - NoSkipping: nothing is filtered.
//   - SkipFirst: the first SkipList[0] entries of combined are dropped —
//     the read cursor starts SkipList[0] positions in.
//   - SkipExcept: only the indices listed in SkipList survive; every other
//     index is dropped.
//   - SkipAll: every index is dropped, yielding quorumCount empty quarters.
func (s *LLMQSnapshot) ApplySkipStrategy(combined []*MasternodeEntry, quorumCount, quarterSize int) ([][]*MasternodeEntry, error) {
	quarters := make([][]*MasternodeEntry, quorumCount)
	for i := range quarters {
		quarters[i] = make([]*MasternodeEntry, 0, quarterSize)
	}

	var filtered []*MasternodeEntry
	switch s.Mode {
	case SkipListModeNoSkipping:
		filtered = combined
	case SkipListModeSkipAll:
		filtered = nil
	case SkipListModeSkipFirst:
		skip := 0
		if len(s.SkipList) > 0 && s.SkipList[0] > 0 {
			skip = int(s.SkipList[0])
		}
		if skip > len(combined) {
			skip = len(combined)
		}
		filtered = combined[skip:]
	case SkipListModeSkipExcept:
		keep := make(map[int]struct{}, len(s.SkipList))
		for _, idx := range s.SkipList {
			keep[int(idx)] = struct{}{}
		}
		for i, m := range combined {
			if _, ok := keep[i]; ok {
				filtered = append(filtered, m)
			}
		}
	default:
		filtered = combined
	}

	if quorumCount == 0 || quarterSize <= 0 {
		return quarters, nil
	}

	full := 0
	q := 0
	for _, m := range filtered {
		if full == quorumCount {
			break
		}
		// Advance to the next non-full quarter, round robin.
		for len(quarters[q]) >= quarterSize {
			q = (q + 1) % quorumCount
		}
		quarters[q] = append(quarters[q], m)
		if len(quarters[q]) == quarterSize {
			full++
		}
		q = (q + 1) % quorumCount
	}

	return quarters, nil
}
