package quorum

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// Quarters is the reconstruction of one cycle's per-quorum member slices —
// always length quorumCount.
type Quarters [][]*model.MasternodeEntry

// OldCycleQuarter implements spec §4.3.2 steps 2-7 for a single old cycle
// (H-3c, H-2c, or H-c): score the candidates visible at that cycle's work
// block, partition by the snapshot's used/unused bit, and let the
// snapshot's skip strategy distribute the result across quarters.
// candidates must already be resolved by the caller (an engine-level
// cache/provider lookup) — this package performs no I/O.
func OldCycleQuarter(
	candidates []*model.MasternodeEntry,
	llmqType model.LLMQType,
	workBlockHash hash256.Hash256,
	workBlockHeight uint32,
	snapshot *model.LLMQSnapshot,
	quorumCount, quarterSize int,
) (Quarters, error) {
	mod := QuorumModifier(llmqType, workBlockHash)
	scoredList := scoreCandidates(candidates, mod, workBlockHeight)
	sortByReversedScoreDescending(scoredList)

	var used, unused []*model.MasternodeEntry
	for i, s := range scoredList {
		if snapshot.MemberIsTrueAtIndex(i) {
			used = append(used, s.entry)
		} else {
			unused = append(unused, s.entry)
		}
	}

	combined := make([]*model.MasternodeEntry, 0, len(used)+len(unused))
	combined = append(combined, unused...)
	combined = append(combined, used...)

	quarters, err := snapshot.ApplySkipStrategy(combined, quorumCount, quarterSize)
	return Quarters(quarters), err
}

// NewCycleQuarter implements spec §4.3.2 steps 1-5 for the current cycle
// H, which has no snapshot: members of the three older cycles' quarters
// that are still present and valid in the current list count as used —
// they are skipped when filling the quarter of the same quorum index and
// are ordered after the unused pool — and each quarter is filled
// round-robin from that combined order.
//
// ok is false when there are not enough eligible masternodes to fill every
// quarter — spec §9 open question 2 leaves the retry policy to the caller,
// so this returns quorumCount empty quarters rather than a partial result.
func NewCycleQuarter(
	currentList *model.MasternodeList,
	priorQuarters [3]Quarters, // [H-3c, H-2c, H-c], each of length quorumCount
	llmqType model.LLMQType,
	workBlockHash hash256.Hash256,
	workBlockHeight uint32,
	quorumCount, quarterSize int,
) (quarters Quarters, ok bool) {
	quarters = make(Quarters, quorumCount)
	for i := range quarters {
		quarters[i] = make([]*model.MasternodeEntry, 0, quarterSize)
	}
	if quorumCount == 0 || quarterSize <= 0 {
		return quarters, true
	}

	usedAtHIndexed := make([]map[hash256.Hash256]bool, quorumCount)
	for i := range usedAtHIndexed {
		usedAtHIndexed[i] = make(map[hash256.Hash256]bool)
	}
	usedAtH := make(map[hash256.Hash256]bool)

	for _, cycle := range priorQuarters {
		for i := 0; i < quorumCount && i < len(cycle); i++ {
			for _, m := range cycle[i] {
				if m == nil {
					continue
				}
				if !currentList.Has(m.ProRegTxHash.Reversed()) || !m.IsValid {
					continue
				}
				usedAtHIndexed[i][m.ProRegTxHash] = true
				usedAtH[m.ProRegTxHash] = true
			}
		}
	}

	var unusedAtH []*model.MasternodeEntry
	for _, m := range currentList.SortedMasternodes() {
		if m.IsValid && !usedAtH[m.ProRegTxHash] {
			unusedAtH = append(unusedAtH, m)
		}
	}

	mod := QuorumModifier(llmqType, workBlockHash)
	sortedUnused := sortEntriesByReversedScoreDescending(unusedAtH, mod, workBlockHeight)

	var usedEntries []*model.MasternodeEntry
	for _, m := range currentList.SortedMasternodes() {
		if usedAtH[m.ProRegTxHash] {
			usedEntries = append(usedEntries, m)
		}
	}
	sortedUsed := sortEntriesByReversedScoreDescending(usedEntries, mod, workBlockHeight)

	combined := make([]*model.MasternodeEntry, 0, len(sortedUnused)+len(sortedUsed))
	combined = append(combined, sortedUnused...)
	combined = append(combined, sortedUsed...)

	if len(combined) < quarterSize {
		return quarters, false
	}

	pos := 0
	for i := 0; i < quorumCount; i++ {
		var quarter []*model.MasternodeEntry
		var filled bool
		quarter, pos, filled = fillQuarterRoundRobin(combined, usedAtHIndexed[i], quarterSize, pos)
		quarters[i] = quarter
		if !filled {
			for j := range quarters {
				quarters[j] = make([]*model.MasternodeEntry, 0, quarterSize)
			}
			return quarters, false
		}
	}
	return quarters, true
}

// fillQuarterRoundRobin fills one quorum's quarter starting from pos, the
// cursor left off by the previous quorum index's fill — the cursor is never
// reset per quorum, matching the round-robin continuing across the whole
// cycle rather than restarting at combined[0] for each index.
func fillQuarterRoundRobin(combined []*model.MasternodeEntry, used map[hash256.Hash256]bool, quarterSize, pos int) ([]*model.MasternodeEntry, int, bool) {
	quarter := make([]*model.MasternodeEntry, 0, quarterSize)
	if len(combined) == 0 {
		return quarter, pos, false
	}
	progressed := false
	passStart := pos
	for len(quarter) < quarterSize {
		entry := combined[pos]
		if !used[entry.ProRegTxHash] {
			quarter = append(quarter, entry)
			used[entry.ProRegTxHash] = true
			progressed = true
		}
		pos = (pos + 1) % len(combined)
		if pos == passStart {
			if !progressed {
				return quarter, pos, false
			}
			progressed = false
		}
	}
	return quarter, pos, true
}

// sortEntriesByReversedScoreDescending scores entries against mod at h and
// returns only the ones that scored, sorted reversed-descending — entries
// with no score (invalid, unconfirmed) are dropped rather than placed last,
// since they can never legitimately fill a quarter slot.
func sortEntriesByReversedScoreDescending(entries []*model.MasternodeEntry, mod hash256.Hash256, h uint32) []*model.MasternodeEntry {
	scoredList := scoreCandidates(entries, mod, h)
	sortByReversedScoreDescending(scoredList)
	out := make([]*model.MasternodeEntry, len(scoredList))
	for i, s := range scoredList {
		out[i] = s.entry
	}
	return out
}

// AssembleQuorum concatenates the four cycle quarters for quorum index q,
// in cycle order H-3c, H-2c, H-c, H (spec §4.3.2: "the quorum at index q is
// the concatenation (in order)").
func AssembleQuorum(h3c, h2c, hc, h Quarters, q int) []*model.MasternodeEntry {
	out := make([]*model.MasternodeEntry, 0)
	for _, quarters := range []Quarters{h3c, h2c, hc, h} {
		if q < len(quarters) {
			out = append(out, quarters[q]...)
		}
	}
	return out
}
