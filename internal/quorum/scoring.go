// Package quorum implements LLMQ member scoring and selection: the
// deterministic non-rotated selection, the DIP-0024 rotated "quarters"
// algorithm, quorum verification, and the should-process policy
// (spec §4.3, the engine's largest and hardest component).
package quorum

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// scored pairs a masternode with its deterministic selection score.
type scored struct {
	entry *model.MasternodeEntry
	score hash256.Hash256
}

// score computes spec §4.3.1's selection score for m against quorum
// modifier mod at height h. ok is false when m contributes no score at
// all — not valid at h, unconfirmed, or not yet confirmed as of h.
func score(m *model.MasternodeEntry, mod hash256.Hash256, h uint32) (hash256.Hash256, bool) {
	if !m.IsValidAt(h) {
		return hash256.Hash256{}, false
	}
	confirmedHashed, ok := m.ConfirmedHashHashedWithProRegTxHashAt(h)
	if !ok {
		return hash256.Hash256{}, false
	}
	buf := make([]byte, 0, hash256.Size*2)
	buf = append(buf, confirmedHashed[:]...)
	buf = append(buf, mod[:]...)
	s := hash256.Hash256(hash256.SHA256(buf))
	if s.IsZero() {
		return hash256.Hash256{}, false
	}
	return s, true
}

// scoreCandidates scores every masternode in candidates against mod at
// height h, discarding any with no score, and returns the survivors.
func scoreCandidates(candidates []*model.MasternodeEntry, mod hash256.Hash256, h uint32) []scored {
	out := make([]scored, 0, len(candidates))
	for _, m := range candidates {
		if s, ok := score(m, mod, h); ok {
			out = append(out, scored{entry: m, score: s})
		}
	}
	return out
}

// sortByReversedScoreDescending sorts in place so the highest
// reversed-ordering score comes first — the tie-break direction every
// selection step in §4.3 uses.
func sortByReversedScoreDescending(s []scored) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1].score.ReversedCompare(s[j].score) < 0; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// QuorumModifier computes SHA256d(llmq_type || work_block_hash), the
// per-quorum randomness seed used throughout §4.3.
func QuorumModifier(t model.LLMQType, workBlockHash hash256.Hash256) hash256.Hash256 {
	buf := make([]byte, 0, 1+hash256.Size)
	buf = append(buf, byte(t))
	buf = append(buf, workBlockHash[:]...)
	return hash256.SHA256D(buf)
}
