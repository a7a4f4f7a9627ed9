package quorum

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// ChainPolicy is the subset of provider.ChainType the quorum engine
// consults. Defined locally (rather than imported) so this package stays a
// leaf with respect to provider — any type satisfying provider.ChainType
// satisfies this interface too.
type ChainPolicy interface {
	PlatformType() model.LLMQType
	ISDLLMQType() model.LLMQType
	ShouldProcessLLMQOfType(t model.LLMQType) bool
}

// SelectNonRotated implements spec §4.3.1: score every candidate against
// modifier at height, sort by reversed-score descending, and take the top
// quorumSize. Platform-type quorums (llmqType == chain.PlatformType() with
// a basic-BLS-scheme commitment) restrict candidates to HighPerformance
// masternodes first.
func SelectNonRotated(
	candidates []*model.MasternodeEntry,
	llmqType model.LLMQType,
	llmqVersion model.LLMQVersion,
	modifier hash256.Hash256,
	height uint32,
	quorumSize int,
	chain ChainPolicy,
) []*model.MasternodeEntry {
	if chain != nil && llmqType == chain.PlatformType() && llmqVersion.UseBLSBasic() {
		filtered := make([]*model.MasternodeEntry, 0, len(candidates))
		for _, m := range candidates {
			if m.MNType == model.MNTypeHighPerformance {
				filtered = append(filtered, m)
			}
		}
		candidates = filtered
	}

	scored := scoreCandidates(candidates, modifier, height)
	sortByReversedScoreDescending(scored)

	n := quorumSize
	if n > len(scored) {
		n = len(scored)
	}
	out := make([]*model.MasternodeEntry, 0, n)
	for _, s := range scored[:n] {
		if s.entry.IsValidAt(height) {
			out = append(out, s.entry)
		}
	}
	return out
}
