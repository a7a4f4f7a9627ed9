package engine

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// Result is the driver's return value for ProcessMNListDiff (spec §6).
type Result struct {
	BaseBlockHash hash256.Hash256
	BlockHash     hash256.Hash256

	HasFoundCoinbase      bool
	HasValidCoinbase      bool
	HasValidMNListRoot    bool
	HasValidLLMQListRoot  bool
	HasValidQuorums       bool

	MasternodeList *model.MasternodeList

	AddedMasternodes    map[hash256.Hash256]*model.MasternodeEntry
	ModifiedMasternodes map[hash256.Hash256]*model.MasternodeEntry
	AddedQuorums        map[model.LLMQType][]*model.LLMQEntry

	NeededMasternodeLists []hash256.Hash256

	// QuorumsCLSigs passes through the diff's per-quorum chain-lock
	// signature objects verbatim (SPEC_FULL §5 "QuorumsCLSigsObject
	// passthrough") — present only for protocol versions that carry them.
	QuorumsCLSigs []model.ChainLockSig
}

// IsValid is the aggregate predicate spec §6 defines: every individual
// check must hold.
func (r *Result) IsValid() bool {
	return r.HasFoundCoinbase && r.HasValidCoinbase && r.HasValidMNListRoot &&
		r.HasValidLLMQListRoot && r.HasValidQuorums
}

// LLMQMemberSet is one quorum's reconstructed member list, together with
// the SPEC_FULL §6 open-question-2 signal distinguishing "insufficient
// masternodes to fill a rotated quarter" from a legitimately empty set.
type LLMQMemberSet struct {
	LLMQType                model.LLMQType
	QuorumHash               hash256.Hash256
	QuorumIndex              int
	Members                  []*model.MasternodeEntry
	RotatedSelectionInsufficient bool
}

// QRInfoResult is ProcessQRInfo's return value: the tip diff's Result plus
// the rotated quorum membership for every cycle covered by the bundle
// (SPEC_FULL §5 "MNListDiffResult / QRInfoResult distinction").
type QRInfoResult struct {
	*Result

	LastQuorumPerIndex      map[model.LLMQType][]*model.LLMQEntry
	RotatedQuorumsPerCycle  map[hash256.Hash256][]LLMQMemberSet
}
