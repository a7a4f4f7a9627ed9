package engine

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/provider"
	"github.com/dashpay/mnlist-engine/internal/quorum"
)

// resolveMembers implements spec §4.3.3 step 2: compute the expected
// member set for q, non-rotated or rotated depending on q.Index. ok is
// false when an ancestor list/snapshot the computation needs is missing —
// the caller treats this as "cannot validate" (spec §4.3.3 step 1).
func (p *Processor) resolveMembers(llmqType model.LLMQType, q *model.LLMQEntry, currentList *model.MasternodeList, chain quorum.ChainPolicy) (members []*model.MasternodeEntry, ok bool) {
	params, known := model.ParamsFor(llmqType)
	if !known {
		return nil, false
	}

	if q.Index == nil {
		return p.resolveNonRotatedMembers(llmqType, q, params, chain)
	}
	return p.resolveRotatedMembers(llmqType, q, params, currentList, chain)
}

func (p *Processor) resolveNonRotatedMembers(llmqType model.LLMQType, q *model.LLMQEntry, params model.Params, chain quorum.ChainPolicy) ([]*model.MasternodeEntry, bool) {
	if cached, ok := p.cache.QuorumMembers(llmqType, q.LLMQHash); ok {
		return cached, true
	}

	var unknown []hash256.Hash256
	list, err := p.provider.FindMasternodeList(q.LLMQHash, p.cache.MasternodeListsView(), &unknown)
	for _, h := range unknown {
		p.cache.NeedMasternodeList(h)
	}
	if err != nil {
		return nil, false
	}

	mod := quorum.QuorumModifier(llmqType, q.LLMQHash)
	members := quorum.SelectNonRotated(list.SortedMasternodes(), llmqType, q.Version, mod, list.KnownHeight, params.Size, chain)
	p.cache.PutQuorumMembers(llmqType, q.LLMQHash, members, nil, nil)
	return members, true
}

// resolveRotatedMembers implements spec §4.3.2 end to end: the three old
// cycles are read from cached snapshots, the current cycle is computed
// round-robin, and the four quarters are concatenated per quorum index.
func (p *Processor) resolveRotatedMembers(llmqType model.LLMQType, q *model.LLMQEntry, params model.Params, currentList *model.MasternodeList, chain quorum.ChainPolicy) ([]*model.MasternodeEntry, bool) {
	quorumIndex := *q.Index
	cycleBaseHeight := p.provider.LookupBlockHeightByHash(q.LLMQHash)
	if cycleBaseHeight == provider.UnknownHeight {
		p.cache.NeedMasternodeList(q.LLMQHash)
		return nil, false
	}

	if cached, ok := p.cache.IndexedQuorumMembers(llmqType, q.LLMQHash, quorumIndex); ok {
		return cached, true
	}

	quarterSize := params.Size / 4
	c := params.DKGInterval

	var oldQuarters [3]quorum.Quarters
	for i, k := range []uint32{3, 2, 1} {
		workBlockHeight := cycleBaseHeight - k*c - 8
		list, snapshot, workBlockHash, err := p.provider.MasternodeInfoForHeight(
			workBlockHeight, p.cache.MasternodeListsView(), p.cache.SnapshotsView(), &p.cache.NeededMasternodeLists,
		)
		if err != nil {
			return nil, false
		}
		quarters, err := quorum.OldCycleQuarter(list.SortedMasternodes(), llmqType, workBlockHash, workBlockHeight, snapshot, params.QuorumCount, quarterSize)
		if err != nil {
			return nil, false
		}
		oldQuarters[i] = quarters
	}

	workBlockHeightH := cycleBaseHeight - 8
	workBlockHashH, err := p.provider.LookupBlockHashByHeight(workBlockHeightH)
	if err != nil {
		return nil, false
	}
	hQuarters, ok := quorum.NewCycleQuarter(currentList, oldQuarters, llmqType, workBlockHashH, workBlockHeightH, params.QuorumCount, quarterSize)

	members := quorum.AssembleQuorum(oldQuarters[0], oldQuarters[1], oldQuarters[2], hQuarters, int(quorumIndex))
	p.cache.PutQuorumMembers(llmqType, q.LLMQHash, members, &q.LLMQHash, &quorumIndex)
	return members, ok
}
