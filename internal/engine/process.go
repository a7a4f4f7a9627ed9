package engine

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/merkle"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/quorum"
	"github.com/dashpay/mnlist-engine/internal/telemetry"
)

// ProcessMNListDiff implements spec §4.2 and §4.3.3: merge diff into the
// cached base list, recompute Merkle roots, validate the coinbase
// commitments, and validate every quorum the engine is configured to
// process. should_process_quorums, is_dip_0024 and
// is_rotated_quorums_presented feed spec §4.3.4's should_process_quorum
// policy.
func (p *Processor) ProcessMNListDiff(diff *model.MNListDiff, shouldProcessQuorums, isDIP0024, isRotatedQuorumsPresented bool) (*Result, error) {
	if err := p.provider.ShouldProcessDiffWithRange(diff.BaseBlockHash, diff.BlockHash); err != nil {
		return nil, &OutOfRangeError{BaseBlockHash: diff.BaseBlockHash.String(), BlockHash: diff.BlockHash.String(), Err: err}
	}

	var unknown []hash256.Hash256
	base, err := p.provider.FindMasternodeList(diff.BaseBlockHash, p.cache.MasternodeListsView(), &unknown)
	for _, h := range unknown {
		p.cache.NeedMasternodeList(h)
	}
	if err != nil {
		// Missing ancestor (spec §7): return a best-effort empty result
		// rather than aborting, carrying the needed hash for the caller.
		p.logger.Debug("missing ancestor masternode list", zap.Stringer("base_block_hash", diff.BaseBlockHash))
		needed := p.cache.DrainNeeded()
		telemetry.NeededAncestorsTotal.Add(float64(len(needed)))
		return &Result{
			BaseBlockHash:         diff.BaseBlockHash,
			BlockHash:             diff.BlockHash,
			NeededMasternodeLists: needed,
		}, nil
	}

	added, modified, merged := classifyMasternodes(base.Masternodes, diff.AddedOrModifiedMasternodes, diff.DeletedMasternodeHashes, diff.BlockHeight, diff.BlockHash)

	quorumsActive := diff.CoinbaseTransaction.HasQuorumCommitment()
	chain := p.provider.ChainType()
	shouldProcess := func(t model.LLMQType) bool {
		if !shouldProcessQuorums {
			return false
		}
		return quorum.ShouldProcessQuorum(chain, t, isDIP0024, isRotatedQuorumsPresented)
	}
	accepted, mergedQuorums := classifyQuorums(base.Quorums, diff.AddedQuorums, diff.DeletedQuorums, shouldProcess)

	newList := &model.MasternodeList{
		BlockHash:   diff.BlockHash,
		KnownHeight: diff.BlockHeight,
		Masternodes: merged,
		Quorums:     mergedQuorums,
	}

	mnRoot := masternodeMerkleRoot(newList)
	newList.MasternodeMerkleRoot = &mnRoot
	if quorumsActive {
		llmqRoot := llmqMerkleRoot(newList)
		newList.LLMQMerkleRoot = &llmqRoot
	}

	hasFoundCoinbase := diff.CoinbaseTransaction.HasFoundCoinbase(diff.MerkleHashes)

	tree := merkle.NewPartialTree(int(diff.TotalTransactions), diff.MerkleHashes, diff.MerkleFlags)
	treeRoot, _, treeErr := tree.Root()
	hasValidCoinbase := false
	if treeErr == nil {
		if blockRoot, ok := p.provider.LookupMerkleRootByHash(diff.BlockHash); ok {
			hasValidCoinbase = blockRoot == treeRoot
		}
	}

	hasValidMNListRoot := *newList.MasternodeMerkleRoot == diff.CoinbaseTransaction.MerkleRootMNList()

	hasValidLLMQListRoot := true
	if quorumsActive {
		committed := diff.CoinbaseTransaction.MerkleRootLLMQList()
		hasValidLLMQListRoot = committed != nil && newList.LLMQMerkleRoot != nil && *newList.LLMQMerkleRoot == *committed
	}

	hasValidQuorums := p.validateQuorums(accepted, newList, chain)

	p.cache.PutMasternodeList(newList)
	telemetry.CacheSize.Set(float64(p.cache.ListCount()))

	needed := p.cache.DrainNeeded()
	telemetry.NeededAncestorsTotal.Add(float64(len(needed)))

	return &Result{
		BaseBlockHash:         diff.BaseBlockHash,
		BlockHash:             diff.BlockHash,
		HasFoundCoinbase:      hasFoundCoinbase,
		HasValidCoinbase:      hasValidCoinbase,
		HasValidMNListRoot:    hasValidMNListRoot,
		HasValidLLMQListRoot:  hasValidLLMQListRoot,
		HasValidQuorums:       hasValidQuorums,
		MasternodeList:        newList,
		AddedMasternodes:      added,
		ModifiedMasternodes:   modified,
		AddedQuorums:          accepted,
		NeededMasternodeLists: needed,
		QuorumsCLSigs:         diff.QuorumsCLSigs,
	}, nil
}

// validateQuorums implements spec §4.3.3: per-quorum validation failures
// lower has_valid_quorums but never abort the diff. A quorum whose member
// set cannot be resolved (missing ancestor) is conservatively treated as
// valid, per spec step 1.
func (p *Processor) validateQuorums(accepted map[model.LLMQType][]*model.LLMQEntry, currentList *model.MasternodeList, chain quorum.ChainPolicy) bool {
	valid := true
	for t, entries := range accepted {
		label := strconv.Itoa(int(t))
		for _, q := range entries {
			members, ok := p.resolveMembers(t, q, currentList, chain)
			if !ok {
				continue
			}
			telemetry.QuorumsProcessedTotal.WithLabelValues(label).Inc()
			result, err := quorum.Verify(q, members)
			if err != nil {
				p.logger.Warn("quorum verification error", zap.Error(err), zap.Stringer("llmq_hash", q.LLMQHash))
				telemetry.QuorumsInvalidTotal.WithLabelValues(label).Inc()
				valid = false
				continue
			}
			if !result.Valid() {
				telemetry.QuorumsInvalidTotal.WithLabelValues(label).Inc()
				valid = false
			}
		}
	}
	return valid
}

// ProcessQRInfo implements the QR-Info entry point: it seeds the cache
// with every snapshot and cycle-base diff in the bundle, processes the
// tip diff, and reconstructs rotated quorum membership for every entry in
// last_quorum_per_index.
func (p *Processor) ProcessQRInfo(info *model.QRInfo, isDIP0024, isRotatedQuorumsPresented bool) (*QRInfoResult, error) {
	cycleDiffs := []*model.MNListDiff{info.DiffH3C, info.DiffH2C, info.DiffHC, info.DiffH}
	if info.ExtraShare && info.DiffH4C != nil {
		cycleDiffs = append(cycleDiffs, info.DiffH4C)
	}
	cycleDiffs = append(cycleDiffs, info.MNListDiffList...)

	for _, d := range cycleDiffs {
		if d == nil {
			continue
		}
		if _, err := p.ProcessMNListDiff(d, false, isDIP0024, isRotatedQuorumsPresented); err != nil {
			return nil, err
		}
	}

	// QuorumSnapshotList pairs positionally with MNListDiffList (spec §4.1):
	// each extra ancestor diff's resulting block hash keys its snapshot.
	for i, snap := range info.QuorumSnapshotList {
		if i >= len(info.MNListDiffList) || info.MNListDiffList[i] == nil || snap == nil {
			continue
		}
		blockHash := info.MNListDiffList[i].BlockHash
		p.provider.SaveSnapshot(blockHash, snap)
		p.cache.PutSnapshot(blockHash, snap)
	}

	if info.DiffHC != nil && info.SnapshotAtHMinusC != nil {
		p.provider.SaveSnapshot(info.DiffHC.BlockHash, info.SnapshotAtHMinusC)
		p.cache.PutSnapshot(info.DiffHC.BlockHash, info.SnapshotAtHMinusC)
	}
	if info.DiffH2C != nil && info.SnapshotAtHMinus2C != nil {
		p.provider.SaveSnapshot(info.DiffH2C.BlockHash, info.SnapshotAtHMinus2C)
		p.cache.PutSnapshot(info.DiffH2C.BlockHash, info.SnapshotAtHMinus2C)
	}
	if info.DiffH3C != nil && info.SnapshotAtHMinus3C != nil {
		p.provider.SaveSnapshot(info.DiffH3C.BlockHash, info.SnapshotAtHMinus3C)
		p.cache.PutSnapshot(info.DiffH3C.BlockHash, info.SnapshotAtHMinus3C)
	}
	if info.ExtraShare && info.DiffH4C != nil && info.SnapshotAtHMinus4C != nil {
		p.provider.SaveSnapshot(info.DiffH4C.BlockHash, info.SnapshotAtHMinus4C)
		p.cache.PutSnapshot(info.DiffH4C.BlockHash, info.SnapshotAtHMinus4C)
	}

	tipResult, err := p.ProcessMNListDiff(info.DiffTip, true, isDIP0024, isRotatedQuorumsPresented)
	if err != nil {
		return nil, err
	}

	chain := p.provider.ChainType()
	rotated := make(map[hash256.Hash256][]LLMQMemberSet)
	for _, q := range info.LastQuorumPerIndex {
		if q.Index == nil || tipResult.MasternodeList == nil {
			continue
		}
		members, ok := p.resolveMembers(q.LLMQType, q, tipResult.MasternodeList, chain)
		set := LLMQMemberSet{
			LLMQType:                     q.LLMQType,
			QuorumHash:                   q.LLMQHash,
			QuorumIndex:                  int(*q.Index),
			Members:                      members,
			RotatedSelectionInsufficient: !ok,
		}
		rotated[q.LLMQHash] = append(rotated[q.LLMQHash], set)
	}

	return &QRInfoResult{
		Result:                 tipResult,
		LastQuorumPerIndex:     groupByType(info.LastQuorumPerIndex),
		RotatedQuorumsPerCycle: rotated,
	}, nil
}

func groupByType(entries []*model.LLMQEntry) map[model.LLMQType][]*model.LLMQEntry {
	out := make(map[model.LLMQType][]*model.LLMQEntry)
	for _, e := range entries {
		out[e.LLMQType] = append(out[e.LLMQType], e)
	}
	return out
}
