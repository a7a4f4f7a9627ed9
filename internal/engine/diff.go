package engine

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/merkle"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// classifyMasternodes partitions diff.AddedOrModifiedMasternodes into
// added/modified (spec §4.2 step 1) and returns the merged map (spec §4.2
// steps 2-3), keyed throughout by the reversed pro-reg-tx hash.
func classifyMasternodes(
	base map[hash256.Hash256]*model.MasternodeEntry,
	addedOrModified []*model.MasternodeEntry,
	deleted []hash256.Hash256,
	blockHeight uint32,
	blockHash hash256.Hash256,
) (added, modified, merged map[hash256.Hash256]*model.MasternodeEntry) {
	merged = make(map[hash256.Hash256]*model.MasternodeEntry, len(base)+len(addedOrModified))
	for k, v := range base {
		merged[k] = v
	}

	// Step 2: remove deleted entries (keyed by reversed hash) before
	// extending with additions.
	for _, h := range deleted {
		delete(merged, h.Reversed())
	}

	added = make(map[hash256.Hash256]*model.MasternodeEntry)
	modified = make(map[hash256.Hash256]*model.MasternodeEntry)

	for _, entry := range addedOrModified {
		key := entry.ProRegTxHash.Reversed()
		if existing, ok := base[key]; ok {
			modified[key] = entry
			// Step 3: reconcile the modification against the existing entry.
			if existing.UpdateHeight < entry.UpdateHeight {
				entry.UpdateWithPreviousEntry(existing, blockHeight, blockHash)
			}
		} else {
			added[key] = entry
		}
		merged[key] = entry
	}

	return added, modified, merged
}

// classifyQuorums implements spec §4.2 step 4: retains only the quorum
// types the engine is configured to process, applies deletions, and
// overwrites on hash collision.
func classifyQuorums(
	base map[model.LLMQType]map[hash256.Hash256]*model.LLMQEntry,
	addedQuorums map[model.LLMQType][]*model.LLMQEntry,
	deletedQuorums []model.DeletedQuorum,
	shouldProcess func(model.LLMQType) bool,
) (accepted map[model.LLMQType][]*model.LLMQEntry, merged map[model.LLMQType]map[hash256.Hash256]*model.LLMQEntry) {
	merged = make(map[model.LLMQType]map[hash256.Hash256]*model.LLMQEntry, len(base))
	for t, byHash := range base {
		copied := make(map[hash256.Hash256]*model.LLMQEntry, len(byHash))
		for h, q := range byHash {
			copied[h] = q
		}
		merged[t] = copied
	}

	for _, d := range deletedQuorums {
		if byHash, ok := merged[d.LLMQType]; ok {
			delete(byHash, d.LLMQHash)
		}
	}

	accepted = make(map[model.LLMQType][]*model.LLMQEntry)
	for t, entries := range addedQuorums {
		if shouldProcess != nil && !shouldProcess(t) {
			continue
		}
		byHash, ok := merged[t]
		if !ok {
			byHash = make(map[hash256.Hash256]*model.LLMQEntry)
			merged[t] = byHash
		}
		for _, q := range entries {
			byHash[q.LLMQHash] = q
			accepted[t] = append(accepted[t], q)
		}
	}

	return accepted, merged
}

// masternodeMerkleRoot implements spec §4.4's masternode root input: every
// entry's entry_hash_at(knownHeight), in sorted-reversed pro-reg-tx-hash
// (i.e. natural map-key) order.
func masternodeMerkleRoot(list *model.MasternodeList) hash256.Hash256 {
	sorted := list.SortedMasternodes()
	if len(sorted) == 0 {
		return hash256.Hash256{}
	}
	leaves := make([]hash256.Hash256, len(sorted))
	for i, m := range sorted {
		leaves[i] = m.EntryHashAt(list.KnownHeight)
	}
	return merkle.RootFromHashes(leaves)
}

// llmqMerkleRoot implements spec §4.4's LLMQ root input: every quorum's
// entry_hash, sorted by natural Hash256 order.
func llmqMerkleRoot(list *model.MasternodeList) hash256.Hash256 {
	entries := list.QuorumEntries()
	if len(entries) == 0 {
		return hash256.Hash256{}
	}
	leaves := make([]hash256.Hash256, len(entries))
	for i, q := range entries {
		leaves[i] = q.EntryHash
	}
	sortLeavesNatural(leaves)
	return merkle.RootFromHashes(leaves)
}

func sortLeavesNatural(hs []hash256.Hash256) {
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0 && hs[j].Less(hs[j-1]); j-- {
			hs[j], hs[j-1] = hs[j-1], hs[j]
		}
	}
}
