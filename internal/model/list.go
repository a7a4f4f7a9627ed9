package model

import "github.com/dashpay/mnlist-engine/internal/hash256"

// MasternodeList is the authoritative set of active masternodes and
// quorums as of a given block (spec §3). A list is never mutated in
// place: diff application always produces a new value.
type MasternodeList struct {
	BlockHash   hash256.Hash256
	KnownHeight uint32 // math.MaxUint32 means "unknown"

	// Masternodes is keyed by the *reversed* provider_registration_tx_hash.
	Masternodes map[hash256.Hash256]*MasternodeEntry

	Quorums map[LLMQType]map[hash256.Hash256]*LLMQEntry

	MasternodeMerkleRoot *hash256.Hash256
	LLMQMerkleRoot       *hash256.Hash256
}

// UnknownHeight is the sentinel height meaning "not known" (u32::MAX in
// the spec).
const UnknownHeight uint32 = 0xFFFFFFFF

// NewEmptyMasternodeList returns an empty base list for the very first
// diff in a chain (spec §4.2 scenario 1: "empty-base diff").
func NewEmptyMasternodeList() *MasternodeList {
	return &MasternodeList{
		Masternodes: make(map[hash256.Hash256]*MasternodeEntry),
		Quorums:     make(map[LLMQType]map[hash256.Hash256]*LLMQEntry),
		KnownHeight: UnknownHeight,
	}
}

// SortedMasternodes returns every masternode ordered by the natural
// ordering of its map key — which, because the map is keyed by the
// *reversed* pro-reg-tx hash, is exactly "sorted-reversed pro-reg-tx-hash
// order" (spec §3).
func (l *MasternodeList) SortedMasternodes() []*MasternodeEntry {
	keys := make([]hash256.Hash256, 0, len(l.Masternodes))
	for k := range l.Masternodes {
		keys = append(keys, k)
	}
	sortHashesNatural(keys)
	out := make([]*MasternodeEntry, len(keys))
	for i, k := range keys {
		out[i] = l.Masternodes[k]
	}
	return out
}

// Has reports whether a masternode with the given reversed
// pro-reg-tx-hash key is present (spec §9: "the spec uses map lookup by
// the canonical key").
func (l *MasternodeList) Has(reversedProRegTxHash hash256.Hash256) bool {
	_, ok := l.Masternodes[reversedProRegTxHash]
	return ok
}

// QuorumEntries flattens every quorum in the list, used by the LLMQ
// Merkle root computation (spec §4.4: "sorted by natural Hash256 order").
func (l *MasternodeList) QuorumEntries() []*LLMQEntry {
	var out []*LLMQEntry
	for _, byHash := range l.Quorums {
		for _, q := range byHash {
			out = append(out, q)
		}
	}
	return out
}

func sortHashesNatural(hs []hash256.Hash256) {
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0 && hs[j].Less(hs[j-1]); j-- {
			hs[j], hs[j-1] = hs[j-1], hs[j]
		}
	}
}
