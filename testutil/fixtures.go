package testutil

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// SampleMasternodeEntry builds a valid, confirmed regular masternode entry
// seeded by a single byte so tests can build distinct, reproducible
// entries cheaply.
func SampleMasternodeEntry(seed byte, confirmedAtHeight uint32) *model.MasternodeEntry {
	e := &model.MasternodeEntry{
		ProRegTxHash:           hash256.SHA256D([]byte{seed}),
		ConfirmedHash:          hash256.SHA256D([]byte{seed, 0xcc}),
		KnownConfirmedAtHeight: &confirmedAtHeight,
		IsValid:                true,
		MNType:                 model.MNTypeRegular,
		UpdateHeight:           confirmedAtHeight,
	}
	e.OperatorPublicKey.Raw[0] = seed
	e.RecomputeEntryHash()
	return e
}

// SampleMasternodeList builds a masternode list of n distinct entries, all
// confirmed as of knownHeight, keyed by the reversed pro-reg-tx hash as
// production code expects.
func SampleMasternodeList(blockHash hash256.Hash256, knownHeight uint32, n int) *model.MasternodeList {
	l := model.NewEmptyMasternodeList()
	l.BlockHash = blockHash
	l.KnownHeight = knownHeight
	for i := 0; i < n; i++ {
		e := SampleMasternodeEntry(byte(i+1), knownHeight)
		l.Masternodes[e.ProRegTxHash.Reversed()] = e
	}
	return l
}

// SampleCoinbaseTransaction builds a single-transaction block's coinbase:
// its own hash is the block's only merkle leaf, so the minimal partial
// tree (total_transactions=1) always proves it. version controls
// has_quorum_commitment (>=2) and whether llmqRoot is meaningful.
func SampleCoinbaseTransaction(version uint16, mnListRoot hash256.Hash256, llmqRoot *hash256.Hash256, salt byte) *model.CoinbaseTransaction {
	c := &model.CoinbaseTransaction{
		TxVersion: 3,
		TxType:    5, // DIP4 "coinbase" special transaction type
		Payload: model.CoinbasePayload{
			Version:            version,
			MerkleRootMNList:   mnListRoot,
			MerkleRootLLMQList: llmqRoot,
		},
	}
	c.SetRaw([]byte{salt, 0xfe, 0xed, 0xfa, 0xce})
	return c
}

// SingleTxMerkleProof returns the (total_transactions, hashes, flags)
// triple proving coinbaseHash is the block's sole transaction.
func SingleTxMerkleProof(coinbaseHash hash256.Hash256) (total int, hashes []hash256.Hash256, flags []byte) {
	return 1, []hash256.Hash256{coinbaseHash}, []byte{0x01}
}

// SampleLLMQEntry builds a non-rotated quorum commitment of type t at
// llmqHash, leaving the BLS fields zeroed — callers that need a verifiable
// signature must fill ThresholdSig/AllCommitmentAggSig/QuorumPublicKey
// themselves.
func SampleLLMQEntry(t model.LLMQType, llmqHash hash256.Hash256, version model.LLMQVersion) *model.LLMQEntry {
	q := &model.LLMQEntry{
		LLMQType: t,
		LLMQHash: llmqHash,
		Version:  version,
	}
	q.EntryHash = q.ComputeEntryHash()
	return q
}
