package model

import "github.com/dashpay/mnlist-engine/internal/hash256"

// CoreProto20 is the wire protocol version that introduced the
// quorums_cl_sigs trailer on MN-ListDiff (spec §4.1).
const CoreProto20 = 70225

// DeletedQuorum identifies a quorum to remove by (type, hash) (spec §3).
type DeletedQuorum struct {
	LLMQType LLMQType
	LLMQHash hash256.Hash256
}

// ChainLockSig is a per-quorum chain-lock signature object carried by
// MN-ListDiff for protocol versions >= CORE_PROTO_20 (spec §4.1,
// SPEC_FULL §5 "QuorumsCLSigsObject passthrough").
type ChainLockSig struct {
	LLMQType   LLMQType
	QuorumHash hash256.Hash256
	Signature  [96]byte
}

// MNListDiff is a decoded "masternode list diff" message (spec §3).
type MNListDiff struct {
	BaseBlockHash   hash256.Hash256
	BlockHash       hash256.Hash256
	BaseBlockHeight uint32
	BlockHeight     uint32

	TotalTransactions uint32
	MerkleHashes      []hash256.Hash256
	MerkleFlags       []byte

	CoinbaseTransaction *CoinbaseTransaction

	Version uint16

	DeletedMasternodeHashes   []hash256.Hash256
	AddedOrModifiedMasternodes []*MasternodeEntry

	DeletedQuorums []DeletedQuorum
	AddedQuorums   map[LLMQType][]*LLMQEntry

	QuorumsCLSigs []ChainLockSig
}
