package model

import "github.com/dashpay/mnlist-engine/internal/hash256"

// TxOutpoint references a previous transaction output.
type TxOutpoint struct {
	Hash  hash256.Hash256
	Index uint32
}

// TxIn is a transaction input.
type TxIn struct {
	PreviousOutput  TxOutpoint
	SignatureScript []byte
	Sequence        uint32
}

// TxOut is a transaction output.
type TxOut struct {
	Value   uint64
	PkScript []byte
}

// CoinbasePayload is the DIP4 special-transaction payload carried by a
// coinbase transaction of type "coinbase" (spec §4.1, §4.2 step 6).
type CoinbasePayload struct {
	Version           uint16
	Height            uint32
	MerkleRootMNList  hash256.Hash256
	MerkleRootLLMQList *hash256.Hash256 // present iff Version >= 2
	BestCLHeightDiff  uint32            // present iff Version >= 3
	BestCLSignature   [96]byte          // present iff Version >= 3
	AssetLockedAmount uint64            // present iff Version >= 3
}

// CoinbaseTransaction is the block's first transaction, carrying the
// masternode-list and LLMQ Merkle root commitments (spec glossary).
type CoinbaseTransaction struct {
	TxVersion uint16
	TxType    uint16
	Inputs    []TxIn
	Outputs   []TxOut
	LockTime  uint32
	Payload   CoinbasePayload

	// raw is the exact serialized byte range this transaction was decoded
	// from, captured for hashing (spec §4.2 step 6: has_found_coinbase).
	raw []byte
}

// SetRaw records the exact serialized byte range this transaction was
// decoded from, for later hashing. Called once by the codec package
// immediately after decoding.
func (c *CoinbaseTransaction) SetRaw(raw []byte) {
	c.raw = append([]byte(nil), raw...)
}

// Hash returns the double-SHA256 of the serialized bytes recorded by
// SetRaw. A transaction that was never passed to SetRaw hashes as empty
// input; Hash does not serialize the fields itself.
func (c *CoinbaseTransaction) Hash() hash256.Hash256 {
	return hash256.SHA256D(c.raw)
}

// HasFoundCoinbase reports whether this transaction's hash appears among
// the block's merkle_hashes list (spec §4.2 step 6).
func (c *CoinbaseTransaction) HasFoundCoinbase(merkleHashes []hash256.Hash256) bool {
	target := c.Hash()
	for _, h := range merkleHashes {
		if h == target {
			return true
		}
	}
	return false
}

// MerkleRootMNList returns the committed masternode-list Merkle root.
func (c *CoinbaseTransaction) MerkleRootMNList() hash256.Hash256 {
	return c.Payload.MerkleRootMNList
}

// MerkleRootLLMQList returns the committed LLMQ Merkle root, or nil if
// this coinbase's payload version predates LLMQ commitments.
func (c *CoinbaseTransaction) MerkleRootLLMQList() *hash256.Hash256 {
	return c.Payload.MerkleRootLLMQList
}

// HasQuorumCommitment reports whether quorum state is committed by this
// coinbase (spec §4.2 step 5: "iff coinbase.version >= 2").
func (c *CoinbaseTransaction) HasQuorumCommitment() bool {
	return c.Payload.Version >= 2
}
