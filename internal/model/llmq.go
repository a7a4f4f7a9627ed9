package model

import (
	"github.com/dashpay/mnlist-engine/internal/blskey"
	"github.com/dashpay/mnlist-engine/internal/bitset"
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// LLMQEntry is a single quorum's commitment record (spec §3).
type LLMQEntry struct {
	LLMQType LLMQType
	LLMQHash hash256.Hash256 // hash of the first block of the DKG window
	Index    *uint32         // present iff rotated (DIP-0024)

	SignersBitset *bitset.BitSet
	SignersCount  uint32

	ValidMembersBitset *bitset.BitSet
	ValidMembersCount  uint32

	QuorumPublicKey  [48]byte
	QuorumVVecHash   hash256.Hash256
	ThresholdSig     [96]byte
	AllCommitmentAggSig [96]byte

	Version LLMQVersion

	EntryHash hash256.Hash256
}

// LLMQQuorumHash implements spec §3: SHA256d(llmq_type || llmq_hash).
func (q *LLMQEntry) LLMQQuorumHash() hash256.Hash256 {
	w := wire.NewWriter()
	w.WriteByte(byte(q.LLMQType))
	w.WriteHash256(q.LLMQHash)
	return hash256.SHA256D(w.Bytes())
}

// OrderingHashForRequestID implements spec §3:
// SHA256d(type || llmq_hash || req), used to select the quorum answering a
// lock request (lowest-reversed wins).
func OrderingHashForRequestID(t LLMQType, llmqHash, requestID hash256.Hash256) hash256.Hash256 {
	w := wire.NewWriter()
	w.WriteByte(byte(t))
	w.WriteHash256(llmqHash)
	w.WriteHash256(requestID)
	return hash256.SHA256D(w.Bytes())
}

// ComputeEntryHash hashes the commitment fields that identify this quorum
// on the LLMQ Merkle tree (spec §4.4).
func (q *LLMQEntry) ComputeEntryHash() hash256.Hash256 {
	w := wire.NewWriter()
	w.WriteUint16LE(uint16(q.Version))
	w.WriteByte(byte(q.LLMQType))
	w.WriteHash256(q.LLMQHash)
	if q.Index != nil {
		w.WriteBool(true)
		w.WriteUint32LE(*q.Index)
	} else {
		w.WriteBool(false)
	}
	w.WriteUint32LE(q.SignersCount)
	if q.SignersBitset != nil {
		w.WriteVarBytes(q.SignersBitset.Bytes())
	}
	w.WriteUint32LE(q.ValidMembersCount)
	if q.ValidMembersBitset != nil {
		w.WriteVarBytes(q.ValidMembersBitset.Bytes())
	}
	w.WriteFixed(q.QuorumPublicKey[:])
	w.WriteHash256(q.QuorumVVecHash)
	w.WriteFixed(q.ThresholdSig[:])
	w.WriteFixed(q.AllCommitmentAggSig[:])
	return hash256.SHA256D(w.Bytes())
}

// QuorumPublicKeyTyped converts to the blskey package's verification type.
func (q *LLMQEntry) QuorumPublicKeyTyped() blskey.PublicKey {
	scheme := blskey.SchemeBasic
	if q.Version.UseBLSLegacy() {
		scheme = blskey.SchemeLegacy
	}
	return blskey.PublicKey{Raw: q.QuorumPublicKey, Scheme: scheme}
}

// ThresholdSigTyped converts to the blskey package's verification type.
func (q *LLMQEntry) ThresholdSigTyped() blskey.Signature {
	scheme := blskey.SchemeBasic
	if q.Version.UseBLSLegacy() {
		scheme = blskey.SchemeLegacy
	}
	return blskey.Signature{Raw: q.ThresholdSig, Scheme: scheme}
}

// AllCommitmentAggSigTyped converts to the blskey package's verification
// type.
func (q *LLMQEntry) AllCommitmentAggSigTyped() blskey.Signature {
	scheme := blskey.SchemeBasic
	if q.Version.UseBLSLegacy() {
		scheme = blskey.SchemeLegacy
	}
	return blskey.Signature{Raw: q.AllCommitmentAggSig, Scheme: scheme}
}
