package codec

import (
	"github.com/dashpay/mnlist-engine/internal/bitset"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// DecodeLLMQEntry reads one quorum_entry (spec §3). Rotated quorums (per
// Version.IsRotated) carry an extra quorum_index field.
func DecodeLLMQEntry(c *wire.Cursor) (*model.LLMQEntry, error) {
	q := &model.LLMQEntry{}

	version, err := c.ReadUint16LE()
	if err != nil {
		return nil, malformed("LLMQEntry", "version", err)
	}
	q.Version = model.LLMQVersion(version)

	llmqType, err := c.ReadByte()
	if err != nil {
		return nil, malformed("LLMQEntry", "llmq_type", err)
	}
	q.LLMQType = model.LLMQType(llmqType)

	if q.LLMQHash, err = c.ReadHash256(); err != nil {
		return nil, malformed("LLMQEntry", "llmq_hash", err)
	}

	if q.Version.IsRotated() {
		idx, err := c.ReadUint32LE()
		if err != nil {
			return nil, malformed("LLMQEntry", "quorum_index", err)
		}
		q.Index = &idx
	}

	if q.SignersCount, err = c.ReadVarInt32(); err != nil {
		return nil, malformed("LLMQEntry", "signers_count", err)
	}
	signersBytes, err := c.ReadVarBytes()
	if err != nil {
		return nil, malformed("LLMQEntry", "signers_bitset", err)
	}
	if q.SignersBitset, err = bitset.FromBytes(signersBytes, q.SignersCount); err != nil {
		return nil, malformed("LLMQEntry", "signers_bitset", err)
	}

	if q.ValidMembersCount, err = c.ReadVarInt32(); err != nil {
		return nil, malformed("LLMQEntry", "valid_members_count", err)
	}
	validBytes, err := c.ReadVarBytes()
	if err != nil {
		return nil, malformed("LLMQEntry", "valid_members_bitset", err)
	}
	if q.ValidMembersBitset, err = bitset.FromBytes(validBytes, q.ValidMembersCount); err != nil {
		return nil, malformed("LLMQEntry", "valid_members_bitset", err)
	}

	pubKey, err := c.ReadFixed(48)
	if err != nil {
		return nil, malformed("LLMQEntry", "quorum_public_key", err)
	}
	copy(q.QuorumPublicKey[:], pubKey)

	if q.QuorumVVecHash, err = c.ReadHash256(); err != nil {
		return nil, malformed("LLMQEntry", "quorum_vvec_hash", err)
	}

	thresholdSig, err := c.ReadFixed(96)
	if err != nil {
		return nil, malformed("LLMQEntry", "threshold_sig", err)
	}
	copy(q.ThresholdSig[:], thresholdSig)

	aggSig, err := c.ReadFixed(96)
	if err != nil {
		return nil, malformed("LLMQEntry", "all_commitment_agg_sig", err)
	}
	copy(q.AllCommitmentAggSig[:], aggSig)

	q.EntryHash = q.ComputeEntryHash()
	return q, nil
}

// EncodeLLMQEntry is the inverse of DecodeLLMQEntry.
func EncodeLLMQEntry(w *wire.Writer, q *model.LLMQEntry) {
	w.WriteUint16LE(uint16(q.Version))
	w.WriteByte(byte(q.LLMQType))
	w.WriteHash256(q.LLMQHash)
	if q.Version.IsRotated() && q.Index != nil {
		w.WriteUint32LE(*q.Index)
	}
	w.WriteVarInt(uint64(q.SignersCount))
	w.WriteVarBytes(q.SignersBitset.Bytes())
	w.WriteVarInt(uint64(q.ValidMembersCount))
	w.WriteVarBytes(q.ValidMembersBitset.Bytes())
	w.WriteFixed(q.QuorumPublicKey[:])
	w.WriteHash256(q.QuorumVVecHash)
	w.WriteFixed(q.ThresholdSig[:])
	w.WriteFixed(q.AllCommitmentAggSig[:])
}
