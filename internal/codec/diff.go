package codec

import (
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// DecodeMNListDiff reads an MNLISTDIFF message body (spec §4.1). Heights
// are not carried on the wire — the caller resolves them via the provider
// (lookup_block_height_by_hash) and passes them in so masternode entries
// get the correct UpdateHeight. protoVersion gates the trailing
// quorums_cl_sigs section, present only for protoVersion >= CoreProto20;
// deleted_quorums/added_quorums are gated on the decoded coinbase's own
// version instead, since that's what the wire format keys them on.
func DecodeMNListDiff(c *wire.Cursor, baseBlockHeight, blockHeight uint32, protoVersion uint32) (*model.MNListDiff, error) {
	d := &model.MNListDiff{BaseBlockHeight: baseBlockHeight, BlockHeight: blockHeight}

	var err error
	if d.BaseBlockHash, err = c.ReadHash256(); err != nil {
		return nil, malformed("MNListDiff", "base_block_hash", err)
	}
	if d.BlockHash, err = c.ReadHash256(); err != nil {
		return nil, malformed("MNListDiff", "block_hash", err)
	}
	if d.TotalTransactions, err = c.ReadUint32LE(); err != nil {
		return nil, malformed("MNListDiff", "total_transactions", err)
	}
	if d.MerkleHashes, err = c.ReadVarHashArray(); err != nil {
		return nil, malformed("MNListDiff", "merkle_hashes", err)
	}
	if d.MerkleFlags, err = c.ReadVarBytes(); err != nil {
		return nil, malformed("MNListDiff", "merkle_flags", err)
	}
	cbTx, err := DecodeCoinbaseTransaction(c)
	if err != nil {
		return nil, err
	}
	d.CoinbaseTransaction = cbTx

	if d.Version, err = c.ReadUint16LE(); err != nil {
		return nil, malformed("MNListDiff", "version", err)
	}

	if d.DeletedMasternodeHashes, err = c.ReadVarHashArray(); err != nil {
		return nil, malformed("MNListDiff", "deleted_masternode_hashes", err)
	}

	addedCount, err := c.ReadVarInt()
	if err != nil {
		return nil, malformed("MNListDiff", "added_or_modified_count", err)
	}
	d.AddedOrModifiedMasternodes = make([]*model.MasternodeEntry, addedCount)
	for i := range d.AddedOrModifiedMasternodes {
		entry, err := DecodeMasternodeEntry(c, d.Version, blockHeight)
		if err != nil {
			return nil, err
		}
		d.AddedOrModifiedMasternodes[i] = entry
	}

	d.AddedQuorums = make(map[model.LLMQType][]*model.LLMQEntry)
	if cbTx.HasQuorumCommitment() {
		deletedQuorumCount, err := c.ReadVarInt()
		if err != nil {
			return nil, malformed("MNListDiff", "deleted_quorums_count", err)
		}
		d.DeletedQuorums = make([]model.DeletedQuorum, deletedQuorumCount)
		for i := range d.DeletedQuorums {
			llmqType, err := c.ReadByte()
			if err != nil {
				return nil, malformed("MNListDiff", "deleted_quorums.llmq_type", err)
			}
			llmqHash, err := c.ReadHash256()
			if err != nil {
				return nil, malformed("MNListDiff", "deleted_quorums.llmq_hash", err)
			}
			d.DeletedQuorums[i] = model.DeletedQuorum{LLMQType: model.LLMQType(llmqType), LLMQHash: llmqHash}
		}

		addedQuorumCount, err := c.ReadVarInt()
		if err != nil {
			return nil, malformed("MNListDiff", "added_quorums_count", err)
		}
		for i := uint64(0); i < addedQuorumCount; i++ {
			q, err := DecodeLLMQEntry(c)
			if err != nil {
				return nil, err
			}
			d.AddedQuorums[q.LLMQType] = append(d.AddedQuorums[q.LLMQType], q)
		}
	}

	// quorums_cl_sigs is an optional trailer present only for peers on
	// protoVersion >= CoreProto20 (spec §4.1, SPEC_FULL §5 "QuorumsCLSigsObject
	// passthrough"); older peers simply end the message here.
	if protoVersion >= model.CoreProto20 {
		clSigCount, err := c.ReadVarInt()
		if err != nil {
			return nil, malformed("MNListDiff", "quorums_cl_sigs_count", err)
		}
		d.QuorumsCLSigs = make([]model.ChainLockSig, clSigCount)
		for i := range d.QuorumsCLSigs {
			llmqType, err := c.ReadByte()
			if err != nil {
				return nil, malformed("MNListDiff", "quorums_cl_sigs.llmq_type", err)
			}
			quorumHash, err := c.ReadHash256()
			if err != nil {
				return nil, malformed("MNListDiff", "quorums_cl_sigs.quorum_hash", err)
			}
			sig, err := c.ReadFixed(96)
			if err != nil {
				return nil, malformed("MNListDiff", "quorums_cl_sigs.signature", err)
			}
			clSig := model.ChainLockSig{LLMQType: model.LLMQType(llmqType), QuorumHash: quorumHash}
			copy(clSig.Signature[:], sig)
			d.QuorumsCLSigs[i] = clSig
		}
	}

	return d, nil
}

// EncodeMNListDiff is the inverse of DecodeMNListDiff.
func EncodeMNListDiff(w *wire.Writer, d *model.MNListDiff) {
	w.WriteHash256(d.BaseBlockHash)
	w.WriteHash256(d.BlockHash)
	w.WriteUint32LE(d.TotalTransactions)
	w.WriteVarHashArray(d.MerkleHashes)
	w.WriteVarBytes(d.MerkleFlags)
	EncodeCoinbaseTransaction(w, d.CoinbaseTransaction)
	w.WriteUint16LE(d.Version)
	w.WriteVarHashArray(d.DeletedMasternodeHashes)

	w.WriteVarInt(uint64(len(d.AddedOrModifiedMasternodes)))
	for _, e := range d.AddedOrModifiedMasternodes {
		EncodeMasternodeEntry(w, e, d.Version)
	}

	if d.CoinbaseTransaction.HasQuorumCommitment() {
		w.WriteVarInt(uint64(len(d.DeletedQuorums)))
		for _, dq := range d.DeletedQuorums {
			w.WriteByte(byte(dq.LLMQType))
			w.WriteHash256(dq.LLMQHash)
		}

		var totalAdded int
		for _, qs := range d.AddedQuorums {
			totalAdded += len(qs)
		}
		w.WriteVarInt(uint64(totalAdded))
		for _, qs := range d.AddedQuorums {
			for _, q := range qs {
				EncodeLLMQEntry(w, q)
			}
		}
	}

	if len(d.QuorumsCLSigs) > 0 {
		w.WriteVarInt(uint64(len(d.QuorumsCLSigs)))
		for _, cl := range d.QuorumsCLSigs {
			w.WriteByte(byte(cl.LLMQType))
			w.WriteHash256(cl.QuorumHash)
			w.WriteFixed(cl.Signature[:])
		}
	}
}
