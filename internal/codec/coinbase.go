package codec

import (
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// DecodeCoinbaseTransaction reads the block's special "coinbase" transaction
// (DIP4/DIP3 payload), capturing its exact serialized bytes so the caller
// can hash it for the has_found_coinbase check (spec §4.2 step 6).
func DecodeCoinbaseTransaction(c *wire.Cursor) (*model.CoinbaseTransaction, error) {
	start := c.Pos()
	tx := &model.CoinbaseTransaction{}

	var err error
	if tx.TxVersion, err = c.ReadUint16LE(); err != nil {
		return nil, malformed("CoinbaseTransaction", "version", err)
	}
	if tx.TxType, err = c.ReadUint16LE(); err != nil {
		return nil, malformed("CoinbaseTransaction", "type", err)
	}

	inCount, err := c.ReadVarInt()
	if err != nil {
		return nil, malformed("CoinbaseTransaction", "input_count", err)
	}
	tx.Inputs = make([]model.TxIn, inCount)
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if in.PreviousOutput.Hash, err = c.ReadHash256(); err != nil {
			return nil, malformed("CoinbaseTransaction", "input.prev_hash", err)
		}
		if in.PreviousOutput.Index, err = c.ReadUint32LE(); err != nil {
			return nil, malformed("CoinbaseTransaction", "input.prev_index", err)
		}
		if in.SignatureScript, err = c.ReadVarBytes(); err != nil {
			return nil, malformed("CoinbaseTransaction", "input.script", err)
		}
		if in.Sequence, err = c.ReadUint32LE(); err != nil {
			return nil, malformed("CoinbaseTransaction", "input.sequence", err)
		}
	}

	outCount, err := c.ReadVarInt()
	if err != nil {
		return nil, malformed("CoinbaseTransaction", "output_count", err)
	}
	tx.Outputs = make([]model.TxOut, outCount)
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		if out.Value, err = c.ReadUint64LE(); err != nil {
			return nil, malformed("CoinbaseTransaction", "output.value", err)
		}
		if out.PkScript, err = c.ReadVarBytes(); err != nil {
			return nil, malformed("CoinbaseTransaction", "output.script", err)
		}
	}

	if tx.LockTime, err = c.ReadUint32LE(); err != nil {
		return nil, malformed("CoinbaseTransaction", "lock_time", err)
	}

	payloadBytes, err := c.ReadVarBytes()
	if err != nil {
		return nil, malformed("CoinbaseTransaction", "payload", err)
	}
	payload, err := decodeCoinbasePayload(payloadBytes)
	if err != nil {
		return nil, err
	}
	tx.Payload = *payload

	end := c.Pos()
	raw, err := c.Slice(start, end)
	if err != nil {
		return nil, malformed("CoinbaseTransaction", "raw", err)
	}
	tx.SetRaw(raw)

	return tx, nil
}

func decodeCoinbasePayload(data []byte) (*model.CoinbasePayload, error) {
	c := wire.NewCursor(data)
	p := &model.CoinbasePayload{}

	var err error
	if p.Version, err = c.ReadUint16LE(); err != nil {
		return nil, malformed("CoinbasePayload", "version", err)
	}
	if p.Height, err = c.ReadUint32LE(); err != nil {
		return nil, malformed("CoinbasePayload", "height", err)
	}
	if p.MerkleRootMNList, err = c.ReadHash256(); err != nil {
		return nil, malformed("CoinbasePayload", "merkle_root_mnlist", err)
	}
	if p.Version >= 2 {
		root, err := c.ReadHash256()
		if err != nil {
			return nil, malformed("CoinbasePayload", "merkle_root_quorums", err)
		}
		p.MerkleRootLLMQList = &root
	}
	if p.Version >= 3 {
		if p.BestCLHeightDiff, err = c.ReadUint32LE(); err != nil {
			return nil, malformed("CoinbasePayload", "best_cl_height_diff", err)
		}
		sig, err := c.ReadFixed(96)
		if err != nil {
			return nil, malformed("CoinbasePayload", "best_cl_signature", err)
		}
		copy(p.BestCLSignature[:], sig)
		if p.AssetLockedAmount, err = c.ReadUint64LE(); err != nil {
			return nil, malformed("CoinbasePayload", "asset_locked_amount", err)
		}
	}
	return p, nil
}

// EncodeCoinbaseTransaction is the inverse of DecodeCoinbaseTransaction.
func EncodeCoinbaseTransaction(w *wire.Writer, tx *model.CoinbaseTransaction) {
	w.WriteUint16LE(tx.TxVersion)
	w.WriteUint16LE(tx.TxType)
	w.WriteVarInt(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		w.WriteHash256(in.PreviousOutput.Hash)
		w.WriteUint32LE(in.PreviousOutput.Index)
		w.WriteVarBytes(in.SignatureScript)
		w.WriteUint32LE(in.Sequence)
	}
	w.WriteVarInt(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		w.WriteUint64LE(out.Value)
		w.WriteVarBytes(out.PkScript)
	}
	w.WriteUint32LE(tx.LockTime)

	payload := wire.NewWriter()
	encodeCoinbasePayload(payload, &tx.Payload)
	w.WriteVarBytes(payload.Bytes())
}

func encodeCoinbasePayload(w *wire.Writer, p *model.CoinbasePayload) {
	w.WriteUint16LE(p.Version)
	w.WriteUint32LE(p.Height)
	w.WriteHash256(p.MerkleRootMNList)
	if p.Version >= 2 {
		root := hash256.Hash256{}
		if p.MerkleRootLLMQList != nil {
			root = *p.MerkleRootLLMQList
		}
		w.WriteHash256(root)
	}
	if p.Version >= 3 {
		w.WriteUint32LE(p.BestCLHeightDiff)
		w.WriteFixed(p.BestCLSignature[:])
		w.WriteUint64LE(p.AssetLockedAmount)
	}
}
