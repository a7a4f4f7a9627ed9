package codec

import (
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// QRInfoHeights carries the block heights the caller already resolved (via
// the provider) for each of a QRINFO message's five-to-six embedded diffs,
// since heights never ride the wire themselves.
type QRInfoHeights struct {
	TipBase, Tip     uint32
	HBase, H         uint32
	HCBase, HC       uint32
	H2CBase, H2C     uint32
	H3CBase, H3C     uint32
	H4CBase, H4C     uint32
}

// DecodeQRInfo reads a QRINFO message body (spec §4.1): three (or four,
// with extra_share) snapshots and their paired diffs, plus the rotation
// bookkeeping lists. protoVersion is the peer's negotiated wire protocol
// version, passed through to every embedded MN-ListDiff — it is the only
// reliable signal for whether each diff's quorums_cl_sigs trailer is
// present, since the shared cursor always has bytes remaining until the
// very last diff in the message.
func DecodeQRInfo(c *wire.Cursor, memberCount uint32, heights QRInfoHeights, protoVersion uint32) (*model.QRInfo, error) {
	info := &model.QRInfo{}

	var err error
	if info.SnapshotAtHMinusC, err = DecodeLLMQSnapshot(c, memberCount); err != nil {
		return nil, err
	}
	if info.DiffHC, err = DecodeMNListDiff(c, heights.HCBase, heights.HC, protoVersion); err != nil {
		return nil, err
	}
	if info.SnapshotAtHMinus2C, err = DecodeLLMQSnapshot(c, memberCount); err != nil {
		return nil, err
	}
	if info.DiffH2C, err = DecodeMNListDiff(c, heights.H2CBase, heights.H2C, protoVersion); err != nil {
		return nil, err
	}
	if info.SnapshotAtHMinus3C, err = DecodeLLMQSnapshot(c, memberCount); err != nil {
		return nil, err
	}
	if info.DiffH3C, err = DecodeMNListDiff(c, heights.H3CBase, heights.H3C, protoVersion); err != nil {
		return nil, err
	}

	if info.ExtraShare, err = c.ReadBool(); err != nil {
		return nil, malformed("QRInfo", "extra_share", err)
	}
	if info.ExtraShare {
		if info.SnapshotAtHMinus4C, err = DecodeLLMQSnapshot(c, memberCount); err != nil {
			return nil, err
		}
		if info.DiffH4C, err = DecodeMNListDiff(c, heights.H4CBase, heights.H4C, protoVersion); err != nil {
			return nil, err
		}
	}

	if info.DiffH, err = DecodeMNListDiff(c, heights.HBase, heights.H, protoVersion); err != nil {
		return nil, err
	}
	if info.DiffTip, err = DecodeMNListDiff(c, heights.TipBase, heights.Tip, protoVersion); err != nil {
		return nil, err
	}

	lastQuorumCount, err := c.ReadVarInt()
	if err != nil {
		return nil, malformed("QRInfo", "last_commitment_per_index_count", err)
	}
	info.LastQuorumPerIndex = make([]*model.LLMQEntry, lastQuorumCount)
	for i := range info.LastQuorumPerIndex {
		q, err := DecodeLLMQEntry(c)
		if err != nil {
			return nil, err
		}
		info.LastQuorumPerIndex[i] = q
	}

	snapshotListCount, err := c.ReadVarInt()
	if err != nil {
		return nil, malformed("QRInfo", "quorum_snapshot_list_count", err)
	}
	info.QuorumSnapshotList = make([]*model.LLMQSnapshot, snapshotListCount)
	for i := range info.QuorumSnapshotList {
		s, err := DecodeLLMQSnapshot(c, memberCount)
		if err != nil {
			return nil, err
		}
		info.QuorumSnapshotList[i] = s
	}

	diffListCount, err := c.ReadVarInt()
	if err != nil {
		return nil, malformed("QRInfo", "mn_list_diff_list_count", err)
	}
	info.MNListDiffList = make([]*model.MNListDiff, diffListCount)
	for i := range info.MNListDiffList {
		d, err := DecodeMNListDiff(c, 0, 0, protoVersion)
		if err != nil {
			return nil, err
		}
		info.MNListDiffList[i] = d
	}

	return info, nil
}

// EncodeQRInfo is the inverse of DecodeQRInfo.
func EncodeQRInfo(w *wire.Writer, info *model.QRInfo) {
	EncodeLLMQSnapshot(w, info.SnapshotAtHMinusC)
	EncodeMNListDiff(w, info.DiffHC)
	EncodeLLMQSnapshot(w, info.SnapshotAtHMinus2C)
	EncodeMNListDiff(w, info.DiffH2C)
	EncodeLLMQSnapshot(w, info.SnapshotAtHMinus3C)
	EncodeMNListDiff(w, info.DiffH3C)

	w.WriteBool(info.ExtraShare)
	if info.ExtraShare {
		EncodeLLMQSnapshot(w, info.SnapshotAtHMinus4C)
		EncodeMNListDiff(w, info.DiffH4C)
	}

	EncodeMNListDiff(w, info.DiffH)
	EncodeMNListDiff(w, info.DiffTip)

	w.WriteVarInt(uint64(len(info.LastQuorumPerIndex)))
	for _, q := range info.LastQuorumPerIndex {
		EncodeLLMQEntry(w, q)
	}

	w.WriteVarInt(uint64(len(info.QuorumSnapshotList)))
	for _, s := range info.QuorumSnapshotList {
		EncodeLLMQSnapshot(w, s)
	}

	w.WriteVarInt(uint64(len(info.MNListDiffList)))
	for _, d := range info.MNListDiffList {
		EncodeMNListDiff(w, d)
	}
}
