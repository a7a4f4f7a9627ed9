package codec

import (
	"testing"

	"github.com/dashpay/mnlist-engine/internal/bitset"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

func buildSnapshot(seed byte) *model.LLMQSnapshot {
	members := bitset.New(8)
	members.Set(uint32(seed) % 8)
	return &model.LLMQSnapshot{
		MemberBitset: members,
		Mode:         model.SkipListModeSkipFirst,
		SkipList:     []int32{int32(seed)},
	}
}

func buildQRInfo(extraShare bool) *model.QRInfo {
	info := &model.QRInfo{
		SnapshotAtHMinusC:  buildSnapshot(1),
		SnapshotAtHMinus2C: buildSnapshot(2),
		SnapshotAtHMinus3C: buildSnapshot(3),
		DiffHC:             buildDiff(),
		DiffH2C:            buildDiff(),
		DiffH3C:            buildDiff(),
		DiffH:              buildDiff(),
		DiffTip:            buildDiff(),
		ExtraShare:         extraShare,
		LastQuorumPerIndex: []*model.LLMQEntry{buildLLMQEntry(true)},
		QuorumSnapshotList: []*model.LLMQSnapshot{buildSnapshot(4), buildSnapshot(5)},
		MNListDiffList:     []*model.MNListDiff{buildDiff(), buildDiff()},
	}
	if extraShare {
		info.SnapshotAtHMinus4C = buildSnapshot(6)
		info.DiffH4C = buildDiff()
	}
	return info
}

// TestQRInfoRoundTrip exercises the full QRINFO layout (spec §4.1): three
// cycle snapshots and their paired diffs, the tip/H diffs, and the
// rotation bookkeeping lists — multiple MN-ListDiff messages back to back
// on one cursor, which is exactly the scenario where a diff decoder that
// guesses its own trailer from "bytes remaining" desyncs.
func TestQRInfoRoundTrip(t *testing.T) {
	orig := buildQRInfo(false)

	w := wire.NewWriter()
	EncodeQRInfo(w, orig)

	c := wire.NewCursor(w.Bytes())
	got, err := DecodeQRInfo(c, 8, QRInfoHeights{}, model.CoreProto20)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("%d bytes left unconsumed", c.Remaining())
	}
	if got.ExtraShare {
		t.Fatal("expected extra_share false")
	}
	if got.DiffH4C != nil || got.SnapshotAtHMinus4C != nil {
		t.Fatal("extra_share diff/snapshot must be absent")
	}
	if got.DiffTip.BlockHash != orig.DiffTip.BlockHash {
		t.Fatal("diff_tip mismatch")
	}
	if len(got.DiffHC.AddedQuorums[model.LLMQType60_75]) != 1 {
		t.Fatal("diff_hc added_quorums did not round-trip")
	}
	if len(got.LastQuorumPerIndex) != 1 {
		t.Fatal("last_quorum_per_index mismatch")
	}
	if len(got.QuorumSnapshotList) != 2 {
		t.Fatal("quorum_snapshot_list mismatch")
	}
	if len(got.MNListDiffList) != 2 {
		t.Fatal("mn_list_diff_list mismatch")
	}
	for i, d := range got.MNListDiffList {
		if d.BlockHash != orig.MNListDiffList[i].BlockHash {
			t.Fatalf("mn_list_diff_list[%d] block_hash mismatch", i)
		}
		if len(d.AddedQuorums[model.LLMQType60_75]) != 1 {
			t.Fatalf("mn_list_diff_list[%d] added_quorums did not round-trip", i)
		}
	}
}

// TestQRInfoRoundTripWithExtraShare covers the extra_share branch (4th
// cycle snapshot/diff pair).
func TestQRInfoRoundTripWithExtraShare(t *testing.T) {
	orig := buildQRInfo(true)

	w := wire.NewWriter()
	EncodeQRInfo(w, orig)

	c := wire.NewCursor(w.Bytes())
	got, err := DecodeQRInfo(c, 8, QRInfoHeights{}, model.CoreProto20)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("%d bytes left unconsumed", c.Remaining())
	}
	if !got.ExtraShare {
		t.Fatal("expected extra_share true")
	}
	if got.DiffH4C == nil || got.SnapshotAtHMinus4C == nil {
		t.Fatal("extra_share diff/snapshot must be present")
	}
	if got.DiffH4C.BlockHash != orig.DiffH4C.BlockHash {
		t.Fatal("diff_h4c mismatch")
	}
}

// TestQRInfoPreCoreProto20OmitsCLSigsAcrossDiffs is the regression case for
// the "remaining bytes" heuristic: every embedded diff except the very
// last one has more message left on the cursor even though none of them
// carry a quorums_cl_sigs trailer, since protoVersion is below CoreProto20.
func TestQRInfoPreCoreProto20OmitsCLSigsAcrossDiffs(t *testing.T) {
	orig := buildQRInfo(false)

	w := wire.NewWriter()
	EncodeQRInfo(w, orig)

	c := wire.NewCursor(w.Bytes())
	got, err := DecodeQRInfo(c, 8, QRInfoHeights{}, model.CoreProto20-1)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("%d bytes left unconsumed", c.Remaining())
	}
	for _, d := range []*model.MNListDiff{got.DiffHC, got.DiffH2C, got.DiffH3C, got.DiffH, got.DiffTip} {
		if len(d.QuorumsCLSigs) != 0 {
			t.Fatal("expected no quorums_cl_sigs below CoreProto20")
		}
	}
}
