package codec

import (
	"testing"

	"github.com/dashpay/mnlist-engine/internal/bitset"
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

func buildLLMQEntry(rotated bool) *model.LLMQEntry {
	version := model.LLMQVersionBasic
	if rotated {
		version = model.LLMQVersionBasicRotated
	}
	signers := bitset.New(8)
	signers.Set(1)
	signers.Set(3)
	valid := bitset.New(8)
	valid.Set(0)

	q := &model.LLMQEntry{
		Version:           version,
		LLMQType:          model.LLMQType60_75,
		LLMQHash:          hash256.SHA256D([]byte("llmq")),
		SignersBitset:     signers,
		SignersCount:      8,
		ValidMembersBitset: valid,
		ValidMembersCount: 8,
	}
	q.QuorumPublicKey[0] = 0x11
	q.ThresholdSig[0] = 0x22
	q.AllCommitmentAggSig[0] = 0x33
	if rotated {
		idx := uint32(3)
		q.Index = &idx
	}
	return q
}

func TestLLMQEntryRoundTrip(t *testing.T) {
	for _, rotated := range []bool{false, true} {
		orig := buildLLMQEntry(rotated)
		w := wire.NewWriter()
		EncodeLLMQEntry(w, orig)

		c := wire.NewCursor(w.Bytes())
		got, err := DecodeLLMQEntry(c)
		if err != nil {
			t.Fatalf("rotated=%v: decode failed: %v", rotated, err)
		}
		if c.Remaining() != 0 {
			t.Fatalf("rotated=%v: %d bytes left unconsumed", rotated, c.Remaining())
		}
		if got.LLMQHash != orig.LLMQHash {
			t.Fatalf("rotated=%v: llmq_hash mismatch", rotated)
		}
		if rotated && (got.Index == nil || *got.Index != *orig.Index) {
			t.Fatalf("rotated=%v: quorum_index mismatch", rotated)
		}
		if !rotated && got.Index != nil {
			t.Fatal("non-rotated entry must not carry a quorum_index")
		}
		if got.SignersBitset.PopCount() != orig.SignersBitset.PopCount() {
			t.Fatalf("rotated=%v: signers_bitset mismatch", rotated)
		}
		if got.ComputeEntryHash() != orig.ComputeEntryHash() {
			t.Fatalf("rotated=%v: entry hash mismatch", rotated)
		}
	}
}
