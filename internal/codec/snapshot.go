package codec

import (
	"github.com/dashpay/mnlist-engine/internal/bitset"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// DecodeLLMQSnapshot reads one quorum_snapshot (spec §3): a member bitset
// sized to the active masternode list, plus a skip list whose
// interpretation depends on skip_list_mode.
func DecodeLLMQSnapshot(c *wire.Cursor, memberCount uint32) (*model.LLMQSnapshot, error) {
	s := &model.LLMQSnapshot{}

	memberBytes, err := c.ReadVarBytes()
	if err != nil {
		return nil, malformed("LLMQSnapshot", "member_bitset", err)
	}
	if s.MemberBitset, err = bitset.FromBytes(memberBytes, memberCount); err != nil {
		return nil, malformed("LLMQSnapshot", "member_bitset", err)
	}

	mode, err := c.ReadUint32LE()
	if err != nil {
		return nil, malformed("LLMQSnapshot", "skip_list_mode", err)
	}
	s.Mode = model.SkipListMode(mode)

	skipCount, err := c.ReadVarInt32()
	if err != nil {
		return nil, malformed("LLMQSnapshot", "skip_list_count", err)
	}
	s.SkipList = make([]int32, skipCount)
	for i := range s.SkipList {
		v, err := c.ReadInt32LE()
		if err != nil {
			return nil, malformed("LLMQSnapshot", "skip_list", err)
		}
		s.SkipList[i] = v
	}

	return s, nil
}

// EncodeLLMQSnapshot is the inverse of DecodeLLMQSnapshot.
func EncodeLLMQSnapshot(w *wire.Writer, s *model.LLMQSnapshot) {
	w.WriteVarBytes(s.MemberBitset.Bytes())
	w.WriteUint32LE(uint32(s.Mode))
	w.WriteVarInt(uint64(len(s.SkipList)))
	for _, v := range s.SkipList {
		w.WriteUint32LE(uint32(v))
	}
}
