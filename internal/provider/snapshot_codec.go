package provider

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/dashpay/mnlist-engine/internal/bitset"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// snapshotRecord is the CBOR-serializable form of an LLMQSnapshot, for
// hosts that persist SaveSnapshot calls across restarts. The engine itself
// never touches this — persistence is a host concern (spec §1, §9:
// "does not persist state across process restarts").
type snapshotRecord struct {
	MemberBitset []byte  `cbor:"1,keyasint"`
	MemberCount  uint32  `cbor:"2,keyasint"`
	SkipList     []int32 `cbor:"3,keyasint"`
	Mode         uint32  `cbor:"4,keyasint"`
}

// MarshalSnapshot encodes a snapshot for host-side storage.
func MarshalSnapshot(s *model.LLMQSnapshot) ([]byte, error) {
	rec := snapshotRecord{
		MemberBitset: s.MemberBitset.Bytes(),
		MemberCount:  s.MemberBitset.Count(),
		SkipList:     s.SkipList,
		Mode:         uint32(s.Mode),
	}
	return cbor.Marshal(rec)
}

// UnmarshalSnapshot decodes a snapshot a host previously stored via
// MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (*model.LLMQSnapshot, error) {
	var rec snapshotRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	members, err := bitset.FromBytes(rec.MemberBitset, rec.MemberCount)
	if err != nil {
		return nil, err
	}
	return &model.LLMQSnapshot{
		MemberBitset: members,
		SkipList:     rec.SkipList,
		Mode:         model.SkipListMode(rec.Mode),
	}, nil
}
