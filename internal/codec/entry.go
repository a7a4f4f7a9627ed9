package codec

import (
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// DecodeMasternodeEntry reads one masternode_list_entry from c. diffVersion
// gates the fields introduced after the initial wire format (mn_type, and
// by extension the platform fields); blockHeight becomes the entry's
// UpdateHeight (spec §4.1, §4.2 step 3).
func DecodeMasternodeEntry(c *wire.Cursor, diffVersion uint16, blockHeight uint32) (*model.MasternodeEntry, error) {
	e := &model.MasternodeEntry{UpdateHeight: blockHeight}

	var err error
	if e.ProRegTxHash, err = c.ReadHash256(); err != nil {
		return nil, malformed("MasternodeEntry", "pro_reg_tx_hash", err)
	}
	if e.ConfirmedHash, err = c.ReadHash256(); err != nil {
		return nil, malformed("MasternodeEntry", "confirmed_hash", err)
	}
	hasConfirmedHeight, err := c.ReadBool()
	if err != nil {
		return nil, malformed("MasternodeEntry", "known_confirmed_at_height.present", err)
	}
	if hasConfirmedHeight {
		h, err := c.ReadUint32LE()
		if err != nil {
			return nil, malformed("MasternodeEntry", "known_confirmed_at_height", err)
		}
		e.KnownConfirmedAtHeight = &h
	}
	ip, err := c.ReadFixed(16)
	if err != nil {
		return nil, malformed("MasternodeEntry", "ip_address", err)
	}
	copy(e.IPAddress[:], ip)
	if e.Port, err = c.ReadUint16BE(); err != nil {
		return nil, malformed("MasternodeEntry", "port", err)
	}
	votingKey, err := c.ReadFixed(20)
	if err != nil {
		return nil, malformed("MasternodeEntry", "key_id_voting", err)
	}
	copy(e.KeyIDVoting[:], votingKey)
	opKeyRaw, err := c.ReadFixed(48)
	if err != nil {
		return nil, malformed("MasternodeEntry", "operator_public_key", err)
	}
	copy(e.OperatorPublicKey.Raw[:], opKeyRaw)
	if e.OperatorPublicKey.Version, err = c.ReadByte(); err != nil {
		return nil, malformed("MasternodeEntry", "operator_public_key.version", err)
	}
	if e.IsValid, err = c.ReadBool(); err != nil {
		return nil, malformed("MasternodeEntry", "is_valid", err)
	}

	if diffVersion >= 2 {
		mnType, err := c.ReadUint16LE()
		if err != nil {
			return nil, malformed("MasternodeEntry", "mn_type", err)
		}
		e.MNType = model.MNType(mnType)
	}
	if e.MNType == model.MNTypeHighPerformance {
		if e.PlatformHTTPPort, err = c.ReadUint16LE(); err != nil {
			return nil, malformed("MasternodeEntry", "platform_http_port", err)
		}
		nodeID, err := c.ReadFixed(20)
		if err != nil {
			return nil, malformed("MasternodeEntry", "platform_node_id", err)
		}
		copy(e.PlatformNodeID[:], nodeID)
	}

	e.RecomputeEntryHash()
	return e, nil
}

// EncodeMasternodeEntry is the inverse of DecodeMasternodeEntry, used by
// round-trip tests and by any component that re-serializes a decoded
// entry.
func EncodeMasternodeEntry(w *wire.Writer, e *model.MasternodeEntry, diffVersion uint16) {
	w.WriteHash256(e.ProRegTxHash)
	w.WriteHash256(e.ConfirmedHash)
	w.WriteBool(e.KnownConfirmedAtHeight != nil)
	if e.KnownConfirmedAtHeight != nil {
		w.WriteUint32LE(*e.KnownConfirmedAtHeight)
	}
	w.WriteFixed(e.IPAddress[:])
	w.WriteUint16BE(e.Port)
	w.WriteFixed(e.KeyIDVoting[:])
	w.WriteFixed(e.OperatorPublicKey.Raw[:])
	w.WriteByte(e.OperatorPublicKey.Version)
	w.WriteBool(e.IsValid)
	if diffVersion >= 2 {
		w.WriteUint16LE(uint16(e.MNType))
	}
	if e.MNType == model.MNTypeHighPerformance {
		w.WriteUint16LE(e.PlatformHTTPPort)
		w.WriteFixed(e.PlatformNodeID[:])
	}
}
