package model

import (
	"github.com/dashpay/mnlist-engine/internal/blskey"
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/wire"
)

// Hash160 is a 20-byte RIPEMD160(SHA256(x))-style identifier, used for
// key_id_voting and the platform node identifier.
type Hash160 [20]byte

// OperatorPublicKey is a 48-byte compressed BLS12-381 G1 public key plus
// the serialization scheme it was encoded under (spec §3).
type OperatorPublicKey struct {
	Raw     [48]byte
	Version uint8 // 1 = legacy, 2 = basic, mirrors blskey.Scheme
}

// Key converts to the blskey package's verification-ready type.
func (k OperatorPublicKey) Key() blskey.PublicKey {
	return blskey.PublicKey{Raw: k.Raw, Scheme: blskey.Scheme(k.Version)}
}

// heightedOperatorKey, heightedVotingKey and heightedValidity record that a
// field held a prior value up to (but not including) Height, after which
// the entry's current field applies. Each slice is kept sorted ascending by
// Height so the effective*At lookups and IsValidAt can stop at the first
// record whose Height exceeds the query height.
type heightedOperatorKey struct {
	Height uint32
	Key    OperatorPublicKey
}

type heightedVotingKey struct {
	Height uint32
	KeyID  Hash160
}

type heightedValidity struct {
	Height uint32
	Valid  bool
}

// MasternodeEntry is one masternode's state as of the list it belongs to
// (spec §3).
type MasternodeEntry struct {
	ProRegTxHash           hash256.Hash256
	ConfirmedHash          hash256.Hash256 // zero means unconfirmed
	KnownConfirmedAtHeight *uint32

	IPAddress [16]byte
	Port      uint16

	KeyIDVoting       Hash160
	OperatorPublicKey OperatorPublicKey
	IsValid           bool
	MNType            MNType
	UpdateHeight      uint32

	// Present only for diff version >= 2 / MNTypeHighPerformance entries.
	PlatformHTTPPort uint16
	PlatformNodeID   Hash160

	// History carried forward across modifications (spec §4.2 step 3).
	PreviousOperatorPublicKeys []heightedOperatorKey
	PreviousVotingKeyIDs       []heightedVotingKey
	PreviousValidity           []heightedValidity
	PreviousEntryHashes        map[hash256.Hash256]hash256.Hash256

	// EntryHash is the entry's hash as of UpdateHeight; callers that need
	// the hash at another height must call EntryHashAt directly.
	EntryHash hash256.Hash256
}

// effectiveOperatorPublicKeyAt returns the operator key that was active at
// height h.
func (e *MasternodeEntry) effectiveOperatorPublicKeyAt(h uint32) OperatorPublicKey {
	for _, rec := range e.PreviousOperatorPublicKeys {
		if h < rec.Height {
			return rec.Key
		}
	}
	return e.OperatorPublicKey
}

func (e *MasternodeEntry) effectiveVotingKeyIDAt(h uint32) Hash160 {
	for _, rec := range e.PreviousVotingKeyIDs {
		if h < rec.Height {
			return rec.KeyID
		}
	}
	return e.KeyIDVoting
}

// IsValidAt reports whether the entry was valid as of height h, honoring
// recorded validity transitions in PreviousValidity, the same way the
// operator-key and voting-key lookups honor their own height records.
func (e *MasternodeEntry) IsValidAt(h uint32) bool {
	for _, rec := range e.PreviousValidity {
		if h < rec.Height {
			return rec.Valid
		}
	}
	return e.IsValid
}

// ConfirmedHashHashedWithProRegTxHashAt implements spec §3's invariant:
// SHA256(confirmed_hash || pro_reg_tx_hash) iff the entry was confirmed at
// or before height h, else ok is false.
func (e *MasternodeEntry) ConfirmedHashHashedWithProRegTxHashAt(h uint32) (hash256.Hash256, bool) {
	if e.ConfirmedHash.IsZero() || e.KnownConfirmedAtHeight == nil || *e.KnownConfirmedAtHeight > h {
		return hash256.Hash256{}, false
	}
	buf := make([]byte, 0, hash256.Size*2)
	buf = append(buf, e.ConfirmedHash[:]...)
	buf = append(buf, e.ProRegTxHash[:]...)
	return hash256.Hash256(hash256.SHA256(buf)), true
}

// EntryHashAt computes the entry's canonical hash as a pure function of
// its fields as of height h (spec §3 invariant).
func (e *MasternodeEntry) EntryHashAt(h uint32) hash256.Hash256 {
	w := wire.NewWriter()
	w.WriteHash256(e.ProRegTxHash)
	w.WriteHash256(e.ConfirmedHash)
	w.WriteFixed(e.IPAddress[:])
	w.WriteUint16BE(e.Port)
	opKey := e.effectiveOperatorPublicKeyAt(h)
	w.WriteFixed(opKey.Raw[:])
	w.WriteByte(opKey.Version)
	votingKey := e.effectiveVotingKeyIDAt(h)
	w.WriteFixed(votingKey[:])
	w.WriteBool(e.IsValidAt(h))
	w.WriteUint16LE(uint16(e.MNType))
	if e.MNType == MNTypeHighPerformance {
		w.WriteUint16LE(e.PlatformHTTPPort)
		w.WriteFixed(e.PlatformNodeID[:])
	}
	return hash256.SHA256D(w.Bytes())
}

// RecomputeEntryHash sets EntryHash to EntryHashAt(UpdateHeight), the
// entry's hash as of its own last update.
func (e *MasternodeEntry) RecomputeEntryHash() {
	e.EntryHash = e.EntryHashAt(e.UpdateHeight)
}

// UpdateWithPreviousEntry applies spec §4.2 step 3: when a modified entry
// supersedes prev, history fields not present on the wire are copied
// forward, and a stale confirmed_hash is clamped to blockHeight.
func (e *MasternodeEntry) UpdateWithPreviousEntry(prev *MasternodeEntry, blockHeight uint32, blockHash hash256.Hash256) {
	e.PreviousOperatorPublicKeys = append([]heightedOperatorKey(nil), prev.PreviousOperatorPublicKeys...)
	if prev.OperatorPublicKey.Raw != e.OperatorPublicKey.Raw || prev.OperatorPublicKey.Version != e.OperatorPublicKey.Version {
		e.PreviousOperatorPublicKeys = append(e.PreviousOperatorPublicKeys, heightedOperatorKey{Height: blockHeight, Key: prev.OperatorPublicKey})
	}

	e.PreviousVotingKeyIDs = append([]heightedVotingKey(nil), prev.PreviousVotingKeyIDs...)
	if prev.KeyIDVoting != e.KeyIDVoting {
		e.PreviousVotingKeyIDs = append(e.PreviousVotingKeyIDs, heightedVotingKey{Height: blockHeight, KeyID: prev.KeyIDVoting})
	}

	e.PreviousValidity = append([]heightedValidity(nil), prev.PreviousValidity...)
	if prev.IsValid != e.IsValid {
		e.PreviousValidity = append(e.PreviousValidity, heightedValidity{Height: blockHeight, Valid: prev.IsValid})
	}

	e.PreviousEntryHashes = make(map[hash256.Hash256]hash256.Hash256, len(prev.PreviousEntryHashes)+1)
	for k, v := range prev.PreviousEntryHashes {
		e.PreviousEntryHashes[k] = v
	}
	e.PreviousEntryHashes[blockHash] = prev.EntryHashAt(prev.UpdateHeight)

	if !prev.ConfirmedHash.IsZero() && prev.KnownConfirmedAtHeight != nil && *prev.KnownConfirmedAtHeight > blockHeight {
		clamped := blockHeight
		e.KnownConfirmedAtHeight = &clamped
		if e.ConfirmedHash.IsZero() {
			e.ConfirmedHash = prev.ConfirmedHash
		}
	}
}
