// Package provider defines the narrow host-supplied lookup interface the
// engine depends on for everything outside its own pure computation: block
// height/hash/merkle-root lookups, masternode-list and snapshot retrieval,
// and chain-specific policy (spec §6).
package provider

import (
	"errors"

	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// ErrNotFound is returned by lookups that have no answer for the given key.
var ErrNotFound = errors.New("provider: not found")

// ErrOutOfRange is returned by ShouldProcessDiffWithRange when a
// (base, tip) pair is rejected — e.g. not contiguous with known chain
// state (spec §7: OutOfRange).
var ErrOutOfRange = errors.New("provider: diff range rejected")

// UnknownHeight is returned by LookupBlockHeightByHash when the hash is
// not recognized (spec §6: "returns u32::MAX to mean unknown").
const UnknownHeight uint32 = model.UnknownHeight

// ChainType exposes the chain-specific policy knobs the quorum engine
// consults (spec §6, §4.3.4).
type ChainType interface {
	// PlatformType is the LLMQType reserved for platform (HighPerformance)
	// quorums.
	PlatformType() model.LLMQType
	// ISDLLMQType is the instant-send/rotated quorum family.
	ISDLLMQType() model.LLMQType
	// ShouldProcessLLMQOfType reports whether a non-ISD, non-rotated
	// quorum type should be validated at all.
	ShouldProcessLLMQOfType(t model.LLMQType) bool
}

// Provider is the engine's sole external dependency: every lookup the
// core cannot derive by itself goes through this interface (spec §6). The
// core never calls out to the network or disk directly.
type Provider interface {
	// LookupBlockHeightByHash returns UnknownHeight if h is not known.
	LookupBlockHeightByHash(h hash256.Hash256) uint32
	// LookupBlockHashByHeight returns ErrNotFound if height is not known.
	LookupBlockHashByHeight(height uint32) (hash256.Hash256, error)
	// LookupMerkleRootByHash returns (zero, false) if h is not known.
	LookupMerkleRootByHash(h hash256.Hash256) (hash256.Hash256, bool)

	// FindMasternodeList resolves the masternode list as of block hash h,
	// consulting cache first. On a cache miss it records h into unknown
	// and returns ErrNotFound.
	FindMasternodeList(h hash256.Hash256, cache map[hash256.Hash256]*model.MasternodeList, unknown *[]hash256.Hash256) (*model.MasternodeList, error)

	// MasternodeInfoForHeight resolves the (list, snapshot, work-block-hash)
	// triple needed to score a rotated quarter at a given height,
	// consulting the supplied caches first.
	MasternodeInfoForHeight(
		height uint32,
		cacheLists map[hash256.Hash256]*model.MasternodeList,
		cacheSnapshots map[hash256.Hash256]*model.LLMQSnapshot,
		unknown *[]hash256.Hash256,
	) (*model.MasternodeList, *model.LLMQSnapshot, hash256.Hash256, error)

	// SaveSnapshot persists a snapshot the host may want to keep beyond
	// this call's in-memory cache.
	SaveSnapshot(h hash256.Hash256, s *model.LLMQSnapshot)

	// ShouldProcessDiffWithRange validates that (baseHash, blockHash) is a
	// contiguous, acceptable range before the engine applies a diff.
	ShouldProcessDiffWithRange(baseHash, blockHash hash256.Hash256) error

	// ChainType exposes the chain-specific policy knobs.
	ChainType() ChainType
}
