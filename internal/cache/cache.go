// Package cache holds the engine's derived, in-memory state between calls:
// known masternode lists, LLMQ snapshots, memoized quorum membership, and
// the set of ancestor lists a diff needed but didn't have (spec §3, §5).
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

const (
	defaultListCapacity     = 64
	defaultMembersCapacity  = 256
)

// indexedKey identifies rotated quorum members memoized per (cycle base
// hash, quorum index) in addition to the plain (type, block hash) key
// (spec §4.3.2: "cached under both keys").
type indexedKey struct {
	CycleBaseHash hash256.Hash256
	Index         uint32
}

// ProcessorCache is the engine's mutable working state (spec §3
// "ProcessorCache"). Lists and snapshots are never mutated in place —
// processing a diff inserts a new value under a new key. It must not be
// shared across concurrent calls without external synchronization (spec
// §5).
type ProcessorCache struct {
	mnLists       *lru.Cache[hash256.Hash256, *model.MasternodeList]
	llmqSnapshots *lru.Cache[hash256.Hash256, *model.LLMQSnapshot]

	llmqMembers        map[model.LLMQType]*lru.Cache[hash256.Hash256, []*model.MasternodeEntry]
	llmqIndexedMembers map[model.LLMQType]map[indexedKey][]*model.MasternodeEntry

	memberCapacity int

	// NeededMasternodeLists accumulates ancestor hashes requested but
	// absent during the most recent call. The driver reads and clears it
	// before returning (spec §3: "the driver returns this vector to the
	// caller and clears it before returning").
	NeededMasternodeLists []hash256.Hash256
}

// New allocates a ProcessorCache with listCapacity/memberCapacity bounding
// the LRU maps so a long-running host doesn't grow memory unboundedly
// across many diffs. A capacity of 0 selects a sane default.
func New(listCapacity, memberCapacity int) *ProcessorCache {
	if listCapacity <= 0 {
		listCapacity = defaultListCapacity
	}
	if memberCapacity <= 0 {
		memberCapacity = defaultMembersCapacity
	}
	lists, _ := lru.New[hash256.Hash256, *model.MasternodeList](listCapacity)
	snapshots, _ := lru.New[hash256.Hash256, *model.LLMQSnapshot](listCapacity)
	return &ProcessorCache{
		mnLists:            lists,
		llmqSnapshots:      snapshots,
		llmqMembers:        make(map[model.LLMQType]*lru.Cache[hash256.Hash256, []*model.MasternodeEntry]),
		llmqIndexedMembers: make(map[model.LLMQType]map[indexedKey][]*model.MasternodeEntry),
		memberCapacity:     memberCapacity,
	}
}

// ListCount returns the number of masternode lists currently cached.
func (c *ProcessorCache) ListCount() int {
	return c.mnLists.Len()
}

// PutMasternodeList stores l under its own block hash.
func (c *ProcessorCache) PutMasternodeList(l *model.MasternodeList) {
	c.mnLists.Add(l.BlockHash, l)
}

// MasternodeList returns the list stored for blockHash, if any.
func (c *ProcessorCache) MasternodeList(blockHash hash256.Hash256) (*model.MasternodeList, bool) {
	return c.mnLists.Get(blockHash)
}

// MasternodeListsView returns a plain map snapshot for handing to
// provider.FindMasternodeList, which expects map semantics rather than an
// LRU handle.
func (c *ProcessorCache) MasternodeListsView() map[hash256.Hash256]*model.MasternodeList {
	out := make(map[hash256.Hash256]*model.MasternodeList, c.mnLists.Len())
	for _, k := range c.mnLists.Keys() {
		if v, ok := c.mnLists.Peek(k); ok {
			out[k] = v
		}
	}
	return out
}

// PutSnapshot stores s under blockHash.
func (c *ProcessorCache) PutSnapshot(blockHash hash256.Hash256, s *model.LLMQSnapshot) {
	c.llmqSnapshots.Add(blockHash, s)
}

// Snapshot returns the snapshot stored for blockHash, if any.
func (c *ProcessorCache) Snapshot(blockHash hash256.Hash256) (*model.LLMQSnapshot, bool) {
	return c.llmqSnapshots.Get(blockHash)
}

// SnapshotsView mirrors MasternodeListsView for the snapshot map.
func (c *ProcessorCache) SnapshotsView() map[hash256.Hash256]*model.LLMQSnapshot {
	out := make(map[hash256.Hash256]*model.LLMQSnapshot, c.llmqSnapshots.Len())
	for _, k := range c.llmqSnapshots.Keys() {
		if v, ok := c.llmqSnapshots.Peek(k); ok {
			out[k] = v
		}
	}
	return out
}

func (c *ProcessorCache) membersCacheFor(t model.LLMQType) *lru.Cache[hash256.Hash256, []*model.MasternodeEntry] {
	m, ok := c.llmqMembers[t]
	if !ok {
		m, _ = lru.New[hash256.Hash256, []*model.MasternodeEntry](c.memberCapacity)
		c.llmqMembers[t] = m
	}
	return m
}

// PutQuorumMembers memoizes a computed quorum's members under both the
// plain (type, block hash) key and, when cycleBaseHash/index describe a
// rotated quorum, the indexed key (spec §4.3.2: "cached under both").
func (c *ProcessorCache) PutQuorumMembers(t model.LLMQType, blockHash hash256.Hash256, members []*model.MasternodeEntry, cycleBaseHash *hash256.Hash256, index *uint32) {
	c.membersCacheFor(t).Add(blockHash, members)
	if cycleBaseHash != nil && index != nil {
		indexed, ok := c.llmqIndexedMembers[t]
		if !ok {
			indexed = make(map[indexedKey][]*model.MasternodeEntry)
			c.llmqIndexedMembers[t] = indexed
		}
		indexed[indexedKey{CycleBaseHash: *cycleBaseHash, Index: *index}] = members
	}
}

// QuorumMembers returns the memoized members for (t, blockHash).
func (c *ProcessorCache) QuorumMembers(t model.LLMQType, blockHash hash256.Hash256) ([]*model.MasternodeEntry, bool) {
	return c.membersCacheFor(t).Get(blockHash)
}

// IndexedQuorumMembers returns the memoized members for a rotated quorum
// identified by (cycle base hash, quorum index).
func (c *ProcessorCache) IndexedQuorumMembers(t model.LLMQType, cycleBaseHash hash256.Hash256, index uint32) ([]*model.MasternodeEntry, bool) {
	indexed, ok := c.llmqIndexedMembers[t]
	if !ok {
		return nil, false
	}
	members, ok := indexed[indexedKey{CycleBaseHash: cycleBaseHash, Index: index}]
	return members, ok
}

// NeedMasternodeList records h as an ancestor list requested but absent.
func (c *ProcessorCache) NeedMasternodeList(h hash256.Hash256) {
	c.NeededMasternodeLists = append(c.NeededMasternodeLists, h)
}

// DrainNeeded returns the accumulated needed-list hashes and clears them,
// implementing spec §3's "the driver returns this vector to the caller and
// clears it before returning."
func (c *ProcessorCache) DrainNeeded() []hash256.Hash256 {
	out := c.NeededMasternodeLists
	c.NeededMasternodeLists = nil
	return out
}
