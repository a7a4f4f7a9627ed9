package provider

import (
	"sync"

	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

// MemoryChainType is a ChainType fixture for tests: every policy knob is a
// plain field instead of chain-specific logic.
type MemoryChainType struct {
	Platform         model.LLMQType
	ISD              model.LLMQType
	ProcessableTypes map[model.LLMQType]bool
}

func (c *MemoryChainType) PlatformType() model.LLMQType { return c.Platform }
func (c *MemoryChainType) ISDLLMQType() model.LLMQType  { return c.ISD }
func (c *MemoryChainType) ShouldProcessLLMQOfType(t model.LLMQType) bool {
	if c.ProcessableTypes == nil {
		return true
	}
	return c.ProcessableTypes[t]
}

// MemoryProvider implements Provider entirely in memory, for tests and for
// hosts small enough not to need a real chain backend. Mirrors
// internal/bitcoin's MockRPC shape: public fields seed canned state,
// everything is guarded by one mutex.
type MemoryProvider struct {
	mu sync.Mutex

	HeightsByHash map[hash256.Hash256]uint32
	HashesByHeight map[uint32]hash256.Hash256
	MerkleRoots    map[hash256.Hash256]hash256.Hash256
	Lists          map[hash256.Hash256]*model.MasternodeList
	Snapshots      map[hash256.Hash256]*model.LLMQSnapshot

	// RangeErr, when non-nil, is returned by ShouldProcessDiffWithRange
	// for every call — a fixture for the OutOfRange scenario (spec §8
	// scenario 5 and §7).
	RangeErr error

	Chain ChainType
}

// NewMemoryProvider returns an empty provider ready to be seeded by a test.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		HeightsByHash:  make(map[hash256.Hash256]uint32),
		HashesByHeight: make(map[uint32]hash256.Hash256),
		MerkleRoots:    make(map[hash256.Hash256]hash256.Hash256),
		Lists:          make(map[hash256.Hash256]*model.MasternodeList),
		Snapshots:      make(map[hash256.Hash256]*model.LLMQSnapshot),
		Chain:          &MemoryChainType{Platform: model.LLMQType100_67, ISD: model.LLMQType60_75},
	}
}

func (p *MemoryProvider) LookupBlockHeightByHash(h hash256.Hash256) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if height, ok := p.HeightsByHash[h]; ok {
		return height
	}
	return UnknownHeight
}

func (p *MemoryProvider) LookupBlockHashByHeight(height uint32) (hash256.Hash256, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.HashesByHeight[height]
	if !ok {
		return hash256.Hash256{}, ErrNotFound
	}
	return h, nil
}

func (p *MemoryProvider) LookupMerkleRootByHash(h hash256.Hash256) (hash256.Hash256, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	root, ok := p.MerkleRoots[h]
	return root, ok
}

func (p *MemoryProvider) FindMasternodeList(h hash256.Hash256, cache map[hash256.Hash256]*model.MasternodeList, unknown *[]hash256.Hash256) (*model.MasternodeList, error) {
	if l, ok := cache[h]; ok {
		return l, nil
	}
	p.mu.Lock()
	l, ok := p.Lists[h]
	p.mu.Unlock()
	if ok {
		cache[h] = l
		return l, nil
	}
	*unknown = append(*unknown, h)
	return nil, ErrNotFound
}

func (p *MemoryProvider) MasternodeInfoForHeight(
	height uint32,
	cacheLists map[hash256.Hash256]*model.MasternodeList,
	cacheSnapshots map[hash256.Hash256]*model.LLMQSnapshot,
	unknown *[]hash256.Hash256,
) (*model.MasternodeList, *model.LLMQSnapshot, hash256.Hash256, error) {
	workHash, err := p.LookupBlockHashByHeight(height)
	if err != nil {
		return nil, nil, hash256.Hash256{}, err
	}
	list, err := p.FindMasternodeList(workHash, cacheLists, unknown)
	if err != nil {
		return nil, nil, workHash, err
	}
	snap := cacheSnapshots[workHash]
	if snap == nil {
		p.mu.Lock()
		snap = p.Snapshots[workHash]
		p.mu.Unlock()
		if snap != nil {
			cacheSnapshots[workHash] = snap
		}
	}
	return list, snap, workHash, nil
}

func (p *MemoryProvider) SaveSnapshot(h hash256.Hash256, s *model.LLMQSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Snapshots[h] = s
}

func (p *MemoryProvider) ShouldProcessDiffWithRange(baseHash, blockHash hash256.Hash256) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.RangeErr != nil {
		return p.RangeErr
	}
	return nil
}

func (p *MemoryProvider) ChainType() ChainType {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Chain
}
