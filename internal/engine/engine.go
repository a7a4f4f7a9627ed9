// Package engine is the driver (C9): the two entry points
// ProcessMNListDiff and ProcessQRInfo that orchestrate decoding (C3),
// diff application (C7), quorum member reconstruction and validation
// (C8), and Merkle root checks (C4) into a single result record (spec §6).
package engine

import (
	"go.uber.org/zap"

	"github.com/dashpay/mnlist-engine/internal/cache"
	"github.com/dashpay/mnlist-engine/internal/provider"
)

// Processor is the engine's single stateful entry point. It is not safe
// for concurrent use without external synchronization (spec §5: "the
// ProcessorCache is mutated during a call").
type Processor struct {
	provider provider.Provider
	cache    *cache.ProcessorCache
	logger   *zap.Logger
}

// Option configures a Processor at construction time.
type Option func(*Processor)

// WithLogger injects a structured trace sink (spec §9: "the core emits
// structured events through an injected trace sink if one is provided").
// If omitted, the processor logs nowhere.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCache injects a pre-existing cache (e.g. one restored across a
// process's own lifetime) instead of starting empty.
func WithCache(c *cache.ProcessorCache) Option {
	return func(p *Processor) {
		if c != nil {
			p.cache = c
		}
	}
}

// New builds a Processor over the given provider. The cache starts empty
// unless WithCache is supplied.
func New(p provider.Provider, opts ...Option) *Processor {
	proc := &Processor{
		provider: p,
		cache:    cache.New(0, 0),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(proc)
	}
	return proc
}

// Cache exposes the processor's cache for callers that need to inspect or
// seed it directly (e.g. pre-loading a known checkpoint list).
func (p *Processor) Cache() *cache.ProcessorCache { return p.cache }
