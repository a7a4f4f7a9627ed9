// Package model implements the data types of spec §3: masternode and LLMQ
// entries, snapshots, masternode lists, and the MN-ListDiff / QR-Info
// message bodies they are decoded into.
package model

import "github.com/dashpay/mnlist-engine/internal/hash256"

// BlockRef pairs a height with its block hash, avoiding two separate
// provider round trips anywhere the spec says "at height H" (SPEC_FULL §5,
// grounded on original_source's tiny block.rs helper).
type BlockRef struct {
	Height uint32
	Hash   hash256.Hash256
}
