package engine

import "fmt"

// OutOfRangeError is returned when the provider rejects a (base, tip) pair
// as not contiguous with known chain state (spec §7: OutOfRange).
type OutOfRangeError struct {
	BaseBlockHash string
	BlockHash     string
	Err           error
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("engine: diff range %s -> %s rejected: %v", e.BaseBlockHash, e.BlockHash, e.Err)
}

func (e *OutOfRangeError) Unwrap() error { return e.Err }

// PrimitiveFailureError wraps a BLS or hash primitive failure encountered
// while validating a quorum (spec §7: PrimitiveFailure).
type PrimitiveFailureError struct {
	Reason string
	Err    error
}

func (e *PrimitiveFailureError) Error() string {
	return fmt.Sprintf("engine: primitive failure: %s: %v", e.Reason, e.Err)
}

func (e *PrimitiveFailureError) Unwrap() error { return e.Err }
