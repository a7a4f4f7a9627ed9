package testutil

import (
	"encoding/hex"
	"testing"

	"github.com/dashpay/mnlist-engine/internal/hash256"
)

// MustDecodeHex decodes hex or fails the test.
func MustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}
	return b
}

// HashFromHex converts a hex string to a Hash256, zero-padding if needed.
func HashFromHex(s string) hash256.Hash256 {
	b, _ := hex.DecodeString(s)
	var h hash256.Hash256
	copy(h[:], b)
	return h
}
