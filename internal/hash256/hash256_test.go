package hash256

import (
	"encoding/hex"
	"testing"
)

func hexEncode(b []byte) string { return hex.EncodeToString(b) }

func TestSHA256D(t *testing.T) {
	// Known double-SHA256 of "hello", matching the value used across the
	// Bitcoin-family test corpus (natural byte order).
	got := SHA256D([]byte("hello"))
	want := "9595c9df90075148eb06860365df33584b75bff782a510c6cd4883a419833d50"
	if hex := hexEncode(got.Bytes()); hex != want {
		t.Fatalf("SHA256D(\"hello\") = %s, want %s", hex, want)
	}
}

func TestReversedOrdering(t *testing.T) {
	a := Hash256{0x01, 0x00, 0x00}
	b := Hash256{0x02, 0x00, 0x00}

	// Natural order: a < b (first byte 0x01 < 0x02).
	if !a.Less(b) {
		t.Fatal("expected a < b in natural order")
	}

	// Reversed order compares the byte-reversed values: reversed(a) has
	// 0x01 as its *last* byte, reversed(b) has 0x02 as its last byte, so
	// reversed(a) < reversed(b) too for this example — use a pair that
	// actually flips under reversal.
	c := Hash256{}
	c[Size-1] = 0x01
	d := Hash256{}
	d[0] = 0x01

	// Natural order: c (0x00...01) < d (0x01 followed by zeros)
	if !c.Less(d) {
		t.Fatal("expected c < d in natural order")
	}
	// Reversed order: reversed(c) = 0x01 followed by zeros,
	// reversed(d) = 0x00...01 -> reversed(d) < reversed(c)
	if !d.ReversedLess(c) {
		t.Fatal("expected reversed(d) < reversed(c)")
	}
}

func TestZeroAndReversedRoundTrip(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatal("Zero.IsZero() should be true")
	}

	h := SHA256D([]byte("round trip"))
	if h.Reversed().Reversed() != h {
		t.Fatal("double reversal should be identity")
	}
}

func TestFromBytesRoundTrip(t *testing.T) {
	h := SHA256D([]byte("x"))
	h2, ok := FromBytes(h.Bytes())
	if !ok || h2 != h {
		t.Fatalf("FromBytes round trip failed")
	}
	if _, ok := FromBytes([]byte{1, 2, 3}); ok {
		t.Fatal("FromBytes should reject wrong length")
	}
}

func TestSortedReversed(t *testing.T) {
	a := Hash256{}
	a[Size-1] = 0x02
	b := Hash256{}
	b[Size-1] = 0x01

	sorted := SortedReversed([]Hash256{a, b})
	if sorted[0] != b || sorted[1] != a {
		t.Fatalf("expected ascending reversed order, got %v", sorted)
	}
}
