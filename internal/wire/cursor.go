// Package wire implements the Bitcoin-style CompactSize var-int / var-array
// cursor reader and writer the MN-ListDiff and QR-Info wire formats build
// on (spec §4.1).
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/dashpay/mnlist-engine/internal/hash256"
)

// ErrTruncated is returned whenever a read would run past the end of the
// buffer.
var ErrTruncated = errors.New("wire: truncated input")

// Cursor is a forward-only reader over a byte slice.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for sequential decoding.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Bytes returns the full underlying buffer (not a copy).
func (c *Cursor) Bytes() []byte { return c.buf }

// Slice returns the raw bytes between the two offsets, without advancing
// the cursor — used to capture a transaction's exact serialized bytes for
// hashing after decoding its fields.
func (c *Cursor) Slice(from, to int) ([]byte, error) {
	if from < 0 || to > len(c.buf) || from > to {
		return nil, ErrTruncated
	}
	return c.buf[from:to], nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrTruncated
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool reads a single-byte boolean (non-zero is true).
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadByte()
	return b != 0, err
}

// ReadUint16LE reads a little-endian uint16.
func (c *Cursor) ReadUint16LE() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint16BE reads a big-endian uint16 (used for the masternode entry's
// network port, which is carried in network byte order like the rest of
// the Bitcoin address wire format).
func (c *Cursor) ReadUint16BE() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32LE reads a little-endian uint32.
func (c *Cursor) ReadUint32LE() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32LE reads a little-endian int32.
func (c *Cursor) ReadInt32LE() (int32, error) {
	v, err := c.ReadUint32LE()
	return int32(v), err
}

// ReadUint64LE reads a little-endian uint64.
func (c *Cursor) ReadUint64LE() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadFixed reads exactly n raw bytes.
func (c *Cursor) ReadFixed(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadHash256 reads a 32-byte hash in its natural (on-wire) byte order.
func (c *Cursor) ReadHash256() (hash256.Hash256, error) {
	b, err := c.take(hash256.Size)
	if err != nil {
		return hash256.Hash256{}, err
	}
	var h hash256.Hash256
	copy(h[:], b)
	return h, nil
}

// ReadVarInt reads a Bitcoin-style CompactSize variable-length integer.
func (c *Cursor) ReadVarInt() (uint64, error) {
	first, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case first < 0xfd:
		return uint64(first), nil
	case first == 0xfd:
		v, err := c.ReadUint16LE()
		return uint64(v), err
	case first == 0xfe:
		v, err := c.ReadUint32LE()
		return uint64(v), err
	default:
		return c.ReadUint64LE()
	}
}

// ReadVarInt32 reads a CompactSize integer expected to fit in 32 bits, such
// as signers_count/valid_members_count.
func (c *Cursor) ReadVarInt32() (uint32, error) {
	v, err := c.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if v > 0xffffffff {
		return 0, ErrTruncated
	}
	return uint32(v), nil
}

// ReadVarBytes reads a var-int length prefix followed by that many bytes.
func (c *Cursor) ReadVarBytes() ([]byte, error) {
	n, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return c.ReadFixed(int(n))
}

// ReadVarHashArray reads a var-int count followed by that many Hash256
// values — the var_array<Hash256> shape used for merkle_hashes,
// deleted_masternode_hashes, and deleted-quorum hash lists.
func (c *Cursor) ReadVarHashArray() ([]hash256.Hash256, error) {
	n, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}
	out := make([]hash256.Hash256, n)
	for i := range out {
		h, err := c.ReadHash256()
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// Writer accumulates encoded bytes — the inverse of Cursor, used for
// round-trip tests and for re-serializing a decoded message.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) { w.buf = append(w.buf, b) }

// WriteBool appends a single-byte boolean.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

// WriteUint16LE appends a little-endian uint16.
func (w *Writer) WriteUint16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint16BE appends a big-endian uint16.
func (w *Writer) WriteUint16BE(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint32LE appends a little-endian uint32.
func (w *Writer) WriteUint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint64LE appends a little-endian uint64.
func (w *Writer) WriteUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteFixed appends raw bytes unmodified.
func (w *Writer) WriteFixed(b []byte) { w.buf = append(w.buf, b...) }

// WriteHash256 appends a hash in its natural (on-wire) byte order.
func (w *Writer) WriteHash256(h hash256.Hash256) { w.buf = append(w.buf, h[:]...) }

// WriteVarInt appends a CompactSize-encoded integer.
func (w *Writer) WriteVarInt(v uint64) {
	switch {
	case v < 0xfd:
		w.WriteByte(byte(v))
	case v <= 0xffff:
		w.WriteByte(0xfd)
		w.WriteUint16LE(uint16(v))
	case v <= 0xffffffff:
		w.WriteByte(0xfe)
		w.WriteUint32LE(uint32(v))
	default:
		w.WriteByte(0xff)
		w.WriteUint64LE(v)
	}
}

// WriteVarBytes appends a var-int length prefix followed by b.
func (w *Writer) WriteVarBytes(b []byte) {
	w.WriteVarInt(uint64(len(b)))
	w.WriteFixed(b)
}

// WriteVarHashArray appends a var-int count followed by each hash.
func (w *Writer) WriteVarHashArray(hs []hash256.Hash256) {
	w.WriteVarInt(uint64(len(hs)))
	for _, h := range hs {
		w.WriteHash256(h)
	}
}
