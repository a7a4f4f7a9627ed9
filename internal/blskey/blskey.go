// Package blskey wraps supranational/blst for the BLS12-381 public keys
// and signatures carried by masternodes and LLMQ entries (spec §3, §4.3.3):
// 48-byte compressed G1 public keys and 96-byte compressed G2 signatures.
package blskey

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

// Scheme selects which BLS serialization/signing convention a key or
// signature uses, per the wire "version" tag on operator_public_key and
// LLMQEntry.version (spec §3).
type Scheme uint8

const (
	// SchemeLegacy is the pre-DIP-0024 scheme (version tag 1). Dash's
	// legacy scheme serializes G1/G2 points byte-reversed relative to the
	// IETF-standard compressed form blst expects natively.
	SchemeLegacy Scheme = 1
	// SchemeBasic is the modern scheme (version tag 2), using standard
	// compressed serialization directly.
	SchemeBasic Scheme = 2
)

// dstBasic and dstLegacy are the domain separation tags for signature
// verification, selected by dstFor. Distinct
// per scheme so a legacy-scheme signature can never be replayed as a
// basic-scheme one or vice versa.
var dstBasic = []byte("DASH_BASIC_BLS_SIG_G2_XMD:SHA-256_SSWU_RO_NUL_")
var dstLegacy = []byte("DASH_LEGACY_BLS_SIG_G2_XMD:SHA-256_SSWU_RO_NUL_")

func dstFor(s Scheme) []byte {
	if s == SchemeLegacy {
		return dstLegacy
	}
	return dstBasic
}

// ErrInvalidKey is returned when a public key or signature fails to
// deserialize or fails subgroup/infinity checks.
var ErrInvalidKey = errors.New("blskey: invalid point encoding")

// PublicKey is a 48-byte compressed G1 point plus the scheme it was
// encoded under.
type PublicKey struct {
	Raw    [48]byte
	Scheme Scheme
}

// Signature is a 96-byte compressed G2 point plus the scheme it was
// encoded under.
type Signature struct {
	Raw    [96]byte
	Scheme Scheme
}

// reverseBytes returns a reversed copy of b (legacy scheme's non-standard
// byte order).
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func (pk PublicKey) decode() (*blst.P1Affine, error) {
	raw := pk.Raw[:]
	if pk.Scheme == SchemeLegacy {
		raw = reverseBytes(raw)
	}
	p := new(blst.P1Affine)
	if p.Deserialize(raw) == nil {
		return nil, ErrInvalidKey
	}
	if !p.KeyValidate() {
		return nil, ErrInvalidKey
	}
	return p, nil
}

func (sig Signature) decode() (*blst.P2Affine, error) {
	raw := sig.Raw[:]
	if sig.Scheme == SchemeLegacy {
		raw = reverseBytes(raw)
	}
	p := new(blst.P2Affine)
	if p.Deserialize(raw) == nil {
		return nil, ErrInvalidKey
	}
	return p, nil
}

// Verify checks a single signature against a single public key and
// message.
func Verify(pk PublicKey, msg []byte, sig Signature) (bool, error) {
	p, err := pk.decode()
	if err != nil {
		return false, err
	}
	s, err := sig.decode()
	if err != nil {
		return false, err
	}
	return s.Verify(true, p, true, msg, dstFor(pk.Scheme)), nil
}

// VerifyAggregate checks that sig is a valid aggregate of every member of
// pks signing the same msg — used to verify LLMQEntry.AllCommitmentAggSig
// against the operator keys of the quorum members selected by
// signers_bitset (spec §4.3.3c).
func VerifyAggregate(pks []PublicKey, msg []byte, sig Signature, scheme Scheme) (bool, error) {
	if len(pks) == 0 {
		return false, errors.New("blskey: no public keys to aggregate")
	}
	decoded := make([]*blst.P1Affine, 0, len(pks))
	for _, pk := range pks {
		p, err := pk.decode()
		if err != nil {
			return false, err
		}
		decoded = append(decoded, p)
	}
	s, err := sig.decode()
	if err != nil {
		return false, err
	}
	return s.FastAggregateVerify(true, decoded, msg, dstFor(scheme)), nil
}

// UseBLSBasic reports whether a version tag selects the basic scheme.
func UseBLSBasic(version uint8) bool { return Scheme(version) == SchemeBasic }

// UseBLSLegacy reports whether a version tag selects the legacy scheme.
func UseBLSLegacy(version uint8) bool { return Scheme(version) == SchemeLegacy }
