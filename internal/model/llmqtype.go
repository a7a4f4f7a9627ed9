package model

// LLMQType enumerates the quorum activation sizes a chain can configure
// (spec §3).
type LLMQType uint8

const (
	LLMQType50_60  LLMQType = 1 // 50 members, 30 (60%) threshold
	LLMQType400_60 LLMQType = 2 // 400 members, 240 (60%) threshold
	LLMQType400_85 LLMQType = 3 // 400 members, 340 (85%) threshold
	LLMQType100_67 LLMQType = 4 // 100 members, 67% threshold — platform quorums
	LLMQType60_75  LLMQType = 5 // 60 members, 75% threshold — rotated (DIP-0024)
	LLMQType25_67  LLMQType = 6 // 25 members, 67% threshold — experimental (spec §9 open question)
)

// Params describes a quorum type's fixed size and signing threshold.
// QuorumCount is only meaningful for rotated (DIP-0024) types: the number
// of quorums formed per cycle, each built from quorum_size/4 members
// drawn from four consecutive cycles (spec §4.3.2).
type Params struct {
	Size        int
	Threshold   int
	DKGInterval uint32
	QuorumCount int
}

var paramsTable = map[LLMQType]Params{
	LLMQType50_60:  {Size: 50, Threshold: 30, DKGInterval: 24, QuorumCount: 1},
	LLMQType400_60: {Size: 400, Threshold: 240, DKGInterval: 575, QuorumCount: 1},
	LLMQType400_85: {Size: 400, Threshold: 340, DKGInterval: 575, QuorumCount: 1},
	LLMQType100_67: {Size: 100, Threshold: 67, DKGInterval: 24, QuorumCount: 1},
	LLMQType60_75:  {Size: 60, Threshold: 45, DKGInterval: 288, QuorumCount: 4},
	LLMQType25_67:  {Size: 25, Threshold: 17, DKGInterval: 288, QuorumCount: 4},
}

// ParamsFor returns the fixed size/threshold/DKG-interval for t. The
// second return value is false for an unrecognized type.
func ParamsFor(t LLMQType) (Params, bool) {
	p, ok := paramsTable[t]
	return p, ok
}

// LLMQVersion is the wire "version" tag on an LLMQEntry: it jointly encodes
// the BLS scheme (legacy vs basic) and whether the quorum rotates
// (DIP-0024) (spec §3).
type LLMQVersion uint16

const (
	LLMQVersionLegacy        LLMQVersion = 1
	LLMQVersionBasic         LLMQVersion = 2
	LLMQVersionLegacyRotated LLMQVersion = 3
	LLMQVersionBasicRotated  LLMQVersion = 4
)

// UseBLSBasic reports whether this version uses the basic BLS scheme.
func (v LLMQVersion) UseBLSBasic() bool {
	return v == LLMQVersionBasic || v == LLMQVersionBasicRotated
}

// UseBLSLegacy reports whether this version uses the legacy BLS scheme.
func (v LLMQVersion) UseBLSLegacy() bool {
	return v == LLMQVersionLegacy || v == LLMQVersionLegacyRotated
}

// IsRotated reports whether this version is a DIP-0024 rotated quorum.
func (v LLMQVersion) IsRotated() bool {
	return v == LLMQVersionLegacyRotated || v == LLMQVersionBasicRotated
}

// MNType distinguishes regular masternodes from the higher-spec
// "HighPerformance" tier eligible for platform quorums (spec §3).
type MNType uint16

const (
	MNTypeRegular        MNType = 0
	MNTypeHighPerformance MNType = 1
)
