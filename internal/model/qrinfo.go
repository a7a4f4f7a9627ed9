package model

// QRInfo is a decoded "quorum rotation info" bundle (spec §3, §4.1).
type QRInfo struct {
	SnapshotAtHMinusC  *LLMQSnapshot
	SnapshotAtHMinus2C *LLMQSnapshot
	SnapshotAtHMinus3C *LLMQSnapshot

	DiffTip  *MNListDiff
	DiffH    *MNListDiff
	DiffHC   *MNListDiff
	DiffH2C  *MNListDiff
	DiffH3C  *MNListDiff

	ExtraShare         bool
	SnapshotAtHMinus4C *LLMQSnapshot // present iff ExtraShare
	DiffH4C            *MNListDiff   // present iff ExtraShare

	LastQuorumPerIndex []*LLMQEntry
	QuorumSnapshotList []*LLMQSnapshot
	MNListDiffList     []*MNListDiff
}
