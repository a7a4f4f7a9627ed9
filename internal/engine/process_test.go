package engine

import (
	"testing"

	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
	"github.com/dashpay/mnlist-engine/internal/provider"
	"github.com/dashpay/mnlist-engine/testutil"
)

func blockHash(seed byte) hash256.Hash256 {
	return hash256.SHA256D([]byte{'b', 'l', 'o', 'c', 'k', seed})
}

// TestProcessMNListDiffEmptyBaseDiff covers spec §8 scenario 1: applying a
// diff against the empty base list should produce a fully valid result.
func TestProcessMNListDiffEmptyBaseDiff(t *testing.T) {
	p := provider.NewMemoryProvider()
	p.Lists[hash256.Zero] = model.NewEmptyMasternodeList()

	tip := blockHash(1)
	entries := []*model.MasternodeEntry{
		testutil.SampleMasternodeEntry(1, 10),
		testutil.SampleMasternodeEntry(2, 10),
	}

	expectedList := testutil.SampleMasternodeList(tip, 10, 0)
	for _, e := range entries {
		expectedList.Masternodes[e.ProRegTxHash.Reversed()] = e
	}
	mnRoot := masternodeMerkleRoot(expectedList)

	coinbaseHash := hash256.SHA256D([]byte{0x01, 0xfe, 0xed, 0xfa, 0xce})
	total, hashes, flags := testutil.SingleTxMerkleProof(coinbaseHash)
	p.MerkleRoots[tip] = coinbaseHash

	diff := &model.MNListDiff{
		BaseBlockHash:              hash256.Zero,
		BlockHash:                  tip,
		BlockHeight:                10,
		TotalTransactions:          uint32(total),
		MerkleHashes:               hashes,
		MerkleFlags:                flags,
		CoinbaseTransaction:        testutil.SampleCoinbaseTransaction(1, mnRoot, nil, 0x01),
		AddedOrModifiedMasternodes: entries,
	}

	proc := New(p)
	result, err := proc.ProcessMNListDiff(diff, true, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid() {
		t.Fatalf("expected valid result, got %+v", result)
	}
	if len(result.AddedMasternodes) != 2 {
		t.Fatalf("expected 2 added masternodes, got %d", len(result.AddedMasternodes))
	}
	if len(result.ModifiedMasternodes) != 0 {
		t.Fatalf("expected 0 modified masternodes, got %d", len(result.ModifiedMasternodes))
	}
	if len(result.NeededMasternodeLists) != 0 {
		t.Fatalf("expected no needed ancestor lists, got %v", result.NeededMasternodeLists)
	}
}

// TestProcessMNListDiffDeleteThenAdd covers spec §8 scenario 2: a second
// diff that deletes one entry from the base and adds a new one.
func TestProcessMNListDiffDeleteThenAdd(t *testing.T) {
	p := provider.NewMemoryProvider()

	base := blockHash(2)
	baseList := testutil.SampleMasternodeList(base, 10, 2) // entries seeded 1,2
	p.Lists[base] = baseList

	deletedEntry := testutil.SampleMasternodeEntry(1, 10)
	addedEntry := testutil.SampleMasternodeEntry(3, 20)

	tip := blockHash(3)
	remaining := testutil.SampleMasternodeList(tip, 20, 0)
	for k, v := range baseList.Masternodes {
		if k == deletedEntry.ProRegTxHash.Reversed() {
			continue
		}
		remaining.Masternodes[k] = v
	}
	remaining.Masternodes[addedEntry.ProRegTxHash.Reversed()] = addedEntry
	mnRoot := masternodeMerkleRoot(remaining)

	coinbaseHash := hash256.SHA256D([]byte{0x02, 0xfe, 0xed, 0xfa, 0xce})
	total, hashes, flags := testutil.SingleTxMerkleProof(coinbaseHash)
	p.MerkleRoots[tip] = coinbaseHash

	diff := &model.MNListDiff{
		BaseBlockHash:              base,
		BlockHash:                  tip,
		BlockHeight:                20,
		TotalTransactions:          uint32(total),
		MerkleHashes:               hashes,
		MerkleFlags:                flags,
		CoinbaseTransaction:        testutil.SampleCoinbaseTransaction(1, mnRoot, nil, 0x02),
		DeletedMasternodeHashes:    []hash256.Hash256{deletedEntry.ProRegTxHash},
		AddedOrModifiedMasternodes: []*model.MasternodeEntry{addedEntry},
	}

	proc := New(p)
	result, err := proc.ProcessMNListDiff(diff, true, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid() {
		t.Fatalf("expected valid result, got %+v", result)
	}
	if _, stillPresent := result.MasternodeList.Masternodes[deletedEntry.ProRegTxHash.Reversed()]; stillPresent {
		t.Fatal("expected deleted entry to be gone from the resulting list")
	}
	if len(result.AddedMasternodes) != 1 {
		t.Fatalf("expected 1 added masternode, got %d", len(result.AddedMasternodes))
	}
}

// TestProcessMNListDiffMerkleRootMismatch covers spec §8 scenario 3: a
// coinbase committing to the wrong masternode-list root should surface as
// has_valid_mn_list_root == false without aborting the call.
func TestProcessMNListDiffMerkleRootMismatch(t *testing.T) {
	p := provider.NewMemoryProvider()
	p.Lists[hash256.Zero] = model.NewEmptyMasternodeList()

	tip := blockHash(4)
	entries := []*model.MasternodeEntry{testutil.SampleMasternodeEntry(1, 5)}

	coinbaseHash := hash256.SHA256D([]byte{0x03, 0xfe, 0xed, 0xfa, 0xce})
	total, hashes, flags := testutil.SingleTxMerkleProof(coinbaseHash)
	p.MerkleRoots[tip] = coinbaseHash

	wrongRoot := hash256.SHA256D([]byte("not the real root"))
	diff := &model.MNListDiff{
		BaseBlockHash:              hash256.Zero,
		BlockHash:                  tip,
		BlockHeight:                5,
		TotalTransactions:          uint32(total),
		MerkleHashes:               hashes,
		MerkleFlags:                flags,
		CoinbaseTransaction:        testutil.SampleCoinbaseTransaction(1, wrongRoot, nil, 0x03),
		AddedOrModifiedMasternodes: entries,
	}

	proc := New(p)
	result, err := proc.ProcessMNListDiff(diff, true, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasValidMNListRoot {
		t.Fatal("expected has_valid_mn_list_root to be false for a mismatched root")
	}
	if result.IsValid() {
		t.Fatal("expected an overall invalid result")
	}
	if !result.HasFoundCoinbase || !result.HasValidCoinbase {
		t.Fatal("expected the coinbase-location checks to still pass independently")
	}
}

// TestProcessMNListDiffMissingAncestor covers spec §8 scenario 5: a diff
// whose base block hash names a list the provider has never seen should
// come back with that hash recorded in needed_masternode_lists and an
// invalid result, not an error.
func TestProcessMNListDiffMissingAncestor(t *testing.T) {
	p := provider.NewMemoryProvider()

	base := blockHash(5)
	tip := blockHash(6)

	diff := &model.MNListDiff{
		BaseBlockHash:       base,
		BlockHash:           tip,
		BlockHeight:         1,
		CoinbaseTransaction: testutil.SampleCoinbaseTransaction(1, hash256.Hash256{}, nil, 0x04),
	}

	proc := New(p)
	result, err := proc.ProcessMNListDiff(diff, true, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid() {
		t.Fatal("expected an invalid result for a missing ancestor")
	}
	if len(result.NeededMasternodeLists) != 1 || result.NeededMasternodeLists[0] != base {
		t.Fatalf("expected needed_masternode_lists = [base], got %v", result.NeededMasternodeLists)
	}
}

// TestProcessMNListDiffOutOfRange covers spec §7's OutOfRange error: the
// provider rejecting the (base, tip) range aborts the call with an error
// rather than returning a Result.
func TestProcessMNListDiffOutOfRange(t *testing.T) {
	p := provider.NewMemoryProvider()
	p.RangeErr = provider.ErrOutOfRange

	diff := &model.MNListDiff{
		BaseBlockHash: blockHash(7),
		BlockHash:     blockHash(8),
	}

	proc := New(p)
	_, err := proc.ProcessMNListDiff(diff, true, false, false)
	if err == nil {
		t.Fatal("expected an OutOfRangeError")
	}
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Fatalf("expected *OutOfRangeError, got %T", err)
	}
}

// buildStepDiff builds one valid MN-ListDiff in a chain: base (with its
// already-known masternode list) gains one new entry at tip/height. Used
// to assemble the five-diff bundle ProcessQRInfo expects.
func buildStepDiff(baseHash hash256.Hash256, baseList *model.MasternodeList, tipHash hash256.Hash256, height uint32, seed byte, p *provider.MemoryProvider) (*model.MNListDiff, *model.MasternodeList) {
	entry := testutil.SampleMasternodeEntry(seed, height)
	expected := testutil.SampleMasternodeList(tipHash, height, 0)
	for k, v := range baseList.Masternodes {
		expected.Masternodes[k] = v
	}
	expected.Masternodes[entry.ProRegTxHash.Reversed()] = entry
	mnRoot := masternodeMerkleRoot(expected)

	coinbaseHash := hash256.SHA256D([]byte{seed, 0xfe, 0xed, 0xfa, 0xce})
	total, hashes, flags := testutil.SingleTxMerkleProof(coinbaseHash)
	p.MerkleRoots[tipHash] = coinbaseHash

	diff := &model.MNListDiff{
		BaseBlockHash:              baseHash,
		BlockHash:                  tipHash,
		BlockHeight:                height,
		TotalTransactions:          uint32(total),
		MerkleHashes:               hashes,
		MerkleFlags:                flags,
		CoinbaseTransaction:        testutil.SampleCoinbaseTransaction(1, mnRoot, nil, seed),
		AddedOrModifiedMasternodes: []*model.MasternodeEntry{entry},
	}
	return diff, expected
}

// TestProcessQRInfoChainsCycleDiffsAndSeedsSnapshots covers the QR-Info
// bundle pathway (spec §4.1, §4.2): four cycle-ancestor diffs must be
// applied in order before the tip diff, and each named cycle snapshot must
// land in both the provider and the cache keyed by its diff's block hash.
func TestProcessQRInfoChainsCycleDiffsAndSeedsSnapshots(t *testing.T) {
	p := provider.NewMemoryProvider()
	p.Lists[hash256.Zero] = model.NewEmptyMasternodeList()

	h3cHash := blockHash(20)
	diffH3C, listH3C := buildStepDiff(hash256.Zero, model.NewEmptyMasternodeList(), h3cHash, 10, 0x20, p)
	h2cHash := blockHash(21)
	diffH2C, listH2C := buildStepDiff(h3cHash, listH3C, h2cHash, 11, 0x21, p)
	hcHash := blockHash(22)
	diffHC, listHC := buildStepDiff(h2cHash, listH2C, hcHash, 12, 0x22, p)
	hHash := blockHash(23)
	diffH, listH := buildStepDiff(hcHash, listHC, hHash, 13, 0x23, p)
	tipHash := blockHash(24)
	diffTip, _ := buildStepDiff(hHash, listH, tipHash, 14, 0x24, p)

	snapC := &model.LLMQSnapshot{Mode: model.SkipListModeNoSkipping}
	snap2C := &model.LLMQSnapshot{Mode: model.SkipListModeNoSkipping}
	snap3C := &model.LLMQSnapshot{Mode: model.SkipListModeNoSkipping}

	info := &model.QRInfo{
		SnapshotAtHMinusC:  snapC,
		SnapshotAtHMinus2C: snap2C,
		SnapshotAtHMinus3C: snap3C,
		DiffHC:             diffHC,
		DiffH2C:            diffH2C,
		DiffH3C:            diffH3C,
		DiffH:              diffH,
		DiffTip:            diffTip,
	}

	proc := New(p)
	result, err := proc.ProcessQRInfo(info, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid() {
		t.Fatalf("expected a valid tip result, got %+v", result.Result)
	}
	if len(result.MasternodeList.Masternodes) != 5 {
		t.Fatalf("expected 5 accumulated masternodes, got %d", len(result.MasternodeList.Masternodes))
	}
	if p.Snapshots[hcHash] != snapC || p.Snapshots[h2cHash] != snap2C || p.Snapshots[h3cHash] != snap3C {
		t.Fatal("expected the cycle snapshots to be saved keyed by their diff's block hash")
	}
}
