package quorum

import (
	"testing"

	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

type fakeChainPolicy struct {
	platform model.LLMQType
	isd      model.LLMQType
	process  map[model.LLMQType]bool
}

func (f *fakeChainPolicy) PlatformType() model.LLMQType { return f.platform }
func (f *fakeChainPolicy) ISDLLMQType() model.LLMQType  { return f.isd }
func (f *fakeChainPolicy) ShouldProcessLLMQOfType(t model.LLMQType) bool {
	if f.process == nil {
		return true
	}
	return f.process[t]
}

func TestSelectNonRotatedReturnsMinQuorumSizeCandidates(t *testing.T) {
	mod := hash256.SHA256D([]byte("modifier"))
	candidates := make([]*model.MasternodeEntry, 0, 6)
	for i := byte(1); i <= 6; i++ {
		candidates = append(candidates, testEntry(i, 10))
	}

	selected := SelectNonRotated(candidates, model.LLMQType50_60, model.LLMQVersionBasic, mod, 10, 4, nil)
	if len(selected) != 4 {
		t.Fatalf("expected top 4 candidates, got %d", len(selected))
	}

	// Fewer candidates than quorum_size: expect min(quorum_size, scored).
	few := candidates[:2]
	selected = SelectNonRotated(few, model.LLMQType50_60, model.LLMQVersionBasic, mod, 10, 4, nil)
	if len(selected) != 2 {
		t.Fatalf("expected all %d candidates when fewer than quorum_size, got %d", 2, len(selected))
	}
}

func TestSelectNonRotatedSortedReversedDescendingAndValid(t *testing.T) {
	mod := hash256.SHA256D([]byte("modifier2"))
	candidates := make([]*model.MasternodeEntry, 0, 8)
	for i := byte(1); i <= 8; i++ {
		candidates = append(candidates, testEntry(i, 10))
	}

	selected := SelectNonRotated(candidates, model.LLMQType50_60, model.LLMQVersionBasic, mod, 10, 5, nil)
	if len(selected) != 5 {
		t.Fatalf("expected 5 selected, got %d", len(selected))
	}
	for _, m := range selected {
		if !m.IsValidAt(10) {
			t.Fatal("every selected entry must be is_valid_at(height)")
		}
	}

	scoredList := scoreCandidates(candidates, mod, 10)
	sortByReversedScoreDescending(scoredList)
	for i, m := range selected {
		if m.ProRegTxHash != scoredList[i].entry.ProRegTxHash {
			t.Fatal("expected selection order to match reversed-score-descending order")
		}
	}
}

func TestSelectNonRotatedPlatformRestrictsToHighPerformance(t *testing.T) {
	mod := hash256.SHA256D([]byte("platform-mod"))
	regular := testEntry(1, 10)
	hp := testEntry(2, 10)
	hp.MNType = model.MNTypeHighPerformance

	chain := &fakeChainPolicy{platform: model.LLMQType100_67}
	selected := SelectNonRotated(
		[]*model.MasternodeEntry{regular, hp},
		model.LLMQType100_67, model.LLMQVersionBasic, mod, 10, 2, chain,
	)
	if len(selected) != 1 || selected[0].ProRegTxHash != hp.ProRegTxHash {
		t.Fatal("expected only the HighPerformance masternode selected for a platform-type quorum")
	}
}

func TestShouldProcessQuorumPolicy(t *testing.T) {
	chain := &fakeChainPolicy{
		isd:     model.LLMQType60_75,
		process: map[model.LLMQType]bool{model.LLMQType50_60: true, model.LLMQType400_60: false},
	}

	if !ShouldProcessQuorum(chain, model.LLMQType60_75, true, true) {
		t.Fatal("expected isd type to process when both flags true")
	}
	if ShouldProcessQuorum(chain, model.LLMQType60_75, true, false) {
		t.Fatal("expected isd type to be skipped when rotated quorums not presented")
	}
	if ShouldProcessQuorum(chain, model.LLMQType400_85, true, true) {
		t.Fatal("expected non-isd type to be skipped in a dip0024/rotated-info path")
	}
	if !ShouldProcessQuorum(chain, model.LLMQType50_60, false, false) {
		t.Fatal("expected non-isd, non-dip0024 type to defer to chain policy (true)")
	}
	if ShouldProcessQuorum(chain, model.LLMQType400_60, false, false) {
		t.Fatal("expected non-isd, non-dip0024 type to defer to chain policy (false)")
	}
}
