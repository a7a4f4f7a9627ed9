package quorum

import (
	"testing"

	"github.com/dashpay/mnlist-engine/internal/bitset"
	"github.com/dashpay/mnlist-engine/internal/hash256"
	"github.com/dashpay/mnlist-engine/internal/model"
)

func TestOldCycleQuarterNoSkippingDistributesEvenly(t *testing.T) {
	candidates := make([]*model.MasternodeEntry, 0, 8)
	for i := byte(1); i <= 8; i++ {
		candidates = append(candidates, testEntry(i, 10))
	}
	snapshot := &model.LLMQSnapshot{
		MemberBitset: bitset.New(8),
		Mode:         model.SkipListModeNoSkipping,
	}

	quarters, err := OldCycleQuarter(candidates, model.LLMQType60_75, hash256.SHA256D([]byte("work")), 10, snapshot, 2, 4)
	if err != nil {
		t.Fatalf("OldCycleQuarter error: %v", err)
	}
	if len(quarters) != 2 {
		t.Fatalf("expected 2 quarters, got %d", len(quarters))
	}
	total := 0
	seen := make(map[hash256.Hash256]bool)
	for _, q := range quarters {
		if len(q) != 4 {
			t.Fatalf("expected quarter_size 4, got %d", len(q))
		}
		for _, m := range q {
			if seen[m.ProRegTxHash] {
				t.Fatal("expected no duplicate entries across quarters")
			}
			seen[m.ProRegTxHash] = true
			total++
		}
	}
	if total != 8 {
		t.Fatalf("expected all 8 candidates distributed, got %d", total)
	}
}

func TestOldCycleQuarterSkipAllYieldsEmptyQuarters(t *testing.T) {
	candidates := make([]*model.MasternodeEntry, 0, 4)
	for i := byte(1); i <= 4; i++ {
		candidates = append(candidates, testEntry(i, 10))
	}
	snapshot := &model.LLMQSnapshot{
		MemberBitset: bitset.New(4),
		Mode:         model.SkipListModeSkipAll,
	}

	quarters, err := OldCycleQuarter(candidates, model.LLMQType60_75, hash256.SHA256D([]byte("work2")), 10, snapshot, 3, 2)
	if err != nil {
		t.Fatalf("OldCycleQuarter error: %v", err)
	}
	if len(quarters) != 3 {
		t.Fatalf("expected quorum_count empty quarters, got %d", len(quarters))
	}
	for _, q := range quarters {
		if len(q) != 0 {
			t.Fatal("expected every quarter empty under SkipAll")
		}
	}
}

func buildCurrentList(n int) *model.MasternodeList {
	l := model.NewEmptyMasternodeList()
	for i := byte(1); i <= byte(n); i++ {
		e := testEntry(i, 10)
		l.Masternodes[e.ProRegTxHash.Reversed()] = e
	}
	return l
}

func TestNewCycleQuarterFillsRoundRobinWithNoPriorUsage(t *testing.T) {
	currentList := buildCurrentList(8)
	var prior [3]Quarters // no prior usage at all

	quarters, ok := NewCycleQuarter(currentList, prior, model.LLMQType60_75, hash256.SHA256D([]byte("work3")), 10, 2, 4)
	if !ok {
		t.Fatal("expected enough masternodes to fill every quarter")
	}
	seen := make(map[hash256.Hash256]bool)
	for _, q := range quarters {
		if len(q) != 4 {
			t.Fatalf("expected quarter_size 4, got %d", len(q))
		}
		for _, m := range q {
			if seen[m.ProRegTxHash] {
				t.Fatal("expected no duplicate members across quarters")
			}
			seen[m.ProRegTxHash] = true
		}
	}
}

func TestNewCycleQuarterInsufficientMasternodesFails(t *testing.T) {
	currentList := buildCurrentList(3)
	var prior [3]Quarters

	quarters, ok := NewCycleQuarter(currentList, prior, model.LLMQType60_75, hash256.SHA256D([]byte("work4")), 10, 2, 4)
	if ok {
		t.Fatal("expected insufficient masternodes to fail")
	}
	if len(quarters) != 2 {
		t.Fatalf("expected quorum_count empty quarters returned, got %d", len(quarters))
	}
}

func TestNewCycleQuarterSkipsPriorMembersAtSameIndex(t *testing.T) {
	currentList := buildCurrentList(6)
	sorted := currentList.SortedMasternodes()

	// Prior cycle used the first two entries at index 0.
	prior := [3]Quarters{
		{{sorted[0], sorted[1]}},
		nil,
		nil,
	}

	quarters, ok := NewCycleQuarter(currentList, prior, model.LLMQType60_75, hash256.SHA256D([]byte("work5")), 10, 1, 2)
	if !ok {
		t.Fatal("expected a fillable quarter")
	}
	used := make(map[hash256.Hash256]bool)
	for _, m := range quarters[0] {
		used[m.ProRegTxHash] = true
	}
	if used[sorted[0].ProRegTxHash] || used[sorted[1].ProRegTxHash] {
		t.Fatal("expected members already used at this index by a prior cycle to be skipped")
	}
}

func TestAssembleQuorumConcatenatesInCycleOrder(t *testing.T) {
	h3c := Quarters{{testEntry(1, 10)}}
	h2c := Quarters{{testEntry(2, 10)}}
	hc := Quarters{{testEntry(3, 10)}}
	h := Quarters{{testEntry(4, 10)}}

	out := AssembleQuorum(h3c, h2c, hc, h, 0)
	if len(out) != 4 {
		t.Fatalf("expected 4 members, got %d", len(out))
	}
	expectedOrder := []byte{1, 2, 3, 4}
	for i, seed := range expectedOrder {
		if out[i].ProRegTxHash != testEntry(seed, 10).ProRegTxHash {
			t.Fatalf("expected cycle order H-3c,H-2c,H-c,H at position %d", i)
		}
	}
}
