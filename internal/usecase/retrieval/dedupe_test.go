package retrieval

import (
	"fmt"
	"testing"

	"github.com/cardwise/cardwise/internal/domain/card"
	"github.com/cardwise/cardwise/internal/domain/search/candidate"
)

func scored(name string, score float64, pos int) candidate.Candidate {
	return candidate.New(card.Record{CardName: name}, score, pos)
}

func TestDedupe_CaseWhitespaceVariants(t *testing.T) {
	cands := []candidate.Candidate{
		scored("SuperSaver Gold", 2.0, 0),
		scored("supersaver gold ", 1.5, 1),
		scored("Millennia", 1.0, 2),
	}

	kept := dedupe(cands, 10)
	if len(kept) != 2 {
		t.Fatalf("kept %d candidates, want 2", len(kept))
	}
	// The higher-scored variant survives.
	if kept[0].Record().CardName != "SuperSaver Gold" {
		t.Errorf("survivor = %q", kept[0].Record().CardName)
	}
	if kept[1].Record().CardName != "Millennia" {
		t.Errorf("second = %q", kept[1].Record().CardName)
	}
}

func TestDedupe_SubstringVariant(t *testing.T) {
	cands := []candidate.Candidate{
		scored("Gold Card", 2.0, 0),
		scored("Gold Card (Co-brand)", 1.5, 1),
	}
	kept := dedupe(cands, 10)
	if len(kept) != 1 || kept[0].Record().CardName != "Gold Card" {
		t.Errorf("kept = %d, want only the higher-scored near-duplicate", len(kept))
	}
}

func TestDedupe_DistinctNamesSurvive(t *testing.T) {
	cands := []candidate.Candidate{
		scored("SimplyCLICK", 3.0, 0),
		scored("Millennia", 2.0, 1),
		scored("Elite", 1.0, 2),
	}
	if kept := dedupe(cands, 10); len(kept) != 3 {
		t.Errorf("kept %d, want 3", len(kept))
	}
}

func TestDedupe_PoolBound(t *testing.T) {
	// Pairwise-distinct names: two-letter prefixes keep every pair below
	// the similarity threshold.
	var cands []candidate.Candidate
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("%c%cq card", rune('a'+i/26), rune('a'+i%26))
		cands = append(cands, scored(name, float64(100-i), i))
	}

	// topK=2 → pool bounded below by minPoolSize.
	if kept := dedupe(cands, 2); len(kept) != minPoolSize {
		t.Errorf("kept %d, want %d for topK=2", len(kept), minPoolSize)
	}
	// topK=20 → pool bounded by 2*topK.
	if kept := dedupe(cands, 20); len(kept) != 40 {
		t.Errorf("kept %d, want 40 for topK=20", len(kept))
	}
}

func TestDedupe_PreservesOrder(t *testing.T) {
	cands := []candidate.Candidate{
		scored("Alpha", 3.0, 0),
		scored("Beta", 2.0, 1),
		scored("Gamma", 1.0, 2),
	}
	kept := dedupe(cands, 10)
	for i := 1; i < len(kept); i++ {
		if kept[i].Score() > kept[i-1].Score() {
			t.Fatalf("order broken at %d", i)
		}
	}
}
