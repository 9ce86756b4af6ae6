package lexical

import "testing"

func TestBuild_EmptyCorpus(t *testing.T) {
	ix := Build(nil)
	if ix.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", ix.Len())
	}
	scores := ix.Scores([]string{"cashback"})
	if len(scores) != 0 {
		t.Errorf("Scores() on empty index returned %d entries", len(scores))
	}
}

func TestScores_RanksMatchingDocHigher(t *testing.T) {
	docs := [][]string{
		Tokenize("cashback rewards on online shopping"),
		Tokenize("airport lounge access and travel insurance"),
		Tokenize("fuel surcharge waiver"),
	}
	ix := Build(docs)

	scores := ix.Scores(Tokenize("travel lounge"))
	if len(scores) != 3 {
		t.Fatalf("got %d scores", len(scores))
	}
	if !(scores[1] > scores[0] && scores[1] > scores[2]) {
		t.Errorf("lounge/travel doc not ranked highest: %v", scores)
	}
}

func TestScores_UnknownTermsContributeZero(t *testing.T) {
	ix := Build([][]string{Tokenize("cashback card"), Tokenize("travel card")})
	scores := ix.Scores([]string{"cryptocurrency"})
	for i, s := range scores {
		if s != 0 {
			t.Errorf("scores[%d] = %f, want 0", i, s)
		}
	}
}

func TestScores_CommonTermFloored(t *testing.T) {
	// "card" appears in every document; its Okapi IDF is negative and must
	// be floored to epsilon times the corpus-average IDF. Five docs with
	// four rare terms keep that average positive, so the floored score is
	// a small positive amount.
	ix := Build([][]string{
		Tokenize("cashback card"),
		Tokenize("travel card"),
		Tokenize("fuel card"),
		Tokenize("shopping card"),
		Tokenize("dining card"),
	})
	scores := ix.Scores([]string{"card"})
	for i, s := range scores {
		if s <= 0 {
			t.Errorf("scores[%d] = %f, want > 0", i, s)
		}
	}
}

func TestScores_FloorTracksAverageIDF(t *testing.T) {
	// With a mostly-common vocabulary the corpus-average IDF is negative
	// and the floor follows it below zero, matching the Okapi variant.
	ix := Build([][]string{
		Tokenize("cashback card"),
		Tokenize("travel card"),
		Tokenize("fuel card"),
	})
	scores := ix.Scores([]string{"card"})
	for i, s := range scores {
		if s >= 0 {
			t.Errorf("scores[%d] = %f, want < 0", i, s)
		}
	}
}

func TestScores_Deterministic(t *testing.T) {
	docs := [][]string{
		Tokenize("cashback rewards"),
		Tokenize("travel lounge rewards"),
	}
	q := Tokenize("rewards lounge")

	first := Build(docs).Scores(q)
	for i := 0; i < 10; i++ {
		got := Build(docs).Scores(q)
		for j := range first {
			if got[j] != first[j] {
				t.Fatalf("run %d: scores[%d] = %f, want %f", i, j, got[j], first[j])
			}
		}
	}
}
