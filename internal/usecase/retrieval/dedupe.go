package retrieval

import (
	"github.com/cardwise/cardwise/internal/domain/search/candidate"
	"github.com/cardwise/cardwise/internal/lexical"
)

const (
	// similarityThreshold is the partial-ratio score (0–100) at or above
	// which two card names count as the same card.
	similarityThreshold = 92
	// minPoolSize bounds the dedupe working pool from below.
	minPoolSize = 12
)

// dedupe walks score-ordered candidates and drops near-duplicates by fuzzy
// card-name similarity, keeping the higher-scored variant. It stops once a
// working pool of max(2*topK, minPoolSize) distinct candidates has been
// accumulated, bounding cost on large datasets.
func dedupe(cands []candidate.Candidate, topK int) []candidate.Candidate {
	limit := 2 * topK
	if limit < minPoolSize {
		limit = minPoolSize
	}

	seen := make([]string, 0, limit)
	kept := make([]candidate.Candidate, 0, limit)
	for i := range cands {
		name := cands[i].Record().NormalizedName()
		dup := false
		for _, s := range seen {
			if lexical.PartialRatio(name, s) >= similarityThreshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, name)
		kept = append(kept, cands[i])
		if len(kept) >= limit {
			break
		}
	}
	return kept
}
