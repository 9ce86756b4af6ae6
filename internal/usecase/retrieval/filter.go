package retrieval

import (
	"strings"

	"github.com/cardwise/cardwise/internal/domain/card"
	"github.com/cardwise/cardwise/internal/domain/search/query"
)

// filterPool applies the hard constraints in order and returns the surviving
// row positions. The bank filter is fail-soft: zero matches make it a no-op
// so a misspelled or absent bank never empties the pool on its own. Fee and
// category are authoritative business constraints whose empty results
// propagate; the caller handles the final empty-pool fallback.
func filterPool(records []card.Record, p *query.Params) []int {
	pool := make([]int, len(records))
	for i := range records {
		pool[i] = i
	}

	if p.HasBank() {
		bank := strings.ToLower(p.Bank())
		strict := pool[:0:0]
		for _, pos := range pool {
			if strings.Contains(strings.ToLower(records[pos].BankName), bank) {
				strict = append(strict, pos)
			}
		}
		if len(strict) > 0 {
			pool = strict
		}
	}

	if maxFee := p.MaxFee(); maxFee != nil {
		kept := pool[:0:0]
		for _, pos := range pool {
			// Non-numeric fees are unbounded: excluded from capped queries.
			if fee, ok := records[pos].Fee(); ok && fee <= *maxFee {
				kept = append(kept, pos)
			}
		}
		pool = kept
	}

	if cats := p.Categories(); len(cats) > 0 {
		lowered := make([]string, len(cats))
		for i, c := range cats {
			lowered[i] = strings.ToLower(c)
		}
		kept := pool[:0:0]
		for _, pos := range pool {
			blob := records[pos].CategoryText()
			for _, c := range lowered {
				if strings.Contains(blob, c) {
					kept = append(kept, pos)
					break
				}
			}
		}
		pool = kept
	}

	return pool
}
