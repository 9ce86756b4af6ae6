// Package candidate defines the scored rows flowing through one query evaluation.
package candidate

import (
	"sort"

	"github.com/cardwise/cardwise/internal/domain/card"
)

// Candidate is a (record, score) pair, valid only within a single query
// evaluation. position is the row's index in the source dataset and breaks
// score ties so results stay deterministic.
type Candidate struct {
	record   card.Record
	score    float64
	position int
}

// New creates a scored candidate.
func New(record card.Record, score float64, position int) Candidate {
	return Candidate{record: record, score: score, position: position}
}

// Record returns the underlying dataset row.
func (c *Candidate) Record() card.Record { return c.record }

// Score returns the fused relevance score.
func (c *Candidate) Score() float64 { return c.score }

// Position returns the row's original dataset index.
func (c *Candidate) Position() int { return c.position }

// SortByScore orders candidates by score descending, ties by original
// dataset position ascending.
func SortByScore(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].position < cands[j].position
	})
}
