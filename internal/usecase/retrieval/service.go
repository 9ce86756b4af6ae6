// Package retrieval implements the lexical retrieval and ranking pipeline:
// hard filters, BM25 scoring with soft bonuses, fuzzy de-duplication, and
// top-k selection.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cardwise/cardwise/internal/domain/card"
	"github.com/cardwise/cardwise/internal/domain/search/candidate"
	"github.com/cardwise/cardwise/internal/domain/search/query"
	"github.com/cardwise/cardwise/internal/lexical"
	"github.com/cardwise/cardwise/internal/logger"
)

// indexKind qualifies cache keys so future index flavors (e.g. a dense
// vector index) can coexist under the same dataset identity.
const indexKind = "bm25"

// Service is the retrieval façade. It owns no mutable state beyond the
// injected cache; concurrent searches share snapshots read-only.
type Service struct {
	source DatasetSource
	cache  *Cache

	searchDuration prometheus.Observer
	resultsCount   prometheus.Observer
}

// New creates a retrieval service over the given dataset source and cache.
func New(source DatasetSource, cache *Cache) *Service {
	return &Service{source: source, cache: cache}
}

// WithMetrics attaches search latency and result-size observers.
func (s *Service) WithMetrics(searchDuration, resultsCount prometheus.Observer) *Service {
	s.searchDuration = searchDuration
	s.resultsCount = resultsCount
	return s
}

// Search runs the full pipeline: filter → scoped BM25 scoring with keyword
// and bank bonuses → stable score sort → fuzzy de-duplication → top-k.
// An empty dataset yields an empty result, never an error. Results are
// deterministic for a fixed dataset and fixed parameters.
func (s *Service) Search(ctx context.Context, p query.Params) ([]card.Record, error) {
	start := time.Now()

	snap, err := s.snapshot(false)
	if err != nil {
		return nil, err
	}
	if snap.Empty() {
		return nil, nil
	}

	records := snap.Records()
	pool := filterPool(records, &p)
	if len(pool) == 0 {
		// Fee/category constraints emptied the pool; still surface the
		// best unfiltered candidates rather than nothing.
		pool = make([]int, len(records))
		for i := range records {
			pool[i] = i
		}
	}

	// Score against an index scoped to the filtered pool: ranking is
	// relative to the current candidate set, not global corpus statistics.
	// When nothing was filtered out the cached corpus index is identical,
	// so reuse it.
	var ix *lexical.Index
	if len(pool) == len(records) {
		ix = snap.Index()
	} else {
		docs := make([][]string, len(pool))
		for i, pos := range pool {
			docs[i] = lexical.Tokenize(records[pos].Document())
		}
		ix = lexical.Build(docs)
	}

	scores := ix.Scores(lexical.Tokenize(p.Text()))
	queryLower := strings.ToLower(p.Text())

	cands := make([]candidate.Candidate, len(pool))
	for i, pos := range pool {
		rec := records[pos]
		score := scores[i] + keywordBonus(queryLower, rec) + bankBonus(p.Bank(), rec)
		cands[i] = candidate.New(rec, score, pos)
	}
	candidate.SortByScore(cands)

	kept := dedupe(cands, p.TopK())
	if len(kept) > p.TopK() {
		kept = kept[:p.TopK()]
	}

	out := make([]card.Record, len(kept))
	for i := range kept {
		out[i] = kept[i].Record()
	}

	logger.FromContext(ctx).Debug("search completed",
		zap.Int("pool", len(pool)),
		zap.Int("results", len(out)),
		zap.Duration("took", time.Since(start)),
	)
	if s.searchDuration != nil {
		s.searchDuration.Observe(time.Since(start).Seconds())
	}
	if s.resultsCount != nil {
		s.resultsCount.Observe(float64(len(out)))
	}
	return out, nil
}

// Reindex forces a rebuild of the snapshot for the current dataset
// identity, replacing any cached entry.
func (s *Service) Reindex(ctx context.Context) error {
	snap, err := s.snapshot(true)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info("dataset re-indexed",
		zap.String("identity", s.source.Identity()),
		zap.Int("rows", len(snap.Records())),
	)
	return nil
}

// Rows returns the number of rows in the current dataset.
func (s *Service) Rows(context.Context) (int, error) {
	snap, err := s.snapshot(false)
	if err != nil {
		return 0, err
	}
	return len(snap.Records()), nil
}

func (s *Service) snapshot(force bool) (*Snapshot, error) {
	key := s.source.Identity() + "::" + indexKind
	return s.cache.GetOrBuild(key, force, func() (*Snapshot, error) {
		records, err := s.source.Load()
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		return NewSnapshot(records), nil
	})
}
