package retrieval

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cardwise/cardwise/internal/domain/card"
	"github.com/cardwise/cardwise/internal/lexical"
)

// Snapshot is one fully built dataset view: the normalized records plus the
// corpus-wide lexical index. Immutable after construction; safe to share
// across concurrent readers.
type Snapshot struct {
	records []card.Record
	index   *lexical.Index
}

// NewSnapshot tokenizes every record's document and builds the corpus index.
func NewSnapshot(records []card.Record) *Snapshot {
	docs := make([][]string, len(records))
	for i := range records {
		docs[i] = lexical.Tokenize(records[i].Document())
	}
	return &Snapshot{records: records, index: lexical.Build(docs)}
}

// Records returns the normalized dataset rows.
func (s *Snapshot) Records() []card.Record { return s.records }

// Index returns the corpus-wide lexical index.
func (s *Snapshot) Index() *lexical.Index { return s.index }

// Empty reports whether the snapshot holds no records.
func (s *Snapshot) Empty() bool { return len(s.records) == 0 }

// Cache maps a dataset identity to its built snapshot so repeated queries
// against the same dataset avoid rebuilding the lexical index. Entries
// persist for the process lifetime; a forced rebuild replaces the entry
// wholesale. Concurrent callers may race to build the same key — each
// installs its own complete snapshot and the last write wins, so readers
// never observe a half-built index.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Snapshot

	cacheTotal *prometheus.CounterVec
	builds     *prometheus.CounterVec
}

// NewCache creates an empty index cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Snapshot)}
}

// WithMetrics attaches cache hit/miss and build counters.
func (c *Cache) WithMetrics(cacheTotal, builds *prometheus.CounterVec) *Cache {
	c.cacheTotal = cacheTotal
	c.builds = builds
	return c
}

// GetOrBuild returns the cached snapshot for key, building and installing a
// fresh one when the entry is absent or force is set. The build runs outside
// the lock.
func (c *Cache) GetOrBuild(key string, force bool, build func() (*Snapshot, error)) (*Snapshot, error) {
	if !force {
		c.mu.RLock()
		snap, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			c.count(c.cacheTotal, "hit")
			return snap, nil
		}
		c.count(c.cacheTotal, "miss")
	}

	snap, err := build()
	if err != nil {
		return nil, err
	}
	if force {
		c.count(c.builds, "forced")
	} else {
		c.count(c.builds, "miss")
	}

	c.mu.Lock()
	c.entries[key] = snap
	c.mu.Unlock()
	return snap, nil
}

func (c *Cache) count(vec *prometheus.CounterVec, label string) {
	if vec != nil {
		vec.WithLabelValues(label).Inc()
	}
}
