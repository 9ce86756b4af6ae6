// Package dataset loads the tabular card dataset from CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/cardwise/cardwise/internal/domain"
	"github.com/cardwise/cardwise/internal/domain/card"
)

// Repository reads card records from a CSV file. The file path doubles as
// the dataset identity used by the index cache, so swapping the path (a
// fresh upload) naturally invalidates downstream indexes.
type Repository struct {
	mu   sync.RWMutex
	path string
}

// New creates a dataset repository for the given CSV path.
func New(path string) *Repository {
	return &Repository{path: path}
}

// Identity returns the stable key distinguishing this dataset version.
func (r *Repository) Identity() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.path
}

// Swap replaces the dataset path. The caller is expected to force a
// re-index afterwards.
func (r *Repository) Swap(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
}

// Load parses the CSV into normalized records. A missing file yields an
// empty dataset, not an error. Column headers are resolved through the
// canonical schema mapping; unknown columns are ignored and missing cells
// become empty strings.
func (r *Repository) Load() ([]card.Record, error) {
	path := r.Identity()
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(src io.Reader) ([]card.Record, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrInvalidDataset, err)
	}

	// Column index -> canonical field name.
	columns := make(map[int]string, len(header))
	for i, h := range header {
		if name, ok := card.CanonicalColumn(h); ok {
			columns[i] = name
		}
	}

	var records []card.Record
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: read row: %w", domain.ErrInvalidDataset, err)
		}
		fields := make(map[string]string, len(columns))
		for i, name := range columns {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		records = append(records, card.FromRow(fields))
	}
	return records, nil
}
