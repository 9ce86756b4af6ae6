package retrieval

import "github.com/cardwise/cardwise/internal/domain/card"

// DatasetSource supplies the raw dataset and its identity.
type DatasetSource interface {
	// Identity is a stable key distinguishing one loaded dataset version
	// from another; it scopes index cache entries.
	Identity() string
	// Load reads all records. A missing dataset yields an empty slice,
	// not an error.
	Load() ([]card.Record, error)
}
