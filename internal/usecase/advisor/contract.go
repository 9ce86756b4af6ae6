package advisor

import (
	"context"

	"github.com/cardwise/cardwise/internal/domain/card"
	"github.com/cardwise/cardwise/internal/domain/search/query"
)

// Retriever ranks dataset cards for a query.
type Retriever interface {
	Search(ctx context.Context, params query.Params) ([]card.Record, error)
}
