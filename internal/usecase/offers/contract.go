package offers

import (
	"context"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/geo"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/result"
)

// Repository defines the search index contract for offers.
type Repository interface {
	SearchFacets(
		ctx context.Context, text string, facets [][]string,
		near *geo.Circle, limit, offset int,
	) ([]result.Result, int, error)

	SearchKNN(ctx context.Context, vector []float32, k int) ([]result.Result, error)
}

// Embedder vectorizes the query for the semantic fallback.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
