package driven

import (
	"context"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// TesisIndex is the vector-search gateway over the precomputed thesis
// embeddings index. Implementations return candidates ordered by ascending
// vector distance (descending similarity) and apply filters as a conjunctive
// constraint; empty filters mean no constraint. Connectivity and query errors
// wrap domain.ErrSearchUnavailable and must propagate to the caller.
type TesisIndex interface {
	// SearchChunks runs a similarity query. minSimilarity discards weak
	// matches at the index; limit caps the candidate pool. A zero-hit search
	// returns an empty slice, not an error.
	SearchChunks(ctx context.Context, queryEmbedding []float32, filters domain.SearchFilters, minSimilarity float64, limit int) ([]domain.TesisChunk, error)

	// GetTesis fetches the full thesis document for citation display.
	// Returns domain.ErrNotFound when the id is unknown.
	GetTesis(ctx context.Context, idTesis int64) (*domain.Tesis, error)

	// HealthCheck verifies the index is reachable
	HealthCheck(ctx context.Context) error
}
