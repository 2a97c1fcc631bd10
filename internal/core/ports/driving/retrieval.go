package driving

import (
	"context"
	"time"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// RetrieveRequest is one retrieval invocation. ConversationID is optional;
// when present, conversation history feeds the rewrite step and the merged
// source set.
type RetrieveRequest struct {
	Query          string                `json:"query"`
	ConversationID string                `json:"conversation_id,omitempty"`
	Filters        domain.SearchFilters  `json:"filters,omitempty"`
	Intent         domain.Intent         `json:"intent,omitempty"` // empty means SEARCH
}

// RetrieveResult is the produced contract: a ranked, capped, deduplicated
// source set plus the rendered context block, identical for both the search
// and the reuse path.
type RetrieveResult struct {
	QueryID        string                 `json:"query_id"`
	Query          string                 `json:"query"`
	RewrittenQuery string                 `json:"rewritten_query,omitempty"`
	UsedContext    bool                   `json:"used_context"`
	Intent         domain.Intent          `json:"intent"`
	Sources        domain.RankedSourceSet `json:"sources"`
	Context        string                 `json:"context"`
	TotalHits      int                    `json:"total_hits"`
	Took           time.Duration          `json:"took" swaggertype:"integer"`
	EmbeddingTook  time.Duration          `json:"embedding_took" swaggertype:"integer"`
	SearchTook     time.Duration          `json:"search_took" swaggertype:"integer"`
}

// RetrievalService runs the retrieval pipeline: rewrite, embed, search,
// score, re-rank, dedupe, merge with history, render.
type RetrievalService interface {
	// Retrieve executes the pipeline for one request. Zero candidates is a
	// valid outcome (empty set, honest no-sources context); embedding and
	// index failures propagate wrapped in their domain sentinels.
	Retrieve(ctx context.Context, req RetrieveRequest) (*RetrieveResult, error)

	// ReuseHistory answers the NO_SEARCH_NEEDED branch: it builds the same
	// RetrieveResult contract from sources already surfaced in the
	// conversation, without touching the embedding service or the index.
	ReuseHistory(ctx context.Context, req RetrieveRequest) (*RetrieveResult, error)
}
