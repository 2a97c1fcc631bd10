package driving

import (
	"context"
	"time"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// AskRequest is a user question routed through intent classification and the
// retrieval pipeline before generation.
type AskRequest struct {
	Query          string               `json:"query"`
	ConversationID string               `json:"conversation_id,omitempty"`
	Filters        domain.SearchFilters `json:"filters,omitempty"`
}

// AskResult is the generated answer plus the citation metadata of every
// source that backed it.
type AskResult struct {
	QueryID string                 `json:"query_id"`
	Answer  string                 `json:"answer"`
	Intent  domain.Intent          `json:"intent"`
	Sources domain.RankedSourceSet `json:"sources"`
	Took    time.Duration          `json:"took" swaggertype:"integer"`
}

// ChatService answers legal questions grounded on retrieved theses.
type ChatService interface {
	Ask(ctx context.Context, req AskRequest) (*AskResult, error)
}
