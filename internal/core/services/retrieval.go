package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driving"
)

// RetrievalConfig wires a retrieval service.
type RetrievalConfig struct {
	Embedder      driven.EmbeddingService
	Index         driven.TesisIndex
	Conversations driven.ConversationStore
	Intents       *IntentClassifier
	Policy        domain.RankingPolicy
	Expansions    domain.MateriaExpansions
	Context       ContextConfig
	HistoryWindow int
	Logger        *slog.Logger
}

type retrievalService struct {
	embedder      driven.EmbeddingService
	index         driven.TesisIndex
	conversations driven.ConversationStore
	intents       *IntentClassifier
	scorer        *Scorer
	reranker      *Reranker
	assembler     *ContextAssembler
	policy        domain.RankingPolicy
	expansions    domain.MateriaExpansions
	historyWindow int
	logger        *slog.Logger
}

// NewRetrievalService builds the retrieval pipeline from its collaborators.
func NewRetrievalService(cfg RetrievalConfig) driving.RetrievalService {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 16
	}
	return &retrievalService{
		embedder:      cfg.Embedder,
		index:         cfg.Index,
		conversations: cfg.Conversations,
		intents:       cfg.Intents,
		scorer:        NewScorer(cfg.Policy),
		reranker:      NewReranker(cfg.Policy),
		assembler:     NewContextAssembler(cfg.Context),
		policy:        cfg.Policy,
		expansions:    cfg.Expansions,
		historyWindow: cfg.HistoryWindow,
		logger:        cfg.Logger,
	}
}

func (s *retrievalService) Retrieve(ctx context.Context, req driving.RetrieveRequest) (*driving.RetrieveResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	start := time.Now()
	queryID := uuid.New().String()
	history := s.loadHistory(ctx, req.ConversationID)

	rewritten := s.intents.Rewrite(ctx, query, history)

	embedStart := time.Now()
	embedding, err := s.embedder.EmbedQuery(ctx, rewritten.Query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	embedTook := time.Since(embedStart)

	filters := req.Filters.Expand(s.expansions)

	searchStart := time.Now()
	chunks, err := s.index.SearchChunks(ctx, embedding, filters, s.policy.MinSimilarity, s.policy.CandidatePool)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	searchTook := time.Since(searchStart)

	scored := s.scorer.ScoreAll(chunks)
	reranked := s.reranker.Rerank(scored, rewritten.Query)
	final := Cap(Dedupe(reranked), s.policy.FinalLimit)

	if len(history) > 0 {
		historical := ExtractHistoricalSources(history, s.policy.MergeLimit)
		final = MergeWithHistory(final, historical, s.policy.MergeLimit)
	}

	s.logger.Info("retrieval complete",
		"query_id", queryID,
		"rewritten", rewritten.UsedContext,
		"hits", len(chunks),
		"sources", len(final),
		"policy", s.policy.Version,
	)

	return &driving.RetrieveResult{
		QueryID:        queryID,
		Query:          query,
		RewrittenQuery: rewrittenOrEmpty(rewritten),
		UsedContext:    rewritten.UsedContext,
		Intent:         domain.IntentNewSearch,
		Sources:        final,
		Context:        s.assembler.Render(final),
		TotalHits:      len(chunks),
		Took:           time.Since(start),
		EmbeddingTook:  embedTook,
		SearchTook:     searchTook,
	}, nil
}

func (s *retrievalService) ReuseHistory(ctx context.Context, req driving.RetrieveRequest) (*driving.RetrieveResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if req.ConversationID == "" {
		return nil, fmt.Errorf("%w: reuse requires a conversation", domain.ErrInvalidInput)
	}

	start := time.Now()
	queryID := uuid.New().String()

	history, err := s.conversations.History(ctx, req.ConversationID, s.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("load conversation history: %w", err)
	}

	sources := ExtractHistoricalSources(history, s.policy.MergeLimit)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].FinalScore > sources[j].FinalScore
	})

	s.logger.Info("history reuse",
		"query_id", queryID,
		"conversation_id", req.ConversationID,
		"sources", len(sources),
	)

	return &driving.RetrieveResult{
		QueryID:   queryID,
		Query:     query,
		Intent:    domain.IntentReuse,
		Sources:   sources,
		Context:   s.assembler.Render(sources),
		TotalHits: len(sources),
		Took:      time.Since(start),
	}, nil
}

// loadHistory fetches the conversation window. History only enriches the
// search path, so a store failure degrades to a history-less retrieval
// instead of failing the request.
func (s *retrievalService) loadHistory(ctx context.Context, conversationID string) []domain.Message {
	if conversationID == "" || s.conversations == nil {
		return nil
	}
	history, err := s.conversations.History(ctx, conversationID, s.historyWindow)
	if err != nil {
		s.logger.Warn("conversation history unavailable", "conversation_id", conversationID, "error", err)
		return nil
	}
	return history
}

func rewrittenOrEmpty(rq domain.RewrittenQuery) string {
	if rq.UsedContext {
		return rq.Query
	}
	return ""
}
