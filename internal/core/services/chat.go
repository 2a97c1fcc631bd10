package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driving"
)

const answerSystemPrompt = "Eres un asistente jurídico especializado en jurisprudencia mexicana. " +
	"Responde la pregunta del usuario basándote únicamente en las tesis proporcionadas como fuentes. " +
	"Cita cada tesis por su ID al usarla. Si las fuentes no bastan para responder, dilo expresamente. " +
	"Nunca inventes tesis, números de registro ni criterios."

// ChatConfig wires a chat service.
type ChatConfig struct {
	Retrieval     driving.RetrievalService
	Intents       *IntentClassifier
	Conversations driven.ConversationStore
	LLM           driven.LLMService
	HistoryWindow int
	Logger        *slog.Logger
}

type chatService struct {
	retrieval     driving.RetrievalService
	intents       *IntentClassifier
	conversations driven.ConversationStore
	llm           driven.LLMService
	historyWindow int
	logger        *slog.Logger
}

// NewChatService builds the ask pipeline: intent classification, retrieval
// (or history reuse), context-grounded generation.
func NewChatService(cfg ChatConfig) driving.ChatService {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 16
	}
	return &chatService{
		retrieval:     cfg.Retrieval,
		intents:       cfg.Intents,
		conversations: cfg.Conversations,
		llm:           cfg.LLM,
		historyWindow: cfg.HistoryWindow,
		logger:        cfg.Logger,
	}
}

func (s *chatService) Ask(ctx context.Context, req driving.AskRequest) (*driving.AskResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	start := time.Now()
	history := s.loadHistory(ctx, req.ConversationID)
	intent := s.intents.Classify(ctx, query, history)

	retrieved, err := s.retrieve(ctx, req, intent, history)
	if err != nil {
		return nil, err
	}

	user := retrieved.Context + "\n\nPREGUNTA DEL USUARIO:\n" + query + "\n\nRespuesta:"
	answer, err := s.llm.Complete(ctx, answerSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	s.logger.Info("chat answered",
		"query_id", retrieved.QueryID,
		"intent", retrieved.Intent,
		"sources", len(retrieved.Sources),
		"took", time.Since(start),
	)

	return &driving.AskResult{
		QueryID: retrieved.QueryID,
		Answer:  answer,
		Intent:  retrieved.Intent,
		Sources: retrieved.Sources,
		Took:    time.Since(start),
	}, nil
}

// retrieve picks the pipeline branch for the classified intent. A reuse turn
// skips embedding and search entirely. When a fresh search is wanted but the
// index is down, a conversation with prior sources falls back to reuse so the
// user still gets a grounded answer.
func (s *chatService) retrieve(ctx context.Context, req driving.AskRequest, intent domain.Intent, history []domain.Message) (*driving.RetrieveResult, error) {
	rreq := driving.RetrieveRequest{
		Query:          req.Query,
		ConversationID: req.ConversationID,
		Filters:        req.Filters,
		Intent:         intent,
	}

	if intent == domain.IntentReuse && hasSources(history) {
		return s.retrieval.ReuseHistory(ctx, rreq)
	}

	result, err := s.retrieval.Retrieve(ctx, rreq)
	if err != nil && errors.Is(err, domain.ErrSearchUnavailable) && hasSources(history) {
		s.logger.Warn("search unavailable, reusing conversation sources", "error", err)
		return s.retrieval.ReuseHistory(ctx, rreq)
	}
	return result, err
}

func (s *chatService) loadHistory(ctx context.Context, conversationID string) []domain.Message {
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
