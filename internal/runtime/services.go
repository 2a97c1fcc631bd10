package runtime

import (
	"sync"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
)

// AIServices holds the process-wide embedding and LLM services. Both are
// swappable at runtime so a provider change does not need a restart, and
// Close releases whichever services are current. Thread-safe.
type AIServices struct {
	mu sync.RWMutex

	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
}

// NewAIServices creates an empty registry
func NewAIServices() *AIServices {
	return &AIServices{}
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *AIServices) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// LLMService returns the current LLM service (may be nil)
func (s *AIServices) LLMService() driven.LLMService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmService
}

// SetEmbeddingService swaps the embedding service, closing the old one
func (s *AIServices) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}
	s.embeddingService = svc
}

// SetLLMService swaps the LLM service, closing the old one
func (s *AIServices) SetLLMService(svc driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.llmService != nil {
		_ = s.llmService.Close()
	}
	s.llmService = svc
}

// Ready reports whether both services are configured
func (s *AIServices) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService != nil && s.llmService != nil
}

// Close shuts down all services
func (s *AIServices) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.llmService != nil {
		_ = s.llmService.Close()
		s.llmService = nil
	}
	return nil
}
