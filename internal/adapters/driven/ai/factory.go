package ai

import (
	"fmt"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven/mocks"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration. The mock provider runs
// the full pipeline without external calls, for local development.
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings
func (f *Factory) CreateEmbeddingService(settings driven.AISettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case driven.AIProviderOpenAI:
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL, settings.Dimensions)
	case driven.AIProviderMock:
		return mocks.NewMockEmbeddingService(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// CreateLLMService creates an LLM service from settings
func (f *Factory) CreateLLMService(settings driven.AISettings) (driven.LLMService, error) {
	switch settings.Provider {
	case driven.AIProviderOpenAI:
		return NewOpenAILLM(settings.APIKey, settings.Model, settings.BaseURL)
	case driven.AIProviderMock:
		return mocks.NewMockLLMService(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
