package runtime

import (
	"testing"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven/mocks"
)

func TestAIServicesSwap(t *testing.T) {
	s := NewAIServices()

	if s.Ready() {
		t.Error("empty registry must not be ready")
	}

	s.SetEmbeddingService(mocks.NewMockEmbeddingService())
	s.SetLLMService(mocks.NewMockLLMService())

	if !s.Ready() {
		t.Error("registry with both services must be ready")
	}
	if s.EmbeddingService() == nil || s.LLMService() == nil {
		t.Error("services not retrievable")
	}
}

func TestAIServicesClose(t *testing.T) {
	s := NewAIServices()
	s.SetEmbeddingService(mocks.NewMockEmbeddingService())
	s.SetLLMService(mocks.NewMockLLMService())

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.EmbeddingService() != nil || s.LLMService() != nil {
		t.Error("Close must clear the registry")
	}
	if s.Ready() {
		t.Error("closed registry must not be ready")
	}
}
