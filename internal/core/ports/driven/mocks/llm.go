package mocks

import (
	"context"
	"fmt"
)

// MockLLMService is a scripted LLMService for testing
type MockLLMService struct {
	responses []string
	next      int
	failNext  bool
	calls     []string
}

// NewMockLLMService creates a new MockLLMService. Without scripted responses
// it echoes a fixed answer.
func NewMockLLMService(responses ...string) *MockLLMService {
	return &MockLLMService{responses: responses}
}

func (m *MockLLMService) Complete(ctx context.Context, system, user string) (string, error) {
	if m.failNext {
		m.failNext = false
		return "", fmt.Errorf("mock llm down")
	}

	m.calls = append(m.calls, user)
	if m.next < len(m.responses) {
		r := m.responses[m.next]
		m.next++
		return r, nil
	}
	return "mock answer", nil
}

func (m *MockLLMService) Model() string {
	return "mock-llm-model"
}

func (m *MockLLMService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockLLMService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockLLMService) SetFailNext(fail bool) {
	m.failNext = fail
}

// Calls returns the user prompts received, in order.
func (m *MockLLMService) Calls() []string {
	return m.calls
}
