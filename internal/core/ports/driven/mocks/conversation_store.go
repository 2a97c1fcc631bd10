package mocks

import (
	"context"
	"fmt"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// MockConversationStore is an in-memory ConversationStore for testing
type MockConversationStore struct {
	conversations map[string][]domain.Message
	failNext      bool
	reads         int
}

// NewMockConversationStore creates a new MockConversationStore
func NewMockConversationStore() *MockConversationStore {
	return &MockConversationStore{
		conversations: make(map[string][]domain.Message),
	}
}

func (m *MockConversationStore) History(ctx context.Context, conversationID string, window int) ([]domain.Message, error) {
	if m.failNext {
		m.failNext = false
		return nil, fmt.Errorf("mock store down")
	}

	m.reads++
	history := m.conversations[conversationID]
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	return history, nil
}

// Helper methods for testing

func (m *MockConversationStore) SetHistory(conversationID string, messages []domain.Message) {
	m.conversations[conversationID] = messages
}

func (m *MockConversationStore) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockConversationStore) Reads() int {
	return m.reads
}
