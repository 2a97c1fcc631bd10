package driven

import (
	"context"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// ConversationStore supplies prior turns of a conversation. This core only
// reads - message persistence is owned by the conversation service.
type ConversationStore interface {
	// History returns up to window messages in chronological order, each
	// assistant turn carrying the sources it cited. An unknown conversation
	// yields an empty history, not an error.
	History(ctx context.Context, conversationID string, window int) ([]domain.Message, error)
}
