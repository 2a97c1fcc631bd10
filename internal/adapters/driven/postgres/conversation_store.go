package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore implements driven.ConversationStore over the messages
// table written by the conversation service. Sources are stored as JSONB
// alongside each assistant turn.
type ConversationStore struct {
	db *DB
}

// NewConversationStore creates a new ConversationStore
func NewConversationStore(db *DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// History returns the last window messages of a conversation in
// chronological order. An unknown conversation yields an empty history.
func (s *ConversationStore) History(ctx context.Context, conversationID string, window int) ([]domain.Message, error) {
	query := `
		SELECT role, content, sources, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, conversationID, window)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var sources sql.NullString
		if err := rows.Scan(&msg.Role, &msg.Content, &sources, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if sources.Valid && sources.String != "" {
			if err := json.Unmarshal([]byte(sources.String), &msg.Sources); err != nil {
				return nil, fmt.Errorf("decode message sources: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	// Newest-first query, chronological contract
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
