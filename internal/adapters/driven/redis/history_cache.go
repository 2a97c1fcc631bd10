package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*HistoryCache)(nil)

const historyKeyPrefix = "conv:history:"

// HistoryCache is a read-through cache in front of a ConversationStore.
// Conversation history is read on every chat turn but changes only between
// turns, so a short TTL keeps the cache useful without a busting protocol.
// Cache failures degrade to the underlying store.
type HistoryCache struct {
	client *redis.Client
	store  driven.ConversationStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewHistoryCache wraps store with a Redis read-through cache
func NewHistoryCache(client *redis.Client, store driven.ConversationStore, ttl time.Duration, logger *slog.Logger) *HistoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &HistoryCache{client: client, store: store, ttl: ttl, logger: logger}
}

func (c *HistoryCache) History(ctx context.Context, conversationID string, window int) ([]domain.Message, error) {
	key := fmt.Sprintf("%s%s:%d", historyKeyPrefix, conversationID, window)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var messages []domain.Message
		if err := json.Unmarshal(data, &messages); err == nil {
			return messages, nil
		}
		// Corrupt entry, fall through to the store
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("history cache read failed", "error", err)
	}

	messages, err := c.store.History(ctx, conversationID, window)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(messages); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("history cache write failed", "error", err)
		}
	}
	return messages, nil
}
