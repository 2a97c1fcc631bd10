package redis

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven/mocks"
)

// setupTestHistoryCache creates a miniredis-backed HistoryCache over a mock store
func setupTestHistoryCache(t *testing.T, ttl time.Duration) (*HistoryCache, *mocks.MockConversationStore, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := mocks.NewMockConversationStore()
	cache := NewHistoryCache(client, store, ttl, slog.New(slog.DiscardHandler))

	return cache, store, mr, func() {
		client.Close()
		mr.Close()
	}
}

func testHistory() []domain.Message {
	return []domain.Message{
		{Role: domain.RoleUser, Content: "busca tesis sobre despido"},
		{
			Role:    domain.RoleAssistant,
			Content: "Encontré este criterio.",
			Sources: []domain.ScoredSource{{
				TesisChunk: domain.TesisChunk{IDTesis: 7, Rubro: "DESPIDO.", Similarity: 0.8},
				FinalScore: 0.9,
			}},
		},
	}
}

func TestHistoryCacheMiss(t *testing.T) {
	cache, store, _, cleanup := setupTestHistoryCache(t, time.Minute)
	defer cleanup()

	store.SetHistory("conv-1", testHistory())

	messages, err := cache.History(context.Background(), "conv-1", 16)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if store.Reads() != 1 {
		t.Errorf("expected one store read, got %d", store.Reads())
	}
}

func TestHistoryCacheHitSkipsStore(t *testing.T) {
	cache, store, _, cleanup := setupTestHistoryCache(t, time.Minute)
	defer cleanup()

	store.SetHistory("conv-1", testHistory())

	if _, err := cache.History(context.Background(), "conv-1", 16); err != nil {
		t.Fatalf("first read: %v", err)
	}
	messages, err := cache.History(context.Background(), "conv-1", 16)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if store.Reads() != 1 {
		t.Errorf("second read must come from cache, store reads = %d", store.Reads())
	}
	if len(messages) != 2 || len(messages[1].Sources) != 1 || messages[1].Sources[0].IDTesis != 7 {
		t.Errorf("cached history lost its sources: %+v", messages)
	}
}

func TestHistoryCacheExpiry(t *testing.T) {
	cache, store, mr, cleanup := setupTestHistoryCache(t, time.Minute)
	defer cleanup()

	store.SetHistory("conv-1", testHistory())

	if _, err := cache.History(context.Background(), "conv-1", 16); err != nil {
		t.Fatalf("first read: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := cache.History(context.Background(), "conv-1", 16); err != nil {
		t.Fatalf("read after expiry: %v", err)
	}
	if store.Reads() != 2 {
		t.Errorf("expired entry must fall through to the store, reads = %d", store.Reads())
	}
}

func TestHistoryCacheCorruptEntryFallsThrough(t *testing.T) {
	cache, store, mr, cleanup := setupTestHistoryCache(t, time.Minute)
	defer cleanup()

	store.SetHistory("conv-1", testHistory())
	mr.Set(historyKeyPrefix+"conv-1:16", "{not json")

	messages, err := cache.History(context.Background(), "conv-1", 16)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 2 || store.Reads() != 1 {
		t.Errorf("corrupt cache entry must fall through to the store")
	}
}

func TestHistoryCacheWindowIsPartOfKey(t *testing.T) {
	cache, store, _, cleanup := setupTestHistoryCache(t, time.Minute)
	defer cleanup()

	store.SetHistory("conv-1", testHistory())

	if _, err := cache.History(context.Background(), "conv-1", 16); err != nil {
		t.Fatalf("window 16: %v", err)
	}
	messages, err := cache.History(context.Background(), "conv-1", 1)
	if err != nil {
		t.Fatalf("window 1: %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("a different window must not reuse the cached entry, got %d messages", len(messages))
	}
}
