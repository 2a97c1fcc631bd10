package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven/mocks"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driving"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/services"
)

type testEnv struct {
	server *Server
	index  *mocks.MockTesisIndex
	store  *mocks.MockConversationStore
	llm    *mocks.MockLLMService
}

// okPinger always reports healthy
type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

// failPinger always reports unhealthy
type failPinger struct{}

func (failPinger) Ping(ctx context.Context) error { return fmt.Errorf("down") }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	index := mocks.NewMockTesisIndex()
	store := mocks.NewMockConversationStore()
	llm := mocks.NewMockLLMService()
	logger := slog.New(slog.DiscardHandler)

	intents := services.NewIntentClassifier(llm, logger)
	retrieval := services.NewRetrievalService(services.RetrievalConfig{
		Embedder:      mocks.NewMockEmbeddingService(),
		Index:         index,
		Conversations: store,
		Intents:       intents,
		Policy:        domain.DefaultRankingPolicy(),
		Expansions:    domain.DefaultMateriaExpansions(),
		Context:       services.DefaultContextConfig(),
		Logger:        logger,
	})
	chat := services.NewChatService(services.ChatConfig{
		Retrieval:     retrieval,
		Intents:       intents,
		Conversations: store,
		LLM:           llm,
		Logger:        logger,
	})

	server := NewServer(DefaultConfig(), chat, retrieval, index, nil, okPinger{}, nil)
	return &testEnv{server: server, index: index, store: store, llm: llm}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.server.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleReadyDependencyDown(t *testing.T) {
	env := newTestEnv(t)
	env.server.db = failPinger{}

	rec := env.do(t, "GET", "/ready", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/version", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["version"] != "dev" {
		t.Errorf("version = %s", resp["version"])
	}
}

func TestHandleChat(t *testing.T) {
	env := newTestEnv(t)
	env.index.SetChunks([]domain.TesisChunk{{
		IDTesis:    1,
		Rubro:      "DESPIDO.",
		ChunkText:  "contenido",
		Similarity: 0.8,
		Anio:       2023,
		Epoca:      domain.EpocaUndecima,
	}})

	rec := env.do(t, "POST", "/api/v1/chat", driving.AskRequest{Query: "tesis sobre despido"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result driving.AskResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Answer == "" || len(result.Sources) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHandleChatInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("POST", "/api/v1/chat", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.server.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleChatEmptyQuery(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/v1/chat", driving.AskRequest{Query: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	env := newTestEnv(t)
	env.index.SetChunks([]domain.TesisChunk{{
		IDTesis:    1,
		Rubro:      "DESPIDO.",
		ChunkText:  "contenido",
		Similarity: 0.8,
		Anio:       2023,
		Epoca:      domain.EpocaUndecima,
	}})

	rec := env.do(t, "POST", "/api/v1/search", driving.RetrieveRequest{Query: "despido"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result driving.RetrieveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Sources) != 1 || result.Context == "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHandleSearchReuseIntent(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetHistory("conv-1", []domain.Message{{
		Role:    domain.RoleAssistant,
		Content: "…",
		Sources: []domain.ScoredSource{{
			TesisChunk: domain.TesisChunk{IDTesis: 9, Rubro: "R.", Similarity: 0.7},
			FinalScore: 0.8,
		}},
	}})

	rec := env.do(t, "POST", "/api/v1/search", driving.RetrieveRequest{
		Query:          "explícame",
		ConversationID: "conv-1",
		Intent:         domain.IntentReuse,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result driving.RetrieveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Intent != domain.IntentReuse || len(result.Sources) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHandleSearchBackendDown(t *testing.T) {
	env := newTestEnv(t)
	env.index.SetFailNext(true)

	rec := env.do(t, "POST", "/api/v1/search", driving.RetrieveRequest{Query: "despido"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleGetTesis(t *testing.T) {
	env := newTestEnv(t)
	env.index.AddTesis(&domain.Tesis{IDTesis: 2029944, Rubro: "DESPIDO.", Texto: "texto"})

	rec := env.do(t, "GET", "/api/v1/tesis/2029944", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var tesis domain.Tesis
	if err := json.Unmarshal(rec.Body.Bytes(), &tesis); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tesis.IDTesis != 2029944 {
		t.Errorf("id = %d", tesis.IDTesis)
	}
}

func TestHandleGetTesisNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/v1/tesis/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleGetTesisInvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/v1/tesis/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
