package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/adapters/driven/auth"
)

func protectedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"user": GetUserID(r.Context())})
	})
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	m := NewAuthMiddleware(auth.NewVerifier("secret", ""))
	handler := m.Authenticate(protectedHandler())

	req := httptest.NewRequest("GET", "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateValidBearer(t *testing.T) {
	verifier := auth.NewVerifier("secret", "")
	token, err := verifier.GenerateToken("user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	m := NewAuthMiddleware(verifier)
	handler := m.Authenticate(protectedHandler())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthenticateInvalidBearer(t *testing.T) {
	m := NewAuthMiddleware(auth.NewVerifier("secret", ""))
	handler := m.Authenticate(protectedHandler())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateAPIKey(t *testing.T) {
	bootstrap := auth.NewVerifier("secret", "")
	hash, err := bootstrap.HashAPIKey("sk-monitor-abc")
	if err != nil {
		t.Fatalf("HashAPIKey: %v", err)
	}
	m := NewAuthMiddleware(auth.NewVerifier("secret", hash))
	handler := m.Authenticate(protectedHandler())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("X-API-Key", "sk-monitor-abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key: status = %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("X-API-Key", "sk-monitor-wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateDisabled(t *testing.T) {
	m := NewAuthMiddleware(nil)
	handler := m.Authenticate(protectedHandler())

	req := httptest.NewRequest("GET", "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("nil verifier must disable auth, status = %d", rec.Code)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := extractBearerToken(req); got != tt.want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := NewRecoveryMiddleware().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	handler := NewCORSMiddleware([]string{"*"}).Handler(protectedHandler())

	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Errorf("missing CORS origin header")
	}
}

func TestCORSMiddlewareDisallowedOrigin(t *testing.T) {
	handler := NewCORSMiddleware([]string{"https://allowed.example.com"}).Handler(protectedHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("disallowed origin must not get CORS headers")
	}
}
