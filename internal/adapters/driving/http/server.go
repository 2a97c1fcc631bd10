package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/adapters/driven/auth"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driven"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	chatService      driving.ChatService
	retrievalService driving.RetrievalService
	index            driven.TesisIndex

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server. verifier may be nil to disable
// authentication (local development only).
func NewServer(
	cfg Config,
	chatService driving.ChatService,
	retrievalService driving.RetrievalService,
	index driven.TesisIndex,
	verifier *auth.Verifier,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		chatService:      chatService,
		retrievalService: retrievalService,
		index:            index,
		db:               db,
		redisClient:      redisClient,
	}

	s.setupRoutes(verifier)

	handler := NewRecoveryMiddleware().Handler(
		NewLoggingMiddleware().Handler(
			NewCORSMiddleware(cfg.AllowedOrigins).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation turns are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(verifier *auth.Verifier) {
	authMiddleware := NewAuthMiddleware(verifier)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Chat endpoint (authenticated)
	s.router.Handle("POST /api/v1/chat",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleChat)))

	// Retrieval endpoints (authenticated)
	s.router.Handle("POST /api/v1/search",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSearch)))
	s.router.Handle("GET /api/v1/tesis/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetTesis)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
