package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks the index and cache connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Chat endpoints

// handleChat godoc
// @Summary      Ask a legal question
// @Description  Classifies the question's intent, retrieves relevant theses (or reuses the ones already cited in the conversation) and generates a grounded answer with citations
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.AskRequest  true  "Question and optional conversation"
// @Success      200      {object}  driving.AskResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body or empty query"
// @Failure      401      {object}  ErrorResponse  "Missing or invalid credentials"
// @Failure      502      {object}  ErrorResponse  "Answer generation failed"
// @Failure      503      {object}  ErrorResponse  "Search backend unavailable"
// @Router       /chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req driving.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.chatService.Ask(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Retrieval endpoints

// handleSearch godoc
// @Summary      Retrieve relevant theses
// @Description  Runs the retrieval pipeline without generation: embed, search, rank and return the scored source set with the rendered context block
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.RetrieveRequest  true  "Query, optional conversation and filters"
// @Success      200      {object}  driving.RetrieveResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body or empty query"
// @Failure      401      {object}  ErrorResponse  "Missing or invalid credentials"
// @Failure      503      {object}  ErrorResponse  "Search backend unavailable"
// @Router       /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req driving.RetrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		result *driving.RetrieveResult
		err    error
	)
	if req.Intent == domain.IntentReuse {
		result, err = s.retrievalService.ReuseHistory(r.Context(), req)
	} else {
		result, err = s.retrievalService.Retrieve(r.Context(), req)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetTesis godoc
// @Summary      Get a thesis document
// @Description  Returns the full thesis document for citation display
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Thesis registry id"
// @Success      200  {object}  domain.Tesis
// @Failure      400  {object}  ErrorResponse  "Invalid id"
// @Failure      401  {object}  ErrorResponse  "Missing or invalid credentials"
// @Failure      404  {object}  ErrorResponse  "Unknown thesis"
// @Router       /tesis/{id} [get]
func (s *Server) handleGetTesis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid tesis id")
		return
	}

	tesis, err := s.index.GetTesis(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tesis)
}

// Helpers

// writeDomainError maps domain sentinels to HTTP status codes
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConversationNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrGenerationFailed):
		writeError(w, http.StatusBadGateway, "answer generation failed")
	case errors.Is(err, domain.ErrEmbeddingService),
		errors.Is(err, domain.ErrSearchUnavailable),
		errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent, nothing sensible left to do
		return
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
