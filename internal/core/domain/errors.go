package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmbeddingService indicates the embedding call failed or returned no
	// vector. A request cannot be answered without a query vector, so callers
	// must treat this as fatal for the request.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrSearchUnavailable indicates the vector index is unreachable or the
	// query was malformed. Callers decide fallback behaviour (e.g. reuse
	// conversation history); adapters must never swallow this.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrConversationNotFound indicates the conversation does not exist
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrGenerationFailed indicates the answer-generation call failed after
	// retrieval succeeded. The retrieved source set is still usable.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates an AI service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)
