package driven

import (
	"context"
)

// LLMService provides the language-model calls the retrieval core delegates:
// standalone-query rewriting, ambiguous-intent classification and the final
// answer generation over an assembled context.
type LLMService interface {
	// Complete runs a single-turn completion with a system prompt and a user
	// message, returning the model's text.
	Complete(ctx context.Context, system, user string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the LLM service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}
