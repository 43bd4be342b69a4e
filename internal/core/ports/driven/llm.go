package driven

import (
	"context"
	"fmt"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// LLMService is the external text-completion service used by the general fallback.
// It is opaque to core: given messages it returns a string or fails.
//
// Implementations may include:
//   - OpenAI-compatible servers (LM Studio, vLLM, OpenAI)
//   - Ollama (local models)
type LLMService interface {
	// Chat sends one completion request and returns the reply text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// CompletionError is a non-success response from the model service.
// Detail holds the response body, decoded as JSON when possible.
type CompletionError struct {
	Provider   string
	StatusCode int
	Detail     any
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s error (status %d): %v", e.Provider, e.StatusCode, e.Detail)
}

// Unwrap lets callers match any completion failure with errors.Is(err, domain.ErrLLMRequest).
func (e *CompletionError) Unwrap() error {
	return domain.ErrLLMRequest
}
