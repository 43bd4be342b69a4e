package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyMessage indicates a chat request without a usable message.
	ErrEmptyMessage = errors.New("message required")

	// ErrUnsupportedType indicates an unknown provider, backend or file type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The deterministic paths still work; the general fallback fails.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrLLMRequest indicates the model call failed in transport or returned a non-success status.
	ErrLLMRequest = errors.New("LM request failed")

	// ErrCorruptState indicates persisted memory could not be decoded.
	ErrCorruptState = errors.New("corrupt memory state")

	// ErrRateLimited indicates the LLM call budget was exhausted before the deadline.
	ErrRateLimited = errors.New("rate limited")
)
