package driving

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// ChatService answers one question per call.
type ChatService interface {
	// Chat runs the decision pipeline for req.
	// Returns an error wrapping domain.ErrEmptyMessage for blank messages and
	// domain.ErrLLMRequest when the general fallback's model call fails.
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error)
}
