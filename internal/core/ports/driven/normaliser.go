package driven

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// Normaliser converts a raw corpus file into plain prose.
// Each normaliser handles specific MIME types (e.g., Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Generic MIME normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise returns the prose content of raw.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)
}
