package driven

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// MemoryStore persists the memory state.
type MemoryStore interface {
	// Load returns the persisted state. It never fails startup: a missing or
	// undecodable store yields domain.EmptyMemory with a defaulted status, and
	// err describes the corruption when status is LoadStatusDefaultedCorrupt.
	Load(ctx context.Context) (domain.MemoryState, domain.LoadStatus, error)

	// Save replaces the persisted state. A failed save leaves the previous state intact.
	Save(ctx context.Context, state domain.MemoryState) error

	// Close releases resources.
	Close() error
}
