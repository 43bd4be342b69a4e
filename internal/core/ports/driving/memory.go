package driving

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// MemoryService exposes the learned memory.
// Every mutation persists state and rebuilds the index before returning.
type MemoryService interface {
	// Memory returns a copy of the current state.
	Memory() domain.MemoryState

	// LearnSelfName records name as the self name.
	// Returns false without side effects if name is empty or unchanged.
	LearnSelfName(ctx context.Context, name string) (bool, error)

	// ResetMemory clears all memory.
	ResetMemory(ctx context.Context) (domain.MemoryState, error)
}
