package driving

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// KnowledgeService exposes the corpus index.
type KnowledgeService interface {
	// Reindex rebuilds the index from the corpus and publishes it.
	Reindex(ctx context.Context) (domain.IndexStats, error)

	// Stats describes the current index snapshot.
	Stats() domain.IndexStats

	// Chunks returns the indexed corpus in scan order. Callers must not modify it.
	Chunks() []domain.DocumentChunk

	// Search returns the top-k ranked chunks for query.
	Search(query string, k int) []domain.ScoredDocument

	// Debug returns the top-k ranking for query with previews.
	Debug(query string, k int) domain.DebugContext
}
