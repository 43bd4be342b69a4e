package lexical

import (
	"sort"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// Score ranks every chunk against query. Results keep corpus order.
// idx must have been built over exactly chunks, in the same order.
func Score(query string, chunks []domain.DocumentChunk, idx *TFIDF) []domain.ScoredDocument {
	if len(chunks) == 0 {
		return []domain.ScoredDocument{}
	}
	q := Normalize(query)
	tokens := UniqueTokens(q)

	var weights []float64
	if idx != nil {
		weights = idx.Weights(q)
	}

	out := make([]domain.ScoredDocument, len(chunks))
	for i, c := range chunks {
		var w float64
		if i < len(weights) {
			w = weights[i]
		}
		overlap := CountContained(tokens, Normalize(c.Text))
		out[i] = domain.ScoredDocument{
			DocumentChunk: c,
			Overlap:       overlap,
			TFIDF:         w,
			Score:         domain.ComputeScore(overlap, w),
		}
	}
	return out
}

// TopK stable-sorts scored descending by Score and keeps the first max(1, k).
// Equal scores keep their corpus order. scored is sorted in place.
func TopK(scored []domain.ScoredDocument, k int) []domain.ScoredDocument {
	if len(scored) == 0 {
		return []domain.ScoredDocument{}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	k = max(1, k)
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// MaxOverlap returns the highest overlap count among hits, or 0 if there are none.
func MaxOverlap(hits []domain.ScoredDocument) int {
	m := 0
	for _, h := range hits {
		m = max(m, h.Overlap)
	}
	return m
}
