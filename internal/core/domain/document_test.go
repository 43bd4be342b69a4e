package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkID(t *testing.T) {
	assert.Equal(t, "doc_0", ChunkID(0))
	assert.Equal(t, "doc_12", ChunkID(12))
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name    string
		overlap int
		tfidf   float64
		want    float64
	}{
		{"zero", 0, 0, 0},
		{"tfidf only", 0, 1.25, 1.25},
		{"overlap only", 2, 0, 10},
		{"both", 3, 0.5, 15.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeScore(tt.overlap, tt.tfidf), 1e-9)
		})
	}
}

func TestComputeScore_MonotonicInOverlap(t *testing.T) {
	for overlap := 0; overlap < 10; overlap++ {
		assert.LessOrEqual(t, ComputeScore(overlap, 0.7), ComputeScore(overlap+1, 0.7))
	}
}

func TestResponseMode_Deterministic(t *testing.T) {
	assert.True(t, ModeQuickReply.Deterministic())
	assert.True(t, ModeWhoAmIDirect.Deterministic())
	assert.True(t, ModeCompanyProfile.Deterministic())
	assert.True(t, ModeWhoIsProfile.Deterministic())
	assert.True(t, ModeDeterministicKB.Deterministic())
	assert.False(t, ModeGeneralFallback.Deterministic())
}

func TestIntentKind_IsQuickReply(t *testing.T) {
	assert.True(t, IntentGreeting.IsQuickReply())
	assert.True(t, IntentThanks.IsQuickReply())
	assert.True(t, IntentFarewell.IsQuickReply())
	assert.False(t, IntentSelfReferential.IsQuickReply())
	assert.False(t, IntentWhoIs.IsQuickReply())
	assert.False(t, IntentNone.IsQuickReply())
}

func TestDocumentChunk_Ref(t *testing.T) {
	c := DocumentChunk{ID: "doc_0", Source: "kb/a.md", Index: 0}
	assert.Equal(t, "kb/a.md#0", c.Ref())
}

func TestNewUsedContext(t *testing.T) {
	d := ScoredDocument{
		DocumentChunk: DocumentChunk{Source: "a.txt"},
		Overlap:       2,
		TFIDF:         0.123456,
		Score:         10.123456,
	}

	uc := NewUsedContext(0, d)

	assert.Equal(t, 1, uc.Rank)
	assert.Equal(t, "a.txt#0", uc.Source)
	assert.Equal(t, 2, uc.Overlap)
	assert.InDelta(t, 0.1235, uc.TFIDF, 1e-12)
	assert.InDelta(t, 10.1235, uc.Score, 1e-12)
}
