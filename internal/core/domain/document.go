package domain

import "fmt"

// DocumentChunk is one indexed corpus file.
// Chunks are immutable; a rebuild replaces the whole set.
type DocumentChunk struct {
	// ID is the ordinal identifier assigned during the scan (doc_0, doc_1, ...).
	ID string `json:"id"`

	// Text is the normalised, whitespace-collapsed body.
	Text string `json:"text"`

	// Source is the path relative to the corpus root, using forward slashes.
	Source string `json:"source"`

	// Index is the position within the source. Always 0 since files are not split.
	Index int `json:"idx"`
}

// ChunkID returns the identifier for the n-th chunk of a scan.
func ChunkID(n int) string {
	return fmt.Sprintf("doc_%d", n)
}

// Ref returns the "source#index" reference shown in traces.
func (c DocumentChunk) Ref() string {
	return fmt.Sprintf("%s#%d", c.Source, c.Index)
}

// ScoredDocument is a chunk ranked against a single query.
// It is recomputed per query and never persisted.
type ScoredDocument struct {
	DocumentChunk

	// Overlap counts distinct query tokens found as substrings of Text.
	Overlap int `json:"overlap"`

	// TFIDF is the weight of the query against this chunk.
	TFIDF float64 `json:"tfidf"`

	// Score is Overlap*OverlapWeight + TFIDF.
	Score float64 `json:"score"`
}

// OverlapWeight biases ranking toward literal term hits over TF-IDF.
const OverlapWeight = 5

// ComputeScore combines an overlap count and a TF-IDF weight.
func ComputeScore(overlap int, tfidf float64) float64 {
	return float64(overlap)*OverlapWeight + tfidf
}

// RawDocument is a file read from the corpus before normalisation.
type RawDocument struct {
	// Path is the corpus-relative path.
	Path string

	// MIMEType selects the normaliser (text/plain, text/markdown).
	MIMEType string

	// Content is the file body.
	Content []byte
}
