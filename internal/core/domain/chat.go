package domain

import "math"

// ResponseMode tags which decision path produced a reply.
type ResponseMode string

// Response modes, in orchestrator evaluation order.
const (
	ModeQuickReply      ResponseMode = "QUICK_REPLY"
	ModeWhoAmIDirect    ResponseMode = "WHOAMI_DIRECT"
	ModeCompanyProfile  ResponseMode = "COMPANY_PROFILE"
	ModeWhoIsProfile    ResponseMode = "WHOIS_PROFILE"
	ModeDeterministicKB ResponseMode = "DETERMINISTIC_KB"
	ModeGeneralFallback ResponseMode = "GENERAL_FALLBACK"
)

// Deterministic returns true if the mode never calls the model.
func (m ResponseMode) Deterministic() bool {
	return m != ModeGeneralFallback
}

// String returns the string representation.
func (m ResponseMode) String() string {
	return string(m)
}

// ChatRequest is one incoming question.
type ChatRequest struct {
	// Message is the raw user text.
	Message string `json:"message"`

	// UserHint optionally names the user for self-referential queries.
	UserHint string `json:"user_hint,omitempty"`
}

// ChatReply is the answer plus its trace annotation.
type ChatReply struct {
	Reply string    `json:"reply"`
	Meta  ReplyMeta `json:"meta"`
}

// ReplyMeta describes how a reply was produced.
type ReplyMeta struct {
	Mode    ResponseMode  `json:"mode"`
	TraceID string        `json:"trace_id"`
	Query   string        `json:"query,omitempty"`
	Source  string        `json:"source,omitempty"`
	Learned string        `json:"learned,omitempty"`
	Context []UsedContext `json:"used_context,omitempty"`
}

// UsedContext is one ranked hit attached to a reply.
// Rank is 1-based and Source is "path#idx".
type UsedContext struct {
	Rank    int     `json:"idx"`
	Source  string  `json:"source"`
	Overlap int     `json:"overlap"`
	TFIDF   float64 `json:"tfidf"`
	Score   float64 `json:"score"`
}

// NewUsedContext builds the reply annotation for the hit at 0-based position i.
func NewUsedContext(i int, d ScoredDocument) UsedContext {
	return UsedContext{
		Rank:    i + 1,
		Source:  d.Ref(),
		Overlap: d.Overlap,
		TFIDF:   Round4(d.TFIDF),
		Score:   Round4(d.Score),
	}
}

// DebugHit is one ranked hit with a text preview, for inspection.
type DebugHit struct {
	Rank    int     `json:"rank"`
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Overlap int     `json:"overlap"`
	TFIDF   float64 `json:"tfidf"`
	Score   float64 `json:"score"`
	Preview string  `json:"preview"`
}

// DebugContext is the inspection view of a query's ranking.
type DebugContext struct {
	Query string     `json:"query"`
	Hits  []DebugHit `json:"hits"`
}

// IndexStats describes the current index snapshot.
type IndexStats struct {
	Files   int    `json:"kb_files"`
	Version uint64 `json:"index_version"`
}

// Round4 rounds f to four decimal places for display.
func Round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
