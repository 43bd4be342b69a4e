package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/lexical"
)

// searchPreviewLength is the preview size of search results, in runes.
const searchPreviewLength = 160

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Message  string `json:"message" jsonschema:"the question to answer from the knowledge base"`
	UserHint string `json:"user_hint,omitempty" jsonschema:"optional name of the user asking"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Reply   string `json:"reply"`
	Mode    string `json:"mode"`
	TraceID string `json:"trace_id"`
	Source  string `json:"source,omitempty"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to rank documents against"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default top_k)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single ranked document.
type SearchResultOutput struct {
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Overlap int     `json:"overlap"`
	TFIDF   float64 `json:"tfidf"`
	Score   float64 `json:"score"`
	Preview string  `json:"preview"`
}

// MemoryInput is the (empty) input schema for the memory tool.
type MemoryInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the local knowledge base",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Rank knowledge base documents against a query",
	}, s.handleSearch)

	if s.ports.Memory != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "memory",
			Description: "Show the learned memory (self name and facts)",
		}, s.handleMemory)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Chat.Chat(ctx, domain.ChatRequest{Message: input.Message, UserHint: input.UserHint})
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Reply:   reply.Reply,
		Mode:    reply.Meta.Mode.String(),
		TraceID: reply.Meta.TraceID,
		Source:  reply.Meta.Source,
	}, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.topK
	}

	hits := s.ports.Knowledge.Search(input.Query, limit)

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(hits)),
		Count:   len(hits),
	}

	for i := range hits {
		output.Results[i] = SearchResultOutput{
			ID:      hits[i].ID,
			Source:  hits[i].Ref(),
			Overlap: hits[i].Overlap,
			TFIDF:   domain.Round4(hits[i].TFIDF),
			Score:   domain.Round4(hits[i].Score),
			Preview: lexical.Preview(hits[i].Text, searchPreviewLength),
		}
	}

	return nil, output, nil
}

// handleMemory handles the memory tool invocation.
func (s *Server) handleMemory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ MemoryInput,
) (*mcp.CallToolResult, domain.MemoryState, error) {
	return nil, s.ports.Memory.Memory(), nil
}
