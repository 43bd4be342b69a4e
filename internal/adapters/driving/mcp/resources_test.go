package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"kbchat://documents/doc_3", "doc_3"},
		{"kbchat://documents/", ""},
		{"kbchat://sources/doc_3", ""},
		{"other://documents/doc_3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDocumentID(tt.uri))
		})
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	kb := &mockKnowledgeService{chunks: []domain.DocumentChunk{
		{ID: "doc_0", Source: "a.md", Text: "alpha"},
		{ID: "doc_1", Source: "b.txt", Text: "beta"},
	}}
	server := newTestServer(t, &mockChatService{}, kb, nil)

	result, err := server.handleDocumentsResource(context.Background(), readRequest("kbchat://documents"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.JSONEq(t, `[
		{"id":"doc_0","source":"a.md","uri":"kbchat://documents/doc_0"},
		{"id":"doc_1","source":"b.txt","uri":"kbchat://documents/doc_1"}
	]`, result.Contents[0].Text)
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	kb := &mockKnowledgeService{chunks: []domain.DocumentChunk{
		{ID: "doc_0", Source: "a.md", Text: "alpha"},
	}}
	server := newTestServer(t, &mockChatService{}, kb, nil)
	ctx := context.Background()

	t.Run("returns document text", func(t *testing.T) {
		result, err := server.handleDocumentContentResource(ctx, readRequest("kbchat://documents/doc_0"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "alpha", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, readRequest("kbchat://documents/doc_9"))
		assert.Error(t, err)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, readRequest("kbchat://documents/"))
		assert.Error(t, err)
	})
}
