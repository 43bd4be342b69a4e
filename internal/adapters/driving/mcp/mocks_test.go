package mcp

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply *domain.ChatReply
	err   error
	got   domain.ChatRequest
}

func (m *mockChatService) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.reply, nil
}

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	chunks    []domain.DocumentChunk
	hits      []domain.ScoredDocument
	lastQuery string
	lastK     int
}

func (m *mockKnowledgeService) Reindex(_ context.Context) (domain.IndexStats, error) {
	return m.Stats(), nil
}

func (m *mockKnowledgeService) Stats() domain.IndexStats {
	return domain.IndexStats{Files: len(m.chunks), Version: 1}
}

func (m *mockKnowledgeService) Chunks() []domain.DocumentChunk {
	return m.chunks
}

func (m *mockKnowledgeService) Search(query string, k int) []domain.ScoredDocument {
	m.lastQuery = query
	m.lastK = k
	return m.hits
}

func (m *mockKnowledgeService) Debug(query string, _ int) domain.DebugContext {
	return domain.DebugContext{Query: query}
}

// mockMemoryService is a mock implementation of driving.MemoryService.
type mockMemoryService struct {
	state domain.MemoryState
}

func (m *mockMemoryService) Memory() domain.MemoryState {
	return m.state
}

func (m *mockMemoryService) LearnSelfName(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (m *mockMemoryService) ResetMemory(_ context.Context) (domain.MemoryState, error) {
	m.state = domain.MemoryState{}
	return m.state, nil
}
