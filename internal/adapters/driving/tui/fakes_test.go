package tui

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

type fakeChat struct {
	reply *domain.ChatReply
	err   error
}

func (f *fakeChat) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.reply != nil {
		return f.reply, nil
	}
	return &domain.ChatReply{
		Reply: "echo " + req.Message,
		Meta:  domain.ReplyMeta{Mode: domain.ModeQuickReply, TraceID: "t-1"},
	}, nil
}

type fakeKnowledge struct {
	reindexed int
}

func (f *fakeKnowledge) Reindex(_ context.Context) (domain.IndexStats, error) {
	f.reindexed++
	return domain.IndexStats{Files: 2, Version: uint64(f.reindexed)}, nil
}

func (f *fakeKnowledge) Stats() domain.IndexStats { return domain.IndexStats{Files: 2} }

func (f *fakeKnowledge) Chunks() []domain.DocumentChunk { return nil }

func (f *fakeKnowledge) Search(_ string, _ int) []domain.ScoredDocument { return nil }

func (f *fakeKnowledge) Debug(query string, _ int) domain.DebugContext {
	return domain.DebugContext{
		Query: query,
		Hits:  []domain.DebugHit{{Rank: 1, ID: "doc_0", Source: "a.md#0", Preview: "alpha"}},
	}
}

type fakeMemory struct {
	state domain.MemoryState
}

func (f *fakeMemory) Memory() domain.MemoryState { return f.state }

func (f *fakeMemory) LearnSelfName(_ context.Context, name string) (bool, error) {
	f.state.SelfName = name
	return true, nil
}

func (f *fakeMemory) ResetMemory(_ context.Context) (domain.MemoryState, error) {
	f.state = domain.EmptyMemory()
	return f.state, nil
}
