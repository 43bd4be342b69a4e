package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/lexical"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/core/ports/driving"
	"github.com/custodia-labs/kbchat/internal/logger"
)

// Ensure KnowledgeBase implements the interfaces.
var (
	_ driving.KnowledgeService = (*KnowledgeBase)(nil)
	_ driving.MemoryService    = (*KnowledgeBase)(nil)
)

// DebugPreviewLength is the preview size of debug hits, in runes.
const DebugPreviewLength = 160

// indexSnapshot is one immutable build of the corpus index.
type indexSnapshot struct {
	chunks  []domain.DocumentChunk
	tfidf   *lexical.TFIDF
	version uint64
}

// memorySnapshot is one immutable memory state.
type memorySnapshot struct {
	state   domain.MemoryState
	version uint64
}

// KnowledgeBase owns the corpus index and the learned memory.
//
// Readers load the current snapshot pointers and never block. Rebuilds are
// serialised by rebuildMu and publish with a single pointer store. Memory
// mutations hold learnMu across mutate, persist and rebuild, so the rebuild
// that follows a write always reflects that write.
type KnowledgeBase struct {
	corpus   driven.Corpus
	notes    driven.NotesWriter
	registry driven.NormaliserRegistry
	store    driven.MemoryStore

	index  atomic.Pointer[indexSnapshot]
	memory atomic.Pointer[memorySnapshot]

	rebuildMu sync.Mutex
	learnMu   sync.Mutex

	rebuilds atomic.Int64
}

// NewKnowledgeBase creates a knowledge base with an empty index and empty memory.
// Call Open to load memory and build the first index.
func NewKnowledgeBase(
	corpus driven.Corpus,
	notes driven.NotesWriter,
	registry driven.NormaliserRegistry,
	store driven.MemoryStore,
) *KnowledgeBase {
	kb := &KnowledgeBase{
		corpus:   corpus,
		notes:    notes,
		registry: registry,
		store:    store,
	}
	kb.index.Store(&indexSnapshot{tfidf: lexical.NewTFIDF(nil)})
	kb.memory.Store(&memorySnapshot{state: domain.EmptyMemory()})
	return kb
}

// Open loads persisted memory and builds the initial index. A missing or
// corrupt memory store is not an error: memory starts empty and the load
// status is returned so the caller can report it.
func (kb *KnowledgeBase) Open(ctx context.Context) (domain.LoadStatus, error) {
	kb.learnMu.Lock()
	defer kb.learnMu.Unlock()

	state, status, err := kb.store.Load(ctx)
	switch {
	case status.Degraded():
		logger.Warn("memory store unreadable, starting empty: %v", err)
	case err != nil:
		logger.Warn("memory load: %v", err)
	}
	kb.publishMemory(state)

	if status != domain.LoadStatusDefaultedMissing {
		kb.writeNotes(ctx, state)
	}

	if _, err := kb.rebuild(ctx); err != nil {
		return status, err
	}
	return status, nil
}

// Reindex rebuilds the index from the corpus and publishes it.
func (kb *KnowledgeBase) Reindex(ctx context.Context) (domain.IndexStats, error) {
	return kb.rebuild(ctx)
}

// rebuild scans, normalises and indexes the corpus, then swaps the snapshot.
func (kb *KnowledgeBase) rebuild(ctx context.Context) (domain.IndexStats, error) {
	kb.rebuildMu.Lock()
	defer kb.rebuildMu.Unlock()

	logger.Section("Index Rebuild")

	docs, err := kb.corpus.Scan(ctx)
	if err != nil {
		return kb.Stats(), fmt.Errorf("scan corpus: %w", err)
	}

	chunks := make([]domain.DocumentChunk, 0, len(docs))
	for i := range docs {
		text, err := kb.registry.Normalise(ctx, &docs[i])
		if err != nil {
			logger.Warn("skipping %s: %v", docs[i].Path, err)
			continue
		}
		text = lexical.CollapseWhitespace(lexical.Normalize(text))
		if text == "" {
			logger.Debug("skipping empty document %s", docs[i].Path)
			continue
		}
		chunks = append(chunks, domain.DocumentChunk{
			ID:     domain.ChunkID(len(chunks)),
			Text:   text,
			Source: docs[i].Path,
			Index:  0,
		})
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	prev := kb.index.Load()
	next := &indexSnapshot{
		chunks:  chunks,
		tfidf:   lexical.NewTFIDF(texts),
		version: prev.version + 1,
	}
	kb.index.Store(next)
	kb.rebuilds.Add(1)

	logger.Info("indexed %d files", len(chunks))
	return domain.IndexStats{Files: len(chunks), Version: next.version}, nil
}

// Rebuilds returns how many index rebuilds have completed.
func (kb *KnowledgeBase) Rebuilds() int64 {
	return kb.rebuilds.Load()
}

// Stats describes the current index snapshot.
func (kb *KnowledgeBase) Stats() domain.IndexStats {
	snap := kb.index.Load()
	return domain.IndexStats{Files: len(snap.chunks), Version: snap.version}
}

// Chunks returns the current corpus in scan order.
// The slice belongs to an immutable snapshot and must not be modified.
func (kb *KnowledgeBase) Chunks() []domain.DocumentChunk {
	return kb.index.Load().chunks
}

// NotesSource returns the corpus-relative path of the memory notes document.
func (kb *KnowledgeBase) NotesSource() string {
	return kb.notes.NotesSource()
}

// Search returns the top-k ranked chunks for query.
func (kb *KnowledgeBase) Search(query string, k int) []domain.ScoredDocument {
	return kb.index.Load().search(query, k)
}

func (s *indexSnapshot) search(query string, k int) []domain.ScoredDocument {
	return lexical.TopK(lexical.Score(query, s.chunks, s.tfidf), k)
}

// Debug returns the top-k ranking for query with text previews.
func (kb *KnowledgeBase) Debug(query string, k int) domain.DebugContext {
	hits := kb.Search(query, k)
	out := domain.DebugContext{Query: query, Hits: make([]domain.DebugHit, len(hits))}
	for i, h := range hits {
		out.Hits[i] = domain.DebugHit{
			Rank:    i + 1,
			ID:      h.ID,
			Source:  h.Ref(),
			Overlap: h.Overlap,
			TFIDF:   domain.Round4(h.TFIDF),
			Score:   domain.Round4(h.Score),
			Preview: lexical.Preview(h.Text, DebugPreviewLength),
		}
	}
	return out
}

// Memory returns a copy of the current state.
func (kb *KnowledgeBase) Memory() domain.MemoryState {
	return kb.memory.Load().state.Clone()
}

// MemoryVersion increments on every published memory change.
func (kb *KnowledgeBase) MemoryVersion() uint64 {
	return kb.memory.Load().version
}

// LearnSelfName records name as the self name, appends the canonical fact,
// persists state and notes, and rebuilds the index. Empty or unchanged
// names are a no-op. Persistence failures are logged; the in-memory state
// stays authoritative.
func (kb *KnowledgeBase) LearnSelfName(ctx context.Context, name string) (bool, error) {
	name = lexical.CollapseWhitespace(lexical.Normalize(name))
	if name == "" {
		return false, nil
	}

	kb.learnMu.Lock()
	defer kb.learnMu.Unlock()

	current := kb.memory.Load().state
	if current.SelfName == name {
		return false, nil
	}

	next := current.Clone()
	next.SelfName = name
	next.AddFact(domain.SelfNameFact(name))

	if err := kb.commit(ctx, next); err != nil {
		return true, err
	}
	logger.Info("learned self name %q", name)
	return true, nil
}

// ResetMemory clears all memory, persists and rebuilds.
func (kb *KnowledgeBase) ResetMemory(ctx context.Context) (domain.MemoryState, error) {
	kb.learnMu.Lock()
	defer kb.learnMu.Unlock()

	next := domain.EmptyMemory()
	if err := kb.commit(ctx, next); err != nil {
		return next.Clone(), err
	}
	logger.Info("memory reset")
	return next.Clone(), nil
}

// commit publishes state, persists it and rebuilds. Caller holds learnMu.
// Only the rebuild can fail the operation.
func (kb *KnowledgeBase) commit(ctx context.Context, state domain.MemoryState) error {
	kb.publishMemory(state)

	if err := kb.store.Save(ctx, state); err != nil {
		logger.Warn("persist memory: %v", err)
	}
	kb.writeNotes(ctx, state)

	if _, err := kb.rebuild(ctx); err != nil {
		return err
	}
	return nil
}

func (kb *KnowledgeBase) publishMemory(state domain.MemoryState) {
	prev := kb.memory.Load()
	kb.memory.Store(&memorySnapshot{state: state.Clone(), version: prev.version + 1})
}

func (kb *KnowledgeBase) writeNotes(ctx context.Context, state domain.MemoryState) {
	if err := kb.notes.WriteNotes(ctx, state.Notes()); err != nil {
		logger.Warn("write memory notes: %v", err)
	}
}

// Close releases the memory store.
func (kb *KnowledgeBase) Close() error {
	return kb.store.Close()
}
