package services

import (
	"context"
	"errors"
	"path"
	"sort"
	"sync"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/normalisers"
)

const testNotesName = "_memory_notes.md"

// fakeCorpus is an in-memory corpus that also stores the notes document.
type fakeCorpus struct {
	mu      sync.Mutex
	files   map[string]string
	scanErr error
	notes   int
}

func newFakeCorpus(files map[string]string) *fakeCorpus {
	c := &fakeCorpus{files: map[string]string{}}
	for k, v := range files {
		c.files[k] = v
	}
	return c
}

func (c *fakeCorpus) Root() string { return "kb" }

func (c *fakeCorpus) Scan(ctx context.Context) ([]domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanErr != nil {
		return nil, c.scanErr
	}

	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	docs := make([]domain.RawDocument, 0, len(paths))
	for _, p := range paths {
		mime := "text/plain"
		if path.Ext(p) == ".md" {
			mime = "text/markdown"
		}
		docs = append(docs, domain.RawDocument{Path: p, MIMEType: mime, Content: []byte(c.files[p])})
	}
	return docs, nil
}

func (c *fakeCorpus) put(p, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[p] = content
}

func (c *fakeCorpus) get(p string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files[p]
}

func (c *fakeCorpus) NotesSource() string { return testNotesName }

func (c *fakeCorpus) WriteNotes(_ context.Context, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[testNotesName] = content
	c.notes++
	return nil
}

// fakeStore is a memory store with scripted load results.
type fakeStore struct {
	mu         sync.Mutex
	state      domain.MemoryState
	status     domain.LoadStatus
	loadErr    error
	saveErr    error
	saves      int
	lastSaved  domain.MemoryState
	closeCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: domain.EmptyMemory(), status: domain.LoadStatusDefaultedMissing}
}

func (s *fakeStore) Load(_ context.Context) (domain.MemoryState, domain.LoadStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.status, s.loadErr
}

func (s *fakeStore) Save(_ context.Context, state domain.MemoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.lastSaved = state.Clone()
	return nil
}

func (s *fakeStore) Close() error {
	s.closeCalls++
	return nil
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// fakeLLM records every request.
type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests [][]driven.ChatMessage
	opts     []driven.ChatOptions
}

func (l *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, messages)
	l.opts = append(l.opts, opts)
	return l.reply, l.err
}

func (l *fakeLLM) ModelName() string            { return "fake-model" }
func (l *fakeLLM) Ping(_ context.Context) error { return nil }
func (l *fakeLLM) Close() error                 { return nil }

func (l *fakeLLM) calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

var errBoom = errors.New("boom")

func newTestKB(corpus *fakeCorpus, store *fakeStore) *KnowledgeBase {
	return NewKnowledgeBase(corpus, corpus, normalisers.Default(), store)
}
