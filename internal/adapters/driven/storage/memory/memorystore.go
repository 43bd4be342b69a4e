// Package memory provides in-memory implementations of the storage ports.
// State lives only as long as the process; it backs tests and the
// "memory" backend.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
)

// Ensure MemoryStore implements the interface.
var _ driven.MemoryStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of driven.MemoryStore.
type MemoryStore struct {
	mu    sync.RWMutex
	state *domain.MemoryState
	saves int
	err   error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved state, or an empty state if nothing was saved.
func (s *MemoryStore) Load(_ context.Context) (domain.MemoryState, domain.LoadStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return domain.EmptyMemory(), domain.LoadStatusDefaultedMissing, nil
	}
	return s.state.Clone(), domain.LoadStatusLoaded, nil
}

// Save stores a copy of state.
func (s *MemoryStore) Save(_ context.Context, state domain.MemoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	c := state.Clone()
	s.state = &c
	s.saves++
	return nil
}

// Saves returns the number of successful saves.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// FailSaves makes every later Save return err. A nil err restores normal saves.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Close releases resources.
func (s *MemoryStore) Close() error {
	return nil
}
