// Package file persists memory state as a JSON file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/fsutil"
)

// Ensure MemoryStore implements the interface.
var _ driven.MemoryStore = (*MemoryStore)(nil)

// DefaultFileName is the memory file inside the data directory.
const DefaultFileName = "memory.json"

// MemoryStore is a JSON-file implementation of driven.MemoryStore.
// Saves write a temporary file and rename it over the target.
type MemoryStore struct {
	mu   sync.Mutex
	path string
}

// NewMemoryStore creates a store at dataDir/memory.json, creating dataDir if needed.
func NewMemoryStore(dataDir string) (*MemoryStore, error) {
	if dataDir == "" {
		dataDir = domain.DefaultMemoryDir
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &MemoryStore{path: filepath.Join(dataDir, DefaultFileName)}, nil
}

// Path returns the memory file path.
func (s *MemoryStore) Path() string {
	return s.path
}

// fileState is the on-disk shape. Missing fields decode to their zero value.
type fileState struct {
	SelfName     *string           `json:"selfName"`
	Facts        []string          `json:"facts"`
	CompanyAlias map[string]string `json:"companyAlias"`
}

// Load reads the memory file. A missing file or undecodable content yields
// an empty state and a defaulted status rather than an error return path
// that callers must handle.
func (s *MemoryStore) Load(_ context.Context) (domain.MemoryState, domain.LoadStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.EmptyMemory(), domain.LoadStatusDefaultedMissing, nil
	}
	if err != nil {
		return domain.EmptyMemory(), domain.LoadStatusDefaultedCorrupt, fmt.Errorf("%w: read %s: %w", domain.ErrCorruptState, s.path, err)
	}

	var fsState fileState
	if err := json.Unmarshal(data, &fsState); err != nil {
		return domain.EmptyMemory(), domain.LoadStatusDefaultedCorrupt, fmt.Errorf("%w: decode %s: %w", domain.ErrCorruptState, s.path, err)
	}

	state := domain.EmptyMemory()
	if fsState.SelfName != nil {
		state.SelfName = *fsState.SelfName
	}
	for _, f := range fsState.Facts {
		state.AddFact(f)
	}
	for k, v := range fsState.CompanyAlias {
		state.CompanyAlias[k] = v
	}
	return state, domain.LoadStatusLoaded, nil
}

// Save writes state atomically.
func (s *MemoryStore) Save(_ context.Context, state domain.MemoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := fileState{Facts: state.Facts, CompanyAlias: state.CompanyAlias}
	if state.SelfName != "" {
		out.SelfName = &state.SelfName
	}
	if out.Facts == nil {
		out.Facts = []string{}
	}
	if out.CompanyAlias == nil {
		out.CompanyAlias = map[string]string{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("save memory: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *MemoryStore) Close() error {
	return nil
}
