package driven

import (
	"context"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// Corpus lists the eligible files under the corpus root.
type Corpus interface {
	// Root returns the corpus directory.
	Root() string

	// Scan creates the root if missing and returns every eligible file in a
	// stable order. Unreadable files are skipped, not reported as errors.
	Scan(ctx context.Context) ([]domain.RawDocument, error)
}

// NotesWriter persists the memory notes document inside the corpus.
type NotesWriter interface {
	// NotesSource returns the corpus-relative path of the notes document.
	NotesSource() string

	// WriteNotes atomically replaces the notes document with content.
	WriteNotes(ctx context.Context, content string) error
}

// CorpusWatcher reports corpus changes.
type CorpusWatcher interface {
	// Watch calls onChange after each burst of file changes until ctx ends.
	Watch(ctx context.Context, onChange func()) error
}
