package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/kbchat/internal/fsutil"
)

// NotesSource returns the corpus-relative path of the notes document.
func (c *Connector) NotesSource() string {
	return c.notesName
}

// WriteNotes atomically replaces the notes document.
// The content is written to a temporary file in the corpus root and renamed
// over the target, so readers see either the old or the new file.
func (c *Connector) WriteNotes(_ context.Context, content string) error {
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		return fmt.Errorf("filesystem: create corpus dir: %w", err)
	}
	return fsutil.WriteFileAtomic(filepath.Join(c.root, c.notesName), []byte(content), 0o644)
}
