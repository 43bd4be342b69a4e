// Package filesystem reads the corpus from a local directory tree.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/logger"
)

// Ensure Connector implements the interfaces.
var (
	_ driven.Corpus        = (*Connector)(nil)
	_ driven.NotesWriter   = (*Connector)(nil)
	_ driven.CorpusWatcher = (*Connector)(nil)
)

// DefaultNotesName is the basename of the memory notes document.
const DefaultNotesName = "_memory_notes.md"

// Connector reads eligible files from a corpus directory.
type Connector struct {
	root      string
	notesName string
	watch     WatchOptions
}

// Option configures a Connector.
type Option func(*Connector)

// WithNotesName overrides the notes document basename.
func WithNotesName(name string) Option {
	return func(c *Connector) { c.notesName = name }
}

// WithWatchOptions overrides the watcher settings.
func WithWatchOptions(opts WatchOptions) Option {
	return func(c *Connector) { c.watch = opts }
}

// New creates a connector rooted at root.
func New(root string, opts ...Option) *Connector {
	c := &Connector{
		root:      root,
		notesName: DefaultNotesName,
		watch:     DefaultWatchOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the corpus directory.
func (c *Connector) Root() string {
	return c.root
}

// Scan creates the root if missing and returns every eligible file in
// lexical path order. Files that cannot be read are logged and skipped.
func (c *Connector) Scan(ctx context.Context) ([]domain.RawDocument, error) {
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		return nil, fmt.Errorf("filesystem: create corpus dir: %w", err)
	}

	var docs []domain.RawDocument
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Warn("filesystem: skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != c.root && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		mime, ok := detectMIMEType(path)
		if !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("filesystem: skipping unreadable %s: %v", path, err)
			return nil
		}
		docs = append(docs, domain.RawDocument{
			Path:     c.relative(path),
			MIMEType: mime,
			Content:  content,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filesystem: walk %s: %w", c.root, err)
	}
	return docs, nil
}

// relative returns path relative to the root with forward slashes.
func (c *Connector) relative(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// detectMIMEType maps corpus extensions to normaliser MIME types.
// Only plain text and markdown are eligible.
func detectMIMEType(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return "text/plain", true
	case ".md", ".markdown":
		return "text/markdown", true
	default:
		return "", false
	}
}

// isHidden reports whether a path element is a dotfile.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
