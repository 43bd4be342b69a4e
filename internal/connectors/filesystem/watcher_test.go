package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleFsEvent(t *testing.T) {
	root := t.TempDir()
	c := New(root)
	dir := filepath.Join(root, "newdir")
	require.NoError(t, os.Mkdir(dir, 0o755))

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create txt", filepath.Join(root, "a.txt"), fsnotify.Create, true},
		{"write md", filepath.Join(root, "a.md"), fsnotify.Write, true},
		{"remove txt", filepath.Join(root, "gone.txt"), fsnotify.Remove, true},
		{"rename md", filepath.Join(root, "old.md"), fsnotify.Rename, true},
		{"chmod ignored", filepath.Join(root, "a.txt"), fsnotify.Chmod, false},
		{"non corpus extension", filepath.Join(root, "a.png"), fsnotify.Create, false},
		{"hidden file", filepath.Join(root, ".a.txt"), fsnotify.Create, false},
		{"file in hidden dir", filepath.Join(root, ".git", "a.txt"), fsnotify.Write, false},
		{"notes file", filepath.Join(root, DefaultNotesName), fsnotify.Write, false},
		{"new directory", dir, fsnotify.Create, true},
		{"removed directory", filepath.Join(root, "people"), fsnotify.Remove, true},
		{"renamed directory", filepath.Join(root, "people"), fsnotify.Rename, true},
		{"removed hidden directory", filepath.Join(root, ".cache"), fsnotify.Remove, false},
		{"removed non corpus file", filepath.Join(root, "a.png"), fsnotify.Remove, false},
		{"extensionless write ignored", filepath.Join(root, "Makefile"), fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.handleFsEvent(nil, fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnector_Watch_DirectoryRemoval(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "people")
	require.NoError(t, os.Mkdir(sub, 0o755))

	c := New(root, WithWatchOptions(WatchOptions{MergeDelay: 50 * time.Millisecond}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	go func() { _ = c.Watch(ctx, func() { changes <- struct{}{} }) }()

	// An empty directory, so only the directory event itself can fire.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.Remove(sub))

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}

func TestConnector_Watch_MissingRoot(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "missing"))

	err := c.Watch(context.Background(), func() {})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "root path error")
}

func TestConnector_Watch_MergesBurst(t *testing.T) {
	root := t.TempDir()
	c := New(root, WithWatchOptions(WatchOptions{MergeDelay: 100 * time.Millisecond}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, func() { changes <- struct{}{} })
	}()

	// Give the watcher time to register the root.
	time.Sleep(100 * time.Millisecond)
	for _, name := range []string{"a.txt", "b.txt", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.LessOrEqual(t, len(changes), 1)
}
