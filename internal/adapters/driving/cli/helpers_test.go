package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/core/services"
)

type stubLLM struct {
	reply string
}

func (l *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return l.reply, nil
}

func (l *stubLLM) ModelName() string            { return "stub" }
func (l *stubLLM) Ping(_ context.Context) error { return nil }
func (l *stubLLM) Close() error                 { return nil }

// setupTestApp points commands at a temporary corpus with in-process memory
// and a stub model. It returns the corpus directory.
func setupTestApp(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}

	settings := domain.DefaultSettings()
	settings.KB.Dir = root
	settings.Memory.Backend = domain.MemoryBackendMemory
	settings.Memory.Dir = t.TempDir()

	original := appLoader
	appLoader = func(ctx context.Context) (*App, error) {
		app, err := NewApp(ctx, settings)
		if err != nil {
			return nil, err
		}
		app.LLM = &stubLLM{reply: "general answer"}
		app.Chat = services.NewChatService(app.KB, app.LLM, services.ChatConfig{
			TopK:              settings.Retrieval.TopK,
			StrictThreshold:   settings.Retrieval.StrictThreshold,
			CompanyIdentifier: settings.Company.Identifier,
		})
		return app, nil
	}
	t.Cleanup(func() { appLoader = original })

	return root
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		askJSON, askHint = false, ""
		searchJSON, searchLimit = false, 0
		memoryJSON = false
		configForce = false
		versionShort = false
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
