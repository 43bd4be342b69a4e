package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoader_Defaults(t *testing.T) {
	dir := t.TempDir()
	l := Loader{
		ConfigPath: "",
		EnvFile:    filepath.Join(dir, "missing.env"),
		LookupEnv:  envMap(nil),
	}
	t.Chdir(dir)

	got, err := l.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestLoader_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "kbchat.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[server]
port = 4000

[llm]
model = "from-file"
base_url = "http://file/v1"

[retrieval]
top_k = 2
`), 0600))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LM_MODEL=from-dotenv\nTOP_K=9\nLM_TIMEOUT=1500\n"), 0600))

	l := Loader{
		ConfigPath: cfg,
		EnvFile:    envFile,
		LookupEnv:  envMap(map[string]string{"TOP_K": "3", "KB_WATCH": "true", "PORT": ""}),
	}

	got, err := l.Load()

	require.NoError(t, err)
	assert.Equal(t, 4000, got.Server.Port, "empty env value does not override")
	assert.Equal(t, "http://file/v1", got.LLM.BaseURL)
	assert.Equal(t, "from-dotenv", got.LLM.Model)
	assert.Equal(t, 3, got.Retrieval.TopK, "process env wins over .env")
	assert.Equal(t, 1500*time.Millisecond, got.LLM.Timeout)
	assert.True(t, got.KB.Watch)
}

func TestLoader_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "kbchat.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("memory:\n  backend: sqlite\nllm:\n  timeout: 45s\n"), 0600))

	got, err := Loader{ConfigPath: cfg, EnvFile: filepath.Join(dir, "none"), LookupEnv: envMap(nil)}.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.MemoryBackendSQLite, got.Memory.Backend)
	assert.Equal(t, 45*time.Second, got.LLM.Timeout)
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad int", map[string]string{"TOP_K": "many"}},
		{"bad bool", map[string]string{"KB_WATCH": "sometimes"}},
		{"bad duration", map[string]string{"LM_TIMEOUT": "soon"}},
		{"bad backend", map[string]string{"MEMORY_BACKEND": "redis"}},
		{"bad provider", map[string]string{"LM_PROVIDER": "anthropic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Loader{EnvFile: filepath.Join(dir, "none"), LookupEnv: envMap(tt.env)}.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoader_MissingExplicitConfig(t *testing.T) {
	_, err := Loader{ConfigPath: filepath.Join(t.TempDir(), "nope.toml"), LookupEnv: envMap(nil)}.Load()

	assert.Error(t, err)
}

func TestWriteDefaults_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "kbchat.toml")

	require.NoError(t, WriteDefaults(cfg))
	got, err := Loader{ConfigPath: cfg, EnvFile: filepath.Join(dir, "none"), LookupEnv: envMap(nil)}.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}
