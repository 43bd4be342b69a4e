package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// DefaultConfigFiles are tried in order when no config path is given.
var DefaultConfigFiles = []string{"kbchat.toml", "kbchat.yaml", "kbchat.yml"}

// DefaultEnvFile is read when present.
const DefaultEnvFile = ".env"

// Binding ties a config key to its environment variable.
type Binding struct {
	Key string
	Env string
	set func(s *domain.Settings, v string) error
}

// Bindings lists every setting in file-key order.
var Bindings = []Binding{
	{"server.port", "PORT", func(s *domain.Settings, v string) error { return setInt(&s.Server.Port, v) }},
	{"llm.provider", "LM_PROVIDER", func(s *domain.Settings, v string) error {
		s.LLM.Provider = domain.AIProvider(strings.ToLower(v))
		return nil
	}},
	{"llm.base_url", "LM_BASE_URL", func(s *domain.Settings, v string) error { s.LLM.BaseURL = v; return nil }},
	{"llm.model", "LM_MODEL", func(s *domain.Settings, v string) error { s.LLM.Model = v; return nil }},
	{"llm.api_key", "LM_API_KEY", func(s *domain.Settings, v string) error { s.LLM.APIKey = v; return nil }},
	{"llm.timeout", "LM_TIMEOUT", func(s *domain.Settings, v string) error { return setDuration(&s.LLM.Timeout, v) }},
	{"llm.rate_limit", "LM_RATE_LIMIT", func(s *domain.Settings, v string) error { return setFloat(&s.LLM.RateLimit, v) }},
	{"llm.burst", "LM_BURST", func(s *domain.Settings, v string) error { return setInt(&s.LLM.Burst, v) }},
	{"kb.dir", "KB_DIR", func(s *domain.Settings, v string) error { s.KB.Dir = v; return nil }},
	{"kb.watch", "KB_WATCH", func(s *domain.Settings, v string) error { return setBool(&s.KB.Watch, v) }},
	{"retrieval.top_k", "TOP_K", func(s *domain.Settings, v string) error { return setInt(&s.Retrieval.TopK, v) }},
	{"retrieval.strict_threshold", "STRICT_THRESHOLD", func(s *domain.Settings, v string) error {
		return setInt(&s.Retrieval.StrictThreshold, v)
	}},
	{"memory.backend", "MEMORY_BACKEND", func(s *domain.Settings, v string) error {
		s.Memory.Backend = domain.MemoryBackend(strings.ToLower(v))
		return nil
	}},
	{"memory.dir", "MEMORY_DIR", func(s *domain.Settings, v string) error { s.Memory.Dir = v; return nil }},
	{"company.identifier", "COMPANY_ID", func(s *domain.Settings, v string) error { s.Company.Identifier = v; return nil }},
}

// Loader resolves settings. Later sources override earlier ones:
// defaults, config file, .env file, process environment.
type Loader struct {
	// ConfigPath is an explicit config file. Empty tries DefaultConfigFiles.
	ConfigPath string

	// EnvFile is the dotenv file. Empty uses DefaultEnvFile.
	EnvFile string

	// LookupEnv reads the process environment. Nil uses os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load returns validated settings.
func (l Loader) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	store, err := l.openConfig()
	if err != nil {
		return settings, err
	}
	if store != nil {
		for _, b := range Bindings {
			v, ok := store.GetString(b.Key)
			if !ok {
				continue
			}
			if err := b.set(&settings, v); err != nil {
				return settings, fmt.Errorf("%s in %s: %w", b.Key, store.Path(), err)
			}
		}
	}

	env, err := l.environment()
	if err != nil {
		return settings, err
	}
	for _, b := range Bindings {
		v, ok := env(b.Env)
		if !ok || v == "" {
			continue
		}
		if err := b.set(&settings, v); err != nil {
			return settings, fmt.Errorf("%s: %w", b.Env, err)
		}
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// openConfig returns nil when no config file exists and none was requested.
func (l Loader) openConfig() (*ConfigStore, error) {
	if l.ConfigPath != "" {
		if _, err := os.Stat(l.ConfigPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return NewConfigStore(l.ConfigPath)
	}
	for _, name := range DefaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return NewConfigStore(name)
		}
	}
	return nil, nil
}

// environment merges the dotenv file under the process environment so
// that exported variables win, matching godotenv.Load.
func (l Loader) environment() (func(string) (string, bool), error) {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envFile := l.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", envFile, err)
		}
		dotenv = map[string]string{}
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// WriteDefaults writes every setting at its default value to path.
func WriteDefaults(path string) error {
	store, err := NewConfigStore(path)
	if err != nil {
		return err
	}
	d := domain.DefaultSettings()
	values := map[string]any{
		"server.port":                int64(d.Server.Port),
		"llm.provider":               string(d.LLM.Provider),
		"llm.base_url":               d.LLM.BaseURL,
		"llm.model":                  d.LLM.Model,
		"llm.api_key":                d.LLM.APIKey,
		"llm.timeout":                d.LLM.Timeout.String(),
		"llm.rate_limit":             d.LLM.RateLimit,
		"llm.burst":                  int64(d.LLM.Burst),
		"kb.dir":                     d.KB.Dir,
		"kb.watch":                   d.KB.Watch,
		"retrieval.top_k":            int64(d.Retrieval.TopK),
		"retrieval.strict_threshold": int64(d.Retrieval.StrictThreshold),
		"memory.backend":             string(d.Memory.Backend),
		"memory.dir":                 d.Memory.Dir,
		"company.identifier":         d.Company.Identifier,
	}
	store.mu.Lock()
	for k, v := range values {
		store.data[k] = v
	}
	store.mu.Unlock()
	return store.Save()
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidInput, v)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, v)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %q is not a boolean", domain.ErrInvalidInput, v)
	}
	*dst = b
	return nil
}

// setDuration accepts Go durations ("45s") or a bare number of milliseconds.
func setDuration(dst *time.Duration, v string) error {
	v = strings.TrimSpace(v)
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		*dst = time.Duration(ms) * time.Millisecond
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a duration", domain.ErrInvalidInput, v)
	}
	*dst = d
	return nil
}
