package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is any OpenAI-compatible /chat/completions API (LM Studio, vLLM, OpenAI).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI-compatible API"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// MemoryBackend selects where memory state is persisted.
type MemoryBackend string

// Available memory backends.
const (
	// MemoryBackendFile stores state as a JSON file.
	MemoryBackendFile MemoryBackend = "file"

	// MemoryBackendSQLite stores state in a SQLite database.
	MemoryBackendSQLite MemoryBackend = "sqlite"

	// MemoryBackendMemory keeps state in process memory only.
	MemoryBackendMemory MemoryBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b MemoryBackend) IsValid() bool {
	return b == MemoryBackendFile || b == MemoryBackendSQLite || b == MemoryBackendMemory
}

// Settings is the fully resolved runtime configuration.
type Settings struct {
	Server    ServerSettings
	LLM       LLMSettings
	KB        KBSettings
	Retrieval RetrievalSettings
	Memory    MemorySettings
	Company   CompanySettings
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Port int
}

// LLMSettings configures the generative model used by the general fallback.
type LLMSettings struct {
	Provider AIProvider
	BaseURL  string
	Model    string
	APIKey   string
	Timeout  time.Duration

	// RateLimit is the maximum model calls per second. Zero disables limiting.
	RateLimit float64
	Burst     int
}

// IsConfigured returns true if a provider and model are set.
func (s *LLMSettings) IsConfigured() bool {
	return s.Provider != "" && s.Model != ""
}

// KBSettings configures the corpus.
type KBSettings struct {
	Dir string

	// Watch rebuilds the index when corpus files change.
	Watch bool
}

// RetrievalSettings configures ranking and the deterministic gate.
type RetrievalSettings struct {
	TopK            int
	StrictThreshold int
}

// MemorySettings configures memory persistence.
type MemorySettings struct {
	Backend MemoryBackend
	Dir     string
}

// CompanySettings configures company-profile detection.
type CompanySettings struct {
	// Identifier is the token that marks a company-profile query.
	Identifier string
}

// Default configuration values.
const (
	DefaultPort              = 3000
	DefaultLLMBaseURL        = "http://127.0.0.1:1234/v1"
	DefaultLLMModel          = "llama-3.2-1b-instruct"
	DefaultLLMAPIKey         = "lm-studio"
	DefaultLLMTimeout        = 60 * time.Second
	DefaultKBDir             = "kb"
	DefaultTopK              = 4
	DefaultStrictThreshold   = 1
	DefaultMemoryDir         = "data"
	DefaultCompanyIdentifier = "TRANSDEV.CO.TH"
)

// DefaultSettings returns settings with every field at its default.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Port: DefaultPort},
		LLM: LLMSettings{
			Provider: AIProviderOpenAI,
			BaseURL:  DefaultLLMBaseURL,
			Model:    DefaultLLMModel,
			APIKey:   DefaultLLMAPIKey,
			Timeout:  DefaultLLMTimeout,
			Burst:    1,
		},
		KB:        KBSettings{Dir: DefaultKBDir},
		Retrieval: RetrievalSettings{TopK: DefaultTopK, StrictThreshold: DefaultStrictThreshold},
		Memory:    MemorySettings{Backend: MemoryBackendFile, Dir: DefaultMemoryDir},
		Company:   CompanySettings{Identifier: DefaultCompanyIdentifier},
	}
}

// Validate checks the settings for values that cannot work at runtime.
// TopK is not checked because retrieval enforces a minimum of one.
func (s *Settings) Validate() error {
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidInput, s.Server.Port)
	}
	if s.LLM.Provider != "" && !s.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: llm provider %q", ErrUnsupportedType, s.LLM.Provider)
	}
	if !s.Memory.Backend.IsValid() {
		return fmt.Errorf("%w: memory backend %q", ErrUnsupportedType, s.Memory.Backend)
	}
	if s.KB.Dir == "" {
		return fmt.Errorf("%w: kb dir is empty", ErrInvalidInput)
	}
	if s.LLM.RateLimit < 0 {
		return fmt.Errorf("%w: negative llm rate limit", ErrInvalidInput)
	}
	return nil
}
