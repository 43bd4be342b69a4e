package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{name: "openai is valid", provider: AIProviderOpenAI, expected: true},
		{name: "ollama is valid", provider: AIProviderOllama, expected: true},
		{name: "empty string is invalid", provider: AIProvider(""), expected: false},
		{name: "unknown is invalid", provider: AIProvider("anthropic"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "OpenAI-compatible API", AIProviderOpenAI.Description())
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "Unknown", AIProvider("x").Description())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 3000, s.Server.Port)
	assert.Equal(t, "http://127.0.0.1:1234/v1", s.LLM.BaseURL)
	assert.Equal(t, "llama-3.2-1b-instruct", s.LLM.Model)
	assert.Equal(t, "kb", s.KB.Dir)
	assert.Equal(t, 4, s.Retrieval.TopK)
	assert.Equal(t, 1, s.Retrieval.StrictThreshold)
	assert.Equal(t, MemoryBackendFile, s.Memory.Backend)
	assert.Equal(t, "TRANSDEV.CO.TH", s.Company.Identifier)
	assert.NoError(t, s.Validate())
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		target error
	}{
		{"bad port", func(s *Settings) { s.Server.Port = 70000 }, ErrInvalidInput},
		{"bad provider", func(s *Settings) { s.LLM.Provider = "gemini" }, ErrUnsupportedType},
		{"bad backend", func(s *Settings) { s.Memory.Backend = "redis" }, ErrUnsupportedType},
		{"empty kb dir", func(s *Settings) { s.KB.Dir = "" }, ErrInvalidInput},
		{"negative rate", func(s *Settings) { s.LLM.RateLimit = -1 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.target)
		})
	}
}

func TestSettings_Validate_ZeroTopKAllowed(t *testing.T) {
	s := DefaultSettings()
	s.Retrieval.TopK = 0

	assert.NoError(t, s.Validate())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.True(t, (&LLMSettings{Provider: AIProviderOpenAI, Model: "m"}).IsConfigured())
	assert.False(t, (&LLMSettings{Provider: AIProviderOpenAI}).IsConfigured())
	assert.False(t, (&LLMSettings{}).IsConfigured())
}
