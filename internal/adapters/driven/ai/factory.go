// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamallm "github.com/custodia-labs/kbchat/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/kbchat/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/kbchat/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
func CreateAndValidateLLMService(ctx context.Context, settings domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable at %s (%w)",
			domain.ErrLLMUnavailable, settings.BaseURL, err)
	}

	return svc, nil
}

// CreateLLMService creates the LLM service selected by settings, wrapped in
// a rate limiter when one is configured.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	var svc driven.LLMService

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = createOllamaLLM(settings)

	case domain.AIProviderOpenAI, "":
		svc = createOpenAILLM(settings)

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrInvalidInput, settings.Provider)
	}

	return ratelimit.Wrap(svc, settings.RateLimit, settings.Burst), nil
}

// createOllamaLLM creates an Ollama LLM service. The LM Studio default base
// URL is replaced with the Ollama default.
func createOllamaLLM(settings domain.LLMSettings) driven.LLMService {
	baseURL := settings.BaseURL
	if baseURL == domain.DefaultLLMBaseURL {
		baseURL = ollamallm.DefaultBaseURL
	}
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: baseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

// createOpenAILLM creates an OpenAI-compatible LLM service.
func createOpenAILLM(settings domain.LLMSettings) driven.LLMService {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}
