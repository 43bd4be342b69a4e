package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/kbchat/internal/adapters/driven/ai"
	"github.com/custodia-labs/kbchat/internal/adapters/driven/config/file"
	filestore "github.com/custodia-labs/kbchat/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/kbchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kbchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kbchat/internal/connectors/filesystem"
	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/core/services"
	"github.com/custodia-labs/kbchat/internal/logger"
	"github.com/custodia-labs/kbchat/internal/normalisers"
)

// App holds the services wired for one command.
type App struct {
	Settings domain.Settings
	Corpus   *filesystem.Connector
	KB       *services.KnowledgeBase
	Chat     *services.ChatService
	LLM      driven.LLMService
}

// appLoader builds the App for a command. Tests replace it.
var appLoader = loadApp

// loadApp resolves settings from the --config file and the environment.
func loadApp(ctx context.Context) (*App, error) {
	settings, err := file.Loader{ConfigPath: configFile}.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return NewApp(ctx, settings)
}

// NewApp wires the services for settings and builds the initial index.
func NewApp(ctx context.Context, settings domain.Settings) (*App, error) {
	logger.Section("Startup")

	store, err := openMemoryStore(settings.Memory)
	if err != nil {
		return nil, err
	}

	corpus := filesystem.New(settings.KB.Dir)
	kb := services.NewKnowledgeBase(corpus, corpus, normalisers.Default(), store)

	status, err := kb.Open(ctx)
	if err != nil {
		kb.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("opening knowledge base: %w", err)
	}
	logger.Debug("memory %s from %s backend", status, settings.Memory.Backend)

	llm, err := ai.CreateLLMService(settings.LLM)
	if err != nil {
		kb.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("creating llm service: %w", err)
	}
	logger.Debug("llm %s at %s", llm.ModelName(), settings.LLM.BaseURL)

	chat := services.NewChatService(kb, llm, services.ChatConfig{
		TopK:              settings.Retrieval.TopK,
		StrictThreshold:   settings.Retrieval.StrictThreshold,
		CompanyIdentifier: settings.Company.Identifier,
	})

	return &App{
		Settings: settings,
		Corpus:   corpus,
		KB:       kb,
		Chat:     chat,
		LLM:      llm,
	}, nil
}

// openMemoryStore creates the store for the configured backend.
func openMemoryStore(cfg domain.MemorySettings) (driven.MemoryStore, error) {
	switch cfg.Backend {
	case domain.MemoryBackendFile, "":
		s, err := filestore.NewMemoryStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening memory file: %w", err)
		}
		return s, nil
	case domain.MemoryBackendSQLite:
		s, err := sqlite.NewStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening memory database: %w", err)
		}
		return s, nil
	case domain.MemoryBackendMemory:
		return memory.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: memory backend %q", domain.ErrUnsupportedType, cfg.Backend)
	}
}

// Close releases the model client and the memory store.
func (a *App) Close() error {
	return errors.Join(a.LLM.Close(), a.KB.Close())
}

// withApp loads the App, runs fn and closes the App.
func withApp(ctx context.Context, fn func(*App) error) error {
	app, err := appLoader(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close: %v", err)
		}
	}()
	return fn(app)
}
