package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/kbchat/internal/logger"
)

// llmCheckTimeout bounds the --check-llm probe.
const llmCheckTimeout = 5 * time.Second

var (
	servePort     int
	serveCheckLLM bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat API",
	Long: `Start the JSON HTTP API.

Endpoints:
  GET  /health              service and index status
  POST /api/reindex         rebuild the index from the kb directory
  GET  /api/debug_context   ranking for ?q=... without calling the model
  GET  /api/memory          learned memory
  POST /api/memory/reset    clear learned memory
  POST /api/chat            {"message": "...", "user_hint": "..."}

With kb.watch enabled the index is rebuilt whenever corpus files change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default server.port)")
	serveCmd.Flags().BoolVar(&serveCheckLLM, "check-llm", false, "fail if the model service is unreachable")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	return withApp(ctx, func(app *App) error {
		if serveCheckLLM {
			pingCtx, cancel := context.WithTimeout(ctx, llmCheckTimeout)
			err := app.LLM.Ping(pingCtx)
			cancel()
			if err != nil {
				return fmt.Errorf("model service unreachable at %s: %w", app.Settings.LLM.BaseURL, err)
			}
		}

		if app.Settings.KB.Watch {
			go watchCorpus(ctx, app)
		}

		server, err := httpapi.NewServer(httpapi.Ports{
			Chat:      app.Chat,
			Knowledge: app.KB,
			Memory:    app.KB,
		}, httpapi.Info{
			Model:           app.LLM.ModelName(),
			BaseURL:         app.Settings.LLM.BaseURL,
			TopK:            app.Settings.Retrieval.TopK,
			StrictThreshold: app.Settings.Retrieval.StrictThreshold,
		})
		if err != nil {
			return err
		}

		port := app.Settings.Server.Port
		if servePort > 0 {
			port = servePort
		}
		return server.Run(ctx, fmt.Sprintf(":%d", port))
	})
}

// watchCorpus rebuilds the index after each burst of corpus changes.
func watchCorpus(ctx context.Context, app *App) {
	logger.Info("watching %s for changes", app.Corpus.Root())
	err := app.Corpus.Watch(ctx, func() {
		if _, err := app.KB.Reindex(ctx); err != nil {
			logger.Warn("reindex after change: %v", err)
		}
	})
	if err != nil && ctx.Err() == nil {
		logger.Warn("corpus watcher stopped: %v", err)
	}
}
