// Package cli provides the kbchat command line interface.
// Commands load settings, wire the services they need and drive them
// through the HTTP, MCP or terminal adapters.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbchat/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	configFile string
	verbose    bool
	logJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "kbchat",
	Short: "Chat with a local knowledge base",
	Long: `kbchat answers questions from a directory of text and markdown files.

Grounded answers are taken from the best-matching document. Questions the
knowledge base cannot answer fall back to an OpenAI-compatible or Ollama model.

Settings are read from kbchat.toml (or kbchat.yaml), then .env, then the
process environment. Run "kbchat config init" to write a starter file.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetJSON(logJSON)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default kbchat.toml, kbchat.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace the retrieval pipeline")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON records")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. ctx is cancelled on shutdown signals.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
