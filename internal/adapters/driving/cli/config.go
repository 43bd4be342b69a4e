package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbchat/internal/adapters/driven/config/file"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with every setting at its default",
	Long: `Write a config file with every setting at its default.

The format follows the extension: .toml, .yaml or .yml.
Defaults to kbchat.toml in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved setting for every key",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := file.DefaultConfigFiles[0]
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := file.WriteDefaults(path); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := file.Loader{ConfigPath: configFile}.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cmd.Printf("server.port                 = %d\n", settings.Server.Port)
	cmd.Printf("llm.provider                = %s\n", settings.LLM.Provider)
	cmd.Printf("llm.base_url                = %s\n", settings.LLM.BaseURL)
	cmd.Printf("llm.model                   = %s\n", settings.LLM.Model)
	cmd.Printf("llm.api_key                 = %s\n", maskSecret(settings.LLM.APIKey))
	cmd.Printf("llm.timeout                 = %s\n", settings.LLM.Timeout)
	cmd.Printf("llm.rate_limit              = %g\n", settings.LLM.RateLimit)
	cmd.Printf("llm.burst                   = %d\n", settings.LLM.Burst)
	cmd.Printf("kb.dir                      = %s\n", settings.KB.Dir)
	cmd.Printf("kb.watch                    = %t\n", settings.KB.Watch)
	cmd.Printf("retrieval.top_k             = %d\n", settings.Retrieval.TopK)
	cmd.Printf("retrieval.strict_threshold  = %d\n", settings.Retrieval.StrictThreshold)
	cmd.Printf("memory.backend              = %s\n", settings.Memory.Backend)
	cmd.Printf("memory.dir                  = %s\n", settings.Memory.Dir)
	cmd.Printf("company.identifier          = %s\n", settings.Company.Identifier)
	return nil
}

// maskSecret keeps the last four characters of a key.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
