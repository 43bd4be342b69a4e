package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the index and report the corpus size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(app *App) error {
			stats, err := app.KB.Reindex(cmd.Context())
			if err != nil {
				return fmt.Errorf("reindex failed: %w", err)
			}
			cmd.Printf("Indexed %d files from %s (version %d)\n", stats.Files, app.Corpus.Root(), stats.Version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
