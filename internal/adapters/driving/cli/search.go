package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank documents against a query",
	Long: `Shows how a query ranks against the knowledge base without calling the model.

Each document is scored as overlap*5 + tf-idf, where overlap counts the
distinct query tokens found in the document text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default retrieval.top_k)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	return withApp(cmd.Context(), func(app *App) error {
		limit := searchLimit
		if limit <= 0 {
			limit = app.Settings.Retrieval.TopK
		}

		debug := app.KB.Debug(query, limit)
		if searchJSON {
			return outputJSON(cmd, debug)
		}
		outputSearchTable(cmd, debug)
		return nil
	})
}

func outputSearchTable(cmd *cobra.Command, debug domain.DebugContext) {
	if len(debug.Hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for _, h := range debug.Hits {
		// Format: [N] source (score) overlap/tfidf
		cmd.Printf("  [%d] %s (%.4f)\n", h.Rank, h.Source, h.Score)
		cmd.Printf("      overlap=%d tfidf=%.4f\n", h.Overlap, h.TFIDF)
		if h.Preview != "" {
			cmd.Printf("      %s\n", h.Preview)
		}
		cmd.Println()
	}
}
