package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

var (
	askHint string
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question",
	Long: `Run a single question through the chat pipeline and print the reply.

The reply is followed by the response mode and the documents it used.
Use --json to print the full reply with its trace metadata.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askHint, "hint", "", "name of the user asking")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the reply as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	req := domain.ChatRequest{Message: strings.Join(args, " "), UserHint: askHint}

	return withApp(cmd.Context(), func(app *App) error {
		reply, err := app.Chat.Chat(cmd.Context(), req)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyMessage) {
				return errors.New("message required")
			}
			return fmt.Errorf("chat failed: %w", err)
		}

		if askJSON {
			return outputJSON(cmd, reply)
		}
		outputReply(cmd, reply)
		return nil
	})
}

func outputReply(cmd *cobra.Command, reply *domain.ChatReply) {
	cmd.Println(reply.Reply)
	cmd.Println()
	cmd.Printf("mode: %s  trace: %s\n", reply.Meta.Mode, reply.Meta.TraceID)
	if reply.Meta.Source != "" {
		cmd.Printf("source: %s\n", reply.Meta.Source)
	}
	for _, c := range reply.Meta.Context {
		cmd.Printf("  [%d] %s (%.4f)\n", c.Rank, c.Source, c.Score)
	}
	if reply.Meta.Learned != "" {
		cmd.Printf("learned: %s\n", reply.Meta.Learned)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
