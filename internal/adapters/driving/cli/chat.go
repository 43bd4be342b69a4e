package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui"
)

var chatHint string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive terminal chat",
	Long: `Start an interactive chat with the knowledge base.

Controls:
  enter    - Send
  tab      - Cycle chat, inspect and memory views
  ctrl+r   - Reindex
  f1       - Toggle help
  ctrl+c   - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatHint, "hint", "", "name of the user chatting")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chat requires a terminal (use \"kbchat ask\" instead)")
	}

	return withApp(cmd.Context(), func(app *App) error {
		ui, err := tui.NewApp(tui.NewPorts(app.Chat, app.KB, app.KB), app.Settings.Retrieval.TopK)
		if err != nil {
			return fmt.Errorf("failed to create TUI: %w", err)
		}

		ui.WithContext(cmd.Context()).WithUserHint(chatHint)
		if err := ui.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}
