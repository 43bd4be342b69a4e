package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var memoryJSON bool

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect or clear learned memory",
	Long: `Learned memory holds the self name and the facts recorded from chats.
It is persisted by the configured memory backend and mirrored into the
knowledge base as a notes document.`,
	RunE: runMemoryShow,
}

var memoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show learned memory",
	Args:  cobra.NoArgs,
	RunE:  runMemoryShow,
}

var memoryResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear learned memory",
	Args:  cobra.NoArgs,
	RunE:  runMemoryReset,
}

func init() {
	memoryCmd.PersistentFlags().BoolVar(&memoryJSON, "json", false, "output memory as JSON")
	memoryCmd.AddCommand(memoryShowCmd)
	memoryCmd.AddCommand(memoryResetCmd)
	rootCmd.AddCommand(memoryCmd)
}

func runMemoryShow(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(app *App) error {
		state := app.KB.Memory()
		if memoryJSON {
			return outputJSON(cmd, state)
		}

		name := state.SelfName
		if name == "" {
			name = "(unknown)"
		}
		cmd.Printf("Self name: %s\n", name)
		cmd.Printf("Facts (%d):\n", len(state.Facts))
		for _, f := range state.Facts {
			cmd.Printf("  - %s\n", f)
		}
		return nil
	})
}

func runMemoryReset(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(app *App) error {
		state, err := app.KB.ResetMemory(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		if memoryJSON {
			return outputJSON(cmd, state)
		}
		cmd.Println("Memory cleared.")
		return nil
	})
}
