package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morphuslabs/podseek/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search interface",
	RunE: func(_ *cobra.Command, _ []string) error {
		if searchService == nil {
			return errors.New("search not configured: set openai.api_key, pinecone.api_key and pinecone.index_host")
		}
		if err := tui.NewApp(searchService).Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
