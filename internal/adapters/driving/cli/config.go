package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage podseek configuration",
	Long: `Reads and writes settings in the TOML configuration file.

Common keys:
  openai.api_key       OpenAI key for embeddings and answers
  pinecone.api_key     Pinecone API key
  pinecone.index_host  Pinecone index endpoint URL
  cohere.api_key       Cohere key for reranking
  youtube.api_key      YouTube Data API key for video metadata`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgStore == nil {
			return errors.New("config store not available")
		}
		if err := cfgStore.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("set %s: %w", args[0], err)
		}
		cmd.Printf("Set %s\n", args[0])
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgStore == nil {
			return errors.New("config store not available")
		}
		val, ok := cfgStore.Get(args[0])
		if !ok {
			return fmt.Errorf("key %s is not set", args[0])
		}
		cmd.Printf("%v\n", val)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgStore == nil {
			return errors.New("config store not available")
		}
		cmd.Println(cfgStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
