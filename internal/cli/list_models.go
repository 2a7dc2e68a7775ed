/*
PURPOSE:
  Defines the 'list-models' subcommand.
  Helps debug connectivity and model discovery before a judged run.

REQUIREMENTS:
  User-specified:
  - List available models on the configured Ollama host.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Client.GetModels

ERROR HANDLING:
  - Prints error if the host is unreachable.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  grumpi-miner list-models --url http://ollama-1:11434

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/grumpi-miner/internal/config"
	"github.com/daryltucker/grumpi-miner/internal/engine"
)

var urlOverride string

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List available models on the Ollama host",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if urlOverride != "" {
			cfg.BaseURL = urlOverride
		}

		client := engine.NewClient(cfg)
		fmt.Printf("Querying %s...\n", cfg.BaseURL)
		models, err := client.GetModels(context.Background())
		if err != nil {
			return err
		}
		for _, m := range models {
			fmt.Printf("- %s\n", m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listModelsCmd)
	listModelsCmd.Flags().StringVar(&urlOverride, "url", "", "Ollama base URL (overrides config)")
}
