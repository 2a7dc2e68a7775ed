/*
PURPOSE:
  Defines the root Cobra command for the Grumpi Miner CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/grumpi-miner/main.go
  - Calls: Child commands (run, sample, dimensions, list-models, init)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/grumpi-miner/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "grumpi-miner",
		Short: "N-way combination testing across configuration dimensions",
		Long: `Grumpi Miner explores interaction effects between configuration
dimensions: it generates every (or a sampled subset of) N-way combination of
their variant values, runs a predicate against each one — optionally backed
by an Ollama model — and reports pass/fail statistics per dimension and per
run. Use 'run --help' for matrix options.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./grumpi_miner.yaml)")
}
