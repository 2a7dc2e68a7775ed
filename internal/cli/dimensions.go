/*
PURPOSE:
  Defines the 'dimensions' subcommand.
  Prints the effective dimension registry: built-in plus config-declared.

REQUIREMENTS:
  User-specified:
  - List every dimension and its variants.

ARCHITECTURE INTEGRATION:
  - Uses: internal/config, internal/dimension

ERROR HANDLING:
  - Returns error if an explicitly requested config file fails to load.

USAGE:
  grumpi-miner dimensions

RELATED FILES:
  - internal/dimension/defaults.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/grumpi-miner/internal/config"
)

var dimensionsCmd = &cobra.Command{
	Use:   "dimensions",
	Short: "List the registered dimensions and their variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		reg := cfg.BuildRegistry()
		for _, d := range reg.Dimensions() {
			fmt.Printf("%s (%d variants)\n", d.Name, len(d.Variants))
			for _, v := range d.Variants {
				fmt.Printf("  - %s\n", v)
			}
		}
		fmt.Printf("\n%d dimensions registered\n", reg.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dimensionsCmd)
}
