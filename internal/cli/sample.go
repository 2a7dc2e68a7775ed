/*
PURPOSE:
  Defines the 'sample' subcommand: a tractable smoke run that samples
  dimension subsets uniformly instead of enumerating the full matrix.

REQUIREMENTS:
  User-specified:
  - At most samples-per-size combinations per subset size.
  - Optional --seed for reproducible sampling.

ARCHITECTURE INTEGRATION:
  - Calls: internal/generator.SampleCombinations, then the shared
    execute/report tail in run.go.

ERROR HANDLING:
  - Same as 'run'.

USAGE:
  grumpi-miner sample --samples 5 --seed 42

RELATED FILES:
  - internal/cli/run.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/daryltucker/grumpi-miner/internal/config"
	"github.com/daryltucker/grumpi-miner/internal/generator"
	"github.com/daryltucker/grumpi-miner/internal/output"
)

var (
	samplesOverride int
	sampleSeed      int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Execute a random sample of the combination matrix",
	Long: `Samples up to samples-per-size dimension subsets for each subset size
(without replacement, uniformly at random) and executes one combination per
sampled subset. Useful for smoke-testing large dimension spaces where the
full cross product is intractable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("min") {
			cfg.MinDimensions = minOverride
		}
		if cmd.Flags().Changed("max") {
			cfg.MaxDimensions = maxOverride
		}
		if cmd.Flags().Changed("samples") {
			cfg.SamplesPerSize = samplesOverride
		}
		if modelOverride != "" {
			cfg.Model = modelOverride
		}
		if suiteOverride != "" {
			cfg.SuiteName = suiteOverride
		}
		if outputOverride != "" {
			cfg.OutputDir = outputOverride
		}

		reg := cfg.BuildRegistry()
		gen := generator.New(reg, cfg.MinDimensions, cfg.MaxDimensions)
		if cmd.Flags().Changed("seed") {
			gen.Rand = rand.New(rand.NewSource(sampleSeed))
		}

		combos := flatten(gen.SampleCombinations(cfg.SamplesPerSize))
		output.Logger.Info("Sampled combination matrix",
			"dimensions", reg.Len(),
			"samples_per_size", cfg.SamplesPerSize,
			"combinations", len(combos),
		)

		return executeAndReport(cfg, combos)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVar(&minOverride, "min", 2, "Minimum dimensions per combination")
	sampleCmd.Flags().IntVar(&maxOverride, "max", 2, "Maximum dimensions per combination")
	sampleCmd.Flags().IntVar(&samplesOverride, "samples", 10, "Samples per subset size")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "Random seed for reproducible sampling")
	sampleCmd.Flags().StringVar(&modelOverride, "model", "", "Ollama model to judge combinations")
	sampleCmd.Flags().StringVar(&suiteOverride, "suite-name", "", "Test suite name")
	sampleCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results")
}
