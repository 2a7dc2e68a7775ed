/*
PURPOSE:
  Defines the 'run' subcommand: generates the full combination matrix per
  the configured bounds, executes the predicate over it, writes CSV/JSON
  results, and prints the report.

REQUIREMENTS:
  User-specified:
  - Run the matrix with config-file defaults and flag overrides.
  - Stream results to disk as they complete.

  Implementation-discovered:
  - Sequential runs stream through the executor callback; parallel runs
    collect first (completion order) and write afterwards.

ARCHITECTURE INTEGRATION:
  - Calls: internal/generator, internal/executor, internal/report,
    internal/output, internal/engine
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load or writer setup fails. Predicate failures
    never abort the run; they land in the report as ERROR results.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Generate -> Execute -> Report.

USAGE:
  grumpi-miner run --min 2 --max 3 --cap 2 --parallel

RELATED FILES:
  - internal/cli/root.go
  - internal/cli/sample.go - The sampled variant of this pipeline.

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/daryltucker/grumpi-miner/internal/config"
	"github.com/daryltucker/grumpi-miner/internal/engine"
	"github.com/daryltucker/grumpi-miner/internal/executor"
	"github.com/daryltucker/grumpi-miner/internal/generator"
	"github.com/daryltucker/grumpi-miner/internal/model"
	"github.com/daryltucker/grumpi-miner/internal/output"
	"github.com/daryltucker/grumpi-miner/internal/report"
)

var (
	minOverride      int
	maxOverride      int
	capOverride      int
	maxTotalOverride int
	workersOverride  int
	parallelOverride bool
	modelOverride    string
	suiteOverride    string
	outputOverride   string
	includeDetails   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate and execute the full combination matrix",
	Long: `Generates every k-sized dimension subset in the configured range,
crosses each subset's variant values, and executes the predicate against
every resulting combination.

With --model (or model: in the config) each combination is judged by an
Ollama model through a structured pass/fail verdict; otherwise the built-in
always-pass predicate exercises the matrix itself.

Results are written as CSV and JSON Lines while the run progresses, a full
suite document is written at the end, and the report is printed to stdout.`,
	Example: `  # Pairwise over the ten standard dimensions, always-pass predicate
  grumpi-miner run

  # Triples too, capped to the first 2 variants per dimension
  grumpi-miner run --min 2 --max 3 --cap 2

  # Judge combinations with a local model, 8 workers
  grumpi-miner run --model llama3.2:3b --parallel --workers 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if cmd.Flags().Changed("min") {
			cfg.MinDimensions = minOverride
		}
		if cmd.Flags().Changed("max") {
			cfg.MaxDimensions = maxOverride
		}
		if cmd.Flags().Changed("cap") {
			cfg.MaxPerDimension = capOverride
		}
		if cmd.Flags().Changed("max-total") {
			cfg.MaxTotal = maxTotalOverride
		}
		if cmd.Flags().Changed("workers") {
			cfg.MaxWorkers = workersOverride
		}
		if cmd.Flags().Changed("parallel") {
			cfg.Parallel = parallelOverride
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

		// 3. Generate
		reg := cfg.BuildRegistry()
		gen := generator.New(reg, cfg.MinDimensions, cfg.MaxDimensions)
		combos := flatten(gen.AllCombinations(cfg.MaxPerDimension, cfg.MaxTotal))
		output.Logger.Info("Generated combination matrix",
			"dimensions", reg.Len(),
			"min_size", gen.MinSize,
			"max_size", gen.MaxSize,
			"combinations", len(combos),
		)

		// 4. Execute + report
		return executeAndReport(cfg, combos)
	},
}

// flatten orders the size-keyed generation output into one slice, sizes
// ascending, preserving generation order within each size.
func flatten(bySize map[int][]model.Combination) []model.Combination {
	sizes := make([]int, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	var out []model.Combination
	for _, size := range sizes {
		out = append(out, bySize[size]...)
	}
	return out
}

// buildPredicate resolves the configured predicate: model-backed when a
// model is set, always-pass otherwise.
func buildPredicate(cfg *config.Config) executor.Predicate {
	if cfg.Model == "" {
		return executor.AlwaysPass
	}
	client := engine.NewClient(cfg)
	output.Logger.Info("Judging combinations with model", "model", cfg.Model, "url", cfg.BaseURL)
	return engine.ModelPredicate(client, cfg.Model, cfg.SystemPrompt, cfg.RequestTimeout.Duration())
}

// executeAndReport runs the shared execute/write/report tail of the run and
// sample commands.
func executeAndReport(cfg *config.Config, combos []model.Combination) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	csvPath := filepath.Join(cfg.OutputDir, cfg.OutputFile+".csv")
	csvWriter, err := output.NewCSVWriter(csvPath, cfg.SuiteName)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	jsonlPath := filepath.Join(cfg.OutputDir, cfg.OutputFile+".jsonl")
	jsonWriter, err := output.NewJSONWriter(jsonlPath)
	if err != nil {
		return fmt.Errorf("failed to init JSON writer at %s: %w", jsonlPath, err)
	}
	defer jsonWriter.Close()

	ex := executor.New(buildPredicate(cfg))
	ex.Timeout = cfg.TestTimeout.Duration()
	ex.Parallel = cfg.Parallel
	ex.MaxWorkers = cfg.MaxWorkers

	writeResult := func(r *model.TestResult) {
		if err := csvWriter.Write(r); err != nil {
			output.Logger.Error("Failed to write result to CSV", "error", err)
		}
		if err := jsonWriter.Write(r); err != nil {
			output.Logger.Error("Failed to write result to JSON", "error", err)
		}
	}

	var suite *model.TestSuite
	if cfg.Parallel {
		output.Logger.Info("Executing in parallel", "workers", cfg.MaxWorkers, "combinations", len(combos))
		suite = ex.ExecuteBatch(combos, cfg.SuiteName)
		for _, r := range suite.Results() {
			writeResult(r)
		}
	} else {
		done := 0
		suite = ex.ExecuteWithCallback(combos, func(r *model.TestResult) {
			writeResult(r)
			done++
			if done%50 == 0 {
				output.Logger.Info("Progress", "done", done, "total", len(combos))
			}
		}, cfg.SuiteName)
	}

	suitePath := filepath.Join(cfg.OutputDir, cfg.OutputFile+".json")
	if err := output.WriteSuiteJSON(suitePath, report.Export(suite)); err != nil {
		output.Logger.Error("Failed to write suite document", "path", suitePath, "error", err)
	} else {
		output.Logger.Info("Wrote suite document", "path", suitePath)
	}

	rep := &report.Reporter{Verbose: includeDetails}
	fmt.Print(rep.Generate(suite, includeDetails, true))
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&minOverride, "min", 2, "Minimum dimensions per combination")
	runCmd.Flags().IntVar(&maxOverride, "max", 2, "Maximum dimensions per combination")
	runCmd.Flags().IntVar(&capOverride, "cap", 0, "Max variants per dimension (0 = all)")
	runCmd.Flags().IntVar(&maxTotalOverride, "max-total", 0, "Hard ceiling on total combinations (0 = none)")
	runCmd.Flags().IntVar(&workersOverride, "workers", 4, "Worker pool size for --parallel")
	runCmd.Flags().BoolVar(&parallelOverride, "parallel", false, "Execute combinations concurrently")
	runCmd.Flags().StringVar(&modelOverride, "model", "", "Ollama model to judge combinations (empty = always-pass predicate)")
	runCmd.Flags().StringVar(&suiteOverride, "suite-name", "", "Test suite name")
	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results (CSV/JSON)")
	runCmd.Flags().BoolVar(&includeDetails, "details", false, "Include per-result details in the report")
}
