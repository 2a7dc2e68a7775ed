package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daryltucker/grumpi-miner/internal/assets"
	"github.com/daryltucker/grumpi-miner/internal/output"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the example configuration to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := fs.ReadDir(assets.Examples, "examples")
		if err != nil {
			return fmt.Errorf("failed to read embedded examples: %w", err)
		}

		count := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			target := filepath.Join(".", entry.Name())
			if _, err := os.Stat(target); err == nil && !initForce {
				output.Logger.Warn("File exists, skipping (use --force to overwrite)", "path", target)
				continue
			}

			content, err := fs.ReadFile(assets.Examples, "examples/"+entry.Name())
			if err != nil {
				output.Logger.Error("Failed to read embedded file", "file", entry.Name(), "error", err)
				continue
			}
			if err := os.WriteFile(target, content, 0644); err != nil {
				output.Logger.Error("Failed to write file", "path", target, "error", err)
				continue
			}

			output.Logger.Info("Wrote example file", "name", entry.Name())
			count++
		}

		output.Logger.Info("Init complete", "total_files", count)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}
