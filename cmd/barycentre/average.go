package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interval-barycentre/internal/pipeline"
)

var averageCmd = &cobra.Command{
	Use:   "average [input] [output]",
	Short: "Write the averaged geometry of all solutions as XYZ",
	Long: `Reads every solution in the selected results section, takes the midpoint of each
interval and writes the element-wise mean of all solutions as one XYZ file.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runAverage,
}

var averageFlags commonFlags

func init() {
	averageFlags.register(averageCmd, "Path to the output XYZ file")

	rootCmd.AddCommand(averageCmd)
}

func runAverage(cmd *cobra.Command, args []string) (err error) {
	cfg, err := resolveConfig(cmd, &averageFlags, args)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		return fmt.Errorf("output file is required (argument, --out or config)")
	}

	logger, closeLogger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLogger(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close logger: %w", cerr)
		}
	}()

	summary, err := pipeline.RunAverage(cmd.Context(), runOptions(cfg, logger))
	if err != nil {
		logger.Error("average failed", "input", cfg.Input, "error", err)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Averaged %d solutions (%d atoms) into %s\n",
		summary.Solutions, summary.Atoms, cfg.Output)
	return nil
}
