package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interval-barycentre/internal/pipeline"
)

var splitCmd = &cobra.Command{
	Use:   "split [input] [outdir]",
	Short: "Write each solution to its own XYZ file",
	Long: `Writes one XYZ file per solution into the output directory, named <prefix><i>.xyz
where i is the 0-based position of the solution among the non-blank lines.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runSplit,
}

var (
	splitFlags  commonFlags
	splitPrefix string
	splitJobs   int
)

func init() {
	splitFlags.register(splitCmd, "Output directory")
	splitCmd.Flags().StringVar(&splitPrefix, "prefix", "", "File name prefix (default \"solution\")")
	splitCmd.Flags().IntVar(&splitJobs, "jobs", 0, "Number of files written concurrently (default 1)")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) (err error) {
	cfg, err := resolveConfig(cmd, &splitFlags, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix = splitPrefix
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = splitJobs
	}
	if cfg.Output == "" {
		return fmt.Errorf("output directory is required (argument, --out or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
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

	summary, err := pipeline.RunSplit(cmd.Context(), runOptions(cfg, logger))
	if err != nil {
		logger.Error("split failed", "input", cfg.Input, "error", err)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d solutions to %s\n", len(summary.Outputs), cfg.Output)
	return nil
}
