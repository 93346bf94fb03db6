package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interval-barycentre/internal/pipeline"
)

var pickCmd = &cobra.Command{
	Use:   "pick --index N [input] [output]",
	Short: "Write a single solution as XYZ",
	Long:  "Writes the solution at --index (0-based among non-blank solution lines) as one XYZ file.",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runPick,
}

var (
	pickFlags commonFlags
	pickIndex int
)

func init() {
	pickFlags.register(pickCmd, "Path to the output XYZ file")
	pickCmd.Flags().IntVar(&pickIndex, "index", 0, "0-based solution index (required)")

	_ = pickCmd.MarkFlagRequired("index")

	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) (err error) {
	cfg, err := resolveConfig(cmd, &pickFlags, args)
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

	opts := runOptions(cfg, logger)
	opts.Index = pickIndex
	if _, err := pipeline.RunPick(cmd.Context(), opts); err != nil {
		logger.Error("pick failed", "input", cfg.Input, "index", pickIndex, "error", err)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote solution %d to %s\n", pickIndex, cfg.Output)
	return nil
}
