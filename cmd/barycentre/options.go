package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interval-barycentre/internal/config"
	"github.com/jonathan/interval-barycentre/internal/logging"
	"github.com/jonathan/interval-barycentre/internal/parsing"
	"github.com/jonathan/interval-barycentre/internal/pipeline"
)

// commonFlags are registered on every subcommand.
type commonFlags struct {
	in         string
	out        string
	section    string
	labels     []string
	labelsFrom string
	xyzHeader  bool
	comment    string
	summary    string
	verbose    bool
}

func (f *commonFlags) register(cmd *cobra.Command, outUsage string) {
	cmd.Flags().StringVarP(&f.in, "in", "i", "", "Path to the solver results file")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", outUsage)
	cmd.Flags().StringVar(&f.section, "section", "", "Results section to read: accepted, rejected or uncertain (default uncertain)")
	cmd.Flags().StringSliceVar(&f.labels, "labels", nil, "Comma-separated element labels, one per atom (default C for every atom)")
	cmd.Flags().StringVar(&f.labelsFrom, "labels-from", "", "Take element labels from an existing XYZ file")
	cmd.Flags().BoolVar(&f.xyzHeader, "xyz-header", false, "Write the standard XYZ atom count and comment lines")
	cmd.Flags().StringVar(&f.comment, "comment", "", "Comment line used with --xyz-header")
	cmd.Flags().StringVar(&f.summary, "summary", "", "Write a JSON run summary to this path")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed information")
}

// resolveConfig loads the config file (if any), applies flags and positional
// arguments on top of it and fills in defaults.
func resolveConfig(cmd *cobra.Command, f *commonFlags, args []string) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	configPath := rootConfigPath
	if configPath == "" {
		configPath = os.Getenv("BARYCENTRE_CONFIG")
	}
	if configPath != "" {
		loadedCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides, only for flags explicitly set
	flags := cmd.Flags()
	if flags.Changed("in") {
		cfg.Input = f.in
	}
	if flags.Changed("out") {
		cfg.Output = f.out
	}
	if flags.Changed("section") {
		cfg.Section = f.section
	}
	if flags.Changed("labels") {
		cfg.Labels = f.labels
		cfg.LabelsFrom = ""
	}
	if flags.Changed("labels-from") {
		cfg.LabelsFrom = f.labelsFrom
		if !flags.Changed("labels") {
			cfg.Labels = nil
		}
	}
	if flags.Changed("xyz-header") {
		cfg.XYZHeader = f.xyzHeader
	}
	if flags.Changed("comment") {
		cfg.Comment = f.comment
	}
	if flags.Changed("summary") {
		cfg.Summary = f.summary
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if flags.Changed("log-json") {
		cfg.LogJSON = rootLogJSON
	}
	if flags.Changed("log-file") {
		cfg.LogFile = rootLogFile
	}

	// Step 3: Positional arguments
	if len(args) > 0 {
		if flags.Changed("in") {
			return cfg, fmt.Errorf("input given both as argument and --in; provide only one")
		}
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		if flags.Changed("out") {
			return cfg, fmt.Errorf("output given both as argument and --out; provide only one")
		}
		cfg.Output = args[1]
	}

	// Step 4: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Section: parsing.SectionUncertain,
		Prefix:  pipeline.DefaultPrefix,
		Jobs:    1,
	})

	if cfg.Input == "" {
		return cfg, fmt.Errorf("input file is required (argument, --in or config)")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger writes to stderr in verbose mode and to --log-file when given.
func newLogger(cfg config.Config) (logging.Logger, func() error, error) {
	var out io.Writer = io.Discard
	if cfg.Verbose {
		out = os.Stderr
	}
	return logging.New(logging.Options{
		Output:   out,
		FilePath: cfg.LogFile,
		JSON:     cfg.LogJSON,
	})
}

func runOptions(cfg config.Config, logger logging.Logger) pipeline.RunOptions {
	return pipeline.RunOptions{
		InputPath:       cfg.Input,
		OutputPath:      cfg.Output,
		Section:         cfg.Section,
		Labels:          cfg.Labels,
		LabelsFrom:      cfg.LabelsFrom,
		XYZHeader:       cfg.XYZHeader,
		Comment:         cfg.Comment,
		SummaryPath:     cfg.Summary,
		Prefix:          cfg.Prefix,
		Jobs:            cfg.Jobs,
		ConstraintsPath: cfg.Constraints,
		Verbose:         cfg.Verbose,
		Out:             os.Stdout,
		Logger:          logger,
	}
}
