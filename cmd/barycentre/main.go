// Package main provides the entry point for the barycentre CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "barycentre",
	Short: "Turn interval solver results into XYZ geometries",
	Long: `barycentre reads the results file written by an interval constraint solver, takes the
midpoint of every interval in each solution box and writes the resulting atom coordinates
as XYZ files.

Configuration can be loaded from a JSON or YAML file using --config (or BARYCENTRE_CONFIG).
Command-line arguments override config file values.`,
	SilenceUsage: true,
}

var (
	rootConfigPath string
	rootLogJSON    bool
	rootLogFile    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file (defaults to BARYCENTRE_CONFIG env var)")
	rootCmd.PersistentFlags().BoolVar(&rootLogJSON, "log-json", false, "Write log events as JSON")
	rootCmd.PersistentFlags().StringVar(&rootLogFile, "log-file", "", "Append log events to this file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
