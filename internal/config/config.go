// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input       string `json:"input,omitempty" yaml:"input"`             // Solver results file
	Output      string `json:"output,omitempty" yaml:"output"`           // XYZ file, or directory for split
	Summary     string `json:"summary,omitempty" yaml:"summary"`         // Optional run summary JSON
	Constraints string `json:"constraints,omitempty" yaml:"constraints"` // Distance constraints file for check
	LabelsFrom  string `json:"labels_from,omitempty" yaml:"labels_from"` // XYZ file to take element labels from

	// Rendering
	Section   string   `json:"section,omitempty" yaml:"section" validate:"omitempty,oneof=accepted rejected uncertain"`
	Labels    []string `json:"labels,omitempty" yaml:"labels" validate:"omitempty,dive,required"`
	XYZHeader bool     `json:"xyz_header,omitempty" yaml:"xyz_header"`
	Comment   string   `json:"comment,omitempty" yaml:"comment"`
	Prefix    string   `json:"prefix,omitempty" yaml:"prefix" validate:"omitempty,excludesall=/\\"`

	// Behavior
	Jobs    int    `json:"jobs,omitempty" yaml:"jobs" validate:"gte=0,lte=256"` // Concurrent writers in split mode
	Verbose bool   `json:"verbose,omitempty" yaml:"verbose"`
	LogJSON bool   `json:"log_json,omitempty" yaml:"log_json"`
	LogFile string `json:"log_file,omitempty" yaml:"log_file"`
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the extension
// is .yaml or .yml. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		return &cfg, nil
	}
}

func parseYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("failed to parse config YAML: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	for _, label := range c.Labels {
		if strings.ContainsAny(label, " \t") {
			return fmt.Errorf("config error: label %q contains whitespace", label)
		}
	}

	// Validate mutually exclusive fields
	if len(c.Labels) > 0 && c.LabelsFrom != "" {
		return fmt.Errorf("config error: 'labels' and 'labels_from' are mutually exclusive")
	}

	// Validate file paths exist (if specified)
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}
	if c.LabelsFrom != "" {
		if _, err := os.Stat(c.LabelsFrom); os.IsNotExist(err) {
			return fmt.Errorf("config error: labels file not found: %s", c.LabelsFrom)
		}
	}
	if c.Constraints != "" {
		if _, err := os.Stat(c.Constraints); os.IsNotExist(err) {
			return fmt.Errorf("config error: constraints file not found: %s", c.Constraints)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Summary == "" {
		result.Summary = defaults.Summary
	}
	if result.Constraints == "" {
		result.Constraints = defaults.Constraints
	}
	if result.LabelsFrom == "" {
		result.LabelsFrom = defaults.LabelsFrom
	}
	if result.Section == "" {
		result.Section = defaults.Section
	}
	if result.Comment == "" {
		result.Comment = defaults.Comment
	}
	if result.Prefix == "" {
		result.Prefix = defaults.Prefix
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	if len(result.Labels) == 0 && result.LabelsFrom == "" {
		result.Labels = defaults.Labels
	}

	// Int fields: use default if zero
	if result.Jobs == 0 {
		result.Jobs = defaults.Jobs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
