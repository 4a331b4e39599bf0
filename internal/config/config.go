// Package config loads reposcope settings from file, environment, and
// defaults.
package config

import (
	"fmt"
	"time"

	"github.com/optqo/reposcope/pkg/synthesis"
)

// Default analysis settings.
const (
	DefaultBundle  = "standard"
	DefaultTimeout = 5 * time.Minute
	DefaultRetries = 1
	DefaultFormat  = "text"
)

// Default traversal bounds.
const (
	DefaultMaxDepth         = 12
	DefaultMaxEntriesPerDir = 2000
	DefaultMaxSampledFiles  = 400
	DefaultMaxSampleBytes   = 64 * 1024
)

// Output format names.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// Config is the top-level configuration struct for reposcope.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Analysis AnalysisConfig    `mapstructure:"analysis"`
	Scan     ScanConfig        `mapstructure:"scan"`
	Weights  synthesis.Weights `mapstructure:"weights"`
	Output   OutputConfig      `mapstructure:"output"`
}

// AnalysisConfig holds run scheduling knobs.
type AnalysisConfig struct {
	Bundle  string        `mapstructure:"bundle"`
	Tasks   []string      `mapstructure:"tasks"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// ScanConfig holds traversal bounds forwarded to every task.
type ScanConfig struct {
	MaxDepth         int `mapstructure:"max_depth"`
	MaxEntriesPerDir int `mapstructure:"max_entries_per_dir"`
	MaxSampledFiles  int `mapstructure:"max_sampled_files"`
	MaxSampleBytes   int `mapstructure:"max_sample_bytes"`
}

// OutputConfig holds report emission settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// Validate checks cross-field constraints after unmarshalling.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML, FormatHTML:
	default:
		return fmt.Errorf("output.format must be one of %s, %s, %s, %s: got %q",
			FormatText, FormatJSON, FormatYAML, FormatHTML, c.Output.Format)
	}

	if c.Analysis.Retries < 0 {
		return fmt.Errorf("analysis.retries must be non-negative: got %d", c.Analysis.Retries)
	}

	if c.Analysis.Timeout < 0 {
		return fmt.Errorf("analysis.timeout must be non-negative: got %s", c.Analysis.Timeout)
	}

	if c.Scan.MaxDepth < 1 || c.Scan.MaxEntriesPerDir < 1 ||
		c.Scan.MaxSampledFiles < 1 || c.Scan.MaxSampleBytes < 1 {
		return fmt.Errorf("scan bounds must be positive")
	}

	if err := c.Weights.Validate(); err != nil {
		return err
	}

	return nil
}
