package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultBundle, cfg.Analysis.Bundle)
	assert.Equal(t, config.DefaultTimeout, cfg.Analysis.Timeout)
	assert.Equal(t, config.DefaultRetries, cfg.Analysis.Retries)
	assert.Equal(t, config.DefaultMaxDepth, cfg.Scan.MaxDepth)
	assert.Equal(t, config.DefaultMaxSampleBytes, cfg.Scan.MaxSampleBytes)
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	require.NoError(t, cfg.Weights.Validate())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reposcope.yaml")
	content := []byte(`
analysis:
  bundle: full
  timeout: 30s
  retries: 2
scan:
  max_depth: 6
output:
  format: json
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "full", cfg.Analysis.Bundle)
	assert.Equal(t, 30*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, 2, cfg.Analysis.Retries)
	assert.Equal(t, 6, cfg.Scan.MaxDepth)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)

	// Unset sections keep their defaults.
	assert.Equal(t, config.DefaultMaxSampledFiles, cfg.Scan.MaxSampledFiles)
}

func TestLoadConfig_RejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reposcope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: pdf\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestLoadConfig_RejectsBadWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reposcope.yaml")
	content := []byte(`
weights:
  functionality: 0.9
  organization: 0.9
  documentation: 0.1
  best_practices: 0.1
  error_handling: 0.1
  performance: 0.1
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	_, err := config.LoadConfig(path)
	require.Error(t, err)
}

func TestValidate_RejectsNegativeRetries(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Analysis.Retries = -1

	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveScanBounds(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Scan.MaxDepth = 0

	require.Error(t, cfg.Validate())
}

func validConfig() *config.Config {
	cfg, err := config.LoadConfig("")
	if err != nil {
		panic(err)
	}

	return cfg
}
