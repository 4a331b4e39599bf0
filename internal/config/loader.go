package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/optqo/reposcope/pkg/synthesis"
)

// configName is the config file name without extension.
const configName = ".reposcope"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for reposcope settings.
const envPrefix = "REPOSCOPE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("analysis.bundle", DefaultBundle)
	viperCfg.SetDefault("analysis.tasks", []string{})
	viperCfg.SetDefault("analysis.timeout", DefaultTimeout)
	viperCfg.SetDefault("analysis.retries", DefaultRetries)

	viperCfg.SetDefault("scan.max_depth", DefaultMaxDepth)
	viperCfg.SetDefault("scan.max_entries_per_dir", DefaultMaxEntriesPerDir)
	viperCfg.SetDefault("scan.max_sampled_files", DefaultMaxSampledFiles)
	viperCfg.SetDefault("scan.max_sample_bytes", DefaultMaxSampleBytes)

	weights := synthesis.DefaultWeights()
	viperCfg.SetDefault("weights.functionality", weights.Functionality)
	viperCfg.SetDefault("weights.organization", weights.Organization)
	viperCfg.SetDefault("weights.documentation", weights.Documentation)
	viperCfg.SetDefault("weights.best_practices", weights.BestPractices)
	viperCfg.SetDefault("weights.error_handling", weights.ErrorHandling)
	viperCfg.SetDefault("weights.performance", weights.Performance)

	viperCfg.SetDefault("output.format", DefaultFormat)
	viperCfg.SetDefault("output.path", "")
}
