// Package config loads the settings shared by the command line tool and
// programs embedding the analyzer.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/Protocol-Lattice/gqlfront/complexity"
	"github.com/Protocol-Lattice/gqlfront/logging"
)

// ConfigPathEnv names the variable consulted when LoadConfig gets no path.
const ConfigPathEnv = "GQLFRONT_CONFIG_PATH"

type Config struct {
	LogLevel   string           `yaml:"log_level" envDefault:"info" env:"GQLFRONT_LOG_LEVEL"`
	JSONLog    bool             `yaml:"json_log" envDefault:"false" env:"GQLFRONT_JSON_LOG"`
	MaxNesting int              `yaml:"max_nesting" envDefault:"500" env:"GQLFRONT_MAX_NESTING"`
	Complexity ComplexityConfig `yaml:"complexity"`
}

type ComplexityConfig struct {
	AverageImpact     float64 `yaml:"average_impact" envDefault:"2.0" env:"GQLFRONT_COMPLEXITY_AVERAGE_IMPACT"`
	MaxRecursionCount int     `yaml:"max_recursion_count" envDefault:"250" env:"GQLFRONT_COMPLEXITY_MAX_RECURSION_COUNT"`
	MaxComplexity     float64 `yaml:"max_complexity,omitempty" envDefault:"0" env:"GQLFRONT_COMPLEXITY_MAX_COMPLEXITY"`
	MaxDepth          int     `yaml:"max_depth,omitempty" envDefault:"0" env:"GQLFRONT_COMPLEXITY_MAX_DEPTH"`
}

// Limits returns the thresholds to enforce on analysis results.
func (c ComplexityConfig) Limits() complexity.Limits {
	return complexity.Limits{MaxComplexity: c.MaxComplexity, MaxDepth: c.MaxDepth}
}

// Level returns the parsed LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return logging.ZapLogLevelFromString(c.LogLevel)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if _, err := c.Level(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.MaxNesting <= 0 {
		result = multierror.Append(result, fmt.Errorf("max_nesting must be positive, got %d", c.MaxNesting))
	}
	if c.Complexity.AverageImpact <= 1 {
		result = multierror.Append(result, fmt.Errorf("complexity.average_impact must be greater than 1, got %g", c.Complexity.AverageImpact))
	}
	if c.Complexity.MaxRecursionCount <= 0 {
		result = multierror.Append(result, fmt.Errorf("complexity.max_recursion_count must be positive, got %d", c.Complexity.MaxRecursionCount))
	}
	if c.Complexity.MaxComplexity < 0 {
		result = multierror.Append(result, fmt.Errorf("complexity.max_complexity must not be negative, got %g", c.Complexity.MaxComplexity))
	}
	if c.Complexity.MaxDepth < 0 {
		result = multierror.Append(result, fmt.Errorf("complexity.max_depth must not be negative, got %d", c.Complexity.MaxDepth))
	}
	return result.ErrorOrNil()
}

// LoadConfig reads .env files, then the environment, then the YAML file at
// configFilePath. Values in the file win over the environment. An empty path
// falls back to $GQLFRONT_CONFIG_PATH and, when that is unset too, no file is read.
func LoadConfig(configFilePath string, envOverride string) (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	if envOverride != "" {
		_ = godotenv.Overload(envOverride)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if configFilePath == "" {
		configFilePath = os.Getenv(ConfigPathEnv)
	}

	if configFilePath != "" {
		configFileBytes, err := os.ReadFile(configFilePath)
		if err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", configFilePath, err)
		}

		configYamlData := os.ExpandEnv(string(configFileBytes))
		if err := yaml.Unmarshal([]byte(configYamlData), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
