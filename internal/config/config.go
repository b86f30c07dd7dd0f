package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/napolitain/solver-geode/internal/solver/geode"
)

// EnvPrefix prefixes every environment override, e.g. GEODE_SEARCH_WORKERS
const EnvPrefix = "GEODE"

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Scenario ScenarioConfig `mapstructure:"scenario"`
	Search   SearchConfig   `mapstructure:"search"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ScenarioConfig fixes the horizons of the two summary metrics
type ScenarioConfig struct {
	WeightedHorizon int `mapstructure:"weighted_horizon" validate:"min=0,max=32"`
	SubsetHorizon   int `mapstructure:"subset_horizon" validate:"min=0,max=32"`
	SubsetSize      int `mapstructure:"subset_size" validate:"min=0"`
}

// SearchConfig toggles the prunes and sets the parallelism
type SearchConfig struct {
	// Workers is the number of blueprints evaluated at once, 0 = GOMAXPROCS
	Workers    int  `mapstructure:"workers" validate:"min=0"`
	UpperBound bool `mapstructure:"upper_bound"`
	Dominance  bool `mapstructure:"dominance"`
	SpendCap   bool `mapstructure:"spend_cap"`
	GreedySeed bool `mapstructure:"greedy_seed"`
}

// LoggingConfig selects the slog level and handler
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// MetricsConfig controls where the run's metrics are exported
type MetricsConfig struct {
	// Textfile is a Prometheus textfile-collector path, empty disables export
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration with priority:
// 1. Environment variables (GEODE_ prefix, highest priority)
// 2. Config file (geode.yaml, or configPath when set)
// 3. Defaults
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("geode")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// override is present
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not unmarshal: %v", err))
	}
	return &cfg
}

// Options converts the search section to solver options
func (c SearchConfig) Options() geode.Options {
	return geode.Options{
		UpperBound: c.UpperBound,
		Dominance:  c.Dominance,
		SpendCap:   c.SpendCap,
		GreedySeed: c.GreedySeed,
	}
}

// Scenario converts the scenario section to solver parameters
func (c ScenarioConfig) Scenario() geode.Scenario {
	return geode.Scenario{
		WeightedHorizon: c.WeightedHorizon,
		SubsetHorizon:   c.SubsetHorizon,
		SubsetSize:      c.SubsetSize,
	}
}
