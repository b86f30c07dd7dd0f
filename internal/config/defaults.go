package config

import "github.com/spf13/viper"

// setDefaults registers every key so environment overrides apply on Unmarshal
func setDefaults(v *viper.Viper) {
	// Scenario defaults
	v.SetDefault("scenario.weighted_horizon", 24)
	v.SetDefault("scenario.subset_horizon", 32)
	v.SetDefault("scenario.subset_size", 3)

	// Search defaults
	v.SetDefault("search.workers", 0)
	v.SetDefault("search.upper_bound", true)
	v.SetDefault("search.dominance", true)
	v.SetDefault("search.spend_cap", true)
	v.SetDefault("search.greedy_seed", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Metrics defaults
	v.SetDefault("metrics.textfile", "")
}
