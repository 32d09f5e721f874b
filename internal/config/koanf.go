// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"poketeam.yaml",
	"config.yaml",
	"config.yml",
	"/etc/poketeam/config.yaml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the configuration used when nothing overrides it.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           "data",
			CacheCapacity: 64,
			CacheTTL:      0,
		},
		Weights: WeightsConfig{
			Counter: 2,
			Team:    5,
			Usage:   2,
		},
		Scoring: ScoringConfig{
			DuplicatePenalty: 0.5,
		},
		Cores: CoresConfig{
			MinUsage:      0.01,
			TargetEdges:   100,
			QuantileFloor: 0.5,
			UsageExponent: 0.5,
			MaxCoreSize:   20,
			TwoOpt:        true,
			CacheEntries:  32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			TextfilePath: "",
		},
		Batch: BatchConfig{
			JanitorInterval: time.Minute,
			MaxLineBytes:    1 << 20,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, the discovered config
// file and the environment.
func LoadWithKoanf() (*Config, error) {
	return Load("")
}

// Load is LoadWithKoanf with an explicit config file. An empty path falls
// back to discovery; a non-empty path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, else the first
// existing default path, else "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"poketeam_data_dir":       "data.dir",
	"data_dir":                "data.dir",
	"poketeam_cache_capacity": "data.cache_capacity",
	"poketeam_cache_ttl":      "data.cache_ttl",

	"poketeam_weight_counter":    "weights.counter",
	"poketeam_weight_team":       "weights.team",
	"poketeam_weight_usage":      "weights.usage",
	"poketeam_duplicate_penalty": "scoring.duplicate_penalty",

	"poketeam_cores_min_usage":      "cores.min_usage",
	"poketeam_cores_target_edges":   "cores.target_edges",
	"poketeam_cores_quantile_floor": "cores.quantile_floor",
	"poketeam_cores_usage_exponent": "cores.usage_exponent",
	"poketeam_cores_max_size":       "cores.max_core_size",
	"poketeam_cores_two_opt":        "cores.two_opt",
	"poketeam_cores_cache_entries":  "cores.cache_entries",

	"poketeam_log_level":  "logging.level",
	"log_level":           "logging.level",
	"poketeam_log_format": "logging.format",
	"log_format":          "logging.format",
	"poketeam_log_caller": "logging.caller",
	"log_caller":          "logging.caller",

	"poketeam_metrics_textfile": "metrics.textfile_path",

	"poketeam_janitor_interval": "batch.janitor_interval",
	"poketeam_max_line_bytes":   "batch.max_line_bytes",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
