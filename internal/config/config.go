// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/poketeam/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	Data    DataConfig    `koanf:"data"`
	Weights WeightsConfig `koanf:"weights"`
	Scoring ScoringConfig `koanf:"scoring"`
	Cores   CoresConfig   `koanf:"cores"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
	Batch   BatchConfig   `koanf:"batch"`
}

// DataConfig locates datasets and sizes the dataset cache.
type DataConfig struct {
	// Dir holds <name>.json, <name>_team.json and <name>_threats.json.
	Dir string `koanf:"dir" validate:"required"`

	// CacheCapacity is the number of parsed datasets kept in memory.
	// Default: 64
	CacheCapacity int `koanf:"cache_capacity" validate:"gte=1"`

	// CacheTTL drops cached datasets this long after loading so updated
	// files are picked up. Zero keeps them until evicted.
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// WeightsConfig is the default blend for team scoring. Requests may
// override it. All zero is treated as equal weights.
type WeightsConfig struct {
	Counter float64 `koanf:"counter" validate:"gte=0"`
	Team    float64 `koanf:"team" validate:"gte=0"`
	Usage   float64 `koanf:"usage" validate:"gte=0"`
}

// ScoringConfig tunes the team scorer.
type ScoringConfig struct {
	// DuplicatePenalty is subtracted per extra copy of a candidate, scaled
	// by the candidate's inverse usage.
	// Default: 0.5
	DuplicatePenalty float64 `koanf:"duplicate_penalty" validate:"gte=0"`
}

// CoresConfig tunes core discovery.
type CoresConfig struct {
	MinUsage      float64 `koanf:"min_usage" validate:"gte=0,lte=1"`
	TargetEdges   int     `koanf:"target_edges" validate:"gte=1"`
	QuantileFloor float64 `koanf:"quantile_floor" validate:"gte=0,lte=1"`
	UsageExponent float64 `koanf:"usage_exponent" validate:"gte=0"`
	MaxCoreSize   int     `koanf:"max_core_size" validate:"gte=2"`

	// TwoOpt refines the core ordering tour with 2-opt.
	// Default: true
	TwoOpt bool `koanf:"two_opt"`

	// CacheEntries bounds the core result cache. Zero disables it.
	// Default: 32
	CacheEntries int `koanf:"cache_entries" validate:"gte=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// TextfilePath, when set, receives the Prometheus registry on exit.
	TextfilePath string `koanf:"textfile_path"`
}

// BatchConfig tunes the supervised batch mode.
type BatchConfig struct {
	// JanitorInterval is how often expired cache entries are swept.
	// Default: 1m
	JanitorInterval time.Duration `koanf:"janitor_interval" validate:"gt=0"`

	// MaxLineBytes bounds one request line.
	// Default: 1 MiB
	MaxLineBytes int `koanf:"max_line_bytes" validate:"gte=1024"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, verr.Error())
	}
	return nil
}
