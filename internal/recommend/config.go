// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/recommend/corefinder"
	"github.com/tomtom215/poketeam/internal/recommend/scoring"
)

// Config holds engine configuration.
type Config struct {
	// Weights are used when a request does not carry its own.
	Weights metagame.Weights `json:"weights"`

	// Scoring holds scorer constants.
	Scoring scoring.Config `json:"scoring"`

	// Cores holds the default core discovery parameters. Requests may
	// override MinUsage and TargetEdges.
	Cores corefinder.Config `json:"cores"`

	// TwoOpt refines the core ordering tour with 2-opt.
	// Default: true
	TwoOpt bool `json:"two_opt"`

	// CoreCache controls memoization of core discovery results.
	CoreCache CoreCacheConfig `json:"core_cache"`
}

// CoreCacheConfig configures the core result cache.
type CoreCacheConfig struct {
	// Entries is the cache capacity. Zero disables the cache.
	// Default: 32
	Entries int `json:"entries"`

	// TTL bounds entry lifetime. Zero means entries live until evicted.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: metagame.DefaultWeights(),
		Scoring: scoring.DefaultConfig(),
		Cores:   corefinder.DefaultConfig(),
		TwoOpt:  true,
		CoreCache: CoreCacheConfig{
			Entries: 32,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Counter < 0 || c.Weights.Team < 0 || c.Weights.Usage < 0 {
		return fmt.Errorf("weights: %w", metagame.ErrNegativeWeight)
	}
	if c.Scoring.DuplicatePenalty < 0 {
		return fmt.Errorf("scoring.duplicate_penalty must be non-negative, got %f", c.Scoring.DuplicatePenalty)
	}
	if err := c.Cores.Validate(); err != nil {
		return fmt.Errorf("cores: %w", err)
	}
	if c.CoreCache.Entries < 0 {
		return fmt.Errorf("core_cache.entries must be non-negative, got %d", c.CoreCache.Entries)
	}
	if c.CoreCache.TTL < 0 {
		return fmt.Errorf("core_cache.ttl must be non-negative, got %v", c.CoreCache.TTL)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// every nested struct holds only value types
	clone := *c
	return &clone
}

// approximator returns the cycle approximator selected by TwoOpt.
func (c *Config) approximator() corefinder.CycleApproximator {
	return corefinder.NearestNeighbor{TwoOpt: c.TwoOpt}
}
