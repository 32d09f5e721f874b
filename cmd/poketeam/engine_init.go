// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/poketeam/internal/config"
	"github.com/tomtom215/poketeam/internal/loader"
	"github.com/tomtom215/poketeam/internal/logging"
	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/metrics"
	"github.com/tomtom215/poketeam/internal/recommend"
	"github.com/tomtom215/poketeam/internal/recommend/corefinder"
	"github.com/tomtom215/poketeam/internal/recommend/scoring"
)

// app holds the components shared by every command.
type app struct {
	cfg    *config.Config
	store  *loader.Store
	engine *recommend.Engine
	logger zerolog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// newApp wires the dataset store and the engine from cfg.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func newApp(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer, logger zerolog.Logger) (*app, error) {
	store := loader.NewStore(buildStoreOptions(cfg))

	logger.Debug().
		Float64("weight_counter", cfg.Weights.Counter).
		Float64("weight_team", cfg.Weights.Team).
		Float64("weight_usage", cfg.Weights.Usage).
		Int("target_edges", cfg.Cores.TargetEdges).
		Int("core_cache_entries", cfg.Cores.CacheEntries).
		Msg("initializing recommendation engine")

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), store, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	return &app{
		cfg:    cfg,
		store:  store,
		engine: engine,
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// buildStoreOptions maps the data section onto loader options.
func buildStoreOptions(cfg *config.Config) loader.Options {
	return loader.Options{
		Dir:           cfg.Data.Dir,
		CacheCapacity: cfg.Data.CacheCapacity,
		CacheTTL:      cfg.Data.CacheTTL,
	}
}

// buildEngineConfig creates the engine configuration from app config.
// Core results share the dataset TTL so they never outlive their dataset.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()

	ec.Weights = metagame.Weights{
		Counter: cfg.Weights.Counter,
		Team:    cfg.Weights.Team,
		Usage:   cfg.Weights.Usage,
	}
	ec.Scoring = scoring.Config{
		DuplicatePenalty: cfg.Scoring.DuplicatePenalty,
	}
	ec.Cores = corefinder.Config{
		MinUsage:      cfg.Cores.MinUsage,
		TargetEdges:   cfg.Cores.TargetEdges,
		QuantileFloor: cfg.Cores.QuantileFloor,
		UsageExponent: cfg.Cores.UsageExponent,
		MaxCoreSize:   cfg.Cores.MaxCoreSize,
	}
	ec.TwoOpt = cfg.Cores.TwoOpt
	ec.CoreCache = recommend.CoreCacheConfig{
		Entries: cfg.Cores.CacheEntries,
		TTL:     cfg.Data.CacheTTL,
	}

	return ec
}

// initLogging configures the global logger from the logging section.
func initLogging(cfg *config.Config, out io.Writer) {
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    out,
	})
}

// writeMetrics dumps the registry when a textfile path is configured.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func writeMetrics(cfg *config.Config, logger zerolog.Logger) {
	path := cfg.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to write metrics")
		return
	}
	logger.Debug().Str("path", path).Msg("Metrics written")
}
