// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper drops expired cache entries and reports how many it removed.
// loader.Store and recommend.Engine implement it.
type Sweeper interface {
	CleanupExpired() int
}

// CacheJanitorService periodically sweeps expired entries from the dataset
// and core result caches. Caches without a TTL sweep nothing.
type CacheJanitorService struct {
	targets  map[string]Sweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor over the named targets.
// A non-positive interval defaults to one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(targets map[string]Sweeper, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{
		targets:  targets,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor-service",
	}
}

// Serve implements the suture.Service interface.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Dur("interval", s.interval).
		Int("targets", len(s.targets)).
		Msg("cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("cache janitor shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one pass over every target in name order and returns the
// total number of entries removed.
func (s *CacheJanitorService) Sweep() int {
	names := make([]string, 0, len(s.targets))
	for name := range s.targets {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		removed := s.targets[name].CleanupExpired()
		if removed > 0 {
			s.logger.Debug().Str("cache", name).Int("removed", removed).Msg("expired entries swept")
		}
		total += removed
	}
	return total
}

// String returns the service name for logging.
func (s *CacheJanitorService) String() string {
	return s.name
}
