// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/poketeam/internal/cache"
	"github.com/tomtom215/poketeam/internal/logging"
	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/metrics"
	"github.com/tomtom215/poketeam/internal/validation"
)

var (
	// ErrDatasetNotFound is returned when the records file does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrMalformedDataset is returned when files exist but cannot be
	// decoded or do not form a valid dataset.
	ErrMalformedDataset = errors.New("malformed dataset")

	// ErrInvalidName is returned for names that are not safe file stems.
	ErrInvalidName = errors.New("invalid dataset name")
)

// Options configures a Store.
type Options struct {
	// Dir is the directory holding dataset files.
	Dir string

	// CacheCapacity bounds the number of parsed datasets kept in memory.
	CacheCapacity int

	// CacheTTL re-reads datasets older than this. Zero disables expiry.
	CacheTTL time.Duration
}

type entry struct {
	dataset *metagame.Dataset
	info    Info
}

// Store loads datasets from disk and caches them by name.
// It is safe for concurrent use.
type Store struct {
	dir    string
	cache  *cache.LRU[*entry]
	logger zerolog.Logger

	// loadMu serializes disk reads so concurrent misses for the same
	// dataset parse it once.
	loadMu sync.Mutex
}

// NewStore creates a Store over opts.Dir.
//
//nolint:gocritic // Options passed by value for immutability
func NewStore(opts Options) *Store {
	return &Store{
		dir:    opts.Dir,
		cache:  cache.NewLRU[*entry](opts.CacheCapacity, opts.CacheTTL),
		logger: logging.WithComponent("loader"),
	}
}

// Dir returns the dataset directory.
func (s *Store) Dir() string {
	return s.dir
}

// Dataset returns the parsed dataset called name, loading it on a miss.
func (s *Store) Dataset(ctx context.Context, name string) (*metagame.Dataset, error) {
	e, err := s.get(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.dataset, nil
}

// Info returns the metadata block of the dataset called name.
func (s *Store) Info(ctx context.Context, name string) (Info, error) {
	e, err := s.get(ctx, name)
	if err != nil {
		return Info{}, err
	}
	return e.info, nil
}

func (s *Store) get(ctx context.Context, name string) (*entry, error) {
	if !validation.IsDatasetName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if e, ok := s.cache.Get(name); ok {
		metrics.RecordDatasetCache(true)
		return e, nil
	}
	metrics.RecordDatasetCache(false)

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another caller may have loaded it while we waited.
	if e, ok := s.cache.Peek(name); ok {
		return e, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	e, err := s.load(name)
	if err != nil {
		status := metrics.StatusMalformed
		if errors.Is(err, ErrDatasetNotFound) {
			status = metrics.StatusNotFound
		}
		metrics.RecordDatasetLoad(status)
		logging.Ctx(ctx).Warn().Err(err).Str("component", "loader").Str("dataset", name).Msg("dataset load failed")
		return nil, err
	}
	metrics.RecordDatasetLoad(metrics.StatusOK)

	s.cache.Add(name, e)
	s.logger.Info().
		Str("dataset", name).
		Int("entities", e.dataset.Len()).
		Bool("threats", e.dataset.HasThreats()).
		Int("battles", e.info.Battles).
		Dur("duration", time.Since(start)).
		Msg("dataset loaded")
	return e, nil
}

// load reads and assembles the three files of a dataset.
func (s *Store) load(name string) (*entry, error) {
	base := filepath.Join(s.dir, name)

	data, err := os.ReadFile(base + recordsSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	info, records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedDataset, name, err)
	}

	data, err = os.ReadFile(base + synergySuffix)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: synergy: %w", ErrMalformedDataset, name, err)
	}
	synergy, err := decodeMatrix(data, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: synergy: %w", ErrMalformedDataset, name, err)
	}

	var threat *metagame.Matrix
	data, err = os.ReadFile(base + threatSuffix)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug().Str("dataset", name).Msg("no threat data, counter scoring disabled")
	case err != nil:
		return nil, fmt.Errorf("%w: %s: threats: %w", ErrMalformedDataset, name, err)
	default:
		m, err := decodeMatrix(data, false)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: threats: %w", ErrMalformedDataset, name, err)
		}
		threat = &m
	}

	ds, err := metagame.New(name, records, threat, synergy)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedDataset, name, err)
	}
	return &entry{dataset: ds, info: info}, nil
}

// List returns the names of the datasets present in the directory, sorted.
func (s *Store) List() ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}

	var names []string
	for _, f := range files {
		n := f.Name()
		if f.IsDir() || !strings.HasSuffix(n, recordsSuffix) ||
			strings.HasSuffix(n, synergySuffix) || strings.HasSuffix(n, threatSuffix) {
			continue
		}
		name := strings.TrimSuffix(n, recordsSuffix)
		if validation.IsDatasetName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Evict drops a cached dataset so the next request re-reads it.
func (s *Store) Evict(name string) bool {
	return s.cache.Remove(name)
}

// CleanupExpired drops datasets older than the cache TTL.
func (s *Store) CleanupExpired() int {
	removed := s.cache.CleanupExpired()
	metrics.RecordCacheExpired("dataset", removed)
	return removed
}

// Stats returns dataset cache hit and miss counts and its size.
func (s *Store) Stats() (hits, misses int64, size int) {
	return s.cache.Stats()
}
