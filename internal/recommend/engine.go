// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/poketeam/internal/cache"
	"github.com/tomtom215/poketeam/internal/loader"
	"github.com/tomtom215/poketeam/internal/logging"
	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/metrics"
	"github.com/tomtom215/poketeam/internal/recommend/corefinder"
	"github.com/tomtom215/poketeam/internal/recommend/scoring"
	"github.com/tomtom215/poketeam/internal/recommend/teambuilder"
	"github.com/tomtom215/poketeam/internal/validation"
)

// ErrInvalidRequest wraps request validation failures. The wrapped
// *validation.RequestValidationError carries per-field details.
var ErrInvalidRequest = errors.New("invalid request")

// Engine is the request boundary over datasets, the scorer, the team
// optimizer and the core finder. It is safe for concurrent use.
type Engine struct {
	configMu sync.RWMutex
	config   *Config
	source   DatasetSource
	logger   zerolog.Logger

	// cores memoizes discovery results; nil when disabled.
	cores *cache.LRU[*coreResult]

	requestCount    atomic.Int64
	errorCount      atomic.Int64
	tooDenseCount   atomic.Int64
	coreCacheHits   atomic.Int64
	coreCacheMisses atomic.Int64
}

// coreResult is one memoized discovery. dataset pins the snapshot the
// result was computed from so that a reloaded dataset is never served a
// stale result.
type coreResult struct {
	dataset  *metagame.Dataset
	cores    []corefinder.Core
	stats    corefinder.Stats
	tooDense bool
}

// NewEngine creates an engine reading datasets from source. A nil cfg
// selects DefaultConfig.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, source DatasetSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		return nil, errors.New("dataset source is required")
	}

	e := &Engine{
		config: cfg.Clone(),
		source: source,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.CoreCache.Entries > 0 {
		e.cores = cache.NewLRU[*coreResult](cfg.CoreCache.Entries, cfg.CoreCache.TTL)
	}

	e.logger.Info().
		Float64("weight_counter", cfg.Weights.Counter).
		Float64("weight_team", cfg.Weights.Team).
		Float64("weight_usage", cfg.Weights.Usage).
		Int("core_cache_entries", cfg.CoreCache.Entries).
		Msg("recommendation engine initialized")

	return e, nil
}

// Analyze scores every candidate against the team, completes it when it is
// partial and suggests swaps when it is full.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	start := time.Now()
	ctx = logging.EnsureRequestID(ctx)
	logger := e.createRequestLogger(ctx, OpAnalyze, req.Dataset)

	resp, err := e.analyze(ctx, req, start)
	e.finish(logger, OpAnalyze, start, err, false)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("team_size", len(req.Team)).
		Int("passes", resp.Metadata.Passes).
		Bool("cycle_detected", resp.Metadata.CycleDetected).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("analysis complete")
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) analyze(ctx context.Context, req AnalyzeRequest, start time.Time) (*AnalyzeResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cfg := e.GetConfig()
	weights := cfg.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}
	weights, err := metagame.NewWeights(weights.Counter, weights.Team, weights.Usage)
	if err != nil {
		return nil, err
	}

	ds, err := e.dataset(ctx, req.Dataset)
	if err != nil {
		return nil, err
	}
	team, err := ds.Resolve(req.Team)
	if err != nil {
		return nil, err
	}
	scorer, err := scoring.New(ds, cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("create scorer: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := teambuilder.New(scorer).Analyze(team, weights)
	if analysis.SuggestedTeam != nil {
		metrics.RecordOptimization(analysis.Passes, analysis.CycleDetected)
	}

	meta := e.buildResponseMetadata(ds, OpAnalyze, start)
	meta.Weights = &weights
	meta.Passes = analysis.Passes
	meta.CycleDetected = analysis.CycleDetected

	return &AnalyzeResponse{
		RequestID:     logging.RequestIDFromContext(ctx),
		Threats:       analysis.Threats,
		Scores:        analysis.Scores,
		SuggestedTeam: analysis.SuggestedTeam,
		Swaps:         analysis.Swaps,
		Metadata:      meta,
	}, nil
}

// Counters ranks every entity by how threatening it is to the named entity.
// Ratings is nil when the dataset has no threat data.
func (e *Engine) Counters(ctx context.Context, req EntityRequest) (*RatingsResponse, error) {
	return e.ratings(ctx, OpCounters, req, (*scoring.Scorer).Counters)
}

// Partners ranks every entity by usage-weighted synergy with the named
// entity.
func (e *Engine) Partners(ctx context.Context, req EntityRequest) (*RatingsResponse, error) {
	return e.ratings(ctx, OpPartners, req, (*scoring.Scorer).Partners)
}

func (e *Engine) ratings(ctx context.Context, op string, req EntityRequest, rank func(*scoring.Scorer, int) []scoring.Rating) (*RatingsResponse, error) {
	start := time.Now()
	ctx = logging.EnsureRequestID(ctx)
	logger := e.createRequestLogger(ctx, op, req.Dataset)

	resp, err := func() (*RatingsResponse, error) {
		if err := validateRequest(req); err != nil {
			return nil, err
		}
		ds, err := e.dataset(ctx, req.Dataset)
		if err != nil {
			return nil, err
		}
		idx, ok := ds.Index(req.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", metagame.ErrUnknownEntity, req.Name)
		}
		scorer, err := scoring.New(ds, e.GetConfig().Scoring)
		if err != nil {
			return nil, fmt.Errorf("create scorer: %w", err)
		}
		return &RatingsResponse{
			RequestID: logging.RequestIDFromContext(ctx),
			Entity:    req.Name,
			Ratings:   rank(scorer, idx),
			Metadata:  e.buildResponseMetadata(ds, op, start),
		}, nil
	}()

	e.finish(logger, op, start, err, false)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("entity", req.Name).Int("ratings", len(resp.Ratings)).Msg("ratings complete")
	return resp, nil
}

// Cores discovers the cores of a dataset in display order. A clique above
// the size ceiling is not an error: the response carries TooDense instead.
func (e *Engine) Cores(ctx context.Context, req CoresRequest) (*CoresResponse, error) {
	start := time.Now()
	ctx = logging.EnsureRequestID(ctx)
	logger := e.createRequestLogger(ctx, OpCores, req.Dataset)

	resp, err := e.findCores(ctx, req, start)
	e.finish(logger, OpCores, start, err, resp != nil && resp.TooDense)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("cores", len(resp.Cores)).
		Bool("too_dense", resp.TooDense).
		Bool("cache_hit", resp.Metadata.CacheHit).
		Msg("core discovery complete")
	return resp, nil
}

func (e *Engine) findCores(ctx context.Context, req CoresRequest, start time.Time) (*CoresResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cfg := e.GetConfig()
	coreCfg := cfg.Cores
	if req.MinUsage != nil {
		coreCfg.MinUsage = *req.MinUsage
	}
	if req.TargetEdges != nil {
		coreCfg.TargetEdges = *req.TargetEdges
	}
	if err := coreCfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ds, err := e.dataset(ctx, req.Dataset)
	if err != nil {
		return nil, err
	}

	key := coreCacheKey(ds.Name(), coreCfg, cfg.TwoOpt)
	result, hit := e.cachedCores(key, ds)
	if !hit {
		result, err = e.discover(ctx, ds, coreCfg, cfg.approximator())
		if err != nil {
			return nil, err
		}
		if e.cores != nil {
			e.cores.Add(key, result)
		}
	}

	meta := e.buildResponseMetadata(ds, OpCores, start)
	meta.CacheHit = hit

	cores := make([]corefinder.Core, len(result.cores))
	copy(cores, result.cores)
	return &CoresResponse{
		RequestID: logging.RequestIDFromContext(ctx),
		Cores:     cores,
		TooDense:  result.tooDense,
		Stats:     result.stats,
		Metadata:  meta,
	}, nil
}

// discover runs the core finder and folds a degenerate clique into the
// result.
//
//nolint:gocritic // corefinder.Config passed by value for immutability
func (e *Engine) discover(ctx context.Context, ds *metagame.Dataset, cfg corefinder.Config, approx corefinder.CycleApproximator) (*coreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cores, stats, err := corefinder.New(cfg, approx).FindWithStats(ds)
	logger := e.createRequestLogger(ctx, OpCores, ds.Name())
	logger.Debug().
		Str("approximator", approx.Name()).
		Int("vertices", stats.Vertices).
		Int("edges", stats.Edges).
		Int("cliques", stats.Cliques).
		Msg("cores discovered")

	switch {
	case errors.Is(err, corefinder.ErrDegenerateClique):
		return &coreResult{dataset: ds, cores: []corefinder.Core{}, stats: stats, tooDense: true}, nil
	case err != nil:
		return nil, fmt.Errorf("find cores: %w", err)
	}

	metrics.RecordCoresFound(len(cores))
	return &coreResult{dataset: ds, cores: cores, stats: stats}, nil
}

// cachedCores looks up key and rejects entries computed from a different
// snapshot of the dataset.
func (e *Engine) cachedCores(key string, ds *metagame.Dataset) (*coreResult, bool) {
	if e.cores == nil {
		return nil, false
	}
	result, ok := e.cores.Get(key)
	hit := ok && result.dataset == ds
	metrics.RecordCoreCache(hit)
	if hit {
		e.coreCacheHits.Add(1)
		return result, true
	}
	e.coreCacheMisses.Add(1)
	return nil, false
}

//nolint:gocritic // corefinder.Config passed by value for immutability
func coreCacheKey(dataset string, cfg corefinder.Config, twoOpt bool) string {
	return fmt.Sprintf("%s|%g|%d|%g|%g|%d|%t",
		dataset, cfg.MinUsage, cfg.TargetEdges, cfg.QuantileFloor, cfg.UsageExponent, cfg.MaxCoreSize, twoOpt)
}

// dataset fetches a dataset from the source. Source errors already name
// the dataset.
func (e *Engine) dataset(ctx context.Context, name string) (*metagame.Dataset, error) {
	return e.source.Dataset(ctx, name)
}

// validateRequest runs struct validation and wraps failures in
// ErrInvalidRequest.
func validateRequest(req interface{}) error {
	if verr := validation.ValidateStruct(req); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, verr)
	}
	return nil
}

// createRequestLogger creates a logger with request context.
func (e *Engine) createRequestLogger(ctx context.Context, op, dataset string) zerolog.Logger {
	c := e.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("operation", op).
		Str("dataset", dataset)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		c = c.Str("correlation_id", id)
	}
	return c.Logger()
}

// finish updates counters and metrics for one request.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (e *Engine) finish(logger zerolog.Logger, op string, start time.Time, err error, tooDense bool) {
	e.requestCount.Add(1)
	status := Status(err)
	if tooDense {
		status = metrics.StatusTooDense
		e.tooDenseCount.Add(1)
	}
	metrics.RecordRequest(op, status, time.Since(start))

	if err != nil {
		e.errorCount.Add(1)
		logger.Warn().Err(err).Str("status", status).Msg("request failed")
	}
}

// Status maps an engine error onto a metrics status label.
func Status(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.Is(err, loader.ErrDatasetNotFound), errors.Is(err, metagame.ErrUnknownEntity):
		return metrics.StatusNotFound
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, loader.ErrInvalidName),
		errors.Is(err, loader.ErrMalformedDataset),
		errors.Is(err, metagame.ErrTeamTooLarge),
		errors.Is(err, metagame.ErrNegativeWeight):
		return metrics.StatusMalformed
	default:
		return metrics.StatusError
	}
}

// Error codes carried by ErrorBody.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeMalformed  = "MALFORMED_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorBody converts an engine error into its machine-readable form.
// Validation failures keep their per-field details.
func ErrorBody(err error) *validation.ErrorBody {
	if err == nil {
		return nil
	}

	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		return verr.ToErrorBody()
	}

	code := CodeInternal
	switch Status(err) {
	case metrics.StatusNotFound:
		code = CodeNotFound
	case metrics.StatusMalformed:
		code = CodeMalformed
	}
	return &validation.ErrorBody{Code: code, Message: err.Error()}
}

// buildResponseMetadata constructs response metadata.
func (e *Engine) buildResponseMetadata(ds *metagame.Dataset, op string, start time.Time) ResponseMetadata {
	return ResponseMetadata{
		Dataset:    ds.Name(),
		Operation:  op,
		HasThreats: ds.HasThreats(),
		LatencyMS:  time.Since(start).Milliseconds(),
		Timestamp:  time.Now(),
	}
}

// CleanupExpired drops expired core results and returns how many were
// removed.
func (e *Engine) CleanupExpired() int {
	if e.cores == nil {
		return 0
	}
	removed := e.cores.CleanupExpired()
	metrics.RecordCacheExpired("cores", removed)
	return removed
}

// InvalidateDataset drops cached core results for one dataset.
func (e *Engine) InvalidateDataset(name string) int {
	if e.cores == nil {
		return 0
	}
	prefix := name + "|"
	return e.cores.RemoveFunc(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:    e.requestCount.Load(),
		ErrorCount:      e.errorCount.Load(),
		TooDenseCount:   e.tooDenseCount.Load(),
		CoreCacheHits:   e.coreCacheHits.Load(),
		CoreCacheMisses: e.coreCacheMisses.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config.Clone()
}

// UpdateConfig replaces the engine configuration. Cached core results are
// keyed by their parameters and stay valid.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	e.configMu.Lock()
	e.config = cfg.Clone()
	e.configMu.Unlock()

	e.logger.Info().Msg("configuration updated")
	return nil
}
