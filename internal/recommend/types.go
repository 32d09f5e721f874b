// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/recommend/corefinder"
	"github.com/tomtom215/poketeam/internal/recommend/scoring"
	"github.com/tomtom215/poketeam/internal/recommend/teambuilder"
)

// Operation names used in logs and metrics.
const (
	OpAnalyze  = "analyze"
	OpCounters = "counters"
	OpPartners = "partners"
	OpCores    = "cores"
)

// DatasetSource resolves dataset names. loader.Store implements it.
type DatasetSource interface {
	Dataset(ctx context.Context, name string) (*metagame.Dataset, error)
}

// AnalyzeRequest asks for a full analysis of a partial team.
type AnalyzeRequest struct {
	// Dataset names the usage snapshot to score against.
	Dataset string `json:"dataset" validate:"required,datasetname"`

	// Team holds 0 to 6 entity names. Repeats are allowed.
	Team []string `json:"team" validate:"dive,entityname"`

	// Weights overrides the configured weights when set.
	Weights *metagame.Weights `json:"weights,omitempty"`
}

// AnalyzeResponse is the result of Analyze.
type AnalyzeResponse struct {
	RequestID string `json:"request_id"`

	// Threats maps each entity to its threat against the team, scaled by
	// 100 and divided by team size. Empty without threat data.
	Threats map[string]float64 `json:"threats"`

	// Scores rates every entity as the next addition, in dataset order.
	Scores []scoring.Score `json:"scores"`

	// SuggestedTeam is the completed team, omitted when the input was full.
	SuggestedTeam []string `json:"suggested_team,omitempty"`

	// Swaps lists single-slot improvements for a full team.
	Swaps []teambuilder.Swap `json:"swaps"`

	Metadata ResponseMetadata `json:"metadata"`
}

// CoresRequest asks for the cores of a dataset. Nil overrides fall back to
// the engine configuration.
type CoresRequest struct {
	Dataset     string   `json:"dataset" validate:"required,datasetname"`
	MinUsage    *float64 `json:"min_usage,omitempty" validate:"omitempty,gte=0,lte=1"`
	TargetEdges *int     `json:"target_edges,omitempty" validate:"omitempty,gte=1"`
}

// CoresResponse is the result of Cores.
type CoresResponse struct {
	RequestID string            `json:"request_id"`
	Cores     []corefinder.Core `json:"cores"`

	// TooDense is set when a clique exceeded the size ceiling. Cores is
	// empty in that case.
	TooDense bool             `json:"too_dense"`
	Stats    corefinder.Stats `json:"stats"`
	Metadata ResponseMetadata `json:"metadata"`
}

// EntityRequest names one entity of a dataset.
type EntityRequest struct {
	Dataset string `json:"dataset" validate:"required,datasetname"`
	Name    string `json:"name" validate:"required,entityname"`
}

// RatingsResponse is the result of Counters and Partners.
type RatingsResponse struct {
	RequestID string `json:"request_id"`
	Entity    string `json:"entity"`

	// Ratings is ordered highest first. Counters yields nil when the dataset
	// has no threat data.
	Ratings  []scoring.Rating `json:"ratings"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	Dataset   string `json:"dataset"`
	Operation string `json:"operation"`

	// Weights actually applied, after defaulting and normalization.
	Weights *metagame.Weights `json:"weights,omitempty"`

	// HasThreats is false when the dataset carries no threat matrix.
	HasThreats bool `json:"has_threats"`

	// Passes and CycleDetected describe the optimizer run, if any.
	Passes        int  `json:"passes,omitempty"`
	CycleDetected bool `json:"cycle_detected,omitempty"`

	// CacheHit is set when a core result came from the cache.
	CacheHit bool `json:"cache_hit,omitempty"`

	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Metrics are engine counters since construction.
type Metrics struct {
	RequestCount    int64 `json:"request_count"`
	ErrorCount      int64 `json:"error_count"`
	TooDenseCount   int64 `json:"too_dense_count"`
	CoreCacheHits   int64 `json:"core_cache_hits"`
	CoreCacheMisses int64 `json:"core_cache_misses"`
}
