// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/poketeam/internal/loader"
	"github.com/tomtom215/poketeam/internal/logging"
	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/metagame/metagametest"
	"github.com/tomtom215/poketeam/internal/metrics"
	"github.com/tomtom215/poketeam/internal/recommend/corefinder"
	"github.com/tomtom215/poketeam/internal/validation"
)

// mockSource implements DatasetSource for testing.
type mockSource struct {
	mu       sync.Mutex
	datasets map[string]*metagame.Dataset
	calls    int
}

func newMockSource(datasets ...*metagame.Dataset) *mockSource {
	m := &mockSource{datasets: make(map[string]*metagame.Dataset)}
	for _, ds := range datasets {
		m.datasets[ds.Name()] = ds
	}
	return m
}

func (m *mockSource) Dataset(ctx context.Context, name string) (*metagame.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	ds, ok := m.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", loader.ErrDatasetNotFound, name)
	}
	return ds, nil
}

func (m *mockSource) replace(ds *metagame.Dataset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[ds.Name()] = ds
}

func newTestEngine(t *testing.T, cfg *Config, source DatasetSource) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, source, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func defaultSource() *mockSource {
	return newMockSource(
		metagametest.RockPaperScissors(),
		metagametest.RockPaperScissorsNoThreats(),
		metagametest.Clusters(),
	)
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		source  DatasetSource
		wantErr bool
	}{
		{name: "nil config uses defaults", cfg: nil, source: defaultSource()},
		{name: "default config", cfg: DefaultConfig(), source: defaultSource()},
		{
			name: "invalid config",
			cfg: func() *Config {
				c := DefaultConfig()
				c.Scoring.DuplicatePenalty = -1
				return c
			}(),
			source:  defaultSource(),
			wantErr: true,
		},
		{name: "nil source", cfg: DefaultConfig(), source: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, err := NewEngine(tt.cfg, tt.source, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEngine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && e == nil {
				t.Fatal("NewEngine() returned nil engine")
			}
		})
	}
}

func TestEngine_Analyze_PartialTeam(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	resp, err := e.Analyze(context.Background(), AnalyzeRequest{Dataset: "rps", Team: []string{"Rock"}})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if resp.RequestID == "" {
		t.Error("RequestID is empty")
	}
	if len(resp.Scores) != len(metagametest.RPSNames) {
		t.Errorf("len(Scores) = %d, want %d", len(resp.Scores), len(metagametest.RPSNames))
	}
	for i, s := range resp.Scores {
		if s.Name != metagametest.RPSNames[i] {
			t.Errorf("Scores[%d] = %s, want dataset order %s", i, s.Name, metagametest.RPSNames[i])
		}
	}
	if len(resp.SuggestedTeam) != metagame.TeamSize || resp.SuggestedTeam[0] != "Rock" {
		t.Errorf("SuggestedTeam = %v, want six members starting with Rock", resp.SuggestedTeam)
	}
	if len(resp.Swaps) != 0 {
		t.Errorf("Swaps = %v, want none for a partial team", resp.Swaps)
	}
	if len(resp.Threats) != len(metagametest.RPSNames) {
		t.Errorf("len(Threats) = %d, want %d", len(resp.Threats), len(metagametest.RPSNames))
	}

	meta := resp.Metadata
	if meta.Dataset != "rps" || meta.Operation != OpAnalyze || !meta.HasThreats {
		t.Errorf("Metadata = %+v", meta)
	}
	if meta.Weights == nil || *meta.Weights != metagame.DefaultWeights() {
		t.Errorf("Metadata.Weights = %v, want defaults", meta.Weights)
	}
	if meta.Passes < 1 {
		t.Errorf("Metadata.Passes = %d, want at least 1", meta.Passes)
	}
}

func TestEngine_Analyze_FullTeam(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	team := []string{"Rock", "Rock", "Rock", "Rock", "Rock", "Rock"}
	resp, err := e.Analyze(context.Background(), AnalyzeRequest{Dataset: "rps", Team: team})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.SuggestedTeam != nil {
		t.Errorf("SuggestedTeam = %v, want nil for a full team", resp.SuggestedTeam)
	}
	if resp.Swaps == nil {
		t.Error("Swaps = nil, want a slice")
	}
	if resp.Metadata.Passes != 0 {
		t.Errorf("Metadata.Passes = %d, want 0 when nothing was built", resp.Metadata.Passes)
	}
}

func TestEngine_Analyze_KeepsRequestID(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	ctx := logging.ContextWithRequestID(context.Background(), "req-1")
	resp, err := e.Analyze(ctx, AnalyzeRequest{Dataset: "rps"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", resp.RequestID)
	}
}

func TestEngine_Analyze_Weights(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	tests := []struct {
		name    string
		weights *metagame.Weights
		want    metagame.Weights
	}{
		{name: "configured default", weights: nil, want: metagame.DefaultWeights()},
		{name: "override", weights: &metagame.Weights{Counter: 1, Team: 0, Usage: 3}, want: metagame.Weights{Counter: 1, Usage: 3}},
		{name: "all zero coerced", weights: &metagame.Weights{}, want: metagame.Weights{Counter: 1, Team: 1, Usage: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Analyze(context.Background(), AnalyzeRequest{Dataset: "rps", Weights: tt.weights})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if *resp.Metadata.Weights != tt.want {
				t.Errorf("Weights = %+v, want %+v", *resp.Metadata.Weights, tt.want)
			}
		})
	}
}

func TestEngine_Analyze_NoThreatData(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	resp, err := e.Analyze(context.Background(), AnalyzeRequest{Dataset: "rps-nothreat", Team: []string{"Paper"}})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(resp.Threats) != 0 {
		t.Errorf("Threats = %v, want empty", resp.Threats)
	}
	if resp.Metadata.HasThreats {
		t.Error("HasThreats = true for a dataset without threat data")
	}
}

func TestEngine_Analyze_Errors(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	tests := []struct {
		name       string
		req        AnalyzeRequest
		wantErr    error
		wantStatus string
	}{
		{
			name:       "unknown dataset",
			req:        AnalyzeRequest{Dataset: "gen1ou"},
			wantErr:    loader.ErrDatasetNotFound,
			wantStatus: metrics.StatusNotFound,
		},
		{
			name:       "missing dataset name",
			req:        AnalyzeRequest{},
			wantErr:    ErrInvalidRequest,
			wantStatus: metrics.StatusMalformed,
		},
		{
			name:       "path traversal",
			req:        AnalyzeRequest{Dataset: "../etc"},
			wantErr:    ErrInvalidRequest,
			wantStatus: metrics.StatusMalformed,
		},
		{
			name:       "blank member",
			req:        AnalyzeRequest{Dataset: "rps", Team: []string{"Rock", " "}},
			wantErr:    ErrInvalidRequest,
			wantStatus: metrics.StatusMalformed,
		},
		{
			name:       "negative weight",
			req:        AnalyzeRequest{Dataset: "rps", Weights: &metagame.Weights{Counter: -1}},
			wantErr:    ErrInvalidRequest,
			wantStatus: metrics.StatusMalformed,
		},
		{
			name:       "unknown entity",
			req:        AnalyzeRequest{Dataset: "rps", Team: []string{"Rock", "Lizard"}},
			wantErr:    metagame.ErrUnknownEntity,
			wantStatus: metrics.StatusNotFound,
		},
		{
			name:       "team too large",
			req:        AnalyzeRequest{Dataset: "rps", Team: []string{"Rock", "Rock", "Rock", "Rock", "Rock", "Rock", "Rock"}},
			wantErr:    metagame.ErrTeamTooLarge,
			wantStatus: metrics.StatusMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Analyze(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
			if resp != nil {
				t.Errorf("Analyze() response = %+v, want nil on error", resp)
			}
			if got := Status(err); got != tt.wantStatus {
				t.Errorf("Status() = %s, want %s", got, tt.wantStatus)
			}
		})
	}
}

func TestEngine_Analyze_ValidationDetails(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	_, err := e.Analyze(context.Background(), AnalyzeRequest{Dataset: "bad/name"})

	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v does not carry *validation.RequestValidationError", err)
	}
	body := verr.ToErrorBody()
	if body.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", body.Code)
	}
}

func TestEngine_Counters(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())
	ctx := context.Background()

	resp, err := e.Counters(ctx, EntityRequest{Dataset: "rps", Name: "Rock"})
	if err != nil {
		t.Fatalf("Counters() error = %v", err)
	}
	if resp.Entity != "Rock" || len(resp.Ratings) != len(metagametest.RPSNames) {
		t.Fatalf("Counters() = %+v", resp)
	}
	if resp.Ratings[0].Name != "MegaPaper" || resp.Ratings[0].Value != 200 {
		t.Errorf("top counter = %+v, want MegaPaper at 200", resp.Ratings[0])
	}
	if !sort.SliceIsSorted(resp.Ratings, func(i, j int) bool { return resp.Ratings[i].Value > resp.Ratings[j].Value }) {
		t.Errorf("ratings not sorted descending: %v", resp.Ratings)
	}

	noThreats, err := e.Counters(ctx, EntityRequest{Dataset: "rps-nothreat", Name: "Rock"})
	if err != nil {
		t.Fatalf("Counters(no threats) error = %v", err)
	}
	if noThreats.Ratings != nil {
		t.Errorf("Ratings = %v, want nil without threat data", noThreats.Ratings)
	}

	if _, err := e.Counters(ctx, EntityRequest{Dataset: "rps", Name: "Lizard"}); !errors.Is(err, metagame.ErrUnknownEntity) {
		t.Errorf("Counters(unknown) error = %v, want ErrUnknownEntity", err)
	}
	if _, err := e.Counters(ctx, EntityRequest{Dataset: "rps"}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Counters(no name) error = %v, want ErrInvalidRequest", err)
	}
}

func TestEngine_Partners(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	resp, err := e.Partners(context.Background(), EntityRequest{Dataset: "rps", Name: "Rock"})
	if err != nil {
		t.Fatalf("Partners() error = %v", err)
	}
	if resp.Ratings[0].Name != "MegaRock" {
		t.Errorf("top partner = %s, want MegaRock", resp.Ratings[0].Name)
	}
	if last := resp.Ratings[len(resp.Ratings)-1]; last.Name != "Rock" || last.Value != 0 {
		t.Errorf("last partner = %+v, want Rock at 0", last)
	}
	if resp.Metadata.Operation != OpPartners {
		t.Errorf("Operation = %s, want %s", resp.Metadata.Operation, OpPartners)
	}
}

func TestEngine_Cores(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	resp, err := e.Cores(context.Background(), CoresRequest{Dataset: "clusters"})
	if err != nil {
		t.Fatalf("Cores() error = %v", err)
	}
	want := []corefinder.Core{{"A", "B", "C"}, {"D", "E"}}
	if !reflect.DeepEqual(resp.Cores, want) {
		t.Errorf("Cores = %v, want %v", resp.Cores, want)
	}
	if resp.TooDense {
		t.Error("TooDense = true")
	}
	if resp.Stats.Vertices != 6 || resp.Stats.Cliques != 2 {
		t.Errorf("Stats = %+v", resp.Stats)
	}
	if resp.Metadata.CacheHit {
		t.Error("first call reported a cache hit")
	}
}

func TestEngine_Cores_LogsApproximator(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	for _, tt := range []struct {
		twoOpt bool
		want   string
	}{
		{true, `"approximator":"nearest_neighbor_2opt"`},
		{false, `"approximator":"nearest_neighbor"`},
	} {
		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.TwoOpt = tt.twoOpt
		e, err := NewEngine(cfg, defaultSource(), zerolog.New(&buf))
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if _, err := e.Cores(context.Background(), CoresRequest{Dataset: "clusters"}); err != nil {
			t.Fatalf("Cores() error = %v", err)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("TwoOpt=%v: log lacks %s: %s", tt.twoOpt, tt.want, buf.String())
		}
	}
}

func TestEngine_Cores_Cache(t *testing.T) {
	t.Parallel()
	source := defaultSource()
	e := newTestEngine(t, nil, source)
	ctx := context.Background()

	first, err := e.Cores(ctx, CoresRequest{Dataset: "clusters"})
	if err != nil {
		t.Fatalf("Cores() error = %v", err)
	}
	second, err := e.Cores(ctx, CoresRequest{Dataset: "clusters"})
	if err != nil {
		t.Fatalf("Cores() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second call missed the cache")
	}
	if !reflect.DeepEqual(first.Cores, second.Cores) {
		t.Errorf("cached cores %v differ from %v", second.Cores, first.Cores)
	}

	// Different parameters are a different entry.
	edges := 3
	other, err := e.Cores(ctx, CoresRequest{Dataset: "clusters", TargetEdges: &edges})
	if err != nil {
		t.Fatalf("Cores(target_edges) error = %v", err)
	}
	if other.Metadata.CacheHit {
		t.Error("override served from the default entry")
	}

	// A reloaded dataset must not be served a stale result.
	source.replace(metagametest.Clusters())
	reloaded, err := e.Cores(ctx, CoresRequest{Dataset: "clusters"})
	if err != nil {
		t.Fatalf("Cores() error = %v", err)
	}
	if reloaded.Metadata.CacheHit {
		t.Error("reloaded dataset served from cache")
	}

	m := e.GetMetrics()
	if m.CoreCacheHits != 1 || m.CoreCacheMisses != 3 {
		t.Errorf("core cache hits/misses = %d/%d, want 1/3", m.CoreCacheHits, m.CoreCacheMisses)
	}

	if n := e.InvalidateDataset("clusters"); n != 2 {
		t.Errorf("InvalidateDataset() = %d, want 2", n)
	}
	if n := e.InvalidateDataset("clusters"); n != 0 {
		t.Errorf("second InvalidateDataset() = %d, want 0", n)
	}
}

func TestEngine_Cores_CacheDisabled(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.CoreCache.Entries = 0
	e := newTestEngine(t, cfg, defaultSource())

	for i := 0; i < 2; i++ {
		resp, err := e.Cores(context.Background(), CoresRequest{Dataset: "clusters"})
		if err != nil {
			t.Fatalf("Cores() error = %v", err)
		}
		if resp.Metadata.CacheHit {
			t.Errorf("call %d reported a cache hit with caching disabled", i)
		}
	}
	if e.CleanupExpired() != 0 {
		t.Error("CleanupExpired() on disabled cache removed entries")
	}
	if e.InvalidateDataset("clusters") != 0 {
		t.Error("InvalidateDataset() on disabled cache removed entries")
	}
}

func TestEngine_Cores_TooDense(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Cores.MaxCoreSize = 2
	e := newTestEngine(t, cfg, defaultSource())

	before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(OpCores, metrics.StatusTooDense))

	resp, err := e.Cores(context.Background(), CoresRequest{Dataset: "clusters"})
	if err != nil {
		t.Fatalf("Cores() error = %v, want TooDense response", err)
	}
	if !resp.TooDense {
		t.Error("TooDense = false for a clique above the ceiling")
	}
	if resp.Cores == nil || len(resp.Cores) != 0 {
		t.Errorf("Cores = %v, want empty slice", resp.Cores)
	}
	if got := e.GetMetrics().TooDenseCount; got != 1 {
		t.Errorf("TooDenseCount = %d, want 1", got)
	}
	if after := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(OpCores, metrics.StatusTooDense)); after < before+1 {
		t.Errorf("too_dense counter = %v, want at least %v", after, before+1)
	}
}

func TestEngine_Cores_InvalidOverrides(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	zero := 0
	tooHigh := 1.5
	tests := []struct {
		name string
		req  CoresRequest
	}{
		{name: "zero target edges", req: CoresRequest{Dataset: "clusters", TargetEdges: &zero}},
		{name: "min usage above one", req: CoresRequest{Dataset: "clusters", MinUsage: &tooHigh}},
		{name: "bad dataset name", req: CoresRequest{Dataset: "a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Cores(context.Background(), tt.req); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Cores() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestEngine_CanceledContext(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Analyze(ctx, AnalyzeRequest{Dataset: "rps"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
	if _, err := e.Cores(ctx, CoresRequest{Dataset: "clusters"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Cores() error = %v, want context.Canceled", err)
	}
}

func TestEngine_GetMetrics(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())
	ctx := context.Background()

	_, _ = e.Analyze(ctx, AnalyzeRequest{Dataset: "rps"})
	_, _ = e.Analyze(ctx, AnalyzeRequest{Dataset: "missing"})
	_, _ = e.Partners(ctx, EntityRequest{Dataset: "rps", Name: "Paper"})

	m := e.GetMetrics()
	if m.RequestCount != 3 || m.ErrorCount != 1 {
		t.Errorf("requests/errors = %d/%d, want 3/1", m.RequestCount, m.ErrorCount)
	}
}

func TestEngine_GetConfigReturnsCopy(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	cfg := e.GetConfig()
	cfg.Weights.Team = 100

	if e.GetConfig().Weights.Team == 100 {
		t.Error("mutating GetConfig() result changed the engine")
	}
}

func TestEngine_UpdateConfig(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())

	bad := DefaultConfig()
	bad.Cores.TargetEdges = 0
	if err := e.UpdateConfig(bad); err == nil {
		t.Error("UpdateConfig(invalid) succeeded")
	}

	good := DefaultConfig()
	good.Weights = metagame.Weights{Usage: 1}
	if err := e.UpdateConfig(good); err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}

	resp, err := e.Analyze(context.Background(), AnalyzeRequest{Dataset: "rps"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if *resp.Metadata.Weights != good.Weights {
		t.Errorf("Weights = %+v, want updated %+v", *resp.Metadata.Weights, good.Weights)
	}
}

func TestEngine_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil, defaultSource())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := e.Analyze(ctx, AnalyzeRequest{Dataset: "rps", Team: []string{"Scissors"}})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := e.Cores(ctx, CoresRequest{Dataset: "clusters"})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := e.Counters(ctx, EntityRequest{Dataset: "rps", Name: "Paper"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent request error = %v", err)
		}
	}
	if got := e.GetMetrics().RequestCount; got != 30 {
		t.Errorf("RequestCount = %d, want 30", got)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.StatusOK},
		{fmt.Errorf("x: %w", loader.ErrDatasetNotFound), metrics.StatusNotFound},
		{fmt.Errorf("x: %w", loader.ErrMalformedDataset), metrics.StatusMalformed},
		{fmt.Errorf("x: %w", loader.ErrInvalidName), metrics.StatusMalformed},
		{fmt.Errorf("x: %w", metagame.ErrNegativeWeight), metrics.StatusMalformed},
		{errors.New("disk on fire"), metrics.StatusError},
	}

	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestErrorBody(t *testing.T) {
	t.Parallel()

	if ErrorBody(nil) != nil {
		t.Error("ErrorBody(nil) != nil")
	}

	verr := validation.ValidateStruct(&EntityRequest{Dataset: "rps"})
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"validation", fmt.Errorf("%w: %w", ErrInvalidRequest, verr), CodeValidation},
		{"not found", fmt.Errorf("x: %w", loader.ErrDatasetNotFound), CodeNotFound},
		{"unknown entity", fmt.Errorf("%w: Lizard", metagame.ErrUnknownEntity), CodeNotFound},
		{"malformed", fmt.Errorf("x: %w", metagame.ErrTeamTooLarge), CodeMalformed},
		{"internal", errors.New("disk on fire"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ErrorBody(tt.err)
			if body.Code != tt.code {
				t.Errorf("Code = %s, want %s", body.Code, tt.code)
			}
			if body.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}
