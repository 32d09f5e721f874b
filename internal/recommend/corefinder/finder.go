// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package corefinder

import (
	"fmt"
	"slices"
	"sort"

	"github.com/tomtom215/poketeam/internal/metagame"
)

// Config contains the core discovery parameters.
type Config struct {
	// MinUsage excludes entities below this usage from the graph.
	// Default: 0.01
	MinUsage float64 `json:"min_usage" validate:"gte=0,lte=1"`

	// TargetEdges is the edge count the threshold aims for.
	// Default: 100
	TargetEdges int `json:"target_edges" validate:"gte=1"`

	// QuantileFloor is the lowest quantile the threshold may use.
	// Default: 0.5 (the median)
	QuantileFloor float64 `json:"quantile_floor" validate:"gte=0,lte=1"`

	// UsageExponent scales each endpoint's contribution to affinity by
	// usage^UsageExponent. Zero disables usage weighting.
	// Default: 0.5
	UsageExponent float64 `json:"usage_exponent" validate:"gte=0"`

	// MaxCoreSize is the clique size above which the graph is considered
	// degenerate.
	// Default: 20
	MaxCoreSize int `json:"max_core_size" validate:"gte=2"`
}

// DefaultConfig returns the default core discovery configuration.
func DefaultConfig() Config {
	return Config{
		MinUsage:      0.01,
		TargetEdges:   100,
		QuantileFloor: 0.5,
		UsageExponent: 0.5,
		MaxCoreSize:   20,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Validate() error {
	if c.MinUsage < 0 || c.MinUsage > 1 {
		return fmt.Errorf("min_usage must be in [0, 1], got %f", c.MinUsage)
	}
	if c.TargetEdges < 1 {
		return fmt.Errorf("target_edges must be positive, got %d", c.TargetEdges)
	}
	if c.QuantileFloor < 0 || c.QuantileFloor > 1 {
		return fmt.Errorf("quantile_floor must be in [0, 1], got %f", c.QuantileFloor)
	}
	if c.UsageExponent < 0 {
		return fmt.Errorf("usage_exponent must be non-negative, got %f", c.UsageExponent)
	}
	if c.MaxCoreSize < 2 {
		return fmt.Errorf("max_core_size must be at least 2, got %d", c.MaxCoreSize)
	}
	return nil
}

// Core is a group of entity names, sorted.
type Core []string

// Stats describes the graph a Find call worked on.
type Stats struct {
	Vertices  int            `json:"vertices"`
	Edges     int            `json:"edges"`
	Threshold metagame.Float `json:"threshold"`
	Cliques   int            `json:"cliques"`
}

// Finder discovers and orders cores.
type Finder struct {
	cfg    Config
	approx CycleApproximator
}

// New creates a Finder. A nil approx selects NearestNeighbor with 2-opt.
//
//nolint:gocritic // cfg passed by value for immutability
func New(cfg Config, approx CycleApproximator) *Finder {
	if approx == nil {
		approx = NearestNeighbor{TwoOpt: true}
	}
	return &Finder{cfg: cfg, approx: approx}
}

// Find returns the cores of ds in display order.
func (f *Finder) Find(ds *metagame.Dataset) ([]Core, error) {
	cores, _, err := f.FindWithStats(ds)
	return cores, err
}

// FindWithStats is Find plus a description of the graph. Fewer than two
// usable vertices yields no cores and no error.
func (f *Finder) FindWithStats(ds *metagame.Dataset) ([]Core, Stats, error) {
	g := BuildGraph(ds, f.cfg)
	stats := Stats{Vertices: len(g.Vertices), Edges: g.Edges(), Threshold: metagame.Float(g.Threshold)}
	if len(g.Vertices) < 2 {
		return []Core{}, stats, nil
	}

	cliques, err := g.MaximalCliques(f.cfg.MaxCoreSize)
	if err != nil {
		return nil, stats, err
	}
	stats.Cliques = len(cliques)

	cores := make([]Core, len(cliques))
	for i, c := range cliques {
		core := make(Core, len(c))
		for k, pos := range c {
			core[k] = ds.EntityName(g.Vertices[pos])
		}
		sort.Strings(core)
		cores[i] = core
	}

	return f.linearize(cores), stats, nil
}

// linearize orders cores along an approximate shortest cycle and cuts it at
// the heaviest edge.
func (f *Finder) linearize(cores []Core) []Core {
	sort.SliceStable(cores, func(i, j int) bool {
		if len(cores[i]) != len(cores[j]) {
			return len(cores[i]) > len(cores[j])
		}
		return slices.Compare(cores[i], cores[j]) < 0
	})
	if len(cores) < 3 {
		return cores
	}

	n := len(cores)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := float64(symmetricDifference(cores[i], cores[j]))
			dist[i][j], dist[j][i] = d, d
		}
	}

	tour := f.approx.Order(dist)
	path := cutHeaviest(tour, dist)

	out := make([]Core, n)
	for k, idx := range path {
		out[k] = cores[idx]
	}
	return out
}

// cutHeaviest opens a cycle into a path by dropping its heaviest edge.
// On ties the closing edge (last back to first) is preferred, so an
// already-good tour keeps its starting node.
func cutHeaviest(tour []int, dist [][]float64) []int {
	n := len(tour)
	cut := n - 1
	heaviest := dist[tour[n-1]][tour[0]]
	for k := 0; k < n-1; k++ {
		if w := dist[tour[k]][tour[k+1]]; w > heaviest {
			cut, heaviest = k, w
		}
	}

	path := make([]int, 0, n)
	for k := 1; k <= n; k++ {
		path = append(path, tour[(cut+k)%n])
	}
	return path
}

// symmetricDifference counts members in exactly one of two sorted cores,
// respecting multiplicity.
func symmetricDifference(a, b Core) int {
	i, j, diff := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			diff++
			i++
		default:
			diff++
			j++
		}
	}
	return diff + (len(a) - i) + (len(b) - j)
}
