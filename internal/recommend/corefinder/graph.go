// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package corefinder

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/poketeam/internal/metagame"
)

// ErrDegenerateClique is returned when a maximal clique exceeds the
// configured core size ceiling. The graph is then too dense for its cliques
// to be meaningful.
var ErrDegenerateClique = errors.New("clique exceeds maximum core size")

// Graph is the thresholded affinity graph over the selected vertices.
type Graph struct {
	// Vertices maps graph positions to dataset indices.
	Vertices []int

	// Threshold is the affinity an edge had to exceed. Infinite affinities
	// get an edge even when the threshold itself is infinite.
	Threshold float64

	adj   []bitset
	edges int
}

// Edges returns the number of undirected edges.
func (g *Graph) Edges() int {
	return g.edges
}

// Adjacent reports whether graph positions u and v share an edge.
func (g *Graph) Adjacent(u, v int) bool {
	return g.adj[u].has(v)
}

// affinity is the symmetric co-usage strength of a pair. A zero in either
// direction short-circuits so 0*Inf never yields NaN.
func affinity(syn metagame.Matrix, i, j int, wi, wj float64) float64 {
	if i == j {
		return 0
	}
	a, b := syn.At(i, j), syn.At(j, i)
	if a == 0 || b == 0 || wi == 0 || wj == 0 {
		return 0
	}
	return a * b * wi * wj
}

// BuildGraph selects vertices and draws edges according to cfg.
//
//nolint:gocritic // cfg passed by value for immutability
func BuildGraph(ds *metagame.Dataset, cfg Config) *Graph {
	vertices := make([]int, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		if ds.Usage(i) >= cfg.MinUsage {
			vertices = append(vertices, i)
		}
	}

	n := len(vertices)
	g := &Graph{Vertices: vertices, adj: make([]bitset, n)}
	for u := range g.adj {
		g.adj[u] = newBitset(n)
	}
	if n < 2 {
		return g
	}

	weight := make([]float64, n)
	for u, idx := range vertices {
		weight[u] = math.Pow(ds.Usage(idx), cfg.UsageExponent)
	}

	syn := ds.Synergy()
	aff := make([]float64, 0, n*(n-1)/2)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			aff = append(aff, affinity(syn, vertices[u], vertices[v], weight[u], weight[v]))
		}
	}

	pairs := len(aff)
	q := 1 - float64(cfg.TargetEdges)/float64(pairs)
	q = math.Min(1, math.Max(q, cfg.QuantileFloor))

	sorted := make([]float64, pairs)
	copy(sorted, aff)
	sort.Float64s(sorted)
	g.Threshold = quantile(sorted, q)

	k := 0
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if a := aff[k]; a > 0 && exceeds(a, g.Threshold) {
				g.adj[u].set(v)
				g.adj[v].set(u)
				g.edges++
			}
			k++
		}
	}
	return g
}

// exceeds reports whether affinity a clears threshold. Infinite affinity
// always clears, including an infinite threshold, so a graph whose pairs
// all co-occur without exception still has its edges.
func exceeds(a, threshold float64) bool {
	return a > threshold || (math.IsInf(a, 1) && math.IsInf(threshold, 1))
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation between closest ranks. An infinite upper neighbour resolves
// to the lower one.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	if lo == hi || frac == 0 || math.IsInf(sorted[hi], 1) {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// MaximalCliques enumerates every maximal clique of at least two vertices,
// as graph positions in ascending order. Enumeration stops with
// ErrDegenerateClique as soon as a clique larger than maxSize is found;
// maxSize <= 0 disables the ceiling.
func (g *Graph) MaximalCliques(maxSize int) ([][]int, error) {
	n := len(g.Vertices)
	var cliques [][]int
	if n == 0 {
		return cliques, nil
	}

	p := newBitset(n)
	for v := 0; v < n; v++ {
		p.set(v)
	}

	emit := func(r []int) error {
		if maxSize > 0 && len(r) > maxSize {
			return fmt.Errorf("%w: found %d members, ceiling %d", ErrDegenerateClique, len(r), maxSize)
		}
		if len(r) < 2 {
			return nil
		}
		c := make([]int, len(r))
		copy(c, r)
		sort.Ints(c)
		cliques = append(cliques, c)
		return nil
	}

	if err := g.bronKerbosch(nil, p, newBitset(n), emit); err != nil {
		return nil, err
	}
	return cliques, nil
}

// bronKerbosch is the Tomita variant: branch only on candidates outside the
// neighbourhood of a pivot chosen to maximize |P ∩ N(pivot)|.
func (g *Graph) bronKerbosch(r []int, p, x bitset, emit func([]int) error) error {
	if p.empty() && x.empty() {
		return emit(r)
	}

	pivot, bestCount := -1, -1
	for _, u := range p.or(x).members() {
		if c := p.andCount(g.adj[u]); c > bestCount {
			pivot, bestCount = u, c
		}
	}

	for _, v := range p.andNot(g.adj[pivot]).members() {
		nv := g.adj[v]
		if err := g.bronKerbosch(append(r, v), p.and(nv), x.and(nv), emit); err != nil {
			return err
		}
		p.clear(v)
		x.set(v)
	}
	return nil
}
