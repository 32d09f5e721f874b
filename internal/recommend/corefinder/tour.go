// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package corefinder

// CycleApproximator orders the nodes of a complete weighted graph into a
// short Hamiltonian cycle.
type CycleApproximator interface {
	// Name identifies the heuristic in logs.
	Name() string

	// Order returns a permutation of [0, len(dist)). The cycle closes from
	// the last node back to the first. dist is symmetric.
	Order(dist [][]float64) []int
}

// NearestNeighbor builds a tour by always moving to the closest unvisited
// node, starting from node 0. With TwoOpt set, the tour is then refined by
// reversing segments until no reversal shortens it.
type NearestNeighbor struct {
	TwoOpt bool
}

// Name implements CycleApproximator.
func (nn NearestNeighbor) Name() string {
	if nn.TwoOpt {
		return "nearest_neighbor_2opt"
	}
	return "nearest_neighbor"
}

// Order implements CycleApproximator.
func (nn NearestNeighbor) Order(dist [][]float64) []int {
	n := len(dist)
	if n == 0 {
		return nil
	}

	tour := make([]int, 0, n)
	visited := make([]bool, n)
	cur := 0
	tour = append(tour, cur)
	visited[cur] = true

	for len(tour) < n {
		next := -1
		for v := 0; v < n; v++ {
			if visited[v] {
				continue
			}
			if next < 0 || dist[cur][v] < dist[cur][next] {
				next = v
			}
		}
		tour = append(tour, next)
		visited[next] = true
		cur = next
	}

	if nn.TwoOpt {
		twoOpt(tour, dist)
	}
	return tour
}

// twoOptEpsilon guards against cycling on floating point noise.
const twoOptEpsilon = 1e-9

// twoOpt improves tour in place by reversing tour[i+1..j] whenever that
// shortens the cycle.
func twoOpt(tour []int, dist [][]float64) {
	n := len(tour)
	if n < 4 {
		return
	}
	for improved := true; improved; {
		improved = false
		for i := 0; i < n-2; i++ {
			for j := i + 2; j < n; j++ {
				if i == 0 && j == n-1 {
					continue
				}
				a, b := tour[i], tour[i+1]
				c, d := tour[j], tour[(j+1)%n]
				delta := dist[a][c] + dist[b][d] - dist[a][b] - dist[c][d]
				if delta < -twoOptEpsilon {
					reverse(tour[i+1 : j+1])
					improved = true
				}
			}
		}
	}
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
