// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package corefinder discovers cores: groups of entities that are used
// together unusually often.
//
// # Pipeline
//
//  1. Vertex selection: entities at or above a minimum usage.
//  2. Edges: the symmetric affinity S[i,j]*S[j,i], scaled by each endpoint's
//     usage raised to a configurable exponent, must exceed a quantile
//     threshold chosen so the edge count approximates a target. The quantile
//     never drops below a floor (the median by default).
//  3. Maximal cliques via Bron-Kerbosch with pivoting. Singletons are
//     dropped; a clique above the size ceiling aborts with
//     ErrDegenerateClique.
//  4. Linearization: cliques are arranged on an approximate shortest
//     Hamiltonian cycle under symmetric-difference distance, and the cycle
//     is cut at its heaviest edge.
//
// # Usage
//
//	f := corefinder.New(corefinder.DefaultConfig(), nil)
//	cores, err := f.Find(ds)
//	if errors.Is(err, corefinder.ErrDegenerateClique) {
//	    // the format is one undifferentiated block
//	}
package corefinder
