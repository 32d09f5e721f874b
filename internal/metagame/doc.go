// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package metagame holds the immutable per-format usage snapshot that every
// scoring and core-discovery operation reads from.
//
// A Dataset bundles:
//
//   - Records: one per entity, in a stable iteration order
//   - An index: a bijection from entity name onto [0, N)
//   - A threat matrix T (optional): T[i,j] > 0 means entity i threatens j
//   - A synergy matrix S (required): S[i,j] is how much more often j appears
//     alongside i than chance would predict
//
// Datasets are built once by a loader and never mutated afterwards, so a
// single *Dataset may be shared by any number of goroutines without locking.
//
// # Usage
//
//	ds, err := metagame.New("gen9ou", records, threats, synergy)
//	if err != nil {
//	    return err
//	}
//	team, err := ds.Resolve([]string{"Garchomp", "Rotom-Wash"})
//	if errors.Is(err, metagame.ErrUnknownEntity) {
//	    // reject before scoring
//	}
package metagame
