// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package metagame

import "fmt"

// Weights sets the relative importance of the three scoring components.
// Only ratios matter: scaling every component by the same positive factor
// produces identical rankings.
type Weights struct {
	// Counter weights resistance to the current threat profile.
	Counter float64 `json:"counter" koanf:"counter" validate:"gte=0"`

	// Team weights synergy with the members already picked.
	Team float64 `json:"team" koanf:"team" validate:"gte=0"`

	// Usage weights raw popularity.
	Usage float64 `json:"usage" koanf:"usage" validate:"gte=0"`
}

// DefaultWeights returns the weights used when a caller does not supply any.
func DefaultWeights() Weights {
	return Weights{Counter: 2, Team: 5, Usage: 2}
}

// NewWeights validates the components and coerces an all-zero triple to
// equal weights.
func NewWeights(counter, team, usage float64) (Weights, error) {
	w := Weights{Counter: counter, Team: team, Usage: usage}
	if counter < 0 || team < 0 || usage < 0 {
		return Weights{}, fmt.Errorf("%w: got (%g, %g, %g)", ErrNegativeWeight, counter, team, usage)
	}
	return w.Normalize(), nil
}

// Normalize returns a copy where an all-zero triple becomes (1, 1, 1).
// Non-zero triples are returned unchanged.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Normalize() Weights {
	if w.Total() == 0 {
		return Weights{Counter: 1, Team: 1, Usage: 1}
	}
	return w
}

// Total returns the sum of the three components.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Total() float64 {
	return w.Counter + w.Team + w.Usage
}
