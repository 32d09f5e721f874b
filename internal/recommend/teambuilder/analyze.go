// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package teambuilder

import (
	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/recommend/scoring"
)

// Analysis is the full report for one partial team.
type Analysis struct {
	// Threats maps entity name to its summed threat against the team, scaled
	// by 100 and divided by team length. Empty for an empty team or a dataset
	// without threat data.
	Threats map[string]float64 `json:"threats"`

	// Scores rates every entity as the next addition, in dataset order.
	Scores []scoring.Score `json:"scores"`

	// SuggestedTeam is the completed team, nil when the input was full.
	SuggestedTeam []string `json:"suggested_team"`

	// Swaps lists single-slot improvements for a full team. Always empty
	// for teams that are not full.
	Swaps []Swap `json:"swaps"`

	// Passes and CycleDetected describe the improve phase when a team was
	// built.
	Passes        int  `json:"passes"`
	CycleDetected bool `json:"cycle_detected"`
}

// Analyze scores every candidate against team, and either completes the
// team or suggests swaps when it is already full.
//
//nolint:gocritic // weights passed by value for immutability
func (b *Builder) Analyze(team []int, w metagame.Weights) Analysis {
	w = w.Normalize()
	ds := b.scorer.Dataset()
	threats := b.scorer.Threats(team)

	a := Analysis{
		Threats: b.scorer.ThreatMap(threats, len(team)),
		Scores:  b.scorer.ScoreAll(team, w),
		Swaps:   []Swap{},
	}

	if len(team) < metagame.TeamSize {
		res := b.Build(team, w)
		a.SuggestedTeam = ds.NamesOf(res.Team)
		a.Passes = res.Passes
		a.CycleDetected = res.CycleDetected
		return a
	}

	a.Swaps = b.SuggestSwaps(team, w)
	return a
}
