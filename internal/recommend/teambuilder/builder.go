// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package teambuilder completes and improves teams using a scoring.Scorer.
//
// Build runs in two phases. The fill phase greedily appends the best
// candidate until the team is full. The improve phase then repeatedly
// replaces the single non-fixed slot whose replacement gains the most, and
// stops when no swap helps or when a swap would revisit an earlier team.
//
// Callers resolve names to indices first; unknown names never reach this
// package.
package teambuilder

import (
	"slices"
	"strconv"
	"strings"

	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/recommend/scoring"
)

// Result is the outcome of Build.
type Result struct {
	// Team is the completed team as dataset indices. Caller-supplied members
	// keep their positions at the front.
	Team []int

	// Passes is the number of improve passes evaluated.
	Passes int

	// CycleDetected is true when the improve phase stopped because the best
	// swap would have revisited an earlier composition.
	CycleDetected bool
}

// Swap suggests replacing the member at Slot.
type Swap struct {
	Slot        int            `json:"slot"`
	Current     string         `json:"current"`
	Replacement string         `json:"replacement"`
	Improvement metagame.Float `json:"improvement"`
}

// Builder completes and improves teams.
type Builder struct {
	scorer *scoring.Scorer
}

// New creates a Builder.
func New(scorer *scoring.Scorer) *Builder {
	return &Builder{scorer: scorer}
}

// Scorer returns the underlying scorer.
func (b *Builder) Scorer() *scoring.Scorer {
	return b.scorer
}

// Build fills team to metagame.TeamSize and then hill-climbs over the slots
// the caller did not supply. The input slice is not modified.
//
//nolint:gocritic // weights passed by value for immutability
func (b *Builder) Build(team []int, w metagame.Weights) Result {
	w = w.Normalize()
	fixed := len(team)
	working := slices.Clone(team)

	for len(working) < metagame.TeamSize {
		working = append(working, b.scorer.Best(working, w).Index)
	}

	res := Result{}
	visited := map[string]struct{}{compositionKey(working): {}}

	for {
		res.Passes++
		slot, candidate, gain := b.steepestSwap(working, fixed, w)
		if slot < 0 || gain <= 0 {
			break
		}

		next := slices.Clone(working)
		next[slot] = candidate
		key := compositionKey(next)
		if _, seen := visited[key]; seen {
			res.CycleDetected = true
			break
		}
		visited[key] = struct{}{}
		working = next
	}

	res.Team = working
	return res
}

// steepestSwap finds the single swap among slots [fixed, len(team)) with
// the greatest positive improvement. It returns slot -1 when none improves.
//
//nolint:gocritic // weights passed by value for immutability
func (b *Builder) steepestSwap(team []int, fixed int, w metagame.Weights) (slot, candidate int, gain float64) {
	slot = -1
	for i := fixed; i < len(team); i++ {
		rest := without(team, i)
		best := b.scorer.Best(rest, w)
		current := b.scorer.Evaluate(rest, team[i], w)
		improvement := best.Combined - current.Combined
		if improvement > gain {
			slot, candidate, gain = i, best.Index, improvement
		}
	}
	return slot, candidate, gain
}

// SuggestSwaps reports, for each slot of a full team, the best replacement
// when it differs from the current member. Teams that are not full yield nil.
// The team is not modified.
//
//nolint:gocritic // weights passed by value for immutability
func (b *Builder) SuggestSwaps(team []int, w metagame.Weights) []Swap {
	if len(team) != metagame.TeamSize {
		return nil
	}
	w = w.Normalize()
	ds := b.scorer.Dataset()

	swaps := make([]Swap, 0, len(team))
	for i, member := range team {
		rest := without(team, i)
		best := b.scorer.Best(rest, w)
		if best.Index == member {
			continue
		}
		current := b.scorer.Evaluate(rest, member, w)
		swaps = append(swaps, Swap{
			Slot:        i,
			Current:     ds.EntityName(member),
			Replacement: best.Name,
			Improvement: metagame.Float(best.Combined - current.Combined),
		})
	}
	return swaps
}

// without returns a copy of team with slot i removed.
func without(team []int, i int) []int {
	out := make([]int, 0, len(team)-1)
	out = append(out, team[:i]...)
	return append(out, team[i+1:]...)
}

// compositionKey canonicalizes a team as a sorted multiset.
func compositionKey(team []int) string {
	sorted := slices.Clone(team)
	slices.Sort(sorted)
	var sb strings.Builder
	for i, idx := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}
