// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package scoring rates candidate additions to a partial team.
//
// Each candidate receives three sub-scores:
//
//   - Counter: how much of the team's outstanding threat profile it covers
//   - Team: geometric mean of its synergy with the current members
//   - Usage: its raw popularity
//
// The sub-scores are folded into one combined score by a weighted geometric
// mean. A zero in any weighted component vetoes the candidate outright.
//
// All methods are pure and safe for concurrent use.
package scoring

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/tomtom215/poketeam/internal/metagame"
)

// Config holds tunable scoring constants.
type Config struct {
	// DuplicatePenalty scales the synergy deduction applied when a member
	// appears more than once in the team. The deduction for a member seen k
	// times is DuplicatePenalty * (k-1) / usage(candidate).
	// Default: 0.5
	DuplicatePenalty float64 `json:"duplicate_penalty" validate:"gte=0"`
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() Config {
	return Config{DuplicatePenalty: 0.5}
}

// Score is the full rating of one candidate against one team.
type Score struct {
	Name     string  `json:"name"`
	Index    int     `json:"-"`
	Combined float64 `json:"combined"`
	Counter  float64 `json:"counter"`
	Team     float64 `json:"team"`
	Usage    float64 `json:"usage"`
}

// Rating pairs an entity name with a single value.
type Rating struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Scorer rates candidates against a dataset.
type Scorer struct {
	ds  *metagame.Dataset
	cfg Config
}

// New creates a Scorer over ds.
func New(ds *metagame.Dataset, cfg Config) (*Scorer, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("dataset is required and must not be empty")
	}
	if cfg.DuplicatePenalty < 0 || math.IsNaN(cfg.DuplicatePenalty) {
		return nil, fmt.Errorf("duplicate_penalty must be non-negative, got %f", cfg.DuplicatePenalty)
	}
	return &Scorer{ds: ds, cfg: cfg}, nil
}

// Dataset returns the dataset the scorer reads from.
func (s *Scorer) Dataset() *metagame.Dataset {
	return s.ds
}

// Threats sums the threat rows of every team member. The result is nil when
// the dataset has no threat data. Members are summed in index order so the
// result does not depend on team ordering.
func (s *Scorer) Threats(team []int) []float64 {
	t := s.ds.Threat()
	if t == nil {
		return nil
	}
	vec := make([]float64, s.ds.Len())
	for _, m := range sortedCopy(team) {
		for j, v := range t.Row(m) {
			vec[j] += v
		}
	}
	return vec
}

// CounterScore rates how well candidate covers the outstanding threats of a
// team of teamSize members. Only the candidate's negative threat entries are
// applied, so a candidate is never penalized for threats it introduces.
// Returns 1 when threats is nil.
func (s *Scorer) CounterScore(threats []float64, teamSize, candidate int) float64 {
	t := s.ds.Threat()
	if threats == nil || t == nil {
		return 1
	}
	row := t.Row(candidate)
	outstanding := 0.0
	for j, v := range threats {
		if row[j] < 0 {
			v += row[j]
		}
		if v > 0 {
			outstanding += v
		}
	}
	return math.Pow(100, -outstanding/float64(teamSize+1))
}

// TeamScore is the geometric mean of the synergy between each member and the
// candidate. Repeated members have their term reduced by the duplicate
// penalty and floored at zero. An empty team scores 1.
func (s *Scorer) TeamScore(team []int, candidate int) float64 {
	if len(team) == 0 {
		return 1
	}

	syn := s.ds.Synergy()
	usage := s.ds.Usage(candidate)
	sorted := sortedCopy(team)

	logSum := 0.0
	for i := 0; i < len(sorted); {
		m := sorted[i]
		k := 1
		for i+k < len(sorted) && sorted[i+k] == m {
			k++
		}
		i += k

		term := syn.At(m, candidate) - s.cfg.DuplicatePenalty*float64(k-1)/usage
		if term <= 0 {
			return 0
		}
		logSum += float64(k) * math.Log(term)
	}
	return math.Exp(logSum / float64(len(team)))
}

// UsageScore returns the candidate's usage.
func (s *Scorer) UsageScore(candidate int) float64 {
	return s.ds.Usage(candidate)
}

// Combined folds sub-scores into one value by a weighted geometric mean.
// Components with zero weight are ignored. Any weighted component scoring
// exactly zero vetoes the candidate.
//
//nolint:gocritic // weights passed by value for immutability
func Combined(counter, team, usage float64, w metagame.Weights) float64 {
	w = w.Normalize()
	parts := [3]struct{ weight, score float64 }{
		{w.Counter, counter},
		{w.Team, team},
		{w.Usage, usage},
	}

	num, den := 0.0, 0.0
	for _, p := range parts {
		if p.weight == 0 {
			continue
		}
		if p.score == 0 {
			return 0
		}
		num += p.weight * math.Log10(p.score)
		den += p.weight
	}
	return math.Pow(10, num/den)
}

// Evaluate scores a single candidate against team.
//
//nolint:gocritic // weights passed by value for immutability
func (s *Scorer) Evaluate(team []int, candidate int, w metagame.Weights) Score {
	return s.evaluate(team, s.Threats(team), candidate, w)
}

//nolint:gocritic // weights passed by value for immutability
func (s *Scorer) evaluate(team []int, threats []float64, candidate int, w metagame.Weights) Score {
	counter := s.CounterScore(threats, len(team), candidate)
	teamScore := s.TeamScore(team, candidate)
	usage := s.UsageScore(candidate)
	return Score{
		Name:     s.ds.EntityName(candidate),
		Index:    candidate,
		Combined: Combined(counter, teamScore, usage, w),
		Counter:  counter,
		Team:     teamScore,
		Usage:    usage,
	}
}

// ScoreAll scores every entity against team, in dataset order.
//
//nolint:gocritic // weights passed by value for immutability
func (s *Scorer) ScoreAll(team []int, w metagame.Weights) []Score {
	w = w.Normalize()
	threats := s.Threats(team)
	scores := make([]Score, s.ds.Len())
	for c := range scores {
		scores[c] = s.evaluate(team, threats, c, w)
	}
	return scores
}

// Best returns the candidate with the strictly greatest combined score.
// Ties go to the earliest entity in dataset order.
//
//nolint:gocritic // weights passed by value for immutability
func (s *Scorer) Best(team []int, w metagame.Weights) Score {
	scores := s.ScoreAll(team, w)
	best := scores[0]
	for _, sc := range scores[1:] {
		if sc.Combined > best.Combined {
			best = sc
		}
	}
	return best
}

// ThreatMap converts a summed threat vector into a name keyed map scaled by
// 100 and normalized by team length. The map is empty when threats is nil
// or the team is empty.
func (s *Scorer) ThreatMap(threats []float64, teamLen int) map[string]float64 {
	out := make(map[string]float64)
	if threats == nil || teamLen == 0 {
		return out
	}
	for j, v := range threats {
		out[s.ds.EntityName(j)] = 100 * v / float64(teamLen)
	}
	return out
}

// Counters ranks every entity by how threatening it is to entity, highest
// first. Returns nil when the dataset has no threat data.
func (s *Scorer) Counters(entity int) []Rating {
	threats := s.Threats([]int{entity})
	if threats == nil {
		return nil
	}
	ratings := make([]Rating, len(threats))
	for j, v := range threats {
		ratings[j] = Rating{Name: s.ds.EntityName(j), Value: 100 * v}
	}
	sortRatings(ratings)
	return ratings
}

// Partners ranks every entity by its synergy with entity weighted by its own
// usage, highest first.
func (s *Scorer) Partners(entity int) []Rating {
	team := []int{entity}
	ratings := make([]Rating, s.ds.Len())
	for p := range ratings {
		ratings[p] = Rating{
			Name:  s.ds.EntityName(p),
			Value: s.TeamScore(team, p) * s.ds.Usage(p),
		}
	}
	sortRatings(ratings)
	return ratings
}

func sortRatings(ratings []Rating) {
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].Value > ratings[j].Value
	})
}

func sortedCopy(team []int) []int {
	out := slices.Clone(team)
	slices.Sort(out)
	return out
}
