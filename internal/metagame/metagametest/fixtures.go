// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package metagametest provides small hand-built datasets for tests.
package metagametest

import (
	"math"

	"github.com/tomtom215/poketeam/internal/metagame"
)

// RPSNames lists the Rock/Paper/Scissors entities in dataset order.
var RPSNames = []string{"Rock", "Paper", "Scissors", "MegaRock", "MegaPaper", "MegaScissors"}

// rpsUsage holds usage per entity; descending usage order is
// MegaScissors, MegaPaper, MegaRock, Scissors, Paper, Rock.
var rpsUsage = []float64{0.4, 0.5, 0.6, 0.7, 0.8, 0.9}

// rpsKind is 0 for rock, 1 for paper, 2 for scissors.
var rpsKind = []int{0, 1, 2, 0, 1, 2}

// rpsStrength is 1 for base forms and 2 for mega forms.
var rpsStrength = []float64{1, 1, 1, 2, 2, 2}

// beats reports whether kind a beats kind b.
func beats(a, b int) bool {
	return (a+2)%3 == b
}

// RPSThreats returns the threat matrix where T[x][y] is how threatening y is
// to x. A form is threatened by whatever beats its kind, in proportion to
// the attacker's strength. Same-kind pairs differ by half the strength gap.
func RPSThreats() [][]float64 {
	n := len(RPSNames)
	rows := make([][]float64, n)
	for x := 0; x < n; x++ {
		rows[x] = make([]float64, n)
		for y := 0; y < n; y++ {
			switch {
			case beats(rpsKind[y], rpsKind[x]):
				rows[x][y] = rpsStrength[y]
			case beats(rpsKind[x], rpsKind[y]):
				rows[x][y] = -rpsStrength[x]
			default:
				rows[x][y] = 0.5 * (rpsStrength[y] - rpsStrength[x])
			}
		}
	}
	return rows
}

// RPSSynergy returns the synergy matrix. Each mega form teams strongly with
// its base counterpart, every other distinct pair is neutral and an entity
// never teams with itself.
func RPSSynergy() [][]float64 {
	n := len(RPSNames)
	rows := make([][]float64, n)
	for x := 0; x < n; x++ {
		rows[x] = make([]float64, n)
		for y := 0; y < n; y++ {
			switch {
			case x == y:
				rows[x][y] = 0
			case rpsKind[x] == rpsKind[y]:
				rows[x][y] = 4
			default:
				rows[x][y] = 1
			}
		}
	}
	return rows
}

// RPSRecords returns the entity records in dataset order.
func RPSRecords() []metagame.Record {
	records := make([]metagame.Record, len(RPSNames))
	for i, name := range RPSNames {
		records[i] = metagame.Record{
			Name:  name,
			Usage: rpsUsage[i],
			Count: rpsUsage[i] * 1000,
		}
	}
	return records
}

// RockPaperScissors returns the six-entity dataset with threat data.
func RockPaperScissors() *metagame.Dataset {
	threat := mustMatrix(RPSThreats())
	ds, err := metagame.New("rps", RPSRecords(), &threat, mustMatrix(RPSSynergy()))
	if err != nil {
		panic(err)
	}
	return ds
}

// RockPaperScissorsNoThreats returns the same dataset without threat data.
func RockPaperScissorsNoThreats() *metagame.Dataset {
	ds, err := metagame.New("rps-nothreat", RPSRecords(), nil, mustMatrix(RPSSynergy()))
	if err != nil {
		panic(err)
	}
	return ds
}

func mustMatrix(rows [][]float64) metagame.Matrix {
	m, err := metagame.NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// ClusterNames lists the entities of the Clusters dataset.
var ClusterNames = []string{"A", "B", "C", "D", "E", "F"}

// Clusters returns a dataset without threat data whose synergy forms two
// tight groups, {A, B, C} and {D, E}, with F loosely attached to everyone.
// All entities share the same usage so usage weighting does not change the
// graph shape.
func Clusters() *metagame.Dataset {
	group := []int{0, 0, 0, 1, 1, 2}
	n := len(ClusterNames)
	rows := make([][]float64, n)
	records := make([]metagame.Record, n)
	for x := 0; x < n; x++ {
		records[x] = metagame.Record{Name: ClusterNames[x], Usage: 0.5, Count: 500}
		rows[x] = make([]float64, n)
		for y := 0; y < n; y++ {
			switch {
			case x == y:
				rows[x][y] = 0
			case group[x] == 0 && group[y] == 0:
				rows[x][y] = 5
			case group[x] == 1 && group[y] == 1:
				rows[x][y] = 4
			default:
				rows[x][y] = 0.5
			}
		}
	}
	ds, err := metagame.New("clusters", records, nil, mustMatrix(rows))
	if err != nil {
		panic(err)
	}
	return ds
}

// InseparableNames lists the entities of the Inseparable dataset.
var InseparableNames = []string{"Lead", "Partner", "Loner"}

// Inseparable returns a dataset without threat data in which Lead and
// Partner only ever appear together, so their synergy is +Inf. This is what
// a null cell in a synergy file loads as.
func Inseparable() *metagame.Dataset {
	records := []metagame.Record{
		{Name: "Lead", Usage: 0.4, Count: 400},
		{Name: "Partner", Usage: 0.3, Count: 300},
		{Name: "Loner", Usage: 0.2, Count: 200},
	}
	inf := math.Inf(1)
	synergy := mustMatrix([][]float64{
		{0, inf, 0.2},
		{inf, 0, 0.8},
		{0.2, 0.8, 0},
	})
	ds, err := metagame.New("inseparable", records, nil, synergy)
	if err != nil {
		panic(err)
	}
	return ds
}
