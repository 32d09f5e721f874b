// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package metagame

import "errors"

var (
	// ErrUnknownEntity is returned when a team references a name that is not
	// part of the dataset.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrTeamTooLarge is returned when a team holds more than TeamSize members.
	ErrTeamTooLarge = errors.New("team exceeds maximum size")

	// ErrInvalidDataset is returned by New when records and matrices disagree.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrNegativeWeight is returned by NewWeights for negative components.
	ErrNegativeWeight = errors.New("weights must be non-negative")
)
