// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

/*
Package loader reads pre-validated metagame datasets from a directory and
keeps the parsed results in an LRU cache.

# File Layout

For a dataset named gen9ou-1825 the directory holds:

	gen9ou-1825.json          records and metadata (required)
	gen9ou-1825_team.json     synergy matrix (required)
	gen9ou-1825_threats.json  threat matrix (optional)

The records file:

	{
	  "info": {"metagame": "gen9ou", "cutoff": 1825, "battles": 120000},
	  "entities": [
	    {"name": "Great Tusk", "usage": 0.31, "count": 37200,
	     "items": {"Booster Energy": 0.6}, "moves": {...}, "abilities": {...}}
	  ]
	}

Array order defines dataset order, and therefore matrix row order. Both
matrix files are N x N arrays of numbers. In the synergy matrix null stands
for +Inf; the threat matrix must be finite.

# Caching

Parsed datasets are immutable and shared. The cache is bounded by entry
count and optionally by age so that refreshed files are eventually re-read.
*/
package loader
