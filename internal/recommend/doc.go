// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package recommend is the request boundary of PokeTeam.
//
// # Architecture
//
// The Engine resolves a dataset by name and dispatches to three
// subpackages that never talk to each other:
//
//   - scoring: rates every candidate against a partial team
//   - teambuilder: completes a team and hill-climbs over its open slots
//   - corefinder: discovers cliques of frequently co-used entities
//
// # Request Handling
//
// Every operation validates its request with the shared validator, runs
// under a request ID taken from (or added to) the context and records a
// poketeam_requests_total sample labelled with its outcome. Unknown entity
// names are rejected here with metagame.ErrUnknownEntity; lower layers only
// see indices.
//
// Core discovery results are memoized per dataset snapshot and parameter
// set. A clique above the size ceiling is reported as TooDense rather than
// as an error.
//
// # Usage
//
//	store := loader.NewStore(loader.Options{Dir: "data"})
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Analyze(ctx, recommend.AnalyzeRequest{
//	    Dataset: "gen9ou",
//	    Team:    []string{"Great Tusk", "Kingambit"},
//	})
package recommend
