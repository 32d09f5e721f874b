// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

/*
Package services provides suture.Service implementations for the batch mode.

# Available Services

Batch Service (BatchService):
  - Reads one JSON request per line and writes one JSON result per line
  - Dispatches analyze, counters, partners and cores to the engine
  - Reports failures inline as validation.ErrorBody values
  - Terminates the tree at end of input

Cache Janitor (CacheJanitorService):
  - Sweeps expired dataset and core cache entries on a ticker
  - Only useful when a cache TTL is configured

# Wire Format

Input:

	{"id":"1","op":"analyze","dataset":"gen9ou","team":["Great Tusk"]}
	{"id":"2","op":"cores","dataset":"gen9ou","target_edges":50}

Output:

	{"id":"1","line":1,"op":"analyze","status":"ok","result":{...}}
	{"id":"2","line":2,"op":"cores","status":"too_dense","result":{"cores":[],"too_dense":true,...}}
	{"line":3,"status":"malformed","error":{"code":"MALFORMED_REQUEST","message":"..."}}

Status values match the poketeam_requests_total status label.

# Usage Example

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	batch := services.NewBatchService(engine, os.Stdin, os.Stdout, services.BatchServiceConfig{}, logger)
	tree.AddWorkerService(batch)

	janitor := services.NewCacheJanitorService(map[string]services.Sweeper{
	    "datasets": store,
	    "cores":    engine,
	}, time.Minute, logger)
	tree.AddMaintenanceService(janitor)

	errCh := tree.ServeBackground(ctx)
	select {
	case <-batch.Done():
	case err := <-errCh:
	}
*/
package services
