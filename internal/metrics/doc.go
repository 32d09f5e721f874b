// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

/*
Package metrics provides Prometheus instrumentation for PokeTeam.

# Overview

The package provides metrics for:
  - engine operations (analyze, counters, partners, cores) by outcome
  - dataset loading and the dataset cache
  - team optimizer passes and cycle breaks
  - core discovery and its result cache

# Export

PokeTeam is a command-line tool, so there is no scrape endpoint. When a
textfile path is configured, the CLI writes the default registry on exit:

	if err := metrics.WriteTextfile("/var/lib/node_exporter/poketeam.prom"); err != nil {
	    logger.Warn().Err(err).Msg("metrics textfile not written")
	}

The file is picked up by node_exporter's textfile collector.

# Available Metrics

	poketeam_requests_total{operation,status}
	poketeam_request_duration_seconds{operation}
	poketeam_dataset_loads_total{status}
	poketeam_dataset_cache_hits_total
	poketeam_dataset_cache_misses_total
	poketeam_optimizer_passes
	poketeam_optimizer_cycle_breaks_total
	poketeam_cores_found
	poketeam_core_cache_hits_total
	poketeam_core_cache_misses_total
	poketeam_cache_expired_total{cache}
	poketeam_batch_records_total{status}
	poketeam_app_info{version,go_version}
*/
package metrics
