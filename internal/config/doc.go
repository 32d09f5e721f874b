// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

/*
Package config loads PokeTeam configuration with Koanf v2.

# Sources

Configuration is layered, later sources overriding earlier ones:

 1. Struct defaults (defaultConfig)
 2. YAML file: the -config flag, else CONFIG_PATH, else the first of
    DefaultConfigPaths that exists
 3. Environment variables

Only mapped environment variables are read (see envTransformFunc), so
unrelated variables never leak into the configuration.

# Example File

	data:
	  dir: ./data
	  cache_capacity: 64
	  cache_ttl: 30m
	weights:
	  counter: 2
	  team: 5
	  usage: 2
	scoring:
	  duplicate_penalty: 0.5
	cores:
	  min_usage: 0.01
	  target_edges: 100
	  quantile_floor: 0.5
	  usage_exponent: 0.5
	  max_core_size: 20
	  two_opt: true
	  cache_entries: 32
	logging:
	  level: info
	  format: console
	metrics:
	  textfile_path: /var/lib/node_exporter/poketeam.prom
	batch:
	  janitor_interval: 1m

# Environment Variables

	POKETEAM_DATA_DIR, DATA_DIR         data.dir
	POKETEAM_CACHE_CAPACITY             data.cache_capacity
	POKETEAM_CACHE_TTL                  data.cache_ttl
	POKETEAM_WEIGHT_COUNTER             weights.counter
	POKETEAM_WEIGHT_TEAM                weights.team
	POKETEAM_WEIGHT_USAGE               weights.usage
	POKETEAM_DUPLICATE_PENALTY          scoring.duplicate_penalty
	POKETEAM_CORES_MIN_USAGE            cores.min_usage
	POKETEAM_CORES_TARGET_EDGES         cores.target_edges
	POKETEAM_CORES_QUANTILE_FLOOR       cores.quantile_floor
	POKETEAM_CORES_USAGE_EXPONENT       cores.usage_exponent
	POKETEAM_CORES_MAX_SIZE             cores.max_core_size
	POKETEAM_CORES_TWO_OPT              cores.two_opt
	POKETEAM_CORES_CACHE_ENTRIES        cores.cache_entries
	POKETEAM_LOG_LEVEL, LOG_LEVEL       logging.level
	POKETEAM_LOG_FORMAT, LOG_FORMAT     logging.format
	POKETEAM_LOG_CALLER, LOG_CALLER     logging.caller
	POKETEAM_METRICS_TEXTFILE           metrics.textfile_path
	POKETEAM_JANITOR_INTERVAL           batch.janitor_interval
*/
package config
