// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

/*
Package cache provides a thread-safe, generic LRU cache with optional TTL.

It backs two caches in PokeTeam:
  - parsed datasets in the loader, keyed by dataset name
  - core discovery results in the recommendation engine, keyed by dataset
    name and configuration fingerprint

# Usage Example

	c := cache.NewLRU[*metagame.Dataset](64, 30*time.Minute)
	c.Add("gen9ou-1825", ds)

	if ds, ok := c.Get("gen9ou-1825"); ok {
	    // use ds
	}

	hits, misses, size := c.Stats()

# Expiration

Expiration is lazy: an expired entry is dropped when it is next read.
CleanupExpired sweeps the whole cache and is run periodically by the
supervisor's cache janitor. A TTL of zero or less disables expiration.

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
