// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusOK        = "ok"
	StatusError     = "error"
	StatusTooDense  = "too_dense"
	StatusNotFound  = "not_found"
	StatusMalformed = "malformed"
)

var (
	// Engine Metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poketeam_requests_total",
			Help: "Total number of engine operations by outcome",
		},
		[]string{"operation", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poketeam_request_duration_seconds",
			Help:    "Duration of engine operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	// Dataset Metrics
	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poketeam_dataset_loads_total",
			Help: "Total number of dataset loads from disk by outcome",
		},
		[]string{"status"},
	)

	DatasetCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poketeam_dataset_cache_hits_total",
			Help: "Total number of dataset cache hits",
		},
	)

	DatasetCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poketeam_dataset_cache_misses_total",
			Help: "Total number of dataset cache misses",
		},
	)

	// Optimizer Metrics
	OptimizerPasses = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poketeam_optimizer_passes",
			Help:    "Improvement passes per team optimization",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	OptimizerCycleBreaks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poketeam_optimizer_cycle_breaks_total",
			Help: "Total number of optimizations stopped by a revisited composition",
		},
	)

	// Core Discovery Metrics
	CoresFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poketeam_cores_found",
			Help:    "Cores returned per discovery run",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	CoreCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poketeam_core_cache_hits_total",
			Help: "Total number of core result cache hits",
		},
	)

	CoreCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poketeam_core_cache_misses_total",
			Help: "Total number of core result cache misses",
		},
	)

	CacheExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poketeam_cache_expired_total",
			Help: "Total number of cache entries removed by the janitor",
		},
		[]string{"cache"},
	)

	// Batch Metrics
	BatchRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poketeam_batch_records_total",
			Help: "Total number of batch requests processed by outcome",
		},
		[]string{"status"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poketeam_app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordRequest records an engine operation and its outcome.
func RecordRequest(operation, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(operation, status).Inc()
	RequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDatasetLoad records a dataset read from disk.
func RecordDatasetLoad(status string) {
	DatasetLoads.WithLabelValues(status).Inc()
}

// RecordDatasetCache records a dataset cache lookup.
func RecordDatasetCache(hit bool) {
	if hit {
		DatasetCacheHits.Inc()
	} else {
		DatasetCacheMisses.Inc()
	}
}

// RecordOptimization records one team optimization run.
func RecordOptimization(passes int, cycleDetected bool) {
	OptimizerPasses.Observe(float64(passes))
	if cycleDetected {
		OptimizerCycleBreaks.Inc()
	}
}

// RecordCoreCache records a core result cache lookup.
func RecordCoreCache(hit bool) {
	if hit {
		CoreCacheHits.Inc()
	} else {
		CoreCacheMisses.Inc()
	}
}

// RecordCoresFound records the size of a discovery result.
func RecordCoresFound(count int) {
	CoresFound.Observe(float64(count))
}

// RecordCacheExpired records entries swept by the cache janitor.
func RecordCacheExpired(cache string, removed int) {
	if removed > 0 {
		CacheExpired.WithLabelValues(cache).Add(float64(removed))
	}
}

// RecordBatchRecord records one processed batch request.
func RecordBatchRecord(status string) {
	BatchRecords.WithLabelValues(status).Inc()
}

// SetAppInfo publishes the build version.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// WriteTextfile writes every metric in the default registry to path in the
// Prometheus text format. The write is atomic.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
