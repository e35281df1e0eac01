// Package metricsserver exposes the engine's Prometheus metrics and a
// small HTTP surface (/metrics, /health) over them, grounded on the
// teacher's metrics/metrics.go collector-registration style and its
// internal/api.Server HTTP scaffolding.
package metricsserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is a dedicated registry rather than the global default,
	// matching the teacher's metrics.Registry — keeps the engine's
	// series isolated from whatever else shares the process.
	Registry = prometheus.NewRegistry()

	// PipelineRunsTotal counts completed pipeline invocations by
	// outcome ("ok"/"error") and detection strategy.
	PipelineRunsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zoneengine",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of zone analysis pipeline runs",
		},
		[]string{"strategy", "outcome"},
	)

	// PipelineDuration tracks end-to-end pipeline latency.
	PipelineDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zoneengine",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Zone analysis pipeline run duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"strategy"},
	)

	// ZonesDetectedTotal counts zones surviving detection, by type.
	ZonesDetectedTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zoneengine",
			Subsystem: "pipeline",
			Name:      "zones_detected_total",
			Help:      "Total number of zones surviving detection",
		},
		[]string{"strategy", "zone_type"},
	)

	// ExtractionDuration tracks per-zone feature extraction latency.
	ExtractionDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "zoneengine",
			Subsystem: "extraction",
			Name:      "duration_seconds",
			Help:      "Per-zone feature extraction duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// ExtractionFailuresTotal counts zones whose feature extraction
	// failed (spec.md §4.4's best-effort contract: extraction failure
	// never aborts the run, but it should be observable).
	ExtractionFailuresTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: "zoneengine",
			Subsystem: "extraction",
			Name:      "failures_total",
			Help:      "Total number of zones whose feature extraction failed",
		},
	)

	// CacheLookupsTotal counts cache Load calls by outcome
	// ("hit"/"miss"/"stale"/"error"/"disabled").
	CacheLookupsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zoneengine",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of zone analysis cache lookups",
		},
		[]string{"outcome"},
	)

	// WorkerPoolQueueDepth reports the current task-queue depth for a
	// named worker pool (set from workerpool.Pool's queue length).
	WorkerPoolQueueDepth = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "zoneengine",
			Subsystem: "workerpool",
			Name:      "queue_depth",
			Help:      "Current number of queued tasks in a worker pool",
		},
		[]string{"pool"},
	)
)

// Init registers the standard process/go runtime collectors alongside
// the engine's own metrics, matching the teacher's metrics.Init.
func Init() {
	Registry.MustRegister(prometheus.NewGoCollector())
	Registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
}

// RecordCacheLookup increments CacheLookupsTotal for one outcome.
func RecordCacheLookup(outcome string) {
	CacheLookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordPipelineRun records a completed run's outcome and duration.
func RecordPipelineRun(strategy, outcome string, durationSeconds float64) {
	PipelineRunsTotal.WithLabelValues(strategy, outcome).Inc()
	PipelineDuration.WithLabelValues(strategy).Observe(durationSeconds)
}

// RecordZonesDetected adds count zones of zoneType to the running total.
func RecordZonesDetected(strategy, zoneType string, count int) {
	if count <= 0 {
		return
	}
	ZonesDetectedTotal.WithLabelValues(strategy, zoneType).Add(float64(count))
}
