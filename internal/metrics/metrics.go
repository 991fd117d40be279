// Package metrics provides the centralized Prometheus metrics registry for the feature pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RaceRecordsExtractedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keiba",
		Name:      "race_records_extracted_total",
		Help:      "Total number of race records read from the JV-Data mirror",
	})
	ResultEntriesExtractedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keiba",
		Name:      "result_entries_extracted_total",
		Help:      "Total number of result entries read from the JV-Data mirror",
	})
	EntriesJoinedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keiba",
		Name:      "entries_joined_total",
		Help:      "Total number of result entries joined to a race record",
	})
	JoinMismatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keiba",
		Name:      "join_mismatches_total",
		Help:      "Total number of result entries dropped for lack of a matching race",
	})
	CoercionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keiba",
		Name:      "coercion_failures_total",
		Help:      "Total number of result columns that failed numeric coercion",
	})
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keiba",
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs by outcome",
	}, []string{"status"})
)

// Gauge metrics
var (
	PedigreeCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "keiba",
		Name:      "pedigree_cache_size",
		Help:      "Number of pedigree records currently cached",
	})
	LastRunEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "keiba",
		Name:      "last_run_entries",
		Help:      "Number of joined entries produced by the most recent run",
	})
)

// Histogram metrics
var (
	StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "keiba",
		Name:      "stage_duration_seconds",
		Help:      "Duration of each pipeline stage in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
	}, []string{"stage"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RaceRecordsExtractedTotal)
		registry.MustRegister(ResultEntriesExtractedTotal)
		registry.MustRegister(EntriesJoinedTotal)
		registry.MustRegister(JoinMismatchesTotal)
		registry.MustRegister(CoercionFailuresTotal)
		registry.MustRegister(PipelineRunsTotal)

		registry.MustRegister(PedigreeCacheSize)
		registry.MustRegister(LastRunEntries)

		registry.MustRegister(StageDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordExtraction records how many records one extraction pass produced.
func RecordExtraction(races, results int) {
	RaceRecordsExtractedTotal.Add(float64(races))
	ResultEntriesExtractedTotal.Add(float64(results))
}

// RecordJoin records the outcome of the race/result join.
func RecordJoin(joined, mismatched int) {
	EntriesJoinedTotal.Add(float64(joined))
	JoinMismatchesTotal.Add(float64(mismatched))
	LastRunEntries.Set(float64(joined))
}

// RecordCoercionFailures records result columns that failed numeric coercion.
func RecordCoercionFailures(count int) {
	CoercionFailuresTotal.Add(float64(count))
}

// RecordStageDuration records how long a pipeline stage took.
func RecordStageDuration(stage string, durationSeconds float64) {
	StageDuration.WithLabelValues(stage).Observe(durationSeconds)
}

// RecordRunOutcome records a completed pipeline run.
func RecordRunOutcome(status string) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
}

// UpdatePedigreeCacheSize updates the pedigree cache size gauge.
func UpdatePedigreeCacheSize(count int) {
	PedigreeCacheSize.Set(float64(count))
}
