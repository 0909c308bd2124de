// Package metrics defines standings-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Standings counters
var (
	StandingsAggregationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standings_aggregations_total",
		Help:      "Total number of standings aggregations by mode",
	}, []string{"mode"})

	StandingsCacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standings_cache_lookups_total",
		Help:      "Standings cache lookups by mode and result",
	}, []string{"mode", "result"})
)

// Standings histograms
var (
	StandingsAggregationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "standings_aggregation_duration_seconds",
		Help:      "Duration of standings aggregation including data fetch",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"mode"})
)

// Standings gauges
var (
	StandingsTrackedEntities = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "standings_tracked_entities",
		Help:      "Number of entities in the last aggregated series set",
	}, []string{"mode"})
)

// RecordAggregation records one aggregation run.
func RecordAggregation(mode string, durationSeconds float64, entities int) {
	StandingsAggregationsTotal.WithLabelValues(mode).Inc()
	StandingsAggregationDuration.WithLabelValues(mode).Observe(durationSeconds)
	StandingsTrackedEntities.WithLabelValues(mode).Set(float64(entities))
}

// RecordCacheLookup records a standings cache hit or miss.
func RecordCacheLookup(mode string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	StandingsCacheLookupsTotal.WithLabelValues(mode, result).Inc()
}
