// Package metrics provides the centralized Prometheus metrics registry for the race ledger.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "race_ledger"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Results counters
var (
	ResultsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_saved_total",
		Help:      "Total number of event result sets saved",
	})
	ResultRowsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "result_rows_saved_total",
		Help:      "Total number of result rows written",
	})
	ResultValidationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "result_validation_failures_total",
		Help:      "Total number of result sets rejected by validation, by reason",
	}, []string{"reason"})
	CollaboratorFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collaborator_failures_total",
		Help:      "Total number of failed fetch or save operations, by operation",
	}, []string{"operation"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ResultsSavedTotal)
		registry.MustRegister(ResultRowsSavedTotal)
		registry.MustRegister(ResultValidationFailuresTotal)
		registry.MustRegister(CollaboratorFailuresTotal)

		registry.MustRegister(StandingsAggregationsTotal)
		registry.MustRegister(StandingsAggregationDuration)
		registry.MustRegister(StandingsCacheLookupsTotal)
		registry.MustRegister(StandingsTrackedEntities)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordResultsSaved records a saved result set and its row count.
func RecordResultsSaved(rows int) {
	ResultsSavedTotal.Inc()
	ResultRowsSavedTotal.Add(float64(rows))
}

// RecordValidationFailure records a result set rejected for reason.
func RecordValidationFailure(reason string) {
	ResultValidationFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordCollaboratorFailure records a failed fetch or save.
func RecordCollaboratorFailure(operation string) {
	CollaboratorFailuresTotal.WithLabelValues(operation).Inc()
}
