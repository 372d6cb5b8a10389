// Package metrics provides centralized Prometheus metrics registry for the odds engine.
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
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shootout",
		Name:      "simulation_runs_total",
		Help:      "Total number of odds aggregation runs by model and status",
	}, []string{"model", "status"})
	ReplicationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shootout",
		Name:      "replications_total",
		Help:      "Total number of simulated contests",
	})
	ExcludedParticipantsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shootout",
		Name:      "excluded_participants_total",
		Help:      "Participants left out of a field by reason",
	}, []string{"reason"})
)

// Gauge metrics
var (
	ParticipantsInField = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "shootout",
		Name:      "participants_in_field",
		Help:      "Number of participants in the most recent simulated field",
	})
	WinProbability = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "shootout",
		Name:      "win_probability_percent",
		Help:      "Implied win probability for each participant from the latest run",
	}, []string{"participant_id", "participant_name"})
	LastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "shootout",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed aggregation run",
	})
)

// Histogram metrics
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shootout",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of odds aggregation runs in seconds",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
	RoundScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shootout",
		Name:      "round_score",
		Help:      "Distribution of simulated round scores",
		Buckets:   prometheus.LinearBuckets(0, 4, 11),
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(ReplicationsTotal)
		registry.MustRegister(ExcludedParticipantsTotal)

		// Register gauge metrics
		registry.MustRegister(ParticipantsInField)
		registry.MustRegister(WinProbability)
		registry.MustRegister(LastRunTimestamp)

		// Register histogram metrics
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(RoundScore)

		// Register data source metrics
		registry.MustRegister(StatsFetchTotal)
		registry.MustRegister(StatsFetchLatency)
		registry.MustRegister(CacheLookupsTotal)
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

// Handler returns the Prometheus HTTP handler. Collectors registered on the
// default registry are served alongside the engine registry.
func Handler() http.Handler {
	gatherers := prometheus.Gatherers{GetRegistry(), prometheus.DefaultGatherer}
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}

// RecordSimulationRun records a completed or failed aggregation run.
// status should be one of: "success", "failure", "cancelled"
func RecordSimulationRun(model, status string, durationSeconds float64) {
	SimulationRunsTotal.WithLabelValues(model, status).Inc()
	if status == "success" {
		SimulationDuration.Observe(durationSeconds)
	}
}

// RecordReplications adds n simulated contests.
func RecordReplications(n int) {
	ReplicationsTotal.Add(float64(n))
}

// RecordExclusion records a participant dropped from the field.
func RecordExclusion(reason string) {
	ExcludedParticipantsTotal.WithLabelValues(reason).Inc()
}

// RecordRoundScore records one simulated round score.
func RecordRoundScore(score int) {
	RoundScore.Observe(float64(score))
}

// UpdateFieldSize updates the field size gauge.
func UpdateFieldSize(count int) {
	ParticipantsInField.Set(float64(count))
}

// UpdateWinProbability sets the implied win probability gauge for a participant.
func UpdateWinProbability(participantID, participantName string, percent float64) {
	WinProbability.WithLabelValues(participantID, participantName).Set(percent)
}

// ResetWinProbabilities clears per-participant gauges before publishing a new field.
func ResetWinProbabilities() {
	WinProbability.Reset()
}

// UpdateLastRun sets the last completed run timestamp.
func UpdateLastRun(unixSeconds float64) {
	LastRunTimestamp.Set(unixSeconds)
}
