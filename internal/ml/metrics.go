// Package ml provides Prometheus metrics for location model calls.
package ml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LocationPredictionsTotal tracks predictions by where they were served from
	LocationPredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shootout_location_predictions_total",
			Help: "Total number of location model predictions served",
		},
		[]string{"source"}, // remote, cache
	)

	// LocationPredictionLatency tracks classifier request latency
	LocationPredictionLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shootout_location_prediction_latency_seconds",
			Help:    "Location model request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// LocationModelErrorsTotal tracks failed classifier requests
	LocationModelErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shootout_location_model_errors_total",
			Help: "Total number of failed location model requests",
		},
		[]string{"error_type"},
	)

	// LocationCacheHitRatio tracks the prediction cache hit ratio
	LocationCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shootout_location_cache_hit_ratio",
			Help: "Location prediction cache hit ratio",
		},
	)
)
