package metrics

import "github.com/prometheus/client_golang/prometheus"

// Data source counter vectors
var (
	StatsFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shootout",
		Name:      "stats_fetch_total",
		Help:      "Historical stats fetches by resource and status",
	}, []string{"resource", "status"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shootout",
		Name:      "stats_cache_lookups_total",
		Help:      "Stats cache lookups by resource and result",
	}, []string{"resource", "result"})
)

// Data source histogram vectors
var (
	StatsFetchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shootout",
		Name:      "stats_fetch_latency_seconds",
		Help:      "Latency of historical stats fetches by resource",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource"})
)

// RecordStatsFetch records a remote stats fetch.
// resource should be one of: "shot_profile", "contest_result", "participants"
// status should be one of: "success", "not_found", "error"
func RecordStatsFetch(resource, status string, durationSeconds float64) {
	StatsFetchTotal.WithLabelValues(resource, status).Inc()
	StatsFetchLatency.WithLabelValues(resource).Observe(durationSeconds)
}

// RecordCacheHit records a cache hit for a stats resource.
func RecordCacheHit(resource string) {
	CacheLookupsTotal.WithLabelValues(resource, "hit").Inc()
}

// RecordCacheMiss records a cache miss for a stats resource.
func RecordCacheMiss(resource string) {
	CacheLookupsTotal.WithLabelValues(resource, "miss").Inc()
}
