// Package observability provides metrics and tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCRequestsTotal counts handled RPC calls by procedure and outcome.
	RPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_rpc_requests_total",
		Help: "Total number of RPC calls by procedure and status",
	}, []string{"procedure", "status"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "murmur_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ReactionTogglesTotal counts reaction toggles by resulting state.
	ReactionTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_reaction_toggles_total",
		Help: "Total number of reaction toggles by resulting state",
	}, []string{"state"})

	// RateLimitRejectionsTotal counts calls rejected by the rate limiter.
	RateLimitRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "murmur_rate_limit_rejections_total",
		Help: "Total number of calls rejected by the rate limiter",
	})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})
)

// TrackQuery returns a closure that records query latency when invoked.
// Usage: defer observability.TrackQuery("select", "posts")()
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
