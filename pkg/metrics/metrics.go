package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuthAttempts counts authentication attempts by terminal outcome
// (success, no_result, failure) and resolution scheme.
var AuthAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "walletapi_auth_attempts_total",
		Help: "Total authentication attempts by outcome",
	},
	[]string{"outcome", "scheme"},
)

// Introspection cache metrics
var (
	IntrospectionCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "walletapi_introspection_cache_hits_total",
			Help: "Introspection results served from the local cache",
		},
	)

	IntrospectionCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "walletapi_introspection_cache_misses_total",
			Help: "Introspection lookups that required a live call",
		},
	)
)

// IntrospectionLatency records latency distribution for live introspection
// round trips against the authorization server
var IntrospectionLatency = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "walletapi_introspection_request_seconds",
		Help:    "Latency in seconds of live token introspection calls",
		Buckets: prometheus.DefBuckets,
	},
)

func init() {
	prometheus.MustRegister(AuthAttempts)
	prometheus.MustRegister(IntrospectionCacheHits, IntrospectionCacheMisses)
	prometheus.MustRegister(IntrospectionLatency)
}
