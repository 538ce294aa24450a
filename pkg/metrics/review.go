package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the review creation HTTP handler
	ReviewCreateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "review_create_latency_seconds",
		Help:    "Latency of the review creation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of reviews created
	ReviewsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reviews_created_total",
		Help: "Total number of reviews created",
	})

	ReviewCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_cache_hits_total",
		Help: "Review list reads served from the in-memory cache",
	})

	ReviewCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_cache_misses_total",
		Help: "Review list reads that went to the store",
	})

	// How often the read-repair pass ran
	ReconcileChecks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_reconcile_checks_total",
		Help: "Summary drift checks performed",
	})

	// How often it actually found and repaired drift
	ReconcileRepairs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_reconcile_repairs_total",
		Help: "Summary drift repairs performed",
	})
)

func Init() {
	prometheus.MustRegister(
		ReviewCreateLatency,
		ReviewsCreated,
		ReviewCacheHits,
		ReviewCacheMisses,
		ReconcileChecks,
		ReconcileRepairs,
	)
}
