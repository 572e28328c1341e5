package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	commitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "axiom_staking",
		Subsystem: "ledger",
		Name:      "commit_duration_second",
		Help:      "The total latency of state commit",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
	})

	versionMetric = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "axiom_staking",
		Subsystem: "ledger",
		Name:      "state_version",
		Help:      "the latest committed state version",
	})

	stateReadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "axiom_staking",
		Subsystem: "ledger",
		Name:      "state_read_duration",
		Help:      "The total latency of read a state from db",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 10),
	})

	stateCacheHitCounter = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "axiom_staking",
		Subsystem: "ledger",
		Name:      "state_cache_hit_counter_per_commit",
		Help:      "The total number of state cache hit per commit",
	})

	stateCacheMissCounter = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "axiom_staking",
		Subsystem: "ledger",
		Name:      "state_cache_miss_counter_per_commit",
		Help:      "The total number of state cache miss per commit",
	})
)

func init() {
	prometheus.MustRegister(commitDuration)
	prometheus.MustRegister(versionMetric)
	prometheus.MustRegister(stateReadDuration)
	prometheus.MustRegister(stateCacheHitCounter)
	prometheus.MustRegister(stateCacheMissCounter)
}

func stateReadTimer() func() {
	start := time.Now()
	return func() {
		stateReadDuration.Observe(time.Since(start).Seconds())
	}
}
