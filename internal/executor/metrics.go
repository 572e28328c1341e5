package executor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	txCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "axiom_staking",
		Subsystem: "executor",
		Name:      "tx_counter",
		Help:      "The total number of executed transactions",
	}, []string{"method", "status"})

	executeTxDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "axiom_staking",
		Subsystem: "executor",
		Name:      "execute_tx_duration_second",
		Help:      "The total latency of transaction execution including commit",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	})
)

func init() {
	prometheus.MustRegister(txCounter)
	prometheus.MustRegister(executeTxDuration)
}
