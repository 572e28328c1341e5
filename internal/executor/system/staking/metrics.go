package staking

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	stakeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "axiom_staking",
		Subsystem: "staking",
		Name:      "stake_counter",
		Help:      "The total number of created stakes",
	})

	unstakeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "axiom_staking",
		Subsystem: "staking",
		Name:      "unstake_counter",
		Help:      "The total number of released stakes",
	})

	totalStakedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "axiom_staking",
		Subsystem: "staking",
		Name:      "total_staked",
		Help:      "the amount locked by active stakes, may lose precision",
	})
)

func init() {
	prometheus.MustRegister(stakeCounter)
	prometheus.MustRegister(unstakeCounter)
	prometheus.MustRegister(totalStakedGauge)
}

func float64FromBig(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
