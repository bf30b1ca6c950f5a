package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TickerFetches tracks rate-ticker fetches by ticker and outcome.
	TickerFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gsu_ticker_fetches_total",
			Help: "Total number of rate ticker fetches",
		},
		[]string{"ticker", "status"},
	)

	// TickerFetchLatency tracks rate-ticker fetch latency.
	TickerFetchLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gsu_ticker_fetch_latency_seconds",
			Help:    "Rate ticker fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"ticker"},
	)

	// CardRecomputations tracks full card-set recomputations per pipeline.
	CardRecomputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gsu_card_recomputations_total",
			Help: "Total number of product card set recomputations",
		},
		[]string{"pipeline"},
	)

	// OnchainCalls tracks eth_call round trips by contract role.
	OnchainCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gsu_onchain_calls_total",
			Help: "Total number of on-chain contract calls",
		},
		[]string{"contract", "status"},
	)

	// OnchainCallLatency tracks eth_call latency by contract role.
	OnchainCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gsu_onchain_call_latency_seconds",
			Help:    "On-chain contract call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"contract"},
	)
)
