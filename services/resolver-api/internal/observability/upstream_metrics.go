package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StepNonce   = "nonce"
	StepResolve = "resolve"
)

var (
	UpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "terabox_resolver",
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Upstream calls by handshake step and outcome",
		},
		[]string{"step", "outcome"},
	)

	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "terabox_resolver",
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Latency of a single upstream call",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"step"},
	)

	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "terabox_resolver",
			Name:      "resolutions_total",
			Help:      "Link resolutions by final result code",
		},
		[]string{"result"},
	)
)
