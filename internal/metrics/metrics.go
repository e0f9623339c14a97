// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flow outcomes used as the "outcome" label.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeGenerationError = "generation_error"
	OutcomeUnavailable     = "unavailable"
)

var (
	FlowRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrimitra_flow_runs_total",
			Help: "Total number of flow runs by outcome",
		},
		[]string{"flow", "outcome"},
	)

	FlowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agrimitra_flow_duration_seconds",
			Help:    "Duration of flow runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"flow"},
	)

	FlowsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agrimitra_flows_active",
			Help: "Number of flow runs in progress",
		},
		[]string{"flow"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrimitra_http_requests_total",
			Help: "Total number of HTTP requests by route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrimitra_panics_recovered_total",
			Help: "Total number of handler panics recovered, by route pattern",
		},
		[]string{"route"},
	)
)
