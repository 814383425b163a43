// Package metrics holds the Prometheus collectors shared by the service
// clients, the controllers and the stub service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ServiceCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromind_service_calls_total",
			Help: "Total outbound calls to the inference and weather services",
		},
		[]string{"service", "endpoint", "status"},
	)

	ServiceCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agromind_service_call_latency_seconds",
			Help:    "Outbound service call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)

	ControllerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromind_controller_transitions_total",
			Help: "Total controller state transitions by resulting phase",
		},
		[]string{"controller", "phase"},
	)

	StubRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromind_stub_requests_total",
			Help: "Total requests served by the local stub service",
		},
		[]string{"route", "status"},
	)
)
