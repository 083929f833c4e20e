package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instrumentation for the API. A fresh
// registry per handler keeps tests independent.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestFailures *prometheus.CounterVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vehicle_affordability",
			Name:      "requests_total",
			Help:      "Total API requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vehicle_affordability",
			Name:      "request_duration_seconds",
			Help:      "API request duration by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		requestFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vehicle_affordability",
			Name:      "request_failures_total",
			Help:      "Failed API requests by endpoint and error kind.",
		}, []string{"endpoint", "kind"}),
	}
}
