package catalogue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cdsego_catalogue_requests_total",
		Help: "Catalogue requests by endpoint and outcome",
	}, []string{
		"endpoint", // products|attributes
		"code",     // HTTP status code, or "error" for transport failures
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cdsego_catalogue_request_duration_seconds",
		Help:    "Catalogue request latency by endpoint",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	productsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cdsego_catalogue_products_fetched_total",
		Help: "Products materialized from catalogue result pages",
	})

	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cdsego_catalogue_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"host"})
)

func observeRequest(endpoint, code string, seconds float64) {
	requestsTotal.WithLabelValues(endpoint, code).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(seconds)
}
