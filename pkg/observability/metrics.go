package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments exposed by the engine.
type Metrics struct {
	// Latency of handled HTTP requests, labelled by route and outcome.
	RequestDuration *prometheus.HistogramVec

	// Count of decision-chain evaluations by resulting status.
	DecisionsTotal *prometheus.CounterVec

	// Count of eligibility assessments by eligibility outcome.
	AssessmentsTotal *prometheus.CounterVec

	// Count of document verifications by resulting status.
	VerificationsTotal *prometheus.CounterVec
}

// NewMetrics registers the engine instruments on reg. A nil registerer
// falls back to a private registry so tests can construct Metrics without
// polluting the default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "underwriting_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),

		DecisionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "underwriting_decisions_total",
			Help: "Total number of decision-chain evaluations by outcome.",
		}, []string{"status"}),

		AssessmentsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "underwriting_assessments_total",
			Help: "Total number of eligibility assessments by outcome.",
		}, []string{"eligible"}),

		VerificationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "underwriting_document_verifications_total",
			Help: "Total number of document verifications by resulting status.",
		}, []string{"status"}),
	}
}

// MetricsHandler returns the HTTP handler serving the /metrics endpoint
// for the given registry.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
