package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blogman",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blogman",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	AuthOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blogman",
		Name:      "auth_operations_total",
		Help:      "Auth operations by outcome.",
	}, []string{"operation", "outcome"})

	EmailsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blogman",
		Name:      "emails_sent_total",
		Help:      "Outbound emails by kind and outcome.",
	}, []string{"kind", "outcome"})

	// Janitor metrics

	JanitorSweepsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blogman",
		Name:      "janitor_sweeps_total",
		Help:      "Completed janitor sweeps.",
	})

	JanitorClearedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blogman",
		Name:      "janitor_cleared_total",
		Help:      "Expired credentials cleared by the janitor.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AuthOperationsTotal,
		EmailsSentTotal,
		JanitorSweepsTotal,
		JanitorClearedTotal,
	)
}

// Checker serves the liveness/readiness endpoints on the metrics port.
type Checker interface {
	LivenessHandler() http.HandlerFunc
	ReadinessHandler() http.HandlerFunc
}

func NewServer(addr string, checker Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", checker.LivenessHandler())
	mux.HandleFunc("/readyz", checker.ReadinessHandler())
	return &http.Server{Addr: addr, Handler: mux}
}
