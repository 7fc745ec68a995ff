package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// httpMetrics instruments the REST adapter itself, separate from the
// book counters in internal/engine/metrics.go (spec §4.6 calls out
// "request-level HTTP metrics" in addition to the book's own).
type httpMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newHTTPMetrics() *httpMetrics {
	return &httpMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lob_http_requests_total",
			Help: "Total HTTP requests handled, by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lob_http_request_duration_seconds",
			Help:    "HTTP request latency, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *httpMetrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.requestsTotal, m.requestDuration)
}

func (m *httpMetrics) observe(route, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, status).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}
