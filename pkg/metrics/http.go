package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records request durations and outcomes for the HTTP surface.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	denied   *prometheus.CounterVec
}

// NewRequestMetrics registers the request metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method and status.",
	}, []string{"method", "status"})
	denied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_denied_total",
		Help: "Requests rejected by the authentication or role guard.",
	}, []string{"reason"})
	reg.MustRegister(duration, total, denied)
	return &RequestMetrics{
		duration: duration,
		total:    total,
		denied:   denied,
	}
}

// Observe records one completed request.
func (m *RequestMetrics) Observe(method string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	code := strconv.Itoa(status)
	m.duration.WithLabelValues(method, code).Observe(elapsed.Seconds())
	m.total.WithLabelValues(method, code).Inc()
}

// IncDenied counts a guard rejection by reason.
func (m *RequestMetrics) IncDenied(reason string) {
	if m == nil || m.denied == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.denied.WithLabelValues(reason).Inc()
}
