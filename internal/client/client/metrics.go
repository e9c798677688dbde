package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome buckets a finished call for metrics.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeDomain    Outcome = "domain"
	OutcomeExpired   Outcome = "expired"
	OutcomeTransport Outcome = "transport"
)

// Recorder observes every intercepted call.
type Recorder interface {
	Observe(endpoint string, outcome Outcome, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, Outcome, time.Duration) {}

// PrometheusRecorder exports call counts and latencies.
//
// Metrics:
//   - fileshare_client_requests_total{endpoint,outcome}
//   - fileshare_client_request_duration_seconds{endpoint}
type PrometheusRecorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the client metrics with reg. A nil reg
// means prometheus.DefaultRegisterer.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fileshare",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend calls by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fileshare",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (r *PrometheusRecorder) Observe(endpoint string, outcome Outcome, elapsed time.Duration) {
	r.requests.WithLabelValues(endpoint, string(outcome)).Inc()
	r.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
