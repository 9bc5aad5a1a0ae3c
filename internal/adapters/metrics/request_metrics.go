package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Request kinds seen by the mediator
const (
	KindCommand = "command"
	KindQuery   = "query"
)

// RequestMetricsCollector times the economy commands and queries that pass
// through the mediator. Advancing the clock and executing deals are commands;
// valuations, shortlists, credit and deal lookups are queries.
type RequestMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		// An Advance over many valuation ticks can take seconds
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Mediator request latency by request, kind and outcome",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.025, 0.1, 0.5, 2.5, 10},
			},
			[]string{"request", "kind", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Mediator requests handled by request, kind and outcome",
			},
			[]string{"request", "kind", "status"},
		),
	}
}

// Register adds the collectors to Registry; a nil Registry means metrics are off
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, m := range []prometheus.Collector{c.duration, c.total} {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Observe records one handled request
func (c *RequestMetricsCollector) Observe(request string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	kind := requestKind(request)
	c.duration.WithLabelValues(request, kind, status).Observe(seconds)
	c.total.WithLabelValues(request, kind, status).Inc()
}

// requestKind classifies a request by its type name suffix
func requestKind(request string) string {
	if strings.HasSuffix(request, "Command") {
		return KindCommand
	}
	return KindQuery
}
