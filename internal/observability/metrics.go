// Package observability holds the Prometheus metrics for the briefing
// service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters and histograms shared by the API server and
// the ingest consumer.
type Metrics struct {
	ReportsDecoded     *prometheus.CounterVec // labels: kind
	ReportsClassified  prometheus.Counter
	BriefingsGenerated prometheus.Counter
	UpstreamErrors     *prometheus.CounterVec // labels: endpoint
	BriefingDuration   prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wx_briefing",
			Name:      "reports_decoded_total",
			Help:      "Total raw reports decoded, by report kind.",
		}, []string{"kind"}),
		ReportsClassified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wx_briefing",
			Name:      "reports_classified_total",
			Help:      "Total surface observations classified.",
		}),
		BriefingsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wx_briefing",
			Name:      "briefings_generated_total",
			Help:      "Total route briefings generated.",
		}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wx_briefing",
			Name:      "upstream_errors_total",
			Help:      "Total upstream fetch failures, by endpoint.",
		}, []string{"endpoint"}),
		BriefingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wx_briefing",
			Name:      "briefing_duration_seconds",
			Help:      "Duration of a complete route briefing generation.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
	prometheus.MustRegister(
		m.ReportsDecoded,
		m.ReportsClassified,
		m.BriefingsGenerated,
		m.UpstreamErrors,
		m.BriefingDuration,
	)
	return m
}
