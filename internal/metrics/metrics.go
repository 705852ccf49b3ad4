package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageViewsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficlab_pageviews_generated_total",
		Help: "Total number of synthetic page views generated.",
	})

	SessionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficlab_sessions_generated_total",
		Help: "Total number of synthetic sessions generated.",
	})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trafficlab_generation_duration_seconds",
		Help:    "Wall time of a full generator run.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	ReportsRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trafficlab_reports_run_total",
		Help: "Total number of report invocations, labelled by report and status.",
	}, []string{"report", "status"})

	TableRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trafficlab_table_rows",
		Help: "Number of page views in the table currently being analysed.",
	})
)

// WriteTextfile dumps every registered metric in the node-exporter textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
