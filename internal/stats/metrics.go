package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for a run
type Metrics struct {
	RowsProcessed  prometheus.Counter
	RowsSkipped    prometheus.Counter
	BytesProcessed prometheus.Counter
	Keys           prometheus.Gauge
	RunDuration    prometheus.Gauge
	RangeDuration  prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the provided registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	rowsProcessed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brc_rows_processed_total",
		Help: "Total records aggregated",
	})
	rowsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brc_rows_skipped_total",
		Help: "Total malformed records dropped",
	})
	bytesProcessed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brc_bytes_processed_total",
		Help: "Total input bytes scanned",
	})
	keys := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "brc_keys",
		Help: "Distinct names in the final result",
	})
	runDuration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "brc_run_duration_seconds",
		Help: "Wall time of the most recent run",
	})
	rangeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "brc_range_scan_duration_seconds",
		Help:    "Time taken to scan a single range",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	reg.MustRegister(rowsProcessed, rowsSkipped, bytesProcessed, keys, runDuration, rangeDuration)

	return &Metrics{
		RowsProcessed:  rowsProcessed,
		RowsSkipped:    rowsSkipped,
		BytesProcessed: bytesProcessed,
		Keys:           keys,
		RunDuration:    runDuration,
		RangeDuration:  rangeDuration,
	}
}
