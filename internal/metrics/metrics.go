// Package metrics exposes Prometheus collectors for the pull pipeline.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pullRunsTotal        *prometheus.CounterVec
	pullRowsWrittenTotal *prometheus.CounterVec
	pullFetchBytesTotal  *prometheus.CounterVec
	pullDurationSeconds  *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		pullRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tablepull_runs_total",
				Help: "Total number of pipeline runs, labeled by dataset and outcome.",
			},
			[]string{"dataset", "outcome"},
		)

		pullRowsWrittenTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tablepull_rows_written_total",
				Help: "Total number of normalized rows written, labeled by dataset.",
			},
			[]string{"dataset"},
		)

		pullFetchBytesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tablepull_fetch_bytes_total",
				Help: "Total number of response bytes fetched, labeled by dataset.",
			},
			[]string{"dataset"},
		)

		pullDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tablepull_run_duration_seconds",
				Help:    "Histogram of end-to-end run durations, labeled by dataset.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 15, 60},
			},
			[]string{"dataset"},
		)
	})
}

// ObserveRun records one finished pipeline run.
func ObserveRun(dataset, outcome string, duration time.Duration) {
	pullRunsTotal.WithLabelValues(dataset, outcome).Inc()
	pullDurationSeconds.WithLabelValues(dataset).Observe(duration.Seconds())
}

// ObserveFetch records the size of a fetched response body.
func ObserveFetch(dataset string, bytesFetched int) {
	if bytesFetched > 0 {
		pullFetchBytesTotal.WithLabelValues(dataset).Add(float64(bytesFetched))
	}
}

// ObserveRowsWritten records how many normalized rows landed on disk.
func ObserveRowsWritten(dataset string, rows int) {
	if rows > 0 {
		pullRowsWrittenTotal.WithLabelValues(dataset).Add(float64(rows))
	}
}
