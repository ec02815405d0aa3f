// Package metrics exposes application metrics collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importRowsSeen = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockgraph",
		Subsystem: "import",
		Name:      "rows_seen_total",
		Help:      "Count of CSV rows read per export file.",
	}, []string{"file"})

	importRowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockgraph",
		Subsystem: "import",
		Name:      "rows_written_total",
		Help:      "Count of rows that produced new store records per export file.",
	}, []string{"file"})

	importBatchCommits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blockgraph",
		Subsystem: "import",
		Name:      "batch_commits_total",
		Help:      "Count of store batch commits.",
	})

	importBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "blockgraph",
		Subsystem: "import",
		Name:      "batch_size",
		Help:      "Number of writes per committed batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1..16384
	})
)

// Import tracks ingestion progress.
type Import struct{}

func (Import) RowSeen(file string) {
	importRowsSeen.WithLabelValues(file).Inc()
}

func (Import) RowWritten(file string) {
	importRowsWritten.WithLabelValues(file).Inc()
}

func (Import) BatchCommitted(size int) {
	importBatchCommits.Inc()
	importBatchSize.Observe(float64(size))
}
