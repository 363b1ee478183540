package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climatrend_records_ingested_total",
			Help: "Daily records successfully ingested",
		},
		[]string{"station", "source"},
	)

	ArchiveAPICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climatrend_archive_api_calls_total",
			Help: "Total climate archive API calls",
		},
		[]string{"source", "status"},
	)

	ArchiveAPILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "climatrend_archive_api_latency_seconds",
			Help:    "Archive API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	AnalysisRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climatrend_analysis_runs_total",
			Help: "Analytics engine invocations by operation",
		},
		[]string{"operation"},
	)
)
