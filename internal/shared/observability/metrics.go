package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inscope_parsing_seconds",
		Help:    "Time spent parsing and indexing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inscope_lookup_seconds",
		Help:    "Time spent resolving a name through a file's imports.",
		Buckets: prometheus.DefBuckets,
	})

	ImportsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inscope_imports_processed_total",
		Help: "Import declarations evaluated during lookups, by import kind.",
	}, []string{"kind"})

	SymbolTableClasses = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inscope_symbol_table_classes",
		Help: "Number of classes currently registered in the symbol table.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inscope_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RescansThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inscope_rescans_throttled_total",
		Help: "Watcher-triggered rescans delayed by the rate limiter.",
	})

	UnusedImportsFound = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inscope_unused_imports",
		Help: "Unused imports found by the most recent analysis pass.",
	})

	UnresolvedImportsFound = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inscope_unresolved_imports",
		Help: "Imports whose reference failed to resolve in the most recent analysis pass.",
	})
)
