package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Loudness computation metrics.
	PerceivedLoudness prometheus.Histogram

	// Census population enrichment metrics.
	CensusRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	CensusCache       *prometheus.CounterVec // labels: result={hit,miss}
	CensusAPIDuration prometheus.Histogram
	CensusEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "boom_etl",
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "boom_etl",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "boom_etl",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "boom_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "boom_etl",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "boom_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PerceivedLoudness: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "boom_etl",
			Name:      "perceived_loudness_db",
			Help:      "Distribution of computed perceived loudness levels in PLdB.",
			Buckets:   []float64{50, 60, 65, 70, 75, 80, 85, 90, 95, 100, 110},
		}),
		CensusRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boom_etl",
			Name:      "census_requests_total",
			Help:      "Census population API requests by outcome.",
		}, []string{"outcome"}),
		CensusCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boom_etl",
			Name:      "census_cache_total",
			Help:      "Census population cache lookups by result.",
		}, []string{"result"}),
		CensusAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "boom_etl",
			Name:      "census_api_duration_seconds",
			Help:      "Census API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		CensusEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "boom_etl",
			Name:      "census_enabled",
			Help:      "1 when population enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.PerceivedLoudness,
		m.CensusRequests,
		m.CensusCache,
		m.CensusAPIDuration,
		m.CensusEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "boom_etl", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "boom_etl", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "boom_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "boom_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "boom_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "boom_etl", Name: "batch_processing_duration_seconds"}),
		PerceivedLoudness:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "boom_etl", Name: "perceived_loudness_db"}),
		CensusRequests:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "boom_etl", Name: "census_requests_total"}, []string{"outcome"}),
		CensusCache:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "boom_etl", Name: "census_cache_total"}, []string{"result"}),
		CensusAPIDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "boom_etl", Name: "census_api_duration_seconds"}),
		CensusEnabled:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "boom_etl", Name: "census_enabled"}),
	}
}
