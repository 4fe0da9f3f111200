package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the map pipeline.
type Metrics struct {
	PipelineRunning prometheus.Gauge
	StageDuration   *prometheus.HistogramVec // labels: stage={map,impacts}

	// Data loading metrics.
	FetchRequests *prometheus.CounterVec   // labels: dataset, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: dataset

	// Rendering metrics.
	Records        *prometheus.CounterVec // labels: outcome={valid,no_geometry,no_mass,bad_mass,non_positive_mass}
	MarkersDrawn   prometheus.Gauge
	CountriesDrawn prometheus.Gauge

	// Tooltip fragment cache.
	TooltipCache *prometheus.CounterVec // labels: result={hit,miss}

	ImpactsPublished prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.PipelineRunning,
		m.StageDuration,
		m.FetchRequests,
		m.FetchDuration,
		m.Records,
		m.MarkersDrawn,
		m.CountriesDrawn,
		m.TooltipCache,
		m.ImpactsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meteor_map",
			Name:      "pipeline_running",
			Help:      "1 while a render pipeline run is in progress.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meteor_map",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage, fetch included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meteor_map",
			Name:      "fetch_requests_total",
			Help:      "Dataset fetches by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meteor_map",
			Name:      "fetch_duration_seconds",
			Help:      "Dataset fetch duration in seconds, decode included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"dataset"}),
		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meteor_map",
			Name:      "records_total",
			Help:      "Strike records seen, by validation outcome.",
		}, []string{"outcome"}),
		MarkersDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meteor_map",
			Name:      "markers_drawn",
			Help:      "Impact markers on the most recent map.",
		}),
		CountriesDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meteor_map",
			Name:      "countries_drawn",
			Help:      "Country paths on the most recent map.",
		}),
		TooltipCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meteor_map",
			Name:      "tooltip_cache_total",
			Help:      "Tooltip fragment cache lookups by result.",
		}, []string{"result"}),
		ImpactsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteor_map",
			Name:      "impacts_published_total",
			Help:      "Impact markers written to the Kafka impact stream.",
		}),
	}
}
