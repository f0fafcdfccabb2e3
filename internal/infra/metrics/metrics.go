package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineMetrics exposes per-stage counters and latencies for the query
// pipeline. All methods are safe on a nil receiver so tests can pass nil.
type PipelineMetrics struct {
	registry *prometheus.Registry

	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	verdictTotal  *prometheus.CounterVec
	cacheHits     prometheus.Counter
}

// NewPipelineMetrics creates a metrics set backed by its own registry.
func NewPipelineMetrics() *PipelineMetrics {
	registry := prometheus.NewRegistry()

	stageTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nyaya",
			Subsystem: "pipeline",
			Name:      "stage_total",
			Help:      "Pipeline stage executions by outcome.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nyaya",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	verdictTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nyaya",
			Subsystem: "pipeline",
			Name:      "verdicts_total",
			Help:      "Validation verdicts by validity and confidence.",
		},
		[]string{"valid", "confidence"},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nyaya",
			Subsystem: "pipeline",
			Name:      "answer_cache_hits_total",
			Help:      "Answers served from the query-keyed cache.",
		},
	)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		stageTotal,
		stageDuration,
		verdictTotal,
		cacheHits,
	)

	return &PipelineMetrics{
		registry:      registry,
		stageTotal:    stageTotal,
		stageDuration: stageDuration,
		verdictTotal:  verdictTotal,
		cacheHits:     cacheHits,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PipelineMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStage records one stage execution.
func (m *PipelineMetrics) ObserveStage(stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.stageTotal.WithLabelValues(stage, status).Inc()
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveVerdict records a validation verdict.
func (m *PipelineMetrics) ObserveVerdict(valid bool, confidence string) {
	if m == nil {
		return
	}
	v := "false"
	if valid {
		v = "true"
	}
	m.verdictTotal.WithLabelValues(v, confidence).Inc()
}

// CacheHit records an answer served from the cache.
func (m *PipelineMetrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
