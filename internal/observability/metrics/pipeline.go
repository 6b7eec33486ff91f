package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// pipelineCollectors covers the document pipeline itself: outcomes per
// endpoint, per-stage latency, upload sizes, and which categories the
// classifier lands on.
type pipelineCollectors struct {
	documentsTotal  *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	uploadBytes     *prometheus.HistogramVec
	categoriesTotal *prometheus.CounterVec
	warningsTotal   *prometheus.CounterVec
}

func newPipelineCollectors() pipelineCollectors {
	return pipelineCollectors{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docclass",
				Subsystem: "pipeline",
				Name:      "documents_total",
				Help:      "Total documents handled per endpoint by outcome.",
			},
			[]string{"service", "endpoint", "status"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docclass",
				Subsystem: "pipeline",
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages in seconds.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40, 60, 120},
			},
			[]string{"service", "stage"},
		),
		uploadBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docclass",
				Subsystem: "pipeline",
				Name:      "upload_bytes",
				Help:      "Size distribution of accepted uploads.",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 9),
			},
			[]string{"service", "endpoint"},
		),
		categoriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docclass",
				Subsystem: "pipeline",
				Name:      "categories_total",
				Help:      "Total classifications by industry and category.",
			},
			[]string{"service", "industry", "category"},
		),
		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docclass",
				Subsystem: "pipeline",
				Name:      "warnings_total",
				Help:      "Total degraded results carrying warnings.",
			},
			[]string{"service", "endpoint"},
		),
	}
}

func (c pipelineCollectors) register(registry *prometheus.Registry) {
	registry.MustRegister(
		c.documentsTotal,
		c.stageDuration,
		c.uploadBytes,
		c.categoriesTotal,
		c.warningsTotal,
	)
}

func (m *HTTPServerMetrics) RecordDocument(service, endpoint string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.pipeline.documentsTotal.WithLabelValues(service, endpoint, status).Inc()
}

func (m *HTTPServerMetrics) RecordStage(service, stage string, duration time.Duration) {
	if duration < 0 {
		return
	}
	m.pipeline.stageDuration.WithLabelValues(service, stage).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordUploadSize(service, endpoint string, sizeBytes int64) {
	if sizeBytes <= 0 {
		return
	}
	m.pipeline.uploadBytes.WithLabelValues(service, endpoint).Observe(float64(sizeBytes))
}

func (m *HTTPServerMetrics) RecordClassification(service, industry, category string) {
	if industry == "" {
		industry = "general"
	}
	if category == "" {
		category = "unknown"
	}
	m.pipeline.categoriesTotal.WithLabelValues(service, industry, category).Inc()
}

func (m *HTTPServerMetrics) RecordWarnings(service, endpoint string, count int) {
	if count <= 0 {
		return
	}
	m.pipeline.warningsTotal.WithLabelValues(service, endpoint).Add(float64(count))
}
