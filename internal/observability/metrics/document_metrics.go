package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics tracks invoice and quote document rendering.
type DocumentMetrics struct {
	renderTotal           *prometheus.CounterVec
	renderDuration        *prometheus.HistogramVec
	templateFetchFailures prometheus.Counter
}

var (
	documentMetricsOnce sync.Once
	documentMetrics     *DocumentMetrics
)

// Document returns the process-wide document metrics.
func Document() *DocumentMetrics {
	return DocumentWithConfig(Config{})
}

// DocumentWithConfig registers the document metrics once.
func DocumentWithConfig(cfg Config) *DocumentMetrics {
	documentMetricsOnce.Do(func() {
		documentMetrics = newDocumentMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return documentMetrics
}

func ResetDocumentMetricsForTest() {
	documentMetricsOnce = sync.Once{}
	documentMetrics = nil
}

func newDocumentMetrics(registerer prometheus.Registerer, cfg Config) *DocumentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "batidesk"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	renderTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "batidesk_document_render_total",
			Help:        "Documents rendered by type and template outcome.",
			ConstLabels: constLabels,
		},
		[]string{"doc_type", "result"}, // result: custom | default | fallback | failed
	)

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "batidesk_document_render_duration_seconds",
			Help:        "Wall time spent producing a document.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		},
		[]string{"format"},
	)

	templateFetchFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "batidesk_template_fetch_failures_total",
			Help:        "Custom template downloads that fell back to the built-in template.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(
		renderTotal,
		renderDuration,
		templateFetchFailures,
	)

	return &DocumentMetrics{
		renderTotal:           renderTotal,
		renderDuration:        renderDuration,
		templateFetchFailures: templateFetchFailures,
	}
}

func (m *DocumentMetrics) ObserveRender(docType, result, format string, duration time.Duration) {
	if m == nil {
		return
	}
	m.renderTotal.WithLabelValues(docType, result).Inc()
	m.renderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func (m *DocumentMetrics) IncTemplateFetchFailure() {
	if m == nil {
		return
	}
	m.templateFetchFailures.Inc()
}
