// Package observability wires tracing and metrics into the fx graph.
package observability

import (
	"github.com/batidesk/batidesk/internal/config"
	"github.com/batidesk/batidesk/internal/observability/metrics"
	"github.com/batidesk/batidesk/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.Tracing.Enabled,
		ServiceName:      cfg.Tracing.ServiceName,
		ServiceVersion:   cfg.Tracing.ServiceVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
		ExporterProtocol: cfg.Tracing.ExporterProtocol,
		SamplingRatio:    cfg.Tracing.SamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Environment,
	}
}

func newHTTPMetrics(cfg metrics.Config) (*metrics.HTTPMetrics, error) {
	return metrics.NewHTTPMetrics(cfg, metrics.MeterProvider())
}

func newDocumentMetrics(cfg metrics.Config) *metrics.DocumentMetrics {
	return metrics.DocumentWithConfig(cfg)
}

var Module = fx.Module("observability",
	fx.Provide(
		newTracingConfig,
		tracing.NewProvider,
		newMetricsConfig,
		newHTTPMetrics,
		newDocumentMetrics,
	),
	// Force construction so span export starts with the app.
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)
