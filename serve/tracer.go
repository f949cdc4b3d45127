package serve

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// LogSpanExporter implements the OpenTelemetry SpanExporter interface
// and writes completed spans to a structured logger. It gives small
// deployments request-level tracing without a collector; errors never
// propagate into the trace pipeline.
type LogSpanExporter struct {
	logger *slog.Logger
}

// NewLogSpanExporter creates a LogSpanExporter.
func NewLogSpanExporter(logger *slog.Logger) *LogSpanExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSpanExporter{logger: logger}
}

// ExportSpans logs a batch of completed spans.
func (e *LogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := make([]any, 0, 2*len(span.Attributes())+4)
		attrs = append(attrs,
			"trace_id", span.SpanContext().TraceID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
		)
		for _, attr := range span.Attributes() {
			attrs = append(attrs, string(attr.Key), attr.Value.Emit())
		}

		e.logger.Debug("span "+span.Name(), attrs...)
	}
	return nil
}

// Shutdown implements the SpanExporter interface.
func (e *LogSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// NewTracerProvider creates a TracerProvider that exports spans through
// a LogSpanExporter. A SimpleSpanProcessor is used so spans appear in
// the log as soon as they complete.
func NewTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	exporter := NewLogSpanExporter(logger)
	processor := sdktrace.NewSimpleSpanProcessor(exporter)

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String("ark-resolver"),
		),
	)
	if err != nil {
		res = resource.Default()
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(res),
	)
}
