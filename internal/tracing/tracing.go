package tracing

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation name used by every tracer in the application
const TracerName = "github.com/amaumene/traktmanager"

// Provider wraps the tracer provider used by the application
type Provider struct {
	trace.TracerProvider
	shutdown func(context.Context) error
}

// NewProvider returns a provider that logs finished spans when enabled and a no-op provider otherwise
func NewProvider(enabled bool, logger *logrus.Logger) *Provider {
	if !enabled {
		return &Provider{
			TracerProvider: noop.NewTracerProvider(),
			shutdown:       func(context.Context) error { return nil },
		}
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(NewLogExporter(logger)),
		sdktrace.WithResource(resource.NewSchemaless(semconv.ServiceName("traktmanager"))),
	)
	return &Provider{TracerProvider: tp, shutdown: tp.Shutdown}
}

// NewProviderWithExporter builds an SDK provider exporting to exp
func NewProviderWithExporter(exp sdktrace.SpanExporter) *Provider {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	return &Provider{TracerProvider: tp, shutdown: tp.Shutdown}
}

// Tracer returns the application tracer
func (p *Provider) Tracer() trace.Tracer {
	return p.TracerProvider.Tracer(TracerName)
}

// Shutdown flushes and stops the provider
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}

// LogExporter writes finished spans to a logrus logger at debug level
type LogExporter struct {
	logger *logrus.Logger
}

// NewLogExporter creates a new span exporter backed by logger
func NewLogExporter(logger *logrus.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans logs each span with its attributes
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := logrus.Fields{
			"trace_id": span.SpanContext().TraceID().String(),
			"span_id":  span.SpanContext().SpanID().String(),
			"duration": span.EndTime().Sub(span.StartTime()).String(),
			"status":   span.Status().Code.String(),
		}
		for _, kv := range span.Attributes() {
			fields[attributeKey(kv)] = kv.Value.Emit()
		}
		e.logger.WithFields(fields).Debugf("span %s", span.Name())
	}
	return nil
}

// Shutdown is a no-op
func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}

func attributeKey(kv attribute.KeyValue) string {
	return "span." + string(kv.Key)
}
