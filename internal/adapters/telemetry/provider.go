// Package telemetry adapts OpenTelemetry tracing to ports.Tracer.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/ppm/internal/core/ports"
)

// InstrumentationName names the tracer used for every ppm span.
const InstrumentationName = "go.trai.ch/ppm"

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// NewOTelTracer creates an OTelTracer whose spans are reported through a
// Bridge to logger. The provider is also registered as the global one.
func NewOTelTracer(logger ports.Logger) *OTelTracer {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)

	return &OTelTracer{
		tracer:   tp.Tracer(InstrumentationName),
		provider: tp,
	}
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OTelSpan{span: span}
}

// Shutdown flushes and stops the underlying provider.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
