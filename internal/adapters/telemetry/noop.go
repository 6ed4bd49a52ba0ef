package telemetry

import (
	"context"

	"go.trai.ch/ppm/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns ctx unchanged and a span that records nothing.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// End does nothing.
func (NoOpSpan) End() {}

// RecordError does nothing.
func (NoOpSpan) RecordError(_ error) {}

// SetAttribute does nothing.
func (NoOpSpan) SetAttribute(_ string, _ any) {}
