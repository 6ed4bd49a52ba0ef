package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/ppm/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and logs every finished span
// with its duration and attributes.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing; spans are reported once they end.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the finished span.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	msg := fmt.Sprintf("%s finished in %s", s.Name(), s.EndTime().Sub(s.StartTime()).Round(time.Millisecond))
	if attrs := s.Attributes(); len(attrs) > 0 {
		parts := make([]string, 0, len(attrs))
		for _, kv := range attrs {
			parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
		}
		msg += " (" + strings.Join(parts, ", ") + ")"
	}

	if s.Status().Code == codes.Error {
		b.logger.Warn(msg + ": " + s.Status().Description)
		return
	}
	b.logger.Info(msg)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
