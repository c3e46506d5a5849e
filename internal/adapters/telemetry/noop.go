package telemetry

import (
	"context"

	"go.bud.dev/bud/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer. It is the engine's
// default, so that telemetry never becomes a hard dependency for embedding
// the engine as a library.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer { return &NoOpTracer{} }

// Start returns ctx unchanged alongside a no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// SetAttribute does nothing.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// RecordError does nothing.
func (s *NoOpSpan) RecordError(_ error) {}

// End does nothing.
func (s *NoOpSpan) End() {}
