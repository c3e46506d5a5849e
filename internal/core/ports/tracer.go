package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks

// Tracer is the entry point for creating spans around a build's scheduler
// run and individual task steps. It exists purely for observability: the
// engine's correctness never depends on it, and NoOpTracer is the default.
type Tracer interface {
	// Start creates a new span as a child of ctx's span, if any.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents one traced unit of work.
type Span interface {
	// SetAttribute attaches a key-value pair to the span.
	SetAttribute(key string, value any)
	// RecordError records an error on the span without ending it.
	RecordError(err error)
	// End completes the span.
	End()
}
