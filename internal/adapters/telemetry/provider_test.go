package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"go.bud.dev/bud/internal/adapters/telemetry"
)

// withRecordedSpans wires a fresh in-memory exporter as the global
// TracerProvider for the duration of fn, restoring whatever provider was
// installed beforehand, and returns every span fn's tracer produced.
func withRecordedSpans(t *testing.T, fn func(tracer *telemetry.OTelTracer)) []tracetest.SpanStub {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(previous)

	fn(telemetry.NewOTelTracer("bud_test"))

	spans := exporter.GetSpans()
	require.NoError(t, tp.Shutdown(context.Background()))
	return spans
}

func TestOTelTracer_RecordsSpanNameAndAttributes(t *testing.T) {
	spans := withRecordedSpans(t, func(tracer *telemetry.OTelTracer) {
		_, span := tracer.Start(context.Background(), "task:compile")
		span.SetAttribute("task.name", "compile")
		span.SetAttribute("cache.hit", false)
		span.End()
	})

	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "task:compile", got.Name)

	attrs := map[string]string{}
	for _, kv := range got.Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "compile", attrs["task.name"])
	assert.Equal(t, "false", attrs["cache.hit"])
}

func TestOTelTracer_RecordErrorAddsExceptionEvent(t *testing.T) {
	boom := errors.New("task step failed")

	spans := withRecordedSpans(t, func(tracer *telemetry.OTelTracer) {
		_, span := tracer.Start(context.Background(), "task:generate")
		span.RecordError(boom)
		span.End()
	})

	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestOTelTracer_ChildSpanNestsUnderParent(t *testing.T) {
	spans := withRecordedSpans(t, func(tracer *telemetry.OTelTracer) {
		parentCtx, parent := tracer.Start(context.Background(), "build:execute")
		_, child := tracer.Start(parentCtx, "task:step")
		child.End()
		parent.End()
	})

	require.Len(t, spans, 2)

	byName := map[string]tracetest.SpanStub{}
	for _, s := range spans {
		byName[s.Name] = s
	}
	child, ok := byName["task:step"]
	require.True(t, ok)
	parent, ok := byName["build:execute"]
	require.True(t, ok)
	assert.Equal(t, parent.SpanContext.SpanID(), child.Parent.SpanID())
}
