package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("eventtree")

// spanName is shared by every emission; the event type is an attribute.
const spanName = "eventtree.emit"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEmitSpan starts a span covering one event traversal.
	StartEmitSpan(ctx context.Context, eventType, origin string) (context.Context, trace.Span)

	// RecordHop adds a span event for one node dispatching the event.
	RecordHop(span trace.Span, path string, listeners int)

	// EndEmitSpan completes the span with the traversal outcome.
	EndEmitSpan(span trace.Span, eventID uint64, hops int, stopped, immediate bool)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartEmitSpan starts a span for an event traversal.
func (m *otelSpanManager) StartEmitSpan(ctx context.Context, eventType, origin string) (context.Context, trace.Span) {
	return tracer.Start(ctx, spanName,
		trace.WithAttributes(
			attribute.String("event.type", eventType),
			attribute.String("event.origin", origin),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// RecordHop adds a "dispatch" span event.
func (m *otelSpanManager) RecordHop(span trace.Span, path string, listeners int) {
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent("dispatch", trace.WithAttributes(
		attribute.String("node.path", path),
		attribute.Int("listeners", listeners),
	))
}

// EndEmitSpan completes the span.
func (m *otelSpanManager) EndEmitSpan(span trace.Span, eventID uint64, hops int, stopped, immediate bool) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int64("event.id", int64(eventID)),
		attribute.Int("event.hops", hops),
		attribute.Bool("event.propagation_stopped", stopped),
		attribute.Bool("event.immediate_stopped", immediate),
	)
	span.SetStatus(codes.Ok, "")
	span.End()
}
