package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordEmit does nothing.
func (NoopMetrics) RecordEmit(_ context.Context, _ string) {}

// RecordDispatch does nothing.
func (NoopMetrics) RecordDispatch(_ context.Context, _ string, _ int) {}

// RecordPropagationStopped does nothing.
func (NoopMetrics) RecordPropagationStopped(_ context.Context, _ string, _ bool) {}

// RecordTraversal does nothing.
func (NoopMetrics) RecordTraversal(_ context.Context, _ string, _ int) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartEmitSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartEmitSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// RecordHop does nothing.
func (NoopSpanManager) RecordHop(_ trace.Span, _ string, _ int) {}

// EndEmitSpan does nothing.
func (NoopSpanManager) EndEmitSpan(_ trace.Span, _ uint64, _ int, _, _ bool) {}
