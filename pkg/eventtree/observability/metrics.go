package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records event tree metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEmit records the origination of an event.
	RecordEmit(ctx context.Context, eventType string)

	// RecordDispatch records one node dispatching an event to its listeners.
	RecordDispatch(ctx context.Context, eventType string, listeners int)

	// RecordPropagationStopped records a traversal that ended before the root.
	RecordPropagationStopped(ctx context.Context, eventType string, immediate bool)

	// RecordTraversal records a finished traversal and how many nodes it visited.
	RecordTraversal(ctx context.Context, eventType string, hops int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	emits       metric.Int64Counter
	invocations metric.Int64Counter
	stops       metric.Int64Counter
	hops        metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventtree")

	emits, err := meter.Int64Counter("eventtree.event.emits",
		metric.WithDescription("Number of events originated"),
	)
	if err != nil {
		return nil, err
	}

	invocations, err := meter.Int64Counter("eventtree.listener.invocations",
		metric.WithDescription("Number of listener calls"),
	)
	if err != nil {
		return nil, err
	}

	stops, err := meter.Int64Counter("eventtree.propagation.stopped",
		metric.WithDescription("Number of traversals stopped before the root"),
	)
	if err != nil {
		return nil, err
	}

	hops, err := meter.Int64Histogram("eventtree.bubble.hops",
		metric.WithDescription("Nodes visited per traversal"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		emits:       emits,
		invocations: invocations,
		stops:       stops,
		hops:        hops,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEmit records an event origination.
func (m *otelMetrics) RecordEmit(ctx context.Context, eventType string) {
	m.emits.Add(ctx, 1, metric.WithAttributes(attribute.String("event_type", eventType)))
}

// RecordDispatch records listener calls at one node.
func (m *otelMetrics) RecordDispatch(ctx context.Context, eventType string, listeners int) {
	if listeners == 0 {
		return
	}
	m.invocations.Add(ctx, int64(listeners), metric.WithAttributes(attribute.String("event_type", eventType)))
}

// RecordPropagationStopped records an early end of traversal.
func (m *otelMetrics) RecordPropagationStopped(ctx context.Context, eventType string, immediate bool) {
	m.stops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.Bool("immediate", immediate),
	))
}

// RecordTraversal records the number of nodes a traversal visited.
func (m *otelMetrics) RecordTraversal(ctx context.Context, eventType string, hops int) {
	m.hops.Record(ctx, int64(hops), metric.WithAttributes(attribute.String("event_type", eventType)))
}
