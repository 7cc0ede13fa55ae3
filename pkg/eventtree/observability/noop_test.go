package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordEmit(ctx, "x")
		m.RecordDispatch(ctx, "x", 3)
		m.RecordPropagationStopped(ctx, "x", true)
		m.RecordTraversal(ctx, "x", 2)
	})
}

func TestNoopSpanManager(t *testing.T) {
	var sm SpanManager = NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := sm.StartEmitSpan(ctx, "x", "root")
	assert.Equal(t, ctx, newCtx, "noop must not derive a new context")
	assert.NotNil(t, span)
	assert.False(t, span.IsRecording())

	assert.NotPanics(t, func() {
		sm.RecordHop(span, "root", 1)
		sm.EndEmitSpan(span, 1, 1, false, false)
	})
}
