package eventtree

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/eventtree/pkg/eventtree/emitter"
	"github.com/randalmurphal/eventtree/pkg/eventtree/event"
	"github.com/randalmurphal/eventtree/pkg/eventtree/observability"
)

// Event is one occurrence of a named event travelling through a tree.
type Event = event.Event[*Node]

// Listener handles an event dispatched at a node.
// args are the payload passed to Emit, unchanged at every level.
type Listener func(evt *Event, args ...any)

// On registers l for eventType on this node. Listeners run in
// registration order. The returned ID can be passed to Off.
//
// Panics if l is nil.
func (n *Node) On(eventType string, l Listener) emitter.ListenerID {
	return n.listeners.On(eventType, adapt(l))
}

// Once registers l to run at most once for eventType.
//
// Panics if l is nil.
func (n *Node) Once(eventType string, l Listener) emitter.ListenerID {
	return n.listeners.Once(eventType, adapt(l))
}

// Off removes a listener. Returns false if it was not registered.
func (n *Node) Off(eventType string, id emitter.ListenerID) bool {
	return n.listeners.Off(eventType, id)
}

// ListenerCount returns the number of listeners for eventType on this node.
func (n *Node) ListenerCount(eventType string) int {
	return n.listeners.Count(eventType)
}

func adapt(l Listener) emitter.Handler {
	if l == nil {
		panic("eventtree: listener cannot be nil")
	}
	return func(args ...any) {
		evt, _ := args[0].(*Event)
		l(evt, args[1:]...)
	}
}

// Emit originates eventType at this node and bubbles it to the root.
// See EmitContext.
func (n *Node) Emit(eventType string, args ...any) *Event {
	return n.EmitContext(context.Background(), eventType, args...)
}

// EmitPath emits the event name formed by joining parts with the tree's
// delimiter.
//
// Example:
//
//	button.EmitPath([]string{"widget", "click"}, x, y) // "widget/click"
func (n *Node) EmitPath(parts []string, args ...any) *Event {
	return n.Emit(n.cfg.ns.Join(parts...), args...)
}

// EmitContext originates eventType at this node.
//
// Listeners on this node run first, in registration order, then the same
// Event moves to each ancestor in turn until a listener stops propagation
// or the root has been dispatched. Dispatch is synchronous; the returned
// Event carries the final state of both stop flags.
//
// ctx is available to listeners via evt.Context(). When tracing is
// enabled it carries the emission span.
func (n *Node) EmitContext(ctx context.Context, eventType string, args ...any) *Event {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := n.cfg
	logged := cfg.logger != nil

	// The origin path is only built for a logger or a real span manager.
	var (
		origin string
		done   func() float64
		logger *slog.Logger
	)
	if logged || cfg.tracing() {
		origin = n.Path()
	}
	if logged {
		done = observability.TimedOperation()
		logger = observability.EnrichLogger(cfg.logger, n.id, origin)
	}

	ctx, span := cfg.spans.StartEmitSpan(ctx, eventType, origin)
	evt := event.New(ctx, eventType, n)

	cfg.metrics.RecordEmit(ctx, eventType)
	observability.LogEmit(logger, eventType, evt.ID(), origin)

	tr := &traversal{span: span}
	n.dispatch(evt, args, tr)

	cfg.metrics.RecordTraversal(ctx, eventType, evt.Hops())
	if evt.IsPropagationStopped() {
		immediate := evt.IsImmediatePropagationStopped()
		cfg.metrics.RecordPropagationStopped(ctx, eventType, immediate)
		if logged && tr.stoppedAt != nil {
			observability.LogBubbleStopped(logger, eventType, evt.ID(), tr.stoppedAt.Path(), immediate)
		}
	}
	cfg.spans.EndEmitSpan(span, evt.ID(), evt.Hops(),
		evt.IsPropagationStopped(), evt.IsImmediatePropagationStopped())
	if logged {
		observability.LogDispatch(logger, eventType, evt.ID(), evt.Hops(), tr.listeners, done())
	}

	return evt
}

// traversal accumulates per-emission bookkeeping across bubble steps.
type traversal struct {
	span      trace.Span
	listeners int
	stoppedAt *Node
}

// continueBubble is the bubbling step: it receives an Event already in
// flight from a descendant. Returns false without invoking anything if the
// immediate stop flag is set.
func (n *Node) continueBubble(evt *Event, args []any, tr *traversal) bool {
	if evt.IsImmediatePropagationStopped() {
		tr.stoppedAt = evt.Current()
		return false
	}
	evt.Advance(n)
	n.dispatch(evt, args, tr)
	return true
}

// dispatch runs this node's listeners and hands the event to the parent.
func (n *Node) dispatch(evt *Event, args []any, tr *traversal) {
	invokeArgs := make([]any, 0, len(args)+1)
	invokeArgs = append(invokeArgs, evt)
	invokeArgs = append(invokeArgs, args...)

	ran := n.listeners.InvokeUntil(evt.Type(), evt.IsImmediatePropagationStopped, invokeArgs...)
	tr.listeners += ran

	ctx := evt.Context()
	n.cfg.metrics.RecordDispatch(ctx, evt.Type(), ran)
	if tr.span != nil && tr.span.IsRecording() {
		n.cfg.spans.RecordHop(tr.span, n.Path(), ran)
	}

	if evt.IsPropagationStopped() {
		tr.stoppedAt = n
		return
	}
	// Read after invoking: a listener may have detached this node.
	if parent := n.parent; parent != nil {
		parent.continueBubble(evt, args, tr)
	}
}
