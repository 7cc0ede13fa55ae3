// Package event provides the occurrence record that travels through an
// event tree while it bubbles.
//
// An Event is created once, at the node where the occurrence originates, and
// the same pointer is handed to every ancestor that dispatches it. The two
// propagation flags are one-way latches: once set they are never cleared, so
// a listener at any level observes what listeners below it decided.
//
// Event is generic over the node type T so this package does not depend on
// the tree that carries it.
package event

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"
)

// lastID is the process-wide event counter. The first event gets ID 1.
var lastID atomic.Uint64

// nextID returns the next process-unique event identifier.
func nextID() uint64 {
	return lastID.Add(1)
}

// Event is one occurrence of a named event as it travels through a tree.
//
// Identity fields (type, origin, ID, timestamp, context) never change after
// New. Current and Hops advance at every bubble step.
type Event[T any] struct {
	ctx       context.Context
	eventType string
	origin    T
	current   T
	id        uint64
	timestamp time.Time
	hops      int

	propagationStopped          bool
	immediatePropagationStopped bool
}

// New creates an event originating at origin.
// The current node starts equal to origin and both stop flags are false.
// A nil ctx is replaced with context.Background().
func New[T any](ctx context.Context, eventType string, origin T) *Event[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Event[T]{
		ctx:       ctx,
		eventType: eventType,
		origin:    origin,
		current:   origin,
		id:        nextID(),
		timestamp: time.Now(),
		hops:      1,
	}
}

// Type returns the event name.
func (e *Event[T]) Type() string {
	return e.eventType
}

// Origin returns the node where the event was created.
func (e *Event[T]) Origin() T {
	return e.origin
}

// Current returns the node currently dispatching the event.
func (e *Event[T]) Current() T {
	return e.current
}

// ID returns the process-unique, strictly increasing event identifier.
func (e *Event[T]) ID() uint64 {
	return e.id
}

// Timestamp returns when the event was created.
func (e *Event[T]) Timestamp() time.Time {
	return e.timestamp
}

// Context returns the context the emission was started with.
func (e *Event[T]) Context() context.Context {
	return e.ctx
}

// Hops returns how many nodes have received the event so far, including
// the origin.
func (e *Event[T]) Hops() int {
	return e.hops
}

// Advance moves the event to node and counts the hop.
// It is called by the tree before each dispatch and leaves every other
// field untouched.
func (e *Event[T]) Advance(node T) {
	e.current = node
	e.hops++
}

// StopPropagation prevents the event from reaching further ancestors.
// Listeners still registered on the current node keep running.
func (e *Event[T]) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation prevents any further dispatch of the event,
// including the remaining listeners on the current node.
// It also sets the propagation flag.
func (e *Event[T]) StopImmediatePropagation() {
	e.immediatePropagationStopped = true
	e.propagationStopped = true
}

// IsPropagationStopped reports whether StopPropagation or
// StopImmediatePropagation has been called.
func (e *Event[T]) IsPropagationStopped() bool {
	return e.propagationStopped
}

// IsImmediatePropagationStopped reports whether StopImmediatePropagation
// has been called.
func (e *Event[T]) IsImmediatePropagationStopped() bool {
	return e.immediatePropagationStopped
}

// String returns "<type>#<id>".
func (e *Event[T]) String() string {
	return e.eventType + "#" + strconv.FormatUint(e.id, 10)
}
