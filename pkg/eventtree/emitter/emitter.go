// Package emitter provides a flat, synchronous listener registry.
//
// An Emitter stores handlers per event type and invokes them in registration
// order. It knows nothing about trees or bubbling; the eventtree package
// composes one Emitter per node.
package emitter

import (
	"sync"
	"sync/atomic"
)

// Handler receives the arguments passed to Invoke.
type Handler func(args ...any)

// ListenerID identifies a registration so it can be removed with Off.
// IDs are unique per Emitter and never reused.
type ListenerID uint64

// listener is a single registration.
type listener struct {
	id      ListenerID
	handler Handler
	once    bool
	fired   atomic.Bool
}

// Emitter is a registry of handlers keyed by event type.
//
// Invoke takes a snapshot of the handler list before calling anything, so a
// handler may call On or Off on the same Emitter; the change applies to the
// next Invoke. The zero value is ready to use.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]*listener
	nextID    atomic.Uint64
}

// New creates an empty Emitter.
func New() *Emitter {
	return &Emitter{
		listeners: make(map[string][]*listener),
	}
}

// On registers handler for eventType and returns its ID.
// Handlers for the same type run in the order they were registered.
//
// Panics if handler is nil.
func (e *Emitter) On(eventType string, handler Handler) ListenerID {
	return e.add(eventType, handler, false)
}

// Once registers handler for eventType; it is removed after its first call.
//
// Panics if handler is nil.
func (e *Emitter) Once(eventType string, handler Handler) ListenerID {
	return e.add(eventType, handler, true)
}

func (e *Emitter) add(eventType string, handler Handler, once bool) ListenerID {
	if handler == nil {
		panic("emitter: handler cannot be nil")
	}

	l := &listener{
		id:      ListenerID(e.nextID.Add(1)),
		handler: handler,
		once:    once,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[string][]*listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], l)
	return l.id
}

// Off removes the registration with the given ID from eventType.
// Returns false if no such registration exists.
func (e *Emitter) Off(eventType string, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.removeLocked(eventType, id)
}

func (e *Emitter) removeLocked(eventType string, id ListenerID) bool {
	list := e.listeners[eventType]
	for i, l := range list {
		if l.id != id {
			continue
		}
		// Copy instead of shifting in place: in-flight snapshots share the
		// backing array.
		next := make([]*listener, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(e.listeners, eventType)
		} else {
			e.listeners[eventType] = next
		}
		return true
	}
	return false
}

// Clear removes every registration for eventType.
func (e *Emitter) Clear(eventType string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.listeners, eventType)
}

// Count returns the number of registrations for eventType.
func (e *Emitter) Count(eventType string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.listeners[eventType])
}

// Types returns the event types that have at least one registration.
func (e *Emitter) Types() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	types := make([]string, 0, len(e.listeners))
	for t := range e.listeners {
		types = append(types, t)
	}
	return types
}

// Invoke calls every handler registered for eventType with args, in
// registration order, and returns how many were called.
func (e *Emitter) Invoke(eventType string, args ...any) int {
	return e.InvokeUntil(eventType, nil, args...)
}

// InvokeUntil is Invoke with an early exit: halt is checked after each
// handler and, once it returns true, the remaining handlers are skipped.
// A nil halt never stops.
func (e *Emitter) InvokeUntil(eventType string, halt func() bool, args ...any) int {
	e.mu.RLock()
	snapshot := e.listeners[eventType]
	e.mu.RUnlock()

	called := 0
	for _, l := range snapshot {
		if l.once {
			if !l.fired.CompareAndSwap(false, true) {
				continue
			}
			e.Off(eventType, l.id)
		}

		l.handler(args...)
		called++

		if halt != nil && halt() {
			break
		}
	}
	return called
}
