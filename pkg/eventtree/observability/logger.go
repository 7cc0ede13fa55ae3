// Package observability provides logging, metrics, and tracing for event
// trees.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds node context to a logger.
// Returns a new logger with node_id and node_path fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, node.ID(), node.Path())
//	enriched.Info("listener attached") // includes node_id, node_path
func EnrichLogger(logger *slog.Logger, nodeID, path string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("node_id", nodeID),
		slog.String("node_path", path),
	)
}

// LogEmit logs the origination of an event.
func LogEmit(logger *slog.Logger, eventType string, eventID uint64, path string) {
	if logger == nil {
		return
	}
	logger.Debug("event emitted",
		slog.String("event_type", eventType),
		slog.Uint64("event_id", eventID),
		slog.String("origin", path),
	)
}

// LogDispatch logs a completed traversal.
func LogDispatch(logger *slog.Logger, eventType string, eventID uint64, hops, listeners int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("event dispatched",
		slog.String("event_type", eventType),
		slog.Uint64("event_id", eventID),
		slog.Int("hops", hops),
		slog.Int("listeners", listeners),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogBubbleStopped logs where a traversal ended early.
func LogBubbleStopped(logger *slog.Logger, eventType string, eventID uint64, path string, immediate bool) {
	if logger == nil {
		return
	}
	logger.Debug("event propagation stopped",
		slog.String("event_type", eventType),
		slog.Uint64("event_id", eventID),
		slog.String("at", path),
		slog.Bool("immediate", immediate),
	)
}

// LogChildAdded logs a new child attachment.
func LogChildAdded(logger *slog.Logger, parentPath, label string) {
	if logger == nil {
		return
	}
	logger.Debug("child added",
		slog.String("parent", parentPath),
		slog.String("label", label),
	)
}

// LogChildRemoved logs a child detachment.
func LogChildRemoved(logger *slog.Logger, parentPath, label string) {
	if logger == nil {
		return
	}
	logger.Debug("child removed",
		slog.String("parent", parentPath),
		slog.String("label", label),
	)
}

// LogDuplicateChild logs a rejected AddChild.
func LogDuplicateChild(logger *slog.Logger, parentPath, label string) {
	if logger == nil {
		return
	}
	logger.Warn("duplicate child rejected",
		slog.String("parent", parentPath),
		slog.String("label", label),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
