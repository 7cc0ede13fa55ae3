package eventtree

import (
	"io"
	"log/slog"

	"github.com/randalmurphal/eventtree/pkg/eventtree/config"
	"github.com/randalmurphal/eventtree/pkg/eventtree/observability"
	"github.com/randalmurphal/eventtree/pkg/eventtree/topic"
)

// nodeConfig is shared by every node of a tree. Children created with
// AddChild reuse their parent's config.
type nodeConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	ns      topic.Namespace

	// maxDepth is the deepest level AddChild may create. 0 is unlimited.
	maxDepth int
}

// tracing reports whether emissions need span data.
func (c *nodeConfig) tracing() bool {
	_, off := c.spans.(observability.NoopSpanManager)
	return !off
}

// defaultNodeConfig returns a silent config using the current default delimiter.
func defaultNodeConfig() *nodeConfig {
	return &nodeConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		ns:      topic.Default(),
	}
}

// Option configures a tree at construction.
type Option func(*nodeConfig)

// WithLogger sets the logger for the tree.
// Dispatch and structural changes are logged at Debug level.
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(c *nodeConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder for the tree.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	root := eventtree.New("app", eventtree.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *nodeConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager for the tree.
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *nodeConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithNamespace sets the namespace used for paths and EmitPath.
// Default: topic.Default() at the time the root is created.
func WithNamespace(ns topic.Namespace) Option {
	return func(c *nodeConfig) {
		c.ns = ns
	}
}

// WithDelimiter is shorthand for WithNamespace(topic.New(d)).
//
// Panics if d is empty.
func WithDelimiter(d string) Option {
	ns := topic.New(d)
	return WithNamespace(ns)
}

// WithMaxDepth limits how many levels may sit below the root. AddChild
// fails with ErrMaxDepth past the limit. A limit of 0 or less removes it.
// Default: 0 (unlimited)
func WithMaxDepth(depth int) Option {
	return func(c *nodeConfig) {
		c.maxDepth = max(depth, 0)
	}
}

// OptionsFromSettings maps loaded settings to options.
// Logs are written as text to w at the configured level; a nil w disables
// logging. An empty delimiter keeps the process default.
func OptionsFromSettings(s config.Settings, w io.Writer) []Option {
	var opts []Option

	if s.Delimiter != "" {
		opts = append(opts, WithDelimiter(s.Delimiter))
	}
	if s.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(s.MaxDepth))
	}
	if w != nil {
		handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.LogLevel})
		opts = append(opts, WithLogger(slog.New(handler)))
	}
	if s.Metrics {
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}
	if s.Tracing {
		opts = append(opts, WithSpanManager(observability.NewSpanManager()))
	}
	return opts
}
