package config

import (
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/eventtree/pkg/eventtree/topic"
)

// Top-level settings keys.
const (
	KeyDelimiter     = "delimiter"
	KeyMaxDepth      = "max_depth"
	KeyObservability = "observability"
	KeyTree          = "tree"
)

// Keys of the observability block.
const (
	KeyLogLevel = "log_level"
	KeyMetrics  = "metrics"
	KeyTracing  = "tracing"
)

var (
	// ErrInvalidTree indicates the tree definition could not be decoded.
	ErrInvalidTree = errors.New("invalid tree definition")

	// ErrUnknownKey indicates a settings key that LoadSettings does not recognize.
	ErrUnknownKey = errors.New("unknown settings key")

	// ErrInvalidSetting indicates a recognized key with an unusable value.
	ErrInvalidSetting = errors.New("invalid setting")
)

var topLevelKeys = map[string]bool{
	KeyDelimiter:     true,
	KeyMaxDepth:      true,
	KeyObservability: true,
	KeyTree:          true,
}

var observabilityKeys = map[string]bool{
	KeyLogLevel: true,
	KeyMetrics:  true,
	KeyTracing:  true,
}

// TreeDef describes a tree by label. Children keep their listed order.
type TreeDef struct {
	Label    string    `yaml:"label" json:"label"`
	Children []TreeDef `yaml:"children,omitempty" json:"children,omitempty"`
}

// Count returns the number of nodes in the definition, including itself.
func (d TreeDef) Count() int {
	n := 1
	for _, c := range d.Children {
		n += c.Count()
	}
	return n
}

// Depth returns the number of levels below d.
func (d TreeDef) Depth() int {
	deepest := 0
	for _, c := range d.Children {
		if cd := c.Depth() + 1; cd > deepest {
			deepest = cd
		}
	}
	return deepest
}

// Settings holds the options an event tree reads from configuration.
type Settings struct {
	// Delimiter separates segments of namespaced event names and paths.
	// Default: topic.CurrentDelimiter()
	Delimiter string

	// MaxDepth limits how many levels may sit below the root.
	// Default: 0 (unlimited)
	MaxDepth int

	// LogLevel is the minimum level for the tree logger.
	// Default: slog.LevelInfo
	LogLevel slog.Level

	// Metrics enables OpenTelemetry metrics.
	Metrics bool

	// Tracing enables OpenTelemetry spans.
	Tracing bool

	// Tree is the optional initial tree shape.
	Tree *TreeDef
}

// LoadSettings extracts Settings from c.
//
// Recognized layout:
//
//	delimiter: "/"
//	max_depth: 8
//	observability:
//	  log_level: debug
//	  metrics: true
//	  tracing: false
//	tree:
//	  label: app
//
// Missing keys take their defaults. Unknown keys, at the top level or in
// the observability block, and malformed values are errors.
func LoadSettings(c Config) (Settings, error) {
	if err := checkKeys(c, topLevelKeys, ""); err != nil {
		return Settings{}, err
	}

	s := Settings{
		Delimiter: c.String(KeyDelimiter, topic.CurrentDelimiter()),
		LogLevel:  slog.LevelInfo,
	}

	if err := topic.Validate(s.Delimiter); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", KeyDelimiter, err)
	}
	if c.Has(KeyMaxDepth) {
		if s.MaxDepth = c.Int(KeyMaxDepth, -1); s.MaxDepth < 0 {
			return Settings{}, fmt.Errorf("%w: %s must be a non-negative integer",
				ErrInvalidSetting, KeyMaxDepth)
		}
	}

	if _, ok := c.Any(KeyObservability, map[string]any{}).(map[string]any); !ok {
		return Settings{}, fmt.Errorf("%w: %s must be a mapping", ErrInvalidSetting, KeyObservability)
	}
	obs := c.Sub(KeyObservability)
	if err := checkKeys(obs, observabilityKeys, KeyObservability+"."); err != nil {
		return Settings{}, err
	}
	s.Metrics = obs.Bool(KeyMetrics, false)
	s.Tracing = obs.Bool(KeyTracing, false)
	if lvl := obs.String(KeyLogLevel, ""); lvl != "" {
		if err := s.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Settings{}, fmt.Errorf("%w: %s%s: %v",
				ErrInvalidSetting, KeyObservability+".", KeyLogLevel, err)
		}
	}

	if c.Has(KeyTree) {
		def, err := decodeTree(c.Any(KeyTree, nil))
		if err != nil {
			return Settings{}, err
		}
		if s.MaxDepth > 0 && def.Depth() > s.MaxDepth {
			return Settings{}, fmt.Errorf("%w: tree is %d levels deep, %s is %d",
				ErrInvalidSetting, def.Depth(), KeyMaxDepth, s.MaxDepth)
		}
		s.Tree = &def
	}

	return s, nil
}

func checkKeys(c Config, allowed map[string]bool, prefix string) error {
	for _, k := range c.Keys() {
		if !allowed[k] {
			return fmt.Errorf("%w: %s%s", ErrUnknownKey, prefix, k)
		}
	}
	return nil
}

// decodeTree converts a generic YAML/JSON value into a TreeDef by
// re-encoding it, so both loaders share one decoding path.
func decodeTree(v any) (TreeDef, error) {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return TreeDef{}, fmt.Errorf("%w: %v", ErrInvalidTree, err)
	}

	var def TreeDef
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return TreeDef{}, fmt.Errorf("%w: %v", ErrInvalidTree, err)
	}
	return def, nil
}
