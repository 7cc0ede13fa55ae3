package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventtree/pkg/eventtree/config"
	"github.com/randalmurphal/eventtree/pkg/eventtree/topic"
)

// TestNew verifies Config creation from maps.
func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"key": "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Len(t, cfg.Keys(), len(tt.data))
		})
	}
}

func TestAccessors(t *testing.T) {
	cfg := config.New(map[string]any{
		"name":    "tree",
		"enabled": true,
		"count":   3,
		"count64": int64(4),
		"float":   5.0,
		"frac":    5.5,
		"nested":  map[string]any{"inner": "x"},
	})

	assert.Equal(t, "tree", cfg.String("name", "default"))
	assert.Equal(t, "default", cfg.String("missing", "default"))
	assert.Equal(t, "default", cfg.String("count", "default"))

	assert.True(t, cfg.Bool("enabled", false))
	assert.True(t, cfg.Bool("name", true), "wrong type falls back to default")

	assert.Equal(t, 3, cfg.Int("count", 0))
	assert.Equal(t, 4, cfg.Int("count64", 0))
	assert.Equal(t, 5, cfg.Int("float", 0))
	assert.Equal(t, 9, cfg.Int("frac", 9), "fractional floats are rejected")

	assert.Equal(t, "x", cfg.Sub("nested").String("inner", ""))
	assert.False(t, cfg.Sub("name").Has("inner"))

	assert.True(t, cfg.Has("name"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, "fallback", cfg.Any("missing", "fallback"))

	assert.Equal(t,
		[]string{"count", "count64", "enabled", "float", "frac", "name", "nested"},
		cfg.Keys())
}

func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte("delimiter: \".\"\nobservability:\n  metrics: true\n"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.String("delimiter", ""))
	assert.True(t, cfg.Sub("observability").Bool("metrics", false))

	empty, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Keys())

	_, err = config.FromYAML([]byte("key: [unclosed"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"delimiter": "::", "tracing": true}`))
	require.NoError(t, err)
	assert.Equal(t, "::", cfg.String("delimiter", ""))
	assert.True(t, cfg.Bool("tracing", false))

	_, err = config.FromJSON([]byte(`{bad`))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "tree.YML")
	require.NoError(t, os.WriteFile(yamlPath, []byte("log_level: debug\n"), 0o600))
	cfg, err := config.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.String("log_level", ""))

	jsonPath := filepath.Join(dir, "tree.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"log_level": "warn"}`), 0o600))
	cfg, err = config.FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.String("log_level", ""))

	txtPath := filepath.Join(dir, "tree.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o600))
	_, err = config.FromFile(txtPath)
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)

	// The extension is rejected before the file is opened.
	_, err = config.FromFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{bad`), 0o600))
	_, err = config.FromFile(badPath)
	assert.ErrorContains(t, err, "bad.json")

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings(config.New(nil))
	require.NoError(t, err)

	assert.Equal(t, topic.CurrentDelimiter(), s.Delimiter)
	assert.Equal(t, 0, s.MaxDepth)
	assert.Equal(t, slog.LevelInfo, s.LogLevel)
	assert.False(t, s.Metrics)
	assert.False(t, s.Tracing)
	assert.Nil(t, s.Tree)
}

func TestLoadSettings_YAMLTree(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
delimiter: "."
max_depth: 3
observability:
  log_level: debug
  metrics: true
  tracing: true
tree:
  label: app
  children:
    - label: toolbar
      children:
        - label: save
        - label: open
    - label: canvas
`))
	require.NoError(t, err)

	s, err := config.LoadSettings(cfg)
	require.NoError(t, err)

	assert.Equal(t, ".", s.Delimiter)
	assert.Equal(t, 3, s.MaxDepth)
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
	assert.True(t, s.Metrics)
	assert.True(t, s.Tracing)

	require.NotNil(t, s.Tree)
	assert.Equal(t, "app", s.Tree.Label)
	require.Len(t, s.Tree.Children, 2)
	assert.Equal(t, "toolbar", s.Tree.Children[0].Label)
	assert.Equal(t, "canvas", s.Tree.Children[1].Label)
	assert.Equal(t, []config.TreeDef{{Label: "save"}, {Label: "open"}}, s.Tree.Children[0].Children)
	assert.Equal(t, 5, s.Tree.Count())
	assert.Equal(t, 2, s.Tree.Depth())
}

func TestLoadSettings_JSONTree(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{
		"max_depth": 2,
		"observability": {"tracing": true},
		"tree": {"label": "root", "children": [{"label": "a"}]}
	}`))
	require.NoError(t, err)

	s, err := config.LoadSettings(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, s.MaxDepth, "JSON numbers decode as float64")
	assert.True(t, s.Tracing)
	require.NotNil(t, s.Tree)
	assert.Equal(t, config.TreeDef{Label: "root", Children: []config.TreeDef{{Label: "a"}}}, *s.Tree)
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Run("empty delimiter", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{"delimiter": ""}))
		assert.ErrorIs(t, err, topic.ErrEmptyDelimiter)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{
			"observability": map[string]any{"log_level": "loud"},
		}))
		assert.ErrorIs(t, err, config.ErrInvalidSetting)
		assert.ErrorContains(t, err, "observability.log_level")
	})

	t.Run("unknown top-level key", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{"log_level": "debug"}))
		assert.ErrorIs(t, err, config.ErrUnknownKey)
		assert.ErrorContains(t, err, "log_level")
	})

	t.Run("unknown observability key", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{
			"observability": map[string]any{"verbose": true},
		}))
		assert.ErrorIs(t, err, config.ErrUnknownKey)
		assert.ErrorContains(t, err, "observability.verbose")
	})

	t.Run("observability not a mapping", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{"observability": true}))
		assert.ErrorIs(t, err, config.ErrInvalidSetting)
	})

	t.Run("negative max depth", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{"max_depth": -1}))
		assert.ErrorIs(t, err, config.ErrInvalidSetting)
	})

	t.Run("non-integer max depth", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{"max_depth": "deep"}))
		assert.ErrorIs(t, err, config.ErrInvalidSetting)
	})

	t.Run("tree deeper than max depth", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{
			"max_depth": 1,
			"tree": map[string]any{
				"label": "root",
				"children": []any{
					map[string]any{"label": "a", "children": []any{map[string]any{"label": "b"}}},
				},
			},
		}))
		assert.ErrorIs(t, err, config.ErrInvalidSetting)
	})

	t.Run("malformed tree", func(t *testing.T) {
		_, err := config.LoadSettings(config.New(map[string]any{"tree": "just a string"}))
		assert.ErrorIs(t, err, config.ErrInvalidTree)
	})
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
delimiter: ":"
observability:
  log_level: warn
tree:
  label: org
  children:
    - label: sales
`), 0o600))

	s, err := config.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":", s.Delimiter)
	assert.Equal(t, slog.LevelWarn, s.LogLevel)
	require.NotNil(t, s.Tree)
	assert.Equal(t, 2, s.Tree.Count())

	badPath := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(badPath, []byte("colour: blue\n"), 0o600))
	_, err = config.LoadSettingsFile(badPath)
	assert.ErrorIs(t, err, config.ErrUnknownKey)
	assert.ErrorContains(t, err, "bad.yml")

	_, err = config.LoadSettingsFile(filepath.Join(dir, "tree.ini"))
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}
