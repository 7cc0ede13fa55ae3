/*
Package config provides type-safe configuration extraction and the settings
an event tree reads at startup.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "delimiter": ".",
	    "metrics":   true,
	})

	delim := cfg.String("delimiter", "/") // "."
	metrics := cfg.Bool("metrics", false) // true

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.FromFile("tree.yaml")
	if err != nil {
	    log.Fatal(err)
	}

LoadSettingsFile combines FromFile and LoadSettings.

# Settings

LoadSettings reads the recognized keys and rejects any others:

	delimiter: "/"
	max_depth: 8
	observability:
	  log_level: debug
	  metrics: true
	  tracing: false
	tree:
	  label: app
	  children:
	    - label: toolbar
	      children:
	        - label: save
	    - label: canvas

The tree key decodes into a TreeDef, which eventtree.Build turns into nodes.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
