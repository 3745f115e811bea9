/*
Package config provides type-safe configuration extraction from map[string]any.

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values. It
backs regkit's Settings loading, so registry wiring (default namespace,
journal path, observability toggles) can live in a YAML or JSON file without
verbose type assertions at every call site.

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "default_namespace": "mods",
	    "journal":           map[string]any{"path": "./registry.db"},
	})

	ns := cfg.String("default_namespace", "core")
	path := cfg.Sub("journal").String("path", "")

All accessors return the default value if the key is missing, the value
cannot be converted to the requested type, or the conversion would lose
precision (e.g., float to int with a fractional part).
*/
package config
