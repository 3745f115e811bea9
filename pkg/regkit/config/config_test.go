package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New(map[string]any{"key": "value"})
	assert.Equal(t, "value", cfg.String("key", ""))

	// Nil map yields a usable empty config.
	empty := New(nil)
	assert.Equal(t, "default", empty.String("key", "default"))
}

func TestString(t *testing.T) {
	cfg := New(map[string]any{
		"name":   "mods",
		"number": 42,
	})

	assert.Equal(t, "mods", cfg.String("name", "fallback"))
	assert.Equal(t, "fallback", cfg.String("missing", "fallback"))
	assert.Equal(t, "fallback", cfg.String("number", "fallback")) // wrong type
}

func TestBool(t *testing.T) {
	cfg := New(map[string]any{
		"enabled": true,
		"name":    "mods",
	})

	assert.True(t, cfg.Bool("enabled", false))
	assert.False(t, cfg.Bool("missing", false))
	assert.True(t, cfg.Bool("missing", true))
	assert.False(t, cfg.Bool("name", false)) // wrong type
}

func TestInt(t *testing.T) {
	cfg := New(map[string]any{
		"count":      3,
		"big":        int64(7),
		"wholeFloat": float64(5),
		"fraction":   2.5,
	})

	assert.Equal(t, 3, cfg.Int("count", 0))
	assert.Equal(t, 7, cfg.Int("big", 0))
	assert.Equal(t, 5, cfg.Int("wholeFloat", 0))
	assert.Equal(t, 9, cfg.Int("fraction", 9)) // fractional part: default
	assert.Equal(t, 9, cfg.Int("missing", 9))
}

func TestDuration(t *testing.T) {
	cfg := New(map[string]any{
		"string":  "30s",
		"seconds": 5,
		"float":   1.5,
		"bad":     "not-a-duration",
	})

	assert.Equal(t, 30*time.Second, cfg.Duration("string", time.Second))
	assert.Equal(t, 5*time.Second, cfg.Duration("seconds", time.Second))
	assert.Equal(t, 1500*time.Millisecond, cfg.Duration("float", time.Second))
	assert.Equal(t, time.Second, cfg.Duration("bad", time.Second))
	assert.Equal(t, time.Second, cfg.Duration("missing", time.Second))
}

func TestStringSlice(t *testing.T) {
	cfg := New(map[string]any{
		"strings": []string{"a", "b"},
		"anys":    []any{"c", "d"},
		"mixed":   []any{"e", 1},
	})

	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("strings", nil))
	assert.Equal(t, []string{"c", "d"}, cfg.StringSlice("anys", nil))
	assert.Nil(t, cfg.StringSlice("mixed", nil)) // non-string element: default
	assert.Equal(t, []string{"x"}, cfg.StringSlice("missing", []string{"x"}))
}

func TestSub(t *testing.T) {
	cfg := New(map[string]any{
		"journal": map[string]any{
			"path": "./registry.db",
		},
		"name": "mods",
	})

	assert.Equal(t, "./registry.db", cfg.Sub("journal").String("path", ""))
	assert.Equal(t, "", cfg.Sub("missing").String("path", ""))
	assert.Equal(t, "", cfg.Sub("name").String("path", "")) // not a map
}

func TestHasAndRaw(t *testing.T) {
	cfg := New(map[string]any{"key": "value"})
	assert.True(t, cfg.Has("key"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, map[string]any{"key": "value"}, cfg.Raw())
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte("default_namespace: mods\njournal:\n  path: ./r.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "mods", cfg.String("default_namespace", ""))
	assert.Equal(t, "./r.db", cfg.Sub("journal").String("path", ""))

	_, err = FromYAML([]byte("{invalid"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"default_namespace": "mods"}`))
	require.NoError(t, err)
	assert.Equal(t, "mods", cfg.String("default_namespace", ""))

	_, err = FromJSON([]byte("{invalid"))
	assert.Error(t, err)
}

func TestFromFileUnsupportedExtension(t *testing.T) {
	_, err := FromFile("config.toml")
	assert.Error(t, err)
}
