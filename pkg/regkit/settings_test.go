package regkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/regkit/pkg/regkit/config"
)

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.New(map[string]any{
		"default_namespace": "mods",
		"journal": map[string]any{
			"path": "./registry.db",
		},
		"metrics": map[string]any{
			"enabled": true,
		},
	})

	s := SettingsFromConfig(cfg)
	assert.Equal(t, "mods", s.DefaultNamespace)
	assert.Equal(t, "./registry.db", s.JournalPath)
	assert.True(t, s.MetricsEnabled)
	assert.False(t, s.TracingEnabled)
}

func TestSettingsFromConfigDefaults(t *testing.T) {
	s := SettingsFromConfig(config.New(nil))
	assert.Equal(t, Settings{}, s)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regkit.yaml")

	yaml := `
default_namespace: mods
journal:
  path: ` + filepath.Join(dir, "registry.db") + `
tracing:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "mods", s.DefaultNamespace)
	assert.True(t, s.TracingEnabled)
	assert.NotEmpty(t, s.JournalPath)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSettingsOptions(t *testing.T) {
	dir := t.TempDir()
	s := Settings{
		JournalPath: filepath.Join(dir, "registry.db"),
	}

	opts, closer, err := s.Options(nil)
	require.NoError(t, err)
	defer closer.Close()

	// The options produce a working registry with an attached journal.
	r := NewRegistry[*item](MustKey("core", "items"), opts...)
	require.NoError(t, r.Register(MustKey("mods", "sword"), &item{name: "sword"}))
	require.NoError(t, r.Finalize())
}

func TestSettingsOptionsNoJournal(t *testing.T) {
	opts, closer, err := Settings{}.Options(nil)
	require.NoError(t, err)
	defer closer.Close()

	r := NewRegistry[*item](MustKey("core", "items"), opts...)
	require.NoError(t, r.Register(MustKey("mods", "sword"), &item{name: "sword"}))
}
