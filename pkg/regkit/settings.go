package regkit

import (
	"io"
	"log/slog"

	"github.com/randalmurphal/regkit/pkg/regkit/config"
	"github.com/randalmurphal/regkit/pkg/regkit/journal"
	"github.com/randalmurphal/regkit/pkg/regkit/observability"
)

// Settings is file-level registry configuration.
//
// Example YAML:
//
//	default_namespace: mods
//	journal:
//	  path: ./registry.db
//	metrics:
//	  enabled: true
//	tracing:
//	  enabled: false
type Settings struct {
	// DefaultNamespace applies to bare names passed to ParseKeyIn-based
	// lookups. Empty means bare names do not parse.
	DefaultNamespace string

	// JournalPath is the SQLite journal file. Empty disables the journal.
	JournalPath string

	// MetricsEnabled turns on OpenTelemetry metrics.
	MetricsEnabled bool

	// TracingEnabled turns on OpenTelemetry spans for batch submissions.
	TracingEnabled bool
}

// LoadSettings reads settings from a YAML or JSON file.
func LoadSettings(path string) (Settings, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	return SettingsFromConfig(cfg), nil
}

// SettingsFromConfig extracts settings from a parsed config.
// Missing keys fall back to zero-value defaults.
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		DefaultNamespace: cfg.String("default_namespace", ""),
		JournalPath:      cfg.Sub("journal").String("path", ""),
		MetricsEnabled:   cfg.Sub("metrics").Bool("enabled", false),
		TracingEnabled:   cfg.Sub("tracing").Bool("enabled", false),
	}
}

// noopCloser is returned when the settings open no resources.
type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// Options turns the settings into registry options, opening the journal if
// one is configured. The returned closer releases the journal and must be
// closed by the caller when the registry is discarded.
func (s Settings) Options(logger *slog.Logger) ([]RegistryOption, io.Closer, error) {
	opts := []RegistryOption{WithLogger(logger)}
	var closer io.Closer = noopCloser{}

	if s.JournalPath != "" {
		j, err := journal.NewSQLiteJournal(s.JournalPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, WithJournal(j))
		closer = j
	}
	if s.MetricsEnabled {
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}
	if s.TracingEnabled {
		opts = append(opts, WithSpans(observability.NewSpanManager()))
	}

	return opts, closer, nil
}
