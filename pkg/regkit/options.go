package regkit

import (
	"log/slog"

	"github.com/randalmurphal/regkit/pkg/regkit/journal"
	"github.com/randalmurphal/regkit/pkg/regkit/observability"
)

// registryConfig holds optional registry collaborators.
type registryConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	journal journal.Journal
	spans   observability.SpanManager
}

// defaultRegistryConfig returns the default configuration: no logging,
// no metrics, no journal.
func defaultRegistryConfig() registryConfig {
	return registryConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// RegistryOption configures a registry at construction time.
type RegistryOption func(*registryConfig)

// WithLogger attaches a structured logger. Registrations, conflicts, and
// finalization are logged at debug/info level. A nil logger disables logging.
//
// Example:
//
//	reg := regkit.NewRegistry[*Item](key, regkit.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		c.logger = logger
	}
}

// WithMetrics attaches a metrics recorder. Use
// observability.NewMetricsRecorder() for OpenTelemetry metrics.
func WithMetrics(rec observability.MetricsRecorder) RegistryOption {
	return func(c *registryConfig) {
		if rec != nil {
			c.metrics = rec
		}
	}
}

// WithSpans attaches a span manager used to trace batch submissions
// against this registry. Use observability.NewSpanManager() for
// OpenTelemetry tracing.
func WithSpans(spans observability.SpanManager) RegistryOption {
	return func(c *registryConfig) {
		if spans != nil {
			c.spans = spans
		}
	}
}

// WithJournal attaches an audit journal. Every accepted registration,
// rejected registration, and finalization is appended as a journal record.
// Journal failures are logged, never returned to the registering caller.
func WithJournal(j journal.Journal) RegistryOption {
	return func(c *registryConfig) {
		c.journal = j
	}
}
