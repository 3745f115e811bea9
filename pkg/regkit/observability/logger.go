// Package observability provides production-grade observability features
// for regkit: structured logging, metrics, and distributed tracing.
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

// EnrichLogger adds registry context to a logger. The submit path uses it
// so every submit log line carries the registry and namespace fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "core:items", "mods")
//	enriched.Info("submitting") // includes registry, namespace
func EnrichLogger(logger *slog.Logger, registryKey, namespace string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("registry", registryKey),
		slog.String("namespace", namespace),
	)
}

// LogRegistration logs an accepted registration.
func LogRegistration(logger *slog.Logger, registryKey, entryKey string) {
	if logger == nil {
		return
	}
	logger.Debug("entry registered",
		slog.String("registry", registryKey),
		slog.String("key", entryKey),
	)
}

// LogConflict logs a rejected registration.
func LogConflict(logger *slog.Logger, registryKey, entryKey string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("registration rejected",
		slog.String("registry", registryKey),
		slog.String("key", entryKey),
		slog.String("error", err.Error()),
	)
}

// LogFinalize logs registry finalization.
func LogFinalize(logger *slog.Logger, registryKey string, entryCount int) {
	if logger == nil {
		return
	}
	logger.Info("registry finalized",
		slog.String("registry", registryKey),
		slog.Int("entries", entryCount),
	)
}

// LogSubmitStart logs the start of a batch submission.
// The logger should come from EnrichLogger so the registry and namespace
// fields are present.
func LogSubmitStart(logger *slog.Logger, declarations int) {
	if logger == nil {
		return
	}
	logger.Info("register submitting",
		slog.Int("declarations", declarations),
	)
}

// LogSubmitComplete logs successful batch submission.
func LogSubmitComplete(logger *slog.Logger, declarations int, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Info("register submitted",
		slog.Int("declarations", declarations),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000.0),
	)
}

// LogSubmitError logs batch submission failure.
func LogSubmitError(logger *slog.Logger, entryKey string, err error) {
	if logger == nil {
		return
	}
	logger.Error("register submit failed",
		slog.String("key", entryKey),
		slog.String("error", err.Error()),
	)
}

// LogJournalError logs a journal append failure.
// Journal errors are reported here instead of propagating to registrants.
func LogJournalError(logger *slog.Logger, registryKey string, err error) {
	if logger == nil {
		return
	}
	logger.Error("journal append failed",
		slog.String("registry", registryKey),
		slog.String("error", err.Error()),
	)
}
