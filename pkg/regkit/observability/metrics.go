package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegistration records a registration attempt and its outcome.
	RecordRegistration(ctx context.Context, registryKey string, err error)

	// RecordFinalize records a registry finalization with its entry count.
	RecordFinalize(ctx context.Context, registryKey string, entries int)

	// RecordSubmit records a batch submission with its duration and outcome.
	RecordSubmit(ctx context.Context, namespace string, declarations int, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations metric.Int64Counter
	conflicts     metric.Int64Counter
	finalizations metric.Int64Counter
	registrySize  metric.Int64Histogram
	submits       metric.Int64Counter
	submitLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("regkit")

	registrations, err := meter.Int64Counter("regkit.registry.registrations",
		metric.WithDescription("Number of accepted registrations"),
	)
	if err != nil {
		return nil, err
	}

	conflicts, err := meter.Int64Counter("regkit.registry.conflicts",
		metric.WithDescription("Number of rejected registrations"),
	)
	if err != nil {
		return nil, err
	}

	finalizations, err := meter.Int64Counter("regkit.registry.finalizations",
		metric.WithDescription("Number of registry finalizations"),
	)
	if err != nil {
		return nil, err
	}

	registrySize, err := meter.Int64Histogram("regkit.registry.size",
		metric.WithDescription("Entry count at finalization"),
	)
	if err != nil {
		return nil, err
	}

	submits, err := meter.Int64Counter("regkit.register.submits",
		metric.WithDescription("Number of batch submissions"),
	)
	if err != nil {
		return nil, err
	}

	submitLatency, err := meter.Float64Histogram("regkit.register.submit_latency_ms",
		metric.WithDescription("Batch submission latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations: registrations,
		conflicts:     conflicts,
		finalizations: finalizations,
		registrySize:  registrySize,
		submits:       submits,
		submitLatency: submitLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRegistration records a registration attempt.
func (m *otelMetrics) RecordRegistration(ctx context.Context, registryKey string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("registry", registryKey),
	}

	if err != nil {
		m.conflicts.Add(ctx, 1, metric.WithAttributes(attrs...))
		return
	}
	m.registrations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordFinalize records a registry finalization.
func (m *otelMetrics) RecordFinalize(ctx context.Context, registryKey string, entries int) {
	attrs := []attribute.KeyValue{
		attribute.String("registry", registryKey),
	}
	m.finalizations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.registrySize.Record(ctx, int64(entries), metric.WithAttributes(attrs...))
}

// RecordSubmit records a batch submission.
func (m *otelMetrics) RecordSubmit(ctx context.Context, namespace string, declarations int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("namespace", namespace),
		attribute.Bool("success", err == nil),
	}
	m.submits.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.submitLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
}
