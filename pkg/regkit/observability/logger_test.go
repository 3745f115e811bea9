package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newTestLogger returns a debug-level JSON logger writing into buf.
func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := newTestLogger()

	enriched := EnrichLogger(logger, "core:items", "mods")
	enriched.Info("submitting")

	out := buf.String()
	assert.Contains(t, out, `"registry":"core:items"`)
	assert.Contains(t, out, `"namespace":"mods"`)

	assert.Nil(t, EnrichLogger(nil, "core:items", "mods"))
}

func TestLogRegistration(t *testing.T) {
	logger, buf := newTestLogger()

	LogRegistration(logger, "core:items", "mods:sword")

	out := buf.String()
	assert.Contains(t, out, "entry registered")
	assert.Contains(t, out, `"registry":"core:items"`)
	assert.Contains(t, out, `"key":"mods:sword"`)
}

func TestLogConflict(t *testing.T) {
	logger, buf := newTestLogger()

	LogConflict(logger, "core:items", "mods:sword", errors.New("key already registered"))

	out := buf.String()
	assert.Contains(t, out, "registration rejected")
	assert.Contains(t, out, "key already registered")
}

func TestLogFinalize(t *testing.T) {
	logger, buf := newTestLogger()

	LogFinalize(logger, "core:items", 12)

	out := buf.String()
	assert.Contains(t, out, "registry finalized")
	assert.Contains(t, out, `"entries":12`)
}

func TestLogSubmitLifecycle(t *testing.T) {
	logger, buf := newTestLogger()

	submitLogger := EnrichLogger(logger, "core:items", "mods")
	LogSubmitStart(submitLogger, 2)
	LogSubmitComplete(submitLogger, 2, 1500*time.Microsecond)
	LogSubmitError(submitLogger, "mods:sword", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "register submitting")
	assert.Contains(t, out, "register submitted")
	assert.Contains(t, out, "duration_ms")
	assert.Contains(t, out, "register submit failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, `"registry":"core:items"`)
	assert.Contains(t, out, `"namespace":"mods"`)
}

func TestLogJournalError(t *testing.T) {
	logger, buf := newTestLogger()

	LogJournalError(logger, "core:items", errors.New("disk full"))
	assert.Contains(t, buf.String(), "journal append failed")
	assert.Contains(t, buf.String(), "disk full")
}

func TestNilLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogRegistration(nil, "core:items", "mods:sword")
		LogConflict(nil, "core:items", "mods:sword", errors.New("x"))
		LogFinalize(nil, "core:items", 0)
		LogSubmitStart(nil, 0)
		LogSubmitComplete(nil, 0, 0)
		LogSubmitError(nil, "", errors.New("x"))
		LogJournalError(nil, "core:items", errors.New("x"))
	})
}
