package xaos

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should not be enabled at any level")
	}
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("staging reallocated", "width", 8)

	if !strings.Contains(buf.String(), "staging reallocated") {
		t.Errorf("log output = %q, want message", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
