package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLogLevel(tt.level); got != tt.want {
				t.Errorf("ToLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestToLogLevel_InvalidPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid log level")
		}
	}()
	ToLogLevel("verbose")
}

func TestErrFmtHandler_AddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Error("stage failed", ErrAttr(errors.New("boom")))

	out := buf.String()
	if !strings.Contains(out, "stage failed") {
		t.Error("Expected error message in output")
	}
	if !strings.Contains(out, StacktraceAttrKey) {
		t.Error("Expected stacktrace attribute extracted from cockroachdb error")
	}
}

func TestTestLogger_CapturesFields(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	runLogger := logger.With(RunIDKey, "run-001")
	runLogger.Info("Split completed",
		StageKey, StageSplit,
		TrainRowsKey, 80,
		TestRowsKey, 20,
	)

	if !logger.ContainsField(StageKey, StageSplit) {
		t.Error("Expected split stage field in logs")
	}
	if !logger.ContainsField(RunIDKey, "run-001") {
		t.Error("Expected run ID from With() chain in logs")
	}

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
}

func TestTestLogger_LevelFiltering(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)

	logger.Debug("not captured")
	logger.Info("not captured either")
	logger.Warn("captured")

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected only the warn entry, got %d entries", len(entries))
	}
}

func TestTestLogger_Enabled(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("Debug should be disabled at info level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("Error should be enabled at info level")
	}
}

func TestExtractStacktrace(t *testing.T) {
	err := errors.New("with stack")
	if extractStacktrace(err) == "" {
		t.Error("Expected stack details from cockroachdb error")
	}
}
