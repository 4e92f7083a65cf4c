package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newBufLogger(level slog.Level) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return New(h), &buf
}

func TestNew(t *testing.T) {
	logger, buf := newBufLogger(slog.LevelDebug)

	logger.Info("resolved key", "vault", "Production")

	output := buf.String()
	if !strings.Contains(output, "resolved key") {
		t.Errorf("expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "vault=Production") {
		t.Errorf("expected output to contain 'vault=Production', got: %s", output)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger)
	}{
		{"DEBUG", func(l Logger) { l.Debug("DEBUG msg") }},
		{"INFO", func(l Logger) { l.Info("INFO msg") }},
		{"WARN", func(l Logger) { l.Warn("WARN msg") }},
		{"ERROR", func(l Logger) { l.Error("ERROR msg") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufLogger(slog.LevelDebug)
			tt.logFunc(logger)

			output := buf.String()
			if !strings.Contains(output, tt.name+" msg") {
				t.Errorf("expected output to contain %q, got: %s", tt.name+" msg", output)
			}
			if !strings.Contains(output, "level="+tt.name) {
				t.Errorf("expected level %s in output: %s", tt.name, output)
			}
		})
	}
}

func TestLoggerWith(t *testing.T) {
	logger, buf := newBufLogger(slog.LevelDebug)

	child := logger.With("key", "demo_test").With("vault", "Test")
	child.Debug("reading reference")

	output := buf.String()
	for _, want := range []string{"key=demo_test", "vault=Test", "reading reference"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output: %s", want, output)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufLogger(slog.LevelWarn)

	logger.Debug("filtered debug")
	logger.Info("filtered info")
	logger.Warn("kept warn")
	logger.Error("kept error")

	output := buf.String()
	if strings.Contains(output, "filtered") {
		t.Errorf("low-level messages should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "kept warn") || !strings.Contains(output, "kept error") {
		t.Errorf("warn and error should appear, got: %s", output)
	}
}

func TestNewNoop(t *testing.T) {
	logger := NewNoop()

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	if _, ok := logger.With("key", "value").(noopLogger); !ok {
		t.Error("expected With() on the noop logger to return a noop logger")
	}
}

func TestDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	Default().Info("should not panic")

	logger, buf := newBufLogger(slog.LevelDebug)
	SetDefault(logger)
	Default().Info("default logger message")

	if !strings.Contains(buf.String(), "default logger message") {
		t.Errorf("expected configured default to be used, got: %s", buf.String())
	}
}

func TestDefaultLoggerConcurrency(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				Default().Info("concurrent read")
			}
			done <- struct{}{}
		}()
		go func() {
			for j := 0; j < 100; j++ {
				SetDefault(NewNoop())
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 20; i++ {
		<-done
	}
}
