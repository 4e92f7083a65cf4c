// Package log provides structured logging for opkv.
//
// A Logger interface backed by stdlib slog keeps subsystems testable;
// packages accept a Logger via functional options and fall back to the
// process-wide default. Secret values must never reach a handler directly:
// wrap handlers with NewRedactingHandler and register resolved values so
// they are scrubbed from every record.
//
// Output semantics:
//   - Results (references, secret values) go to stdout, never through here.
//   - Diagnostics (Debug/Info/Warn/Error) go to stderr via the handler.
//
// Verbosity, selected by CLI flags:
//   - ERROR (--quiet): errors only
//   - WARN (default): warnings
//   - INFO (--verbose): operational context
//   - DEBUG (--debug): agent invocations and troubleshooting detail
package log

import (
	"log/slog"
	"sync"
)

// Logger is the interface for structured logging.
// Methods match slog's signature for easy integration.
type Logger interface {
	// Debug logs at DEBUG level: agent invocations, exit status,
	// reference derivation detail.
	Debug(msg string, args ...any)

	// Info logs at INFO level: operational context such as which
	// vault a key resolved to.
	Info(msg string, args ...any)

	// Warn logs at WARN level: recoverable oddities such as a key
	// that normalizes to an empty item name.
	Warn(msg string, args ...any)

	// Error logs at ERROR level: failures that end the operation.
	Error(msg string, args ...any)

	// With returns a Logger carrying additional context attributes.
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New creates a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

// noopLogger discards all output.
type noopLogger struct{}

// NewNoop returns a logger that discards everything. Useful in tests and
// as the pre-initialization default.
func NewNoop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) With(...any) Logger   { return noopLogger{} }

var (
	defaultLogger Logger = noopLogger{}
	defaultMu     sync.RWMutex
)

// Default returns the process-wide logger configured at startup.
// Returns a noop logger if SetDefault has not been called.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the process-wide logger. Called once from main after
// verbosity flags are parsed.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
