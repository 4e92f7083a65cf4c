package log

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Placeholder replaces registered secret values in log output.
const Placeholder = "[redacted]"

// RedactingHandler wraps a slog.Handler and scrubs registered secret
// values from every record before it reaches the inner handler. Derived
// handlers (WithAttrs/WithGroup) share one value set, so a value
// registered after derivation is still scrubbed everywhere.
type RedactingHandler struct {
	inner  slog.Handler
	mu     *sync.RWMutex
	values map[string]struct{}
}

// NewRedactingHandler wraps inner so registered values never appear in
// log output.
func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{
		inner:  inner,
		mu:     &sync.RWMutex{},
		values: make(map[string]struct{}),
	}
}

// Register adds a secret value to scrub. Empty values are ignored.
func (h *RedactingHandler) Register(value string) {
	if value == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values[value] = struct{}{}
}

// Enabled delegates to the inner handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle rewrites the record message and string attributes with secret
// values replaced, then delegates to the inner handler.
func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.RLock()
	values := make([]string, 0, len(h.values))
	for v := range h.values {
		values = append(values, v)
	}
	h.mu.RUnlock()

	if len(values) == 0 {
		return h.inner.Handle(ctx, record)
	}

	scrubbed := slog.NewRecord(record.Time, record.Level, scrub(record.Message, values), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		scrubbed.AddAttrs(scrubAttr(a, values))
		return true
	})
	return h.inner.Handle(ctx, scrubbed)
}

// WithAttrs derives a handler sharing the parent's value set.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithAttrs(attrs), mu: h.mu, values: h.values}
}

// WithGroup derives a handler sharing the parent's value set.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name), mu: h.mu, values: h.values}
}

var (
	redactorMu      sync.RWMutex
	defaultRedactor *RedactingHandler
)

// SetDefaultRedactor installs the process-wide redactor that
// RegisterSecret feeds. Called once from main alongside SetDefault,
// with the same handler the default logger writes through.
func SetDefaultRedactor(h *RedactingHandler) {
	redactorMu.Lock()
	defer redactorMu.Unlock()
	defaultRedactor = h
}

// RegisterSecret scrubs value from all future output of the default
// logger. A no-op when no redactor is installed, so library callers can
// register unconditionally.
func RegisterSecret(value string) {
	redactorMu.RLock()
	defer redactorMu.RUnlock()
	if defaultRedactor != nil {
		defaultRedactor.Register(value)
	}
}

func scrub(s string, values []string) string {
	for _, v := range values {
		s = strings.ReplaceAll(s, v, Placeholder)
	}
	return s
}

func scrubAttr(a slog.Attr, values []string) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, scrub(a.Value.String(), values))
	}
	return a
}
