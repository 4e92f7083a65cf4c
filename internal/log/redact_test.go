package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newRedactingLogger() (Logger, *RedactingHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h := NewRedactingHandler(inner)
	return New(h), h, &buf
}

func TestRedactingHandlerScrubsMessage(t *testing.T) {
	logger, h, buf := newRedactingLogger()
	h.Register("https://foo.bar.baz.net/")

	logger.Info("resolved https://foo.bar.baz.net/ for key")

	output := buf.String()
	if strings.Contains(output, "https://foo.bar.baz.net/") {
		t.Errorf("secret value leaked into log output: %s", output)
	}
	if !strings.Contains(output, Placeholder) {
		t.Errorf("expected placeholder in output: %s", output)
	}
}

func TestRedactingHandlerScrubsAttrs(t *testing.T) {
	logger, h, buf := newRedactingLogger()
	h.Register("s3cretvalue")

	logger.Debug("retrieval complete", "value", "s3cretvalue", "vault", "Test")

	output := buf.String()
	if strings.Contains(output, "s3cretvalue") {
		t.Errorf("secret attribute leaked into log output: %s", output)
	}
	if !strings.Contains(output, "vault=Test") {
		t.Errorf("non-secret attributes should pass through: %s", output)
	}
}

func TestRedactingHandlerLeavesNonSecretsAlone(t *testing.T) {
	logger, h, buf := newRedactingLogger()
	h.Register("hunter2")

	logger.Info("agent exited", "status", 1)

	output := buf.String()
	if !strings.Contains(output, "agent exited") || !strings.Contains(output, "status=1") {
		t.Errorf("unrelated records must pass through untouched: %s", output)
	}
}

func TestRedactingHandlerIgnoresEmptyValues(t *testing.T) {
	logger, h, buf := newRedactingLogger()
	h.Register("")

	logger.Info("nothing registered")

	if !strings.Contains(buf.String(), "nothing registered") {
		t.Errorf("empty registration must not affect output: %s", buf.String())
	}
}

func TestRedactingHandlerSharedAcrossWith(t *testing.T) {
	logger, h, buf := newRedactingLogger()

	// Derive first, register after: the derived logger must still scrub.
	child := logger.With("component", "agent")
	h.Register("late-secret")
	child.Warn("output was late-secret")

	output := buf.String()
	if strings.Contains(output, "late-secret") {
		t.Errorf("derived logger must share the value set: %s", output)
	}
}

func TestRegisterSecretFeedsDefaultRedactor(t *testing.T) {
	logger, h, buf := newRedactingLogger()
	SetDefaultRedactor(h)
	t.Cleanup(func() { SetDefaultRedactor(nil) })

	RegisterSecret("hook-secret")
	logger.Info("value is hook-secret")

	if strings.Contains(buf.String(), "hook-secret") {
		t.Errorf("RegisterSecret must scrub via the installed redactor: %s", buf.String())
	}
}

func TestRegisterSecretWithoutRedactor(t *testing.T) {
	SetDefaultRedactor(nil)
	// Must not panic when no redactor is installed.
	RegisterSecret("orphan-secret")
}
