// Package testutil provides helpers shared by tests, chiefly stub agent
// executables installed on PATH so tests never touch a real 1Password CLI.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// StubAgent installs a stub `op` executable on PATH for the duration of
// the test. The script body runs under /bin/sh; whatever it writes to
// stdout and stderr, and whatever it exits with, is what callers of the
// agent observe. Returns the stub's path.
func StubAgent(t *testing.T, script string) string {
	t.Helper()
	return StubBinary(t, "op", script)
}

// StubBinary installs an arbitrary stub executable on PATH. Skips the
// test on platforms without a POSIX shell.
func StubBinary(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executables require a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	body := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatalf("failed to write stub %s: %v", name, err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return path
}

// Home points OPKV_HOME at a fresh temporary directory so tests never
// read or write the user's real configuration. Returns the directory.
func Home(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("OPKV_HOME", dir)
	return dir
}
