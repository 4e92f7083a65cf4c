package agent

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/opkv-dev/opkv/internal/log"
)

// DefaultBinary is the 1Password CLI executable name, resolved via PATH.
const DefaultBinary = "op"

// versionPattern extracts a semantic version from `op --version` output.
// The CLI prints a bare version ("2.30.0"), but older builds prefixed it,
// so match anywhere in the output.
var versionPattern = regexp.MustCompile(`([0-9]+\.[0-9]+\.[0-9]+)`)

// CLI reads secrets by spawning the 1Password CLI. The zero value is not
// usable; construct with NewCLI.
type CLI struct {
	binary string
	logger log.Logger
}

// NewCLI creates a CLI backend with optional configuration.
func NewCLI(opts ...Option) *CLI {
	c := &CLI{
		binary: DefaultBinary,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the executable name this backend spawns.
func (c *CLI) Binary() string {
	return c.binary
}

// Read runs `<binary> read <reference>` and returns captured stdout.
//
// The agent's exit status is deliberately not consulted: whatever the
// agent wrote to stdout is the payload, even when it exits non-zero. An
// agent that fails (no session, unknown item) writes its diagnostics to
// stderr and nothing to stdout, so the payload comes back empty rather
// than as an error. Stderr is logged at debug level and otherwise
// discarded. Only a spawn failure — binary missing from PATH, permission
// denied — produces an ExecError.
func (c *CLI) Read(reference string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(c.binary, "read", reference)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("invoking agent", "binary", c.binary, "reference", reference)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &ExecError{Binary: c.binary, Err: err}
		}
		c.logger.Debug("agent exited non-zero",
			"binary", c.binary,
			"code", exitErr.ExitCode(),
			"stderr", strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Lookup resolves the agent binary on PATH and returns its full path.
// A missing binary is reported as an ExecError wrapping exec.ErrNotFound.
func (c *CLI) Lookup() (string, error) {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		return "", &ExecError{Binary: c.binary, Err: err}
	}
	return path, nil
}

// Version runs `<binary> --version` and extracts the agent's semantic
// version from the output.
func (c *CLI) Version() (string, error) {
	out, err := exec.Command(c.binary, "--version").CombinedOutput()
	if err != nil {
		return "", &ExecError{Binary: c.binary, Err: err}
	}
	matches := versionPattern.FindStringSubmatch(string(out))
	if len(matches) < 2 {
		return "", fmt.Errorf("no version in %s --version output: %q", c.binary, strings.TrimSpace(string(out)))
	}
	return matches[1], nil
}

// SignedIn reports whether the agent has an active session, via
// `<binary> whoami`. The command exits non-zero when no account is
// signed in; that is a clean false, not an error.
func (c *CLI) SignedIn() (bool, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(c.binary, "whoami")
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			c.logger.Debug("agent has no active session",
				"binary", c.binary,
				"stderr", strings.TrimSpace(stderr.String()))
			return false, nil
		}
		return false, &ExecError{Binary: c.binary, Err: err}
	}
	return true, nil
}
