// Package agent retrieves secret payloads through the 1Password CLI.
//
// The CLI type shells out to the `op` binary, resolved via PATH, with the
// fixed invocation `op read <reference>`. The agent's authentication is
// ambient: the subprocess inherits this process's environment, so an
// existing session or service-account token must already be present.
//
// Retrieval is a blocking spawn-and-wait with no timeout; a hung agent
// blocks the caller. Each call spawns its own process, so concurrent
// retrievals are safe but never deduplicated.
//
// The Reader interface is the seam for tests: substitute an in-memory
// backend (see the fake subpackage) instead of spawning processes.
package agent

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reader is the injected secret backend: it resolves a fully-qualified
// reference to the raw payload bytes. Implementations must be safe for
// concurrent use.
type Reader interface {
	// Read resolves a reference to the raw payload. The bytes are as
	// emitted by the backend, trailing newline included.
	Read(reference string) ([]byte, error)
}

// ExecError reports that the agent binary could not be spawned or run:
// missing from PATH, permission denied, or another OS-level failure.
// A non-zero agent exit is not an ExecError.
type ExecError struct {
	// Binary is the executable name the spawn attempted.
	Binary string

	// Err is the underlying OS error.
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("running %s: %v", e.Binary, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// DecodeError reports that the agent's output was not valid UTF-8.
type DecodeError struct {
	// Reference is the secret reference whose payload failed to decode.
	Reference string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("output for %s is not valid UTF-8", e.Reference)
}

// Retrieve reads a reference through the backend and normalizes the
// payload: the bytes are decoded as UTF-8 and trailing whitespace
// (the newline or CRLF the agent appends) is stripped.
//
// The result is strictly success-or-failure: on any error no partial
// value is returned. No further validation happens here — whether the
// value is a well-formed URL is the caller's concern.
func Retrieve(r Reader, reference string) (string, error) {
	raw, err := r.Read(reference)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", &DecodeError{Reference: reference}
	}
	return strings.TrimRightFunc(string(raw), unicode.IsSpace), nil
}
