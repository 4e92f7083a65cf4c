// Package fake provides an in-memory agent.Reader for tests, rigged with
// predictable payloads instead of spawning the 1Password CLI.
package fake

import "sync"

// Reader is a map-backed agent.Reader. Rig it with AddSecret and
// friends, then inspect Calls to assert which references were read.
type Reader struct {
	mu sync.Mutex

	// Secrets maps a fully-qualified reference to its raw payload.
	Secrets map[string][]byte

	// Err, when set, is returned by every Read.
	Err error

	// Calls records every reference read, in order.
	Calls []string
}

// New returns an empty rigged reader.
func New() *Reader {
	return &Reader{Secrets: map[string][]byte{}}
}

// AddSecret rigs a payload for a reference. A trailing newline is NOT
// appended; use AddSecretWithNewline to mimic CLI output.
func (r *Reader) AddSecret(reference, payload string) *Reader {
	r.Secrets[reference] = []byte(payload)
	return r
}

// AddSecretWithNewline rigs a payload the way the CLI emits it, with a
// trailing newline.
func (r *Reader) AddSecretWithNewline(reference, payload string) *Reader {
	r.Secrets[reference] = append([]byte(payload), '\n')
	return r
}

// AddRawSecret rigs arbitrary payload bytes, useful for invalid UTF-8.
func (r *Reader) AddRawSecret(reference string, payload []byte) *Reader {
	r.Secrets[reference] = payload
	return r
}

// FailWith makes every Read return err.
func (r *Reader) FailWith(err error) *Reader {
	r.Err = err
	return r
}

// Read returns the rigged payload. An unknown reference yields an empty
// payload and no error, matching the CLI backend: a failing agent writes
// nothing to stdout and its exit status is not consulted.
func (r *Reader) Read(reference string) ([]byte, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, reference)
	r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return r.Secrets[reference], nil
}

// ReadCount reports how many reads were observed.
func (r *Reader) ReadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Calls)
}
