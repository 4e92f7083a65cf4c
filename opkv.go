// Package opkv resolves an Azure Key Vault base URL through the
// 1Password CLI.
//
// A logical key names which vault URL to fetch; keys ending in "_test"
// route to the Test vault, everything else to Production. The key is
// turned into a fixed op:// reference and read through the `op` binary,
// which must already be authenticated (ambient session or service
// account token):
//
//	m, err := opkv.New("Demo")
//	if err != nil {
//		return err
//	}
//	client := newVaultClient(m.URL())
//
// Resolution is a single blocking subprocess call with no timeout, no
// caching, and no retries. Tests inject an in-memory backend with
// WithReader instead of spawning processes.
package opkv

import (
	"github.com/opkv-dev/opkv/internal/agent"
	"github.com/opkv-dev/opkv/internal/log"
	"github.com/opkv-dev/opkv/internal/opref"
)

// SecretManager holds a resolved key-vault URL. Construct with New;
// the zero value carries no URL.
type SecretManager struct {
	key string
	ref opref.Reference
	url string
}

// Option configures resolution.
type Option func(*settings)

type settings struct {
	reader agent.Reader
	logger log.Logger
}

// WithReader substitutes the secret backend. The default spawns the
// 1Password CLI; tests pass a fake to avoid subprocesses.
func WithReader(r agent.Reader) Option {
	return func(s *settings) {
		s.reader = r
	}
}

// WithLogger overrides the diagnostic logger, which defaults to the
// process-wide logger from the log package.
func WithLogger(l log.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// New resolves the vault URL for a logical key.
//
// The key is mapped to its op:// reference, read through the agent, and
// the payload normalized (UTF-8 decoded, trailing newline stripped).
// Failures are *agent.ExecError (agent could not be spawned) or
// *agent.DecodeError (payload is not UTF-8); both leave no partial
// value. The result is not checked to be a well-formed URL — that is
// the caller's concern.
//
// Note the agent's exit status is not inspected: an agent that fails
// after launching yields whatever it wrote to stdout, usually an empty
// string. See agent.CLI.Read.
func New(key string, opts ...Option) (*SecretManager, error) {
	s := &settings{logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.reader == nil {
		s.reader = agent.NewCLI(agent.WithLogger(s.logger))
	}

	ref := opref.Resolve(key)
	if ref.Key == "" {
		s.logger.Warn("logical key normalizes to an empty item name", "key", key)
	}
	s.logger.Debug("resolved reference", "key", key, "vault", ref.Vault.String(), "reference", ref.String())

	url, err := agent.Retrieve(s.reader, ref.String())
	if err != nil {
		return nil, err
	}

	// Keep the value out of any log output from here on.
	log.RegisterSecret(url)
	s.logger.Info("retrieved secret", "key", key, "vault", ref.Vault.String())

	return &SecretManager{key: key, ref: ref, url: url}, nil
}

// URL returns the resolved key-vault base URL.
func (m *SecretManager) URL() string {
	return m.url
}

// Key returns the logical key the manager was constructed with.
func (m *SecretManager) Key() string {
	return m.key
}

// Reference returns the op:// reference the key resolved to.
func (m *SecretManager) Reference() opref.Reference {
	return m.ref
}
