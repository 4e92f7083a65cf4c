package agent

import "github.com/opkv-dev/opkv/internal/log"

// Option configures a CLI backend.
type Option func(*CLI)

// WithBinary overrides the agent executable name. Used by tests to point
// at a stub script or a deliberately missing command.
func WithBinary(name string) Option {
	return func(c *CLI) {
		c.binary = name
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(logger log.Logger) Option {
	return func(c *CLI) {
		c.logger = logger
	}
}
