package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// EnvHome is the environment variable to override the default opkv home directory
	EnvHome = "OPKV_HOME"

	// EnvAPITimeout is the environment variable to configure API request timeout
	EnvAPITimeout = "OPKV_API_TIMEOUT"

	// DefaultAPITimeout is the default timeout for API requests (30 seconds)
	DefaultAPITimeout = 30 * time.Second
)

// GetAPITimeout returns the configured API timeout from OPKV_API_TIMEOUT environment variable.
// If not set or invalid, returns DefaultAPITimeout (30 seconds).
// Accepts duration strings like "30s", "1m", "2m30s".
//
// This governs only the release-check HTTP client. Secret reads go
// through the agent subprocess, which has no timeout.
func GetAPITimeout() time.Duration {
	envValue := os.Getenv(EnvAPITimeout)
	if envValue == "" {
		return DefaultAPITimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		// Invalid duration format, use default
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvAPITimeout, envValue, DefaultAPITimeout)
		return DefaultAPITimeout
	}

	// Validate reasonable range (1 second to 10 minutes)
	if duration < 1*time.Second {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum 1s\n",
			EnvAPITimeout, duration)
		return 1 * time.Second
	}
	if duration > 10*time.Minute {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum 10m\n",
			EnvAPITimeout, duration)
		return 10 * time.Minute
	}

	return duration
}

// DefaultHomeOverride can be set by the binary's main package to change the
// default home directory. Used by dev builds (via ldflags) to default to
// .opkv-dev instead of ~/.opkv. OPKV_HOME env var still takes precedence.
var DefaultHomeOverride string

// Config holds opkv configuration paths
type Config struct {
	HomeDir    string // $OPKV_HOME
	ConfigFile string // $OPKV_HOME/config.toml
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	// Check for OPKV_HOME environment variable first
	opkvHome := os.Getenv(EnvHome)
	if opkvHome == "" {
		if DefaultHomeOverride != "" {
			opkvHome = DefaultHomeOverride
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get user home directory: %w", err)
			}
			opkvHome = filepath.Join(home, ".opkv")
		}
	}

	return &Config{
		HomeDir:    opkvHome,
		ConfigFile: filepath.Join(opkvHome, "config.toml"),
	}, nil
}

// EnsureDirectories creates the home directory if it does not exist
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.HomeDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.HomeDir, err)
	}
	return nil
}
