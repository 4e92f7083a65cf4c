// Package userconfig provides user configuration management for opkv.
// Configuration is stored in ~/.opkv/config.toml and can be modified
// via the `opkv config` command.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/opkv-dev/opkv/internal/config"
)

// Config represents user-configurable settings.
type Config struct {
	// MinAgentVersion is the lowest 1Password CLI version `opkv check`
	// accepts. Empty disables the version gate.
	MinAgentVersion string `toml:"min_agent_version,omitempty"`

	// UpdateCheck enables the release lookup in `opkv version --check`.
	// Default is true (enabled).
	UpdateCheck bool `toml:"update_check"`

	// Keys is a local inventory of logical keys, name to description.
	// Purely informational: resolution accepts any key, registered or not.
	Keys map[string]string `toml:"keys"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		UpdateCheck: true, // Enabled by default
		Keys:        map[string]string{},
	}
}

// Load reads the config file and returns the configuration.
// Returns default values if the file doesn't exist.
// Returns an error only for file parsing issues, not missing files.
func Load() (*Config, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return DefaultConfig(), nil // Silently use defaults
	}

	return loadFromPath(cfg.ConfigFile)
}

// loadFromPath reads config from a specific file path (for testing).
func loadFromPath(path string) (*Config, error) {
	userCfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return userCfg, nil // File doesn't exist, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), userCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if userCfg.Keys == nil {
		userCfg.Keys = map[string]string{}
	}

	return userCfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.saveToPath(cfg.ConfigFile)
}

// saveToPath writes config to a specific file path (for testing).
func (c *Config) saveToPath(path string) error {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the value of a config key as a string.
// Returns empty string and false if the key doesn't exist.
func (c *Config) Get(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "min_agent_version":
		return c.MinAgentVersion, true
	case "update_check":
		return strconv.FormatBool(c.UpdateCheck), true
	default:
		return "", false
	}
}

// Set updates a config value from a string.
// Returns an error if the key doesn't exist or the value is invalid.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "min_agent_version":
		if value != "" {
			if _, err := semver.NewVersion(value); err != nil {
				return fmt.Errorf("invalid value for min_agent_version: must be a semantic version like 2.18.0")
			}
		}
		c.MinAgentVersion = value
		return nil
	case "update_check":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for update_check: must be true or false")
		}
		c.UpdateCheck = b
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// RegisterKey records a logical key in the [keys] inventory.
func (c *Config) RegisterKey(name, description string) {
	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
	c.Keys[name] = description
}

// UnregisterKey removes a logical key from the [keys] inventory.
// Returns false if the key was not registered.
func (c *Config) UnregisterKey(name string) bool {
	if _, ok := c.Keys[name]; !ok {
		return false
	}
	delete(c.Keys, name)
	return true
}

// KeyNames returns the registered logical keys in sorted order.
func (c *Config) KeyNames() []string {
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableKeys returns a list of all configurable keys with descriptions.
func AvailableKeys() map[string]string {
	return map[string]string{
		"min_agent_version": "Lowest 1Password CLI version accepted by `opkv check` (empty to disable)",
		"update_check":      "Look up newer opkv releases in `opkv version --check` (true/false)",
	}
}
