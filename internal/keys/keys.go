// Package keys lists the logical keys registered in config.toml together
// with the vault references they resolve to.
//
// The [keys] inventory is informational only. Resolution never consults
// it: any logical key resolves to a reference whether registered or not.
// The inventory exists so `opkv keys` can show a team which keys are in
// use and what they are for.
package keys

import (
	"sort"

	"github.com/opkv-dev/opkv/internal/opref"
	"github.com/opkv-dev/opkv/internal/userconfig"
)

// KeyInfo describes a registered logical key for external consumers.
type KeyInfo struct {
	// Name is the logical key as passed to opkv (e.g. "Demo", "demo_test").
	Name string

	// Reference is the fully-qualified reference the key resolves to.
	Reference string

	// Vault is the vault the key routes to.
	Vault string

	// Desc is the user-supplied description from config.toml.
	Desc string
}

// Registered returns metadata for all keys in the [keys] inventory,
// sorted by name.
func Registered() ([]KeyInfo, error) {
	cfg, err := userconfig.Load()
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg), nil
}

// FromConfig derives key metadata from an already-loaded configuration.
func FromConfig(cfg *userconfig.Config) []KeyInfo {
	infos := make([]KeyInfo, 0, len(cfg.Keys))
	for name, desc := range cfg.Keys {
		ref := opref.Resolve(name)
		infos = append(infos, KeyInfo{
			Name:      name,
			Reference: ref.String(),
			Vault:     ref.Vault.String(),
			Desc:      desc,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}
