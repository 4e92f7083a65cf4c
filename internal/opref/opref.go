// Package opref derives 1Password secret references from logical key names.
//
// A logical key names a secret family, typically a service or component
// name. Keys carrying the reserved "_test" suffix select the Test vault;
// every other key selects the Production vault. The derived reference
// addresses the url field of an AzureKeyVault-prefixed item:
//
//	Demo      -> op://Production/AzureKeyVaultDemo/url
//	demo_test -> op://Test/AzureKeyVaultdemo/url
//
// Derivation is pure string manipulation: no I/O, no failure path. Whether
// the referenced item actually exists is the agent's concern, not ours.
package opref

import (
	"fmt"
	"strings"
)

const (
	// Scheme is the 1Password secret-reference scheme.
	Scheme = "op"

	// TestSuffix is the reserved logical-key suffix selecting the Test vault.
	// Matching is case-sensitive and only a trailing occurrence counts.
	TestSuffix = "_test"

	// ItemPrefix is prepended to the normalized key to form the item name.
	ItemPrefix = "AzureKeyVault"

	// Field is the item field holding the secret payload.
	Field = "url"
)

// Environment selects which vault a reference addresses.
type Environment int

const (
	// Production is the default environment for keys without the suffix.
	Production Environment = iota

	// Test is selected by the reserved "_test" key suffix.
	Test
)

// String returns the vault display name used in references.
func (e Environment) String() string {
	if e == Test {
		return "Test"
	}
	return "Production"
}

// Reference is a fully-qualified op:// secret reference. The zero value
// addresses the Production vault with an empty key; references are normally
// obtained from Resolve or Parse.
type Reference struct {
	// Vault is the environment-selected vault.
	Vault Environment

	// Key is the normalized logical key (reserved suffix stripped).
	Key string
}

// Item returns the composite item name the reference addresses.
func (r Reference) Item() string {
	return ItemPrefix + r.Key
}

// String renders the reference in the form the agent consumes.
func (r Reference) String() string {
	return Scheme + "://" + r.Vault.String() + "/" + r.Item() + "/" + Field
}

// ParseKey splits a logical key into its environment and normalized form.
// Exactly one trailing TestSuffix is stripped; internal occurrences are
// preserved. The split is total: every key maps to exactly one environment.
func ParseKey(key string) (Environment, string) {
	if base, found := strings.CutSuffix(key, TestSuffix); found {
		return Test, base
	}
	return Production, key
}

// Resolve derives the reference for a logical key. A key equal to the bare
// suffix normalizes to an empty key; Resolve does not reject it — the agent
// fails on the resulting reference instead.
func Resolve(key string) Reference {
	env, base := ParseKey(key)
	return Reference{Vault: env, Key: base}
}

// Parse validates an op:// reference string produced by Resolve and
// decomposes it back into a Reference. It rejects anything outside the
// fixed three-segment template, including unknown vault names.
func Parse(s string) (Reference, error) {
	rest, ok := strings.CutPrefix(s, Scheme+"://")
	if !ok {
		return Reference{}, fmt.Errorf("reference %q does not start with %s://", s, Scheme)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 {
		return Reference{}, fmt.Errorf("reference %q must have exactly vault/item/field segments", s)
	}

	var env Environment
	switch parts[0] {
	case Production.String():
		env = Production
	case Test.String():
		env = Test
	default:
		return Reference{}, fmt.Errorf("unknown vault %q in reference %q", parts[0], s)
	}

	key, ok := strings.CutPrefix(parts[1], ItemPrefix)
	if !ok {
		return Reference{}, fmt.Errorf("item %q in reference %q is missing the %s prefix", parts[1], s, ItemPrefix)
	}

	if parts[2] != Field {
		return Reference{}, fmt.Errorf("reference %q addresses field %q, expected %q", s, parts[2], Field)
	}

	return Reference{Vault: env, Key: key}, nil
}
