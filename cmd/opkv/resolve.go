package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opkv-dev/opkv/internal/opref"
)

var (
	resolveJSONFlag    bool
	resolveExplainFlag bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <key>",
	Short: "Print the secret reference a key resolves to",
	Long: `Derive the op:// secret reference for a logical key without calling
the 1Password CLI. Useful for checking which vault and item a key
routes to before reading it.

Examples:
  opkv resolve Demo
  opkv resolve demo_test --explain`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ref := opref.Resolve(args[0])

		switch {
		case resolveJSONFlag:
			printJSON(struct {
				Key       string `json:"key"`
				Reference string `json:"reference"`
				Vault     string `json:"vault"`
				Item      string `json:"item"`
				Field     string `json:"field"`
			}{
				Key:       args[0],
				Reference: ref.String(),
				Vault:     ref.Vault.String(),
				Item:      ref.Item(),
				Field:     opref.Field,
			})
		case resolveExplainFlag:
			fmt.Print(explainReference(args[0], ref))
		default:
			fmt.Println(ref.String())
		}
	},
}

// explainReference renders the vault/item/field breakdown of a derived
// reference.
func explainReference(key string, ref opref.Reference) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", ref.String())
	fmt.Fprintf(&sb, "  key:   %s\n", key)
	fmt.Fprintf(&sb, "  vault: %s\n", ref.Vault.String())
	fmt.Fprintf(&sb, "  item:  %s\n", ref.Item())
	fmt.Fprintf(&sb, "  field: %s\n", opref.Field)
	return sb.String()
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSONFlag, "json", false, "Print the breakdown as JSON")
	resolveCmd.Flags().BoolVar(&resolveExplainFlag, "explain", false, "Print the vault/item/field breakdown")
}
