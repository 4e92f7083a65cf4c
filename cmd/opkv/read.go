package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opkv-dev/opkv"
	"github.com/opkv-dev/opkv/internal/opref"
)

var (
	readJSONFlag      bool
	readNewlineFlag   bool
	readNoNewlineFlag bool
)

// isTerminalFunc reports whether stdout is a terminal. Overridable in
// tests.
var isTerminalFunc = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var readCmd = &cobra.Command{
	Use:   "read <key>",
	Short: "Resolve a logical key and print its vault URL",
	Long: `Resolve a logical key through the 1Password CLI and print the Azure
Key Vault base URL it names.

On a terminal the value is printed with a trailing newline; when piped,
the raw value is written without one so it can be captured exactly.
Override with --newline or --no-newline.

Examples:
  opkv read Demo
  opkv read demo_test
  VAULT_URL=$(opkv read Demo)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		if ref := opref.Resolve(key); ref.Key == "" {
			fmt.Fprintf(os.Stderr, "Warning: key %q normalizes to an empty item name; the agent will reject the reference\n", key)
		}

		m, err := opkv.New(key)
		if err != nil {
			printError(err, key)
			exitWithCode(exitCodeFor(err))
		}

		if readJSONFlag {
			printJSON(struct {
				Key       string `json:"key"`
				Reference string `json:"reference"`
				Value     string `json:"value"`
			}{Key: m.Key(), Reference: m.Reference().String(), Value: m.URL()})
			return
		}

		if appendNewline(isTerminalFunc(), readNewlineFlag, readNoNewlineFlag) {
			fmt.Println(m.URL())
		} else {
			fmt.Print(m.URL())
		}
	},
}

// appendNewline decides whether the printed value gets a trailing
// newline: explicit flags win, otherwise follow whether stdout is a
// terminal.
func appendNewline(tty, force, suppress bool) bool {
	if force {
		return true
	}
	if suppress {
		return false
	}
	return tty
}

func init() {
	readCmd.Flags().BoolVar(&readJSONFlag, "json", false, "Print key, reference and value as JSON")
	readCmd.Flags().BoolVar(&readNewlineFlag, "newline", false, "Always append a trailing newline")
	readCmd.Flags().BoolVar(&readNoNewlineFlag, "no-newline", false, "Never append a trailing newline")
	readCmd.MarkFlagsMutuallyExclusive("newline", "no-newline")
}
