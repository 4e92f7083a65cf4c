package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opkv-dev/opkv/internal/keys"
	"github.com/opkv-dev/opkv/internal/userconfig"
)

var keysJSONFlag bool

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the logical keys registered in config.toml",
	Long: `List the logical keys recorded in the [keys] table of config.toml,
with the vault reference each one resolves to.

The inventory is informational: 'opkv read' accepts any key, registered
or not. Registering keys gives a team a shared record of which keys are
in use.

Examples:
  opkv keys
  opkv keys add Demo "primary vault for the demo service"
  opkv keys remove Demo`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		registered, err := keys.Registered()
		if err != nil {
			printError(err, "")
			exitWithCode(ExitGeneral)
		}

		if keysJSONFlag {
			printJSON(registered)
			return
		}

		if len(registered) == 0 {
			printInfo("No keys registered. Add one with 'opkv keys add <name> [description]'.")
			return
		}

		for _, k := range registered {
			fmt.Printf("%-20s  %-40s  %s\n", k.Name, k.Reference, k.Desc)
		}
	},
}

var keysAddCmd = &cobra.Command{
	Use:   "add <name> [description]",
	Short: "Register a logical key",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		desc := ""
		if len(args) == 2 {
			desc = args[1]
		}

		cfg, err := userconfig.Load()
		if err != nil {
			printError(err, "")
			exitWithCode(ExitGeneral)
		}

		cfg.RegisterKey(args[0], desc)
		if err := cfg.Save(); err != nil {
			printError(err, "")
			exitWithCode(ExitGeneral)
		}

		printInfof("Registered %s\n", args[0])
	},
}

var keysRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a logical key from the inventory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := userconfig.Load()
		if err != nil {
			printError(err, "")
			exitWithCode(ExitGeneral)
		}

		if !cfg.UnregisterKey(args[0]) {
			fmt.Printf("Key %s is not registered.\n", args[0])
			exitWithCode(ExitUsage)
		}
		if err := cfg.Save(); err != nil {
			printError(err, "")
			exitWithCode(ExitGeneral)
		}

		printInfof("Removed %s\n", args[0])
	},
}

func init() {
	keysCmd.Flags().BoolVar(&keysJSONFlag, "json", false, "Print the inventory as JSON")
	keysCmd.AddCommand(keysAddCmd)
	keysCmd.AddCommand(keysRemoveCmd)
}
