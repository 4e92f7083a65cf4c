// Command opkv resolves Azure Key Vault URLs through the 1Password CLI.
//
// Results go to stdout; diagnostics and log output go to stderr, so the
// secret value can be captured cleanly in shell pipelines.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/opkv-dev/opkv/internal/buildinfo"
	"github.com/opkv-dev/opkv/internal/log"
)

var (
	quietFlag   bool
	verboseFlag bool
	debugFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "opkv",
	Short: "Resolve Azure Key Vault URLs through the 1Password CLI",
	Long: `opkv maps logical key names to 1Password secret references and reads
the Azure Key Vault base URL stored behind them.

Keys ending in "_test" route to the Test vault; everything else routes
to Production:

  Demo       ->  op://Production/AzureKeyVaultDemo/url
  demo_test  ->  op://Test/AzureKeyVaultdemo/url

The 1Password CLI (op) must be installed and authenticated; opkv
inherits its ambient session. Run 'opkv check' to diagnose the setup.`,
	Version:       buildinfo.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// setupLogging configures the process-wide logger from the verbosity
// flags. The handler is wrapped in a redactor so resolved secret values
// never leak into diagnostic output, whatever the level.
func setupLogging() {
	level := slog.LevelWarn
	switch {
	case debugFlag:
		level = slog.LevelDebug
	case verboseFlag:
		level = slog.LevelInfo
	case quietFlag:
		level = slog.LevelError
	}

	handler := log.NewRedactingHandler(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	log.SetDefault(log.New(handler))
	log.SetDefaultRedactor(handler)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print operational detail")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print agent invocations and debug detail")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Cobra only returns an error here for flag and argument problems;
	// commands handle their own failures and exit directly.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exitWithCode(ExitUsage)
	}
}
