package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opkv-dev/opkv/internal/buildinfo"
	"github.com/opkv-dev/opkv/internal/release"
	"github.com/opkv-dev/opkv/internal/userconfig"
)

var versionCheckFlag bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the opkv version",
	Long: `Print the version of this opkv build.

With --check, also query GitHub for the latest published release and
report whether an update is available. The lookup honors the
update_check config setting and GITHUB_TOKEN for authenticated
requests.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		current := buildinfo.Version()
		fmt.Printf("opkv %s\n", current)

		if !versionCheckFlag {
			return
		}

		cfg, err := userconfig.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitWithCode(ExitGeneral)
		}
		if !cfg.UpdateCheck {
			printInfo("Update check is disabled (opkv config set update_check true).")
			return
		}

		status, err := release.New().Check(context.Background(), current)
		if err != nil {
			printError(err, "")
			exitWithCode(ExitGeneral)
		}

		if status.UpdateAvailable {
			fmt.Printf("Update available: %s (current %s)\n", status.Latest.Tag, current)
			fmt.Printf("  https://github.com/%s/releases/latest\n", release.Repo)
		} else {
			printInfof("Latest release is %s; you are up to date.\n", status.Latest.Tag)
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheckFlag, "check", false, "Check GitHub for a newer release")
}
