package main

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/opkv-dev/opkv/internal/agent"
	"github.com/opkv-dev/opkv/internal/userconfig"
)

var checkJSONFlag bool

// checkResult is one line of the environment report.
type checkResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the 1Password CLI setup",
	Long: `Verify that secret resolution can work in this environment:

  - the 1Password CLI (op) is on PATH
  - its version meets min_agent_version from config.toml, if set
  - an account session is active (op whoami)

Exits 3 when the CLI is missing and 5 when any other check fails.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := userconfig.Load()
		if err != nil {
			printError(err, "")
			exitWithCode(ExitGeneral)
		}

		results, agentMissing := runChecks(agent.NewCLI(), cfg.MinAgentVersion)

		allOK := true
		for _, r := range results {
			if !r.OK {
				allOK = false
			}
		}

		if checkJSONFlag {
			printJSON(struct {
				OK     bool          `json:"ok"`
				Checks []checkResult `json:"checks"`
			}{OK: allOK, Checks: results})
		} else {
			for _, r := range results {
				mark := "ok"
				if !r.OK {
					mark = "FAIL"
				}
				fmt.Printf("%-4s  %-14s %s\n", mark, r.Name, r.Detail)
			}
		}

		switch {
		case agentMissing:
			fmt.Fprintln(os.Stderr, "\nInstall the 1Password CLI: https://developer.1password.com/docs/cli/get-started")
			exitWithCode(ExitAgentMissing)
		case !allOK:
			exitWithCode(ExitCheckFailed)
		}
	},
}

// runChecks probes the agent installation. When the binary is missing
// the version and session probes are skipped; there is nothing to run.
func runChecks(cli *agent.CLI, minVersion string) (results []checkResult, agentMissing bool) {
	path, err := cli.Lookup()
	if err != nil {
		results = append(results, checkResult{
			Name:   "agent binary",
			Detail: fmt.Sprintf("%s not found on PATH", cli.Binary()),
		})
		return results, true
	}
	results = append(results, checkResult{Name: "agent binary", OK: true, Detail: path})

	results = append(results, versionCheck(cli, minVersion))

	signedIn, err := cli.SignedIn()
	switch {
	case err != nil:
		results = append(results, checkResult{Name: "agent session", Detail: err.Error()})
	case !signedIn:
		results = append(results, checkResult{Name: "agent session", Detail: "no active session; run 'op signin' or set OP_SERVICE_ACCOUNT_TOKEN"})
	default:
		results = append(results, checkResult{Name: "agent session", OK: true, Detail: "active"})
	}

	return results, false
}

func versionCheck(cli *agent.CLI, minVersion string) checkResult {
	got, err := cli.Version()
	if err != nil {
		return checkResult{Name: "agent version", Detail: err.Error()}
	}
	if minVersion == "" {
		return checkResult{Name: "agent version", OK: true, Detail: got}
	}

	required, err := semver.NewVersion(minVersion)
	if err != nil {
		return checkResult{Name: "agent version", Detail: fmt.Sprintf("min_agent_version %q in config.toml is not a semantic version", minVersion)}
	}
	cur, err := semver.NewVersion(got)
	if err != nil {
		return checkResult{Name: "agent version", Detail: fmt.Sprintf("agent reported non-semver version %q", got)}
	}

	if cur.LessThan(required) {
		return checkResult{Name: "agent version", Detail: fmt.Sprintf("%s is older than required %s", got, minVersion)}
	}
	return checkResult{Name: "agent version", OK: true, Detail: fmt.Sprintf("%s (>= %s)", got, minVersion)}
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSONFlag, "json", false, "Print the report as JSON")
}
