package main

import "os"

// Exit codes for different failure modes, so scripts can branch on the
// reason a resolution failed.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0

	// ExitGeneral indicates a general error
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments or usage error
	ExitUsage = 2

	// ExitAgentMissing indicates the 1Password CLI was not found on PATH
	ExitAgentMissing = 3

	// ExitDecodeFailed indicates the agent's output was not valid UTF-8
	ExitDecodeFailed = 4

	// ExitCheckFailed indicates 'opkv check' found a problem
	ExitCheckFailed = 5
)

// exitWithCode exits with the specified exit code
func exitWithCode(code int) {
	os.Exit(code)
}
