// Package errmsg provides enhanced error message formatting with actionable suggestions.
package errmsg

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/opkv-dev/opkv/internal/agent"
)

// ErrorContext provides additional context for error formatting
type ErrorContext struct {
	Key string // The logical key being resolved (for suggestions)
}

// Format returns a formatted error message with possible causes and suggestions.
// The context parameter is optional - pass nil for generic formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	// Check for ExecError (structured errors from the agent package)
	var execErr *agent.ExecError
	if errors.As(err, &execErr) {
		if errors.Is(execErr, exec.ErrNotFound) {
			return formatAgentMissingError(execErr, ctx)
		}
		return formatAgentSpawnError(execErr, ctx)
	}

	// Check for DecodeError
	var decodeErr *agent.DecodeError
	if errors.As(err, &decodeErr) {
		return formatDecodeError(decodeErr, ctx)
	}

	// Check for session errors (string matching for unstructured errors)
	if isSessionError(errMsg) {
		return formatSessionError(errMsg, ctx)
	}

	// Check for permission errors
	if isPermissionError(errMsg) {
		return formatPermissionError(errMsg, ctx)
	}

	// Return original error for unrecognized types
	return errMsg
}

func formatAgentMissingError(err *agent.ExecError, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString(fmt.Sprintf("  - The 1Password CLI (%s) is not installed\n", err.Binary))
	sb.WriteString("  - The binary is installed but not on PATH\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Install it from https://developer.1password.com/docs/cli/get-started\n")
	sb.WriteString(fmt.Sprintf("  - Verify with 'command -v %s'\n", err.Binary))
	sb.WriteString("  - Run 'opkv check' to diagnose the agent setup\n")

	return sb.String()
}

func formatAgentSpawnError(err *agent.ExecError, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - The agent binary is not executable\n")
	sb.WriteString("  - A sandbox or security policy blocks spawning it\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString(fmt.Sprintf("  - Check permissions: ls -la $(command -v %s)\n", err.Binary))
	sb.WriteString("  - Reinstall the 1Password CLI\n")

	return sb.String()
}

func formatDecodeError(err *agent.DecodeError, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - The referenced field holds binary data instead of text\n")
	sb.WriteString("  - The item is a document rather than a text field\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString(fmt.Sprintf("  - Inspect the item behind %s in 1Password\n", err.Reference))
	sb.WriteString("  - The url field must contain plain text\n")

	return sb.String()
}

func formatSessionError(errMsg string, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - No active 1Password session\n")
	sb.WriteString("  - The session expired\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Sign in with 'op signin'\n")
	sb.WriteString("  - For non-interactive use, set OP_SERVICE_ACCOUNT_TOKEN\n")
	if ctx != nil && ctx.Key != "" {
		sb.WriteString(fmt.Sprintf("  - Then retry 'opkv read %s'\n", ctx.Key))
	}

	return sb.String()
}

func formatPermissionError(errMsg string, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Insufficient permissions on $OPKV_HOME directory\n")
	sb.WriteString("  - File or directory owned by different user\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check permissions on ~/.opkv directory\n")
	sb.WriteString("  - Ensure you own the opkv directories: ls -la ~/.opkv\n")

	return sb.String()
}

// isSessionError checks if the error message indicates a missing or expired session
func isSessionError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "not signed in") ||
		strings.Contains(lower, "no account") ||
		strings.Contains(lower, "session expired") ||
		strings.Contains(lower, "signin")
}

// isPermissionError checks if the error message indicates a permission issue
func isPermissionError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "operation not permitted")
}
