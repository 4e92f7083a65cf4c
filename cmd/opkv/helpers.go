package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/opkv-dev/opkv/internal/agent"
	"github.com/opkv-dev/opkv/internal/errmsg"
)

// printInfo prints an informational message unless quiet mode is enabled
func printInfo(a ...interface{}) {
	if !quietFlag {
		fmt.Println(a...)
	}
}

// printInfof prints a formatted informational message unless quiet mode is enabled
func printInfof(format string, a ...interface{}) {
	if !quietFlag {
		fmt.Printf(format, a...)
	}
}

// printJSON marshals the given value to JSON and prints it to stdout
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		exitWithCode(ExitGeneral)
	}
}

// printError prints an error to stderr with causes and suggestions
// where the errmsg package recognizes it. key, when non-empty, lets the
// suggestions name the exact retry command.
func printError(err error, key string) {
	var ctx *errmsg.ErrorContext
	if key != "" {
		ctx = &errmsg.ErrorContext{Key: key}
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", errmsg.Format(err, ctx))
}

// exitCodeFor maps a resolution failure to its exit code.
func exitCodeFor(err error) int {
	var execErr *agent.ExecError
	if errors.As(err, &execErr) {
		if errors.Is(execErr, exec.ErrNotFound) {
			return ExitAgentMissing
		}
		return ExitGeneral
	}
	var decodeErr *agent.DecodeError
	if errors.As(err, &decodeErr) {
		return ExitDecodeFailed
	}
	return ExitGeneral
}
