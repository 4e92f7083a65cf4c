package functional

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// aCleanOpkvEnvironment is a no-op because the Before hook already sets
// up the environment. This step exists so feature files read naturally.
func aCleanOpkvEnvironment(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

// writeStub installs a stub op executable in the scenario's stub
// directory, which iRun prepends to PATH.
func writeStub(ctx context.Context, script string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}
	path := filepath.Join(state.stubDir, "op")
	body := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		return ctx, fmt.Errorf("writing stub agent: %w", err)
	}
	return ctx, nil
}

// aStubAgentPrinting rigs a stub that prints value (with the trailing
// newline a real agent emits) for one reference and fails every other
// invocation.
func aStubAgentPrinting(ctx context.Context, value, reference string) (context.Context, error) {
	script := fmt.Sprintf(`if [ "$1" = "read" ] && [ "$2" = "%s" ]; then
  printf '%%s\n' "%s"
else
  echo "[ERROR] unexpected invocation: $*" >&2
  exit 1
fi`, reference, value)
	return writeStub(ctx, script)
}

func aStubAgentWithSession(ctx context.Context, version string) (context.Context, error) {
	script := fmt.Sprintf(`case "$1" in
--version) echo "%s" ;;
whoami) echo "user@example.com" ;;
*) exit 1 ;;
esac`, version)
	return writeStub(ctx, script)
}

func aStubAgentWithoutSession(ctx context.Context, version string) (context.Context, error) {
	script := fmt.Sprintf(`case "$1" in
--version) echo "%s" ;;
whoami) echo "[ERROR] account is not signed in" >&2; exit 1 ;;
*) exit 1 ;;
esac`, version)
	return writeStub(ctx, script)
}

// noAgentOnPATH makes iRun strip PATH down to the (empty) stub
// directory so no op binary resolves.
func noAgentOnPATH(ctx context.Context) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}
	state.hideAgent = true
	return ctx, nil
}

// iRun executes a command string, replacing "opkv" with the test binary path.
func iRun(ctx context.Context, command string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	args := strings.Fields(command)
	if len(args) > 0 && args[0] == "opkv" {
		args[0] = state.binPath
	}

	path := state.stubDir + string(os.PathListSeparator) + os.Getenv("PATH")
	if state.hideAgent {
		path = state.stubDir
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(),
		"OPKV_HOME="+state.homeDir,
		"PATH="+path,
	)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	state.stdout = stdout.String()
	state.stderr = stderr.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			state.exitCode = exitErr.ExitCode()
		} else {
			return ctx, fmt.Errorf("command execution failed: %w", err)
		}
	} else {
		state.exitCode = 0
	}

	return ctx, nil
}

func theExitCodeIs(ctx context.Context, expected int) error {
	state := getState(ctx)
	if state.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, state.exitCode, state.stdout, state.stderr)
	}
	return nil
}

func theExitCodeIsNot(ctx context.Context, notExpected int) error {
	state := getState(ctx)
	if state.exitCode == notExpected {
		return fmt.Errorf("expected exit code to not be %d\nstdout: %s\nstderr: %s",
			notExpected, state.stdout, state.stderr)
	}
	return nil
}

func theOutputIsExactly(ctx context.Context, text string) error {
	state := getState(ctx)
	if state.stdout != text {
		return fmt.Errorf("expected stdout to be exactly %q, got %q", text, state.stdout)
	}
	return nil
}

func theOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout not to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theErrorOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}
