package agent_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opkv-dev/opkv/internal/agent"
	"github.com/opkv-dev/opkv/internal/testutil"
)

func TestCLIReadInvocation(t *testing.T) {
	// The stub echoes its reference argument back, so the assertion
	// covers both the argv wiring and the stdout capture.
	testutil.StubAgent(t, `[ "$1" = "read" ] || exit 64
printf '%s\n' "$2"`)

	raw, err := agent.NewCLI().Read(demoRef)
	require.NoError(t, err)
	require.Equal(t, demoRef+"\n", string(raw))
}

func TestCLIReadIgnoresExitStatus(t *testing.T) {
	testutil.StubAgent(t, `echo "https://foo.bar.baz.net/"
echo "[ERROR] session expired" >&2
exit 1`)

	raw, err := agent.NewCLI().Read(demoRef)
	require.NoError(t, err, "non-zero agent exit must not surface as an error")
	require.Equal(t, "https://foo.bar.baz.net/\n", string(raw))
}

func TestCLIReadFailedAgentYieldsEmptyPayload(t *testing.T) {
	testutil.StubAgent(t, `echo "[ERROR] could not read secret" >&2
exit 1`)

	raw, err := agent.NewCLI().Read(demoRef)
	require.NoError(t, err)
	require.Empty(t, raw)
}

func TestCLIReadMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := agent.NewCLI(agent.WithBinary("_op_")).Read(demoRef)

	var execErr *agent.ExecError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, "_op_", execErr.Binary)
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestCLIRetrieveEndToEnd(t *testing.T) {
	testutil.StubAgent(t, `printf 'https://foo.bar.baz.net/\r\n'`)

	got, err := agent.Retrieve(agent.NewCLI(), demoRef)
	require.NoError(t, err)
	require.Equal(t, "https://foo.bar.baz.net/", got)
}

func TestCLILookup(t *testing.T) {
	path := testutil.StubAgent(t, `exit 0`)

	got, err := agent.NewCLI().Lookup()
	require.NoError(t, err)
	require.Equal(t, path, got)
}

func TestCLILookupMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := agent.NewCLI().Lookup()

	var execErr *agent.ExecError
	require.ErrorAs(t, err, &execErr)
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestCLIVersion(t *testing.T) {
	testutil.StubAgent(t, `[ "$1" = "--version" ] || exit 64
echo "2.30.0"`)

	v, err := agent.NewCLI().Version()
	require.NoError(t, err)
	require.Equal(t, "2.30.0", v)
}

func TestCLIVersionNoMatch(t *testing.T) {
	testutil.StubAgent(t, `echo "development build"`)

	_, err := agent.NewCLI().Version()
	require.Error(t, err)
	require.Contains(t, err.Error(), "development build")
}

func TestCLISignedIn(t *testing.T) {
	testutil.StubAgent(t, `[ "$1" = "whoami" ] || exit 64
echo "URL: https://example.1password.com"`)

	ok, err := agent.NewCLI().SignedIn()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCLISignedOut(t *testing.T) {
	testutil.StubAgent(t, `echo "[ERROR] no account found" >&2
exit 1`)

	ok, err := agent.NewCLI().SignedIn()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCLIBinary(t *testing.T) {
	require.Equal(t, agent.DefaultBinary, agent.NewCLI().Binary())
	require.Equal(t, "op2", agent.NewCLI(agent.WithBinary("op2")).Binary())
}
