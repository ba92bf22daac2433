package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runDqctl(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()

	var out, errOut bytes.Buffer

	fullArgs := append([]string{"dqctl", "-C", dir, "--queue-root", filepath.Join(dir, ".dqueues")}, args...)
	exitCode := Run(&out, &errOut, fullArgs, nil)

	return out.String(), errOut.String(), exitCode
}

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCreateEnqueueDequeue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, stderr, code := runDqctl(t, dir, "create", "orders", "--max-entries", "4", "--max-entry-size", "64")
	require.Equal(t, 0, code, stderr)

	_, stderr, code = runDqctl(t, dir, "enqueue", "orders", "hello")
	require.Equal(t, 0, code, stderr)

	stdout, stderr, code := runDqctl(t, dir, "dequeue", "orders")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "hello\n", stdout)
}

func TestLenReflectsEnqueueCount(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, stderr, code := runDqctl(t, dir, "create", "q", "--max-entries", "8", "--max-entry-size", "64")
	require.Equal(t, 0, code, stderr)

	_, _, code = runDqctl(t, dir, "enqueue", "q", "a")
	require.Equal(t, 0, code)
	_, _, code = runDqctl(t, dir, "enqueue", "q", "b")
	require.Equal(t, 0, code)

	stdout, stderr, code := runDqctl(t, dir, "len", "q")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "2\n", stdout)
}

func TestSeekAndGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, code := runDqctl(t, dir, "create", "q", "--max-entries", "4", "--max-entry-size", "64", "--random-access")
	require.Equal(t, 0, code)

	for _, payload := range []string{"w", "x", "y"} {
		_, _, code = runDqctl(t, dir, "enqueue", "q", payload)
		require.Equal(t, 0, code)
	}

	_, stderr, code := runDqctl(t, dir, "seek", "q", "1")
	require.Equal(t, 0, code, stderr)

	stdout, stderr, code := runDqctl(t, dir, "get", "q")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "x\n", stdout)
}

func TestDestroyRemovesQueue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, code := runDqctl(t, dir, "create", "q", "--max-entries", "4", "--max-entry-size", "64")
	require.Equal(t, 0, code)

	stdout, _, code := runDqctl(t, dir, "ls")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "q")

	_, stderr, code := runDqctl(t, dir, "destroy", "q")
	require.Equal(t, 0, code, stderr)

	stdout, _, code = runDqctl(t, dir, "ls")
	require.Equal(t, 0, code)
	require.Equal(t, "(no queues)\n", stdout)
}

func TestLsReportsEmptyRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, stderr, code := runDqctl(t, dir, "ls")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "(no queues)\n", stdout)
}

func TestDequeueOnMissingQueueFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, stderr, code := runDqctl(t, dir, "dequeue", "ghost")
	require.NotEqual(t, 0, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "error:")
}

func TestMissingQueueNameArgument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, stderr, code := runDqctl(t, dir, "create")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "missing queue name")
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, stderr, code := runDqctl(t, dir, "bogus")
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "unknown command")
	require.Contains(t, stderr, "bogus")
}

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "--help"}, nil)
	require.Equal(t, 0, code)
	require.Empty(t, errOut.String())
	require.Contains(t, out.String(), "dqctl - manage file-backed FIFO data queues")
}

func TestConfigCommandPrintsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "config"}, nil)
	require.Equal(t, 0, code, errOut.String())
	require.Contains(t, out.String(), `"queue_root"`)
}

func TestConfigPrecedenceProjectFileOverridesDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ConfigFileName), `{"queue_root": "from-file"}`)

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "config"}, nil)
	require.Equal(t, 0, code, errOut.String())
	require.Contains(t, out.String(), `"queue_root": "from-file"`)
}

func TestConfigPrecedenceCLIOverridesProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ConfigFileName), `{"queue_root": "from-file"}`)

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "--queue-root", "from-cli", "config"}, nil)
	require.Equal(t, 0, code, errOut.String())
	require.Contains(t, out.String(), `"queue_root": "from-cli"`)
}

func TestConfigRejectsExplicitlyEmptyQueueRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ConfigFileName), `{"queue_root": ""}`)

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "config"}, nil)
	require.Equal(t, 1, code)
	require.Empty(t, out.String())
	require.Contains(t, errOut.String(), "queue_root cannot be empty")
}

func TestConfigRejectsEmptyQueueRootCLIFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "--queue-root", "", "config"}, nil)
	require.Equal(t, 1, code)
	require.Empty(t, out.String())
	require.Contains(t, errOut.String(), "queue_root cannot be empty")
}

func TestConfigWithComments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ConfigFileName), `{
		// queue storage location
		"queue_root": "commented-root",
	}`)

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "config"}, nil)
	require.Equal(t, 0, code, errOut.String())
	require.Contains(t, out.String(), `"queue_root": "commented-root"`)
}

func TestConfigExplicitConfigFlagNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "-c", "missing.jsonc", "config"}, nil)
	require.Equal(t, 1, code)
	require.Empty(t, out.String())
	require.Contains(t, errOut.String(), "config file not found")
}

func TestConfigInitWritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "config", "init"}, nil)
	require.Equal(t, 0, code, errOut.String())

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	require.Contains(t, string(data), `"queue_root"`)
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ConfigFileName), `{"queue_root": "already-here"}`)

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl", "-C", dir, "config", "init"}, nil)
	require.Equal(t, 1, code)
	require.Contains(t, errOut.String(), "already exists")
}

func TestOpenHealthCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, code := runDqctl(t, dir, "create", "q", "--max-entries", "4", "--max-entry-size", "64")
	require.Equal(t, 0, code)

	stdout, stderr, code := runDqctl(t, dir, "open", "q", "--access", "ro")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "ok:")
}

func TestOverwriteOnFullQueue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, code := runDqctl(t, dir, "create", "q", "--max-entries", "2", "--max-entry-size", "8")
	require.Equal(t, 0, code)

	for _, payload := range []string{"a", "b", "c"} {
		_, stderr, code := runDqctl(t, dir, "enqueue", "q", payload)
		require.Equal(t, 0, code, stderr)
	}

	stdout, stderr, code := runDqctl(t, dir, "len", "q")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "2\n", stdout)

	stdout, stderr, code = runDqctl(t, dir, "dequeue", "q")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "b\n", stdout)
}

func TestGlobalFlagsCombinedAndEqualsForm(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ConfigFileName), `{"queue_root": "combined"}`)

	var out1, errOut1 bytes.Buffer

	code := Run(&out1, &errOut1, []string{"dqctl", "-C" + dir, "config"}, nil)
	require.Equal(t, 0, code, errOut1.String())
	require.Contains(t, out1.String(), `"queue_root": "combined"`)

	var out2, errOut2 bytes.Buffer

	code = Run(&out2, &errOut2, []string{"dqctl", "--cwd=" + dir, "config"}, nil)
	require.Equal(t, 0, code, errOut2.String())
	require.Contains(t, out2.String(), `"queue_root": "combined"`)
}

func TestNoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	code := Run(&out, &errOut, []string{"dqctl"}, nil)
	require.Equal(t, 0, code)
	require.Empty(t, errOut.String())
	require.True(t, strings.Contains(out.String(), "Commands:"))
}
