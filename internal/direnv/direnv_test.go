package direnv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDirenv puts a fake direnv executable on PATH that appends its
// arguments to a log file and exits with the given status. Returns the
// log file path so tests can assert on recorded invocations.
func stubDirenv(t *testing.T, exitCode int) string {
	t.Helper()

	binDir := t.TempDir()
	logPath := filepath.Join(binDir, "invocations.log")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$*\" >> %q\nexit %d\n", logPath, exitCode)
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "direnv"), []byte(script), 0755))

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return logPath
}

// readInvocations returns the recorded stub invocations, one per line,
// or nil when the stub was never called.
func readInvocations(t *testing.T, logPath string) []string {
	t.Helper()

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// TestHasEnvrc verifies .envrc detection at a directory root: present,
// absent, and present-but-a-directory.
func TestHasEnvrc(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, HasEnvrc(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvrcName), []byte("export FOO=1\n"), 0644))
	assert.True(t, HasEnvrc(dir))

	nested := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(nested, EnvrcName), 0755))
	assert.False(t, HasEnvrc(nested), "a directory named .envrc does not count")
}

// TestAllow verifies that Allow invokes `direnv allow <dir>` exactly
// once with the target directory.
func TestAllow(t *testing.T) {
	logPath := stubDirenv(t, 0)
	dir := t.TempDir()

	require.NoError(t, Allow(dir))

	invocations := readInvocations(t, logPath)
	require.Len(t, invocations, 1)
	assert.Equal(t, "allow "+dir, invocations[0])
}

// TestAllow_Failure verifies that a failing direnv invocation surfaces
// as an error naming the directory. The caller downgrades it to a
// warning.
func TestAllow_Failure(t *testing.T) {
	stubDirenv(t, 1)
	dir := t.TempDir()

	err := Allow(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
}
