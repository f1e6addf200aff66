package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/graft/internal/model"
)

// execRoot runs the root command with the given args, discarding cobra's
// own output streams, and returns the resulting error.
func execRoot(t *testing.T, args ...string) error {
	t.Helper()

	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// TestRootCommand_MissingBranch verifies that invoking without a branch
// name is a usage error and terminates before any git operation.
func TestRootCommand_MissingBranch(t *testing.T) {
	err := execRoot(t)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitUsageError, cliErr.Code)
}

// TestRootCommand_EmptyBranch verifies that a blank branch argument is
// rejected the same way as a missing one.
func TestRootCommand_EmptyBranch(t *testing.T) {
	err := execRoot(t, "   ")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitUsageError, cliErr.Code)
}

// TestRootCommand_HelpArgument verifies that the literal "help"
// argument prints usage and terminates cleanly instead of being treated
// as a branch name. Running from a directory that is not a git
// repository proves no git operation is attempted: creation would fail
// loudly here.
func TestRootCommand_HelpArgument(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Usage:")

	_, err := os.Stat("help")
	assert.True(t, os.IsNotExist(err), "no worktree named \"help\" may be created")
}

// TestRootCommand_TooManyArgs verifies that extra positional arguments
// are rejected as a usage error.
func TestRootCommand_TooManyArgs(t *testing.T) {
	err := execRoot(t, "branch-a", "branch-b")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitUsageError, cliErr.Code)
}
