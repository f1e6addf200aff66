package worktree

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/graft/internal/model"
)

// Manager provides Git operations by invoking the git CLI.
//
// It is currently stateless — all methods receive the working directory
// as a parameter. The struct exists as a receiver to support future
// extensions such as a configurable git binary path.
type Manager struct{}

// NewManager creates a new Manager instance.
//
// There is no initialization logic yet, but the constructor follows Go
// convention and allows setup code to be added later (e.g. verifying git
// is installed) without breaking callers.
func NewManager() *Manager {
	return &Manager{}
}

// IsInsideWorkTree reports whether dir is inside a git working tree.
//
// Uses `git rev-parse --is-inside-work-tree`, which prints "true" inside
// any working tree (main checkout or linked worktree) and "false" inside
// a bare repository's directory. A command failure (not a repository at
// all) also counts as false.
//
// The answer decides where the new worktree goes: inside a working tree,
// siblings are created next to the current one (parent dir ".."); in a
// bare-repo root, the worktree becomes a subdirectory (parent dir ".").
func (m *Manager) IsInsideWorkTree(dir string) bool {
	out, err := runGit(dir, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "true"
}

// CurrentBranch returns the name of the currently checked-out branch at
// the given path.
//
// Uses `git rev-parse --abbrev-ref HEAD` which returns the short branch
// name (e.g. "main" instead of "refs/heads/main"). Returns "HEAD" if the
// repository is in a detached HEAD state.
func (m *Manager) CurrentBranch(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LocalBranches returns the short names of all local branch refs
// (refs/heads/*), one per entry, in git's default order.
func (m *Manager) LocalBranches(dir string) ([]string, error) {
	out, err := runGit(dir, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	return splitRefLines(out), nil
}

// RemoteBranches returns the short names of all remote-tracking refs
// under origin (refs/remotes/origin/*). Entries keep the "origin/"
// prefix, e.g. "origin/main". The symbolic origin/HEAD entry is
// filtered out because it is an alias, not a branch.
func (m *Manager) RemoteBranches(dir string) ([]string, error) {
	out, err := runGit(dir, "for-each-ref", "--format=%(refname:short)", "refs/remotes/origin")
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, ref := range splitRefLines(out) {
		if ref == "origin/HEAD" {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Classify decides the BranchOrigin for a branch name by exact-match
// lookup, local refs first, then origin remote-tracking refs. A branch
// present in both lists is classified local — the local checkout wins.
// No match in either list yields OriginNew.
func (m *Manager) Classify(dir, branch string) (model.BranchOrigin, error) {
	locals, err := m.LocalBranches(dir)
	if err != nil {
		return "", err
	}
	for _, name := range locals {
		if name == branch {
			return model.OriginLocal, nil
		}
	}

	remotes, err := m.RemoteBranches(dir)
	if err != nil {
		return "", err
	}
	for _, name := range remotes {
		if name == "origin/"+branch {
			return model.OriginRemote, nil
		}
	}

	return model.OriginNew, nil
}

// Add creates a worktree at worktreePath checking out the existing
// branch (local or remote-tracking). Git resolves a remote-only branch
// name to a new local branch tracking origin/<branch> via its usual
// DWIM behavior.
//
// Runs: git worktree add <worktreePath> <branch>
func (m *Manager) Add(dir, branch, worktreePath string) error {
	_, err := runGit(dir, "worktree", "add", worktreePath, branch)
	return err
}

// AddNewBranch creates a worktree at worktreePath on a brand-new branch
// started at HEAD.
//
// Runs: git worktree add -b <branch> <worktreePath>
func (m *Manager) AddNewBranch(dir, branch, worktreePath string) error {
	_, err := runGit(dir, "worktree", "add", "-b", branch, worktreePath)
	return err
}

// Pull runs `git pull` inside the given worktree. The caller treats a
// failure as non-fatal: a freshly created branch legitimately has no
// upstream to pull from.
func (m *Manager) Pull(worktreePath string) error {
	_, err := runGit(worktreePath, "pull")
	return err
}

// runGit executes a git command with the given arguments in the specified
// directory.
//
// It captures stdout and stderr separately. On success it returns the
// stdout output. On failure it returns a model.CLIError with ExitGitError,
// including the stderr output in the message for diagnostics.
//
// The dir parameter is passed to git via the -C flag, which causes git to
// change to that directory before doing anything else, so the process's
// own working directory never has to change.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}

// splitRefLines splits for-each-ref output into non-empty trimmed lines.
func splitRefLines(out string) []string {
	var refs []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			refs = append(refs, line)
		}
	}
	return refs
}
