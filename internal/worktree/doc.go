// Package worktree provides the Git integration layer for the graft CLI.
//
// All Git operations are performed via os/exec calls to the git binary,
// rather than using a Git library like go-git. This approach:
//   - Avoids CGO dependencies (libgit2)
//   - Uses the exact same Git behavior the user sees in their terminal
//   - Requires Git >= 2.15 (when worktree support matured)
//
// The Manager struct provides methods for classifying branches against
// local and remote refs, adding worktrees, pulling, and querying the
// invocation context (inside a working tree vs. a bare-repo root).
package worktree
