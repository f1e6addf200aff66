// Package model defines the domain types for the graft CLI.
//
// All entities here are transient, in-memory values derived from CLI input
// and git/filesystem state at invocation time. Nothing is persisted past
// process exit; the only durable effects of a run are the worktree
// directory and the files copied into it.
package model

import (
	"fmt"
	"strings"
)

// BranchOrigin classifies where a branch name resolves to before the
// worktree is created. The classification decides which form of
// `git worktree add` is used:
//
//	local/remote → git worktree add <path> <branch>    (check out existing)
//	new          → git worktree add -b <branch> <path> (create at HEAD)
type BranchOrigin string

const (
	// OriginLocal means the branch ref exists under refs/heads.
	OriginLocal BranchOrigin = "local"

	// OriginRemote means the branch exists only as a remote-tracking
	// ref under origin (refs/remotes/origin/<branch>).
	OriginRemote BranchOrigin = "remote"

	// OriginNew means no matching ref exists; worktree creation will
	// also create the branch.
	OriginNew BranchOrigin = "new"
)

// String returns the string representation of BranchOrigin.
func (o BranchOrigin) String() string {
	return string(o)
}

// IsValid checks whether the BranchOrigin value is one of the
// predefined classifications.
func (o BranchOrigin) IsValid() bool {
	switch o {
	case OriginLocal, OriginRemote, OriginNew:
		return true
	default:
		return false
	}
}

// Exists reports whether the branch already exists somewhere (locally or
// on origin), i.e. whether worktree creation checks out an existing
// branch instead of creating one.
func (o BranchOrigin) Exists() bool {
	return o == OriginLocal || o == OriginRemote
}

// DirNameForBranch converts a branch name to the directory name used for
// its worktree: every "/" becomes "_", so a nested branch name like
// "alu/something-other" maps to the single path component
// "alu_something-other". The result never contains a path separator.
func DirNameForBranch(branch string) string {
	return strings.ReplaceAll(branch, "/", "_")
}

// CreateResult summarizes a completed worktree creation for output.
type CreateResult struct {
	// Branch is the branch name as supplied by the user.
	Branch string `json:"branch"`

	// Origin is how the branch was classified before creation.
	Origin BranchOrigin `json:"origin"`

	// WorktreePath is the path of the created worktree, relative to the
	// invocation directory (e.g. "../feat_login" or "./feat_login").
	WorktreePath string `json:"worktreePath"`

	// CopiedFiles is the number of manifest files successfully copied.
	CopiedFiles int `json:"copiedFiles"`

	// NodeModules indicates whether node_modules was copied over.
	NodeModules bool `json:"nodeModules"`

	// EnvrcAllowed indicates whether a copied .envrc was authorized
	// with direnv.
	EnvrcAllowed bool `json:"envrcAllowed"`
}

// ExitCode defines the CLI exit codes. Scripts wrapping graft can use
// them to distinguish git failures from usage mistakes.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitGitError indicates a git operation (ref enumeration,
	// worktree add) failed.
	ExitGitError ExitCode = 2

	// ExitUsageError indicates invalid invocation (missing or empty
	// branch name).
	ExitUsageError ExitCode = 3
)

// CLIError is an error type that carries an exit code, letting the CLI
// layer translate fatal domain errors into process exit codes. Only the
// fatal tier of the error taxonomy uses this type; non-fatal conditions
// are reported as warnings and never surface as errors.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
