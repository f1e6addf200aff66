// Package direnv integrates with the direnv environment-authorization
// tool. direnv refuses to auto-load a directory's .envrc until the user
// (or a tool acting for them) has explicitly approved it; graft approves
// the freshly copied .envrc so the new worktree loads its environment on
// first cd.
package direnv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvrcName is the environment script filename direnv loads.
const EnvrcName = ".envrc"

// HasEnvrc reports whether a .envrc file exists at the root of dir.
func HasEnvrc(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, EnvrcName))
	return err == nil && !info.IsDir()
}

// Allow runs `direnv allow <dir>`, marking the directory's .envrc as
// trusted. Called at most once per worktree creation, and only when a
// .envrc was actually copied in. A missing direnv binary or a failed
// invocation is reported as an error; the caller downgrades it to a
// warning since the worktree itself is already usable.
func Allow(dir string) error {
	cmd := exec.Command("direnv", "allow", dir)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("direnv allow %s: %s: %w", dir, msg, err)
		}
		return fmt.Errorf("direnv allow %s: %w", dir, err)
	}
	return nil
}
