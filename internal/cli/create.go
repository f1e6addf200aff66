// Package cli — create.go implements the worktree creation flow behind
// the root command.
//
// Orchestration steps:
//  1. Derive the worktree directory name from the branch name
//  2. Detect the invocation context (working tree vs. bare-repo root)
//  3. Classify the branch (local / remote / new)
//  4. Create the git worktree (fatal on failure)
//  5. Copy the top-level node_modules directory (warning on failure)
//  6. Enumerate and copy the configuration-file manifest (per-file warnings)
//  7. Pull latest changes in the new worktree (warning on failure)
//  8. Authorize a copied .envrc with direnv (warning on failure)
//  9. Report the created worktree path
//
// Only two failures are fatal: invalid invocation and worktree creation
// itself. Everything after a successful `git worktree add` is best
// effort — the worktree exists and is usable even if a copy or the pull
// fails. No cleanup of a partially created worktree is attempted.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/graft/internal/copier"
	"github.com/mmr-tortoise/graft/internal/direnv"
	"github.com/mmr-tortoise/graft/internal/manifest"
	"github.com/mmr-tortoise/graft/internal/model"
	"github.com/mmr-tortoise/graft/internal/worktree"
)

// nodeModulesDir is the dependency directory carried over wholesale.
// Only the top-level one is copied; nested node_modules inside
// dependency packages travel with it.
const nodeModulesDir = "node_modules"

// runCreate performs the full worktree creation flow for the given
// branch name, operating relative to the current working directory.
func runCreate(branch string) error {
	wm := worktree.NewManager()

	// Step 1: derive the worktree directory name.
	dirName := model.DirNameForBranch(branch)
	VerboseLog("Branch %q maps to directory name %q", branch, dirName)

	// Step 2: detect context. Inside a working tree, siblings are
	// created next to it; in a bare-repository root the worktree
	// becomes a subdirectory.
	insideWorkTree := wm.IsInsideWorkTree(".")
	worktreePath := "./" + dirName
	if insideWorkTree {
		worktreePath = filepath.Join("..", dirName)
	}
	VerboseLog("Inside working tree: %v, worktree location: %s", insideWorkTree, worktreePath)

	// Step 3: classify the branch, local refs first, then origin.
	origin, err := wm.Classify(".", branch)
	if err != nil {
		return err
	}
	VerboseLog("Branch %q classified as %s", branch, origin)

	// Step 4: create the worktree. Failure here is fatal — there is
	// nothing to copy into and nothing to clean up.
	if origin.Exists() {
		VerboseLog("git worktree add %s %s", worktreePath, branch)
		err = wm.Add(".", branch, worktreePath)
	} else {
		VerboseLog("git worktree add -b %s %s", branch, worktreePath)
		err = wm.AddNewBranch(".", branch, worktreePath)
	}
	if err != nil {
		return err
	}

	// Determine the copy source root: the current directory inside a
	// working tree, or the checked-out branch's directory in a
	// bare-repository layout.
	sourceRoot := "."
	if !insideWorkTree {
		current, branchErr := wm.CurrentBranch(".")
		if branchErr != nil {
			Warnf("could not determine current branch, skipping config-file copy: %v", branchErr)
			sourceRoot = ""
		} else {
			sourceRoot = "./" + current
		}
	}
	VerboseLog("Copy source root: %s", sourceRoot)

	// Load the manifest pattern set. A malformed config file is fatal;
	// an absent one yields the defaults.
	cfg := manifest.DefaultConfig()
	if sourceRoot != "" {
		cfg, err = manifest.LoadConfig(sourceRoot)
		if err != nil {
			return err
		}
	}

	// Step 5: carry over node_modules so the worktree is usable
	// without reinstalling dependencies.
	nodeModules := copyNodeModules(cfg, worktreePath)

	// Step 6: enumerate and copy the configuration-file manifest.
	copied := copyManifest(cfg, sourceRoot, worktreePath)

	// Step 7: pull latest changes. A brand-new branch has no upstream,
	// so a failure is only a warning.
	VerboseLog("git pull (in %s)", worktreePath)
	if pullErr := wm.Pull(worktreePath); pullErr != nil {
		Warnf("pull failed in %s: %v", worktreePath, pullErr)
	}

	// Step 8: authorize a copied .envrc. No .envrc, no action.
	envrcAllowed := false
	if direnv.HasEnvrc(worktreePath) {
		VerboseLog("direnv allow %s", worktreePath)
		if allowErr := direnv.Allow(worktreePath); allowErr != nil {
			Warnf("%v", allowErr)
		} else {
			envrcAllowed = true
		}
	}

	// Step 9: report success.
	printCreateResult(model.CreateResult{
		Branch:       branch,
		Origin:       origin,
		WorktreePath: worktreePath,
		CopiedFiles:  copied,
		NodeModules:  nodeModules,
		EnvrcAllowed: envrcAllowed,
	})
	return nil
}

// copyNodeModules copies the top-level node_modules directory from the
// current directory into the new worktree, if present and not disabled
// by config. Returns whether the copy happened.
func copyNodeModules(cfg manifest.Config, worktreePath string) bool {
	if !cfg.CopyNodeModules() {
		VerboseLog("node_modules copy disabled by config")
		return false
	}

	info, err := os.Stat(nodeModulesDir)
	if err != nil || !info.IsDir() {
		return false
	}

	dst := filepath.Join(worktreePath, nodeModulesDir)
	VerboseLog("Copying %s to %s", nodeModulesDir, dst)
	if err := copier.CopyTree(nodeModulesDir, dst); err != nil {
		Warnf("failed to copy %s to %s: %v", nodeModulesDir, dst, err)
		return false
	}
	return true
}

// copyManifest enumerates the configuration files under sourceRoot and
// copies each into the worktree, preserving relative directory
// structure. Every per-file failure is a warning; the remaining files
// are still attempted. Returns the number of files copied.
func copyManifest(cfg manifest.Config, sourceRoot, worktreePath string) int {
	if sourceRoot == "" {
		return 0
	}

	files, err := manifest.Enumerate(sourceRoot, cfg)
	if err != nil {
		Warnf("failed to scan %s for configuration files: %v", sourceRoot, err)
		return 0
	}
	VerboseLog("Copy manifest: %d file(s)", len(files))

	copied := 0
	for _, rel := range files {
		src := filepath.Join(sourceRoot, filepath.FromSlash(rel))
		dst := filepath.Join(worktreePath, filepath.FromSlash(rel))

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			Warnf("failed to create directory for %s: %v", rel, err)
			continue
		}
		if err := copier.CopyFile(src, dst); err != nil {
			Warnf("failed to copy %s: %v", rel, err)
			continue
		}
		VerboseLog("Copied %s", rel)
		copied++
	}
	return copied
}

// printCreateResult outputs the success report in text or JSON format.
func printCreateResult(result model.CreateResult) {
	if jsonOutput {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Created worktree at %s\n", result.WorktreePath)
	fmt.Printf("  Branch:  %s (%s)\n", result.Branch, result.Origin)
	if result.CopiedFiles > 0 {
		fmt.Printf("  Config:  %d file(s) copied\n", result.CopiedFiles)
	}
	if result.NodeModules {
		fmt.Printf("  Deps:    node_modules copied\n")
	}
	if result.EnvrcAllowed {
		fmt.Printf("  Direnv:  .envrc authorized\n")
	}
}
