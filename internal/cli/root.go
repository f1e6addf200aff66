// Package cli implements the cobra-based command-line interface for graft.
//
// graft is a single-operation tool, so the root command itself performs
// the worktree creation rather than delegating to subcommands. This file
// defines the root command, global flags, and the colored output helpers
// for the two error tiers (fatal errors and non-fatal warnings).
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/graft/internal/model"
)

// Global flag variables bound to cobra persistent flags on the root
// command.
var (
	// jsonOutput controls whether the success report is formatted as
	// JSON for machine consumption instead of human-readable text.
	jsonOutput bool

	// verbose enables command-echo diagnostics on stderr. It changes
	// output only, never control flow.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package for --version output.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Output styles for the two tiers of the failure taxonomy: fatal errors
// in red, non-fatal warnings in yellow. Both go to stderr; stdout is
// reserved for the success report.
var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graft <branch-name>",
		Short: "Create a ready-to-use git worktree for a branch",
		Long: `graft creates a git worktree for a branch and makes it immediately usable:
it copies over untracked configuration files (.env, .envrc, .tool-versions,
application-local.yml, ...) and the node_modules directory, pulls the latest
changes, and authorizes any copied .envrc with direnv.

The branch is looked up locally first, then under origin; if it exists in
neither, a new branch is created at HEAD. Inside a working tree the worktree
is created as a sibling directory (../<name>); in a bare-repository root it
becomes a subdirectory (./<name>). Slashes in the branch name map to
underscores in the directory name.`,

		// SilenceUsage prevents cobra from printing usage on every error;
		// the Args validator below prints it for usage mistakes only.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them with the error style instead.
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// A missing or empty branch name is a usage mistake: show the
		// usage text and terminate before any git operation runs.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				_ = cmd.Usage()
				return model.NewCLIError(model.ExitUsageError, "a non-empty branch name is required")
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			// cobra only installs its built-in help command when
			// subcommands exist; this root has none, so the literal
			// "help" argument is handled here before it can be
			// mistaken for a branch name.
			if args[0] == "help" {
				return cmd.Help()
			}
			return runCreate(args[0])
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Echo each operation as it runs")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the success report in JSON format")

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Fatal errors carry their exit codes as CLIError values; anything else
// defaults to exit code 1. Warnings never reach this function — they are
// printed inline and execution continues.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		printError(err)

		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			os.Exit(int(cliErr.Code))
		}
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes a fatal error to stderr in the error color.
func printError(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Error: %s", err)))
}

// Warnf writes a non-fatal warning to stderr in the warning color.
// Execution always continues after a warning.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("Warning: "+format, args...)))
}

// VerboseLog prints a message to stderr only when verbose mode is
// enabled. Used throughout the create flow to echo each operation.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
