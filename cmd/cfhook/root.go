package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clangtools/cfhook/internal/formatter"
	"github.com/clangtools/cfhook/internal/git"
	"github.com/clangtools/cfhook/internal/log"
	"github.com/clangtools/cfhook/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// rootCmd represents the base command. Invoked without a subcommand it only
// acts when running as a git hook (the pre-commit symlink points at this
// binary); otherwise it refers the user to the subcommands.
var rootCmd = &cobra.Command{
	Use:   "cfhook",
	Short: "clang-format pre-commit hook for git",
	Long: `cfhook keeps committed code clang-formatted.

Installed as a git pre-commit hook, it checks the staged changes against
clang-format and asks whether to apply the suggested fixes, force the
commit, or cancel.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now. Diagnostics go to stderr, primary
		// data to stdout.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		ctx = output.WithPrinter(ctx, os.Stdout)
		cmd.SetContext(ctx)

		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		return git.CheckGit()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !inHookContext() {
			return fmt.Errorf("cfhook does nothing when run directly; use 'cfhook install' to set it up as a pre-commit hook, or 'cfhook run' to check the staged changes")
		}
		return runHook(cmd.Context())
	},
}

// inHookContext reports whether we were invoked by git as a hook. Git exports
// GIT_DIR and GIT_INDEX_FILE to hook processes.
func inHookContext() bool {
	return os.Getenv("GIT_DIR") != "" || os.Getenv("GIT_INDEX_FILE") != ""
}

// Execute runs the root command and maps errors to exit codes: 1 for fatal
// errors, cancelled commits, and formatting differences found by fmt, the
// underlying tool's own status when it failed with one.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		// Status 1 for "differences found" mirrors the diff convention
		// and is not a failure to report.
		if errors.Is(err, formatter.ErrDifferences) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)

		var toolErr *formatter.ToolError
		if errors.As(err, &toolErr) {
			os.Exit(toolErr.Code)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all diagnostic output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newFmtCmd())
}
