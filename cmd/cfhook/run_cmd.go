package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check the staged changes as the pre-commit hook would",
		Long: `Check the staged changes against clang-format.

This is what the installed pre-commit hook executes. If the staged changes
deviate from the configured style the suggested patch is shown and, in
interactive mode, you choose to apply it, force the commit, or cancel.

Interactivity follows git config ` + "`hooks.clangFormatDiffInteractive`" + `
(default true); the style follows ` + "`hooks.clangFormatDiffStyle`" + `
(default "file").`,
		Example: `  cfhook run        # check what a commit would check right now`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd.Context())
		},
	}
}
