package main

import (
	"github.com/spf13/cobra"

	"github.com/clangtools/cfhook/internal/hook"
	"github.com/clangtools/cfhook/internal/log"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the cfhook pre-commit hook",
		Long: `Remove the pre-commit hook if cfhook installed it.

A pre-commit hook installed by something else is left in place and
reported as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			hookPath, self, err := hookPaths(ctx)
			if err != nil {
				return err
			}
			if err := hook.Uninstall(hookPath, self); err != nil {
				return err
			}
			log.FromContext(ctx).Printf("Removed pre-commit hook: %s\n", hookPath)
			return nil
		},
	}
}
