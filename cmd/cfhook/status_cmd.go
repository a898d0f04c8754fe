package main

import (
	"github.com/spf13/cobra"

	"github.com/clangtools/cfhook/internal/hook"
	"github.com/clangtools/cfhook/internal/output"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the pre-commit hook installation state",
		Long: `Report whether the repository's pre-commit hook is absent, installed
by cfhook, or belongs to something else.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			hookPath, self, err := hookPaths(ctx)
			if err != nil {
				return err
			}
			status, err := hook.Stat(hookPath, self)
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(status)
			return nil
		},
	}
}
