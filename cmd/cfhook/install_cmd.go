package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/clangtools/cfhook/internal/git"
	"github.com/clangtools/cfhook/internal/hook"
	"github.com/clangtools/cfhook/internal/log"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install cfhook as the pre-commit hook",
		Long: `Install cfhook as the repository's pre-commit hook.

The hook is a relative symlink from .git/hooks/pre-commit to this binary.
Installation fails if any pre-commit hook already exists; a hook installed
by something else is never overwritten.`,
		Example: `  cfhook install    # inside the repository to hook`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			hookPath, self, err := hookPaths(ctx)
			if err != nil {
				return err
			}
			if err := hook.Install(hookPath, self); err != nil {
				return err
			}
			log.FromContext(ctx).Printf("Installed pre-commit hook: %s -> %s\n", hookPath, self)
			return nil
		},
	}
}

// hookPaths resolves the pre-commit hook location for the repository
// containing the working directory, and the canonical path of this binary.
func hookPaths(ctx context.Context) (hookPath, self string, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	hookPath, err = git.GitPath(ctx, wd, "hooks/pre-commit")
	if err != nil {
		return "", "", err
	}
	self, err = hook.SelfPath()
	if err != nil {
		return "", "", err
	}
	return hookPath, self, nil
}
