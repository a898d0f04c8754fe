package main

import (
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var opts fmtOptions

	cmd := &cobra.Command{
		Use:   "fmt [flags] [--] [files or git diff arguments...]",
		Short: "Run clang-format over changed regions or whole files",
		Long: `Run clang-format over the changed regions of the working tree, the
staged changes, or whole files.

By default the working-tree diff is piped through clang-format-diff and the
suggested patch is printed. Paths matching a pattern in the repository's
.clang-format-hook-exclude file are skipped.

The exit status follows the diff convention: 0 when everything is
formatted, 1 when differences were found, and higher statuses from
clang-format-diff are propagated unchanged. --apply-to-staged exits 0
after applying the fix.`,
		Example: `  cfhook fmt                       # print fixes for unstaged changes
  cfhook fmt --staged              # print fixes for the staged changes
  cfhook fmt -i                    # rewrite changed regions in place
  cfhook fmt --apply-to-staged     # fix the staged changes and restage them
  cfhook fmt -f -i -- src/main.c   # reformat a whole file in place
  cfhook fmt --style=LLVM --staged`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.args = args
			return runFmt(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.wholeFile, "whole-file", "f", false, "Format whole files instead of changed regions")
	cmd.Flags().BoolVar(&opts.staged, "staged", false, "Scope the diff to the staged changes")
	cmd.Flags().BoolVar(&opts.staged, "cached", false, "Alias for --staged")
	cmd.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "Apply changes to the files instead of printing a patch")
	cmd.Flags().BoolVar(&opts.applyToStaged, "apply-to-staged", false, "Fix the staged changes and apply the fix to worktree and index")
	cmd.Flags().StringVar(&opts.style, "style", "", "clang-format style source (default from config)")
	cmd.Flags().StringArrayVar(&opts.ignoreRegexes, "ignore-regex", nil, "Additional path regex to exclude (repeatable)")
	cmd.Flags().MarkHidden("cached")

	cmd.MarkFlagsMutuallyExclusive("whole-file", "staged")
	cmd.MarkFlagsMutuallyExclusive("whole-file", "cached")
	cmd.MarkFlagsMutuallyExclusive("whole-file", "apply-to-staged")
	cmd.MarkFlagsMutuallyExclusive("staged", "apply-to-staged")

	return cmd
}
