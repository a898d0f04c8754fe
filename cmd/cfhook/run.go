package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/clangtools/cfhook/internal/config"
	"github.com/clangtools/cfhook/internal/discover"
	"github.com/clangtools/cfhook/internal/formatter"
	"github.com/clangtools/cfhook/internal/git"
	"github.com/clangtools/cfhook/internal/log"
	"github.com/clangtools/cfhook/internal/output"
	"github.com/clangtools/cfhook/internal/prompt"
)

// runHook is the pre-commit hook body: compute the formatting patch for the
// staged changes and, when it is non-empty, ask the user what to do with it.
func runHook(ctx context.Context) error {
	l := log.FromContext(ctx)

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if !git.IsInsideRepo(ctx, wd) {
		return fmt.Errorf("not a git repository (or any of its parents): %s", wd)
	}

	// The diff and patch run at the top of the current working tree; the
	// configuration root (exclusion file, .clang-format) may sit higher up
	// when committing inside a submodule or linked worktree.
	top, err := git.Toplevel(ctx, wd)
	if err != nil {
		return err
	}
	root, err := git.WorktreeRoot(ctx, wd)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(ctx, root)
	if err != nil {
		return err
	}

	tool, err := discover.DefaultFinder().ClangFormatDiff(cfg.ClangFormatDiff)
	if err != nil {
		return err
	}

	excludes, err := formatter.LoadExcludes(root)
	if err != nil {
		return err
	}

	patch, err := formatter.StagedPatch(ctx, top, tool, cfg.Style, excludes)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		l.Println("The staged changes are formatted correctly.")
		return nil
	}

	prompt.ShowPatch(output.FromContext(ctx).Writer(), patch)

	if !cfg.Interactive {
		return fmt.Errorf("the staged changes are not formatted correctly\n"+
			"Run \"cfhook fmt --apply-to-staged\" to fix them, or set git config %s to true to be prompted", config.KeyInteractive)
	}

	merge := git.MergeInProgress(ctx, top)

	tty, err := prompt.OpenTTY(os.LookupEnv)
	if err != nil {
		return err
	}
	defer tty.Close()

	p := prompt.New(tty, l.Writer())
	answer, err := p.Ask(merge)
	if err != nil {
		return err
	}

	switch answer {
	case prompt.AnswerApply:
		if err := formatter.ApplyPatch(ctx, top, patch); err != nil {
			return err
		}
		if merge {
			// Make sure the notice is seen before git's merge output
			// scrolls past it.
			if err := p.Pause("Formatting applied on top of the merge result; review before pushing."); err != nil {
				return err
			}
		}
		l.Println("Formatting changes applied to the working tree and the commit.")
		return nil
	case prompt.AnswerForce:
		l.Println("Committing without formatting changes.")
		return nil
	default:
		return errors.New("commit cancelled")
	}
}

// resolveConfig assembles the runtime configuration for the repository
// rooted at root.
func resolveConfig(ctx context.Context, root string) (*config.Config, error) {
	file, err := config.LoadFile()
	if err != nil {
		return nil, err
	}
	return config.Resolve(ctx, config.DefaultSources(root, file))
}
