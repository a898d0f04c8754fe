package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/clangtools/cfhook/internal/discover"
	"github.com/clangtools/cfhook/internal/formatter"
	"github.com/clangtools/cfhook/internal/git"
	"github.com/clangtools/cfhook/internal/log"
	"github.com/clangtools/cfhook/internal/output"
)

// fmtOptions collects the fmt command's flags and positional arguments.
type fmtOptions struct {
	wholeFile     bool
	staged        bool
	inPlace       bool
	applyToStaged bool
	style         string
	ignoreRegexes []string
	args          []string
}

func (o fmtOptions) validate() error {
	if o.wholeFile && len(o.args) == 0 {
		return errors.New("--whole-file requires at least one file argument")
	}
	return nil
}

// runFmt executes one formatter invocation. Diff-scoped modes run at the
// current working directory so user-supplied paths resolve naturally; the
// exclusion file is read from the resolved repository root.
func runFmt(ctx context.Context, opts fmtOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if !git.IsInsideRepo(ctx, wd) {
		return fmt.Errorf("not a git repository (or any of its parents): %s", wd)
	}
	root, err := git.WorktreeRoot(ctx, wd)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(ctx, root)
	if err != nil {
		return err
	}
	style := cfg.Style
	if opts.style != "" {
		style = opts.style
	}

	if opts.wholeFile {
		clangFormat, err := discover.ClangFormat(cfg.ClangFormat)
		if err != nil {
			return err
		}
		return formatter.FormatFiles(ctx, "", clangFormat, style, opts.inPlace, opts.args,
			output.FromContext(ctx).Writer())
	}

	tool, err := discover.DefaultFinder().ClangFormatDiff(cfg.ClangFormatDiff)
	if err != nil {
		return err
	}

	excludes, err := formatter.LoadExcludes(root)
	if err != nil {
		return err
	}
	excludes = append(excludes, opts.ignoreRegexes...)

	if opts.applyToStaged {
		patch, err := formatter.ApplyToStaged(ctx, "", tool, style, excludes)
		if err != nil {
			return err
		}
		l := log.FromContext(ctx)
		if patch == nil {
			l.Println("The staged changes are formatted correctly; nothing to do.")
		} else {
			l.Println("Formatting changes applied to the working tree and the index.")
		}
		return nil
	}

	diffOpts := formatter.DiffOptions{
		Staged:   opts.staged,
		InPlace:  opts.inPlace,
		Style:    style,
		Excludes: excludes,
		Extra:    opts.args,
	}
	found, err := formatter.Diff(ctx, "", tool, diffOpts, output.FromContext(ctx).Writer())
	if err != nil {
		return err
	}
	if found {
		// Mirror the tool's own exit convention.
		return formatter.ErrDifferences
	}
	return nil
}
