package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxRootDepth bounds the upward walk across submodule and worktree
// indirections so a corrupt layout cannot loop forever.
const maxRootDepth = 32

// WorktreeRoot resolves the top-level working-tree directory for the
// repository containing dir.
//
// A plain repository resolves in one step. When the top level carries a .git
// file instead of a directory the search continues: for a linked worktree the
// parent of the common git dir is the main checkout, for a submodule the
// superproject root is resolved one level above the submodule.
func WorktreeRoot(ctx context.Context, dir string) (string, error) {
	top, err := showToplevel(ctx, dir)
	if err != nil {
		return "", err
	}

	for depth := 0; depth < maxRootDepth; depth++ {
		info, err := os.Stat(filepath.Join(top, ".git"))
		if err != nil {
			return "", fmt.Errorf("no .git entry at resolved root %s: %w", top, err)
		}
		if info.IsDir() {
			return top, nil
		}

		// .git is a file: submodule or linked worktree indirection.
		common, err := commonDir(ctx, top)
		if err != nil {
			return "", err
		}

		if parent := filepath.Dir(common); hasGitEntry(parent) {
			// Linked worktree: the common dir lives inside the main checkout.
			top = parent
			continue
		}

		// Submodule: the common dir points into the superproject's
		// .git/modules store. Continue the search one level up.
		next, err := showToplevel(ctx, filepath.Dir(top))
		if err != nil {
			return "", err
		}
		if next == top {
			break
		}
		top = next
	}

	return "", fmt.Errorf("could not resolve repository root from %s", dir)
}

// Toplevel returns the top-level directory of the working tree containing
// dir, without following submodule or worktree indirection. This is where
// staged paths are anchored, as opposed to WorktreeRoot which resolves the
// configuration root.
func Toplevel(ctx context.Context, dir string) (string, error) {
	return showToplevel(ctx, dir)
}

// showToplevel runs git rev-parse --show-toplevel in dir.
func showToplevel(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository (or any of its parents): %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// commonDir resolves the common git directory for the repository at dir,
// normalized to an absolute path.
func commonDir(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("resolve git common dir: %w", err)
	}
	common := strings.TrimSpace(string(out))
	if !filepath.IsAbs(common) {
		common = filepath.Join(dir, common)
	}
	return filepath.Clean(common), nil
}

// hasGitEntry reports whether path contains a .git entry (file or directory).
func hasGitEntry(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}

// GitPath resolves a path inside the git directory (e.g. "hooks/pre-commit"
// or "MERGE_HEAD") for the repository at dir, normalized to an absolute path.
// Linked worktrees resolve shared paths into the common git dir.
func GitPath(ctx context.Context, dir, name string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--git-path", name)
	if err != nil {
		return "", fmt.Errorf("resolve git path %s: %w", name, err)
	}
	p := strings.TrimSpace(string(out))
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p), nil
}

// MergeInProgress reports whether the repository at dir has a merge in
// progress (MERGE_HEAD exists).
func MergeInProgress(ctx context.Context, dir string) bool {
	p, err := GitPath(ctx, dir, "MERGE_HEAD")
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}
