package git

import (
	"context"
	"fmt"
	"os/exec"
)

// DiffArgs builds the git arguments for a formatter-oriented diff: zero
// context lines, no color, explicit a/ b/ prefixes, and paths relative to
// the working directory so the resulting patch applies with -p0.
func DiffArgs(staged bool, extra []string) []string {
	args := []string{
		"diff", "-U0", "--no-color",
		"--src-prefix=a/", "--dst-prefix=b/",
		"--relative",
	}
	if staged {
		args = append(args, "--cached")
	}
	return append(args, extra...)
}

// DiffCommand returns an exec.Cmd producing the diff described by DiffArgs,
// running in dir. The caller wires up stdout and runs it; this stays a bare
// exec.Cmd so it can feed a pipeline.
func DiffCommand(ctx context.Context, dir string, staged bool, extra []string) *exec.Cmd {
	c := exec.CommandContext(ctx, "git", DiffArgs(staged, extra)...)
	c.Dir = dir
	return c
}

// ApplyToIndex applies a -p0 patch file to the git index of the repository
// at dir. The working tree is not touched.
func ApplyToIndex(ctx context.Context, dir, patchPath string) error {
	if err := runGit(ctx, dir, "apply", "-p0", "--cached", patchPath); err != nil {
		return fmt.Errorf("apply patch to index: %w", err)
	}
	return nil
}
