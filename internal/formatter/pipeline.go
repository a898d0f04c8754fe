package formatter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/clangtools/cfhook/internal/cmd"
	"github.com/clangtools/cfhook/internal/discover"
	"github.com/clangtools/cfhook/internal/git"
	"github.com/clangtools/cfhook/internal/log"
)

// DiffOptions describes one diff-mode invocation.
type DiffOptions struct {
	// Staged scopes the diff to the index (git diff --cached).
	Staged bool
	// InPlace asks clang-format-diff to rewrite the files instead of
	// printing a patch.
	InPlace bool
	// Style is the clang-format style source.
	Style string
	// Excludes are the path regexes from the exclusion file.
	Excludes []string
	// Extra are additional git diff arguments (revisions, -- paths).
	Extra []string
}

// toolArgs builds the clang-format-diff argument list. -p1 matches the
// a/ b/ prefixes git is asked to emit.
func (o DiffOptions) toolArgs() []string {
	args := []string{
		"-p1",
		"-style", o.Style,
		"-iregex", InclusionRegex(o.Excludes),
	}
	if o.InPlace {
		args = append(args, "-i")
	}
	return args
}

// ErrDifferences reports that the diff pipeline found formatting
// differences. Commands mirroring the diff convention exit with status 1
// on it, without printing it as a failure.
var ErrDifferences = errors.New("formatting differences found")

// Diff runs git diff piped into clang-format-diff, writing the resulting
// patch (if any) to w. The returned bool follows the diff convention: true
// when the formatter exited with status 1, "differences found". Statuses
// above 1 are returned as a ToolError so callers can propagate them
// verbatim.
func Diff(ctx context.Context, dir string, tool discover.Tool, opts DiffOptions, w io.Writer) (bool, error) {
	l := log.FromContext(ctx)

	diffCmd := git.DiffCommand(ctx, dir, opts.Staged, opts.Extra)
	var diffStderr bytes.Buffer
	diffCmd.Stderr = &diffStderr

	argv := tool.Argv(opts.toolArgs()...)
	l.Command(diffCmd.Args[0], diffCmd.Args[1:]...)
	l.Command(argv[0], argv[1:]...)

	fmtCmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	fmtCmd.Dir = dir
	fmtCmd.Stdout = w
	var fmtStderr bytes.Buffer
	fmtCmd.Stderr = &fmtStderr

	pipe, err := diffCmd.StdoutPipe()
	if err != nil {
		return false, fmt.Errorf("connect diff pipeline: %w", err)
	}
	fmtCmd.Stdin = pipe

	if err := diffCmd.Start(); err != nil {
		return false, fmt.Errorf("start git diff: %w", err)
	}
	if err := fmtCmd.Start(); err != nil {
		diffCmd.Process.Kill()
		diffCmd.Wait()
		return false, fmt.Errorf("start clang-format-diff: %w", err)
	}
	// Drop our read end so the formatter holds the only one. If it exits
	// without draining stdin, git gets EPIPE instead of blocking forever
	// on a full pipe.
	pipe.Close()

	fmtErr := fmtCmd.Wait()
	diffErr := diffCmd.Wait()

	// The formatter's status is checked first: an early formatter exit
	// breaks the pipe under git, and that knock-on failure must not mask
	// the cause.
	found := false
	if fmtErr != nil {
		code := cmd.ExitCode(fmtErr)
		switch {
		case code == 1:
			// "differences found", matching the diff convention.
			found = true
		case code > 1:
			if msg := strings.TrimSpace(fmtStderr.String()); msg != "" {
				return false, fmt.Errorf("%s: %w", msg, &ToolError{Tool: "clang-format-diff", Code: code})
			}
			return false, &ToolError{Tool: "clang-format-diff", Code: code}
		default:
			return false, fmt.Errorf("clang-format-diff: %w", fmtErr)
		}
	}
	if diffErr != nil {
		if msg := strings.TrimSpace(diffStderr.String()); msg != "" {
			return false, fmt.Errorf("git diff: %s", msg)
		}
		return false, fmt.Errorf("git diff: %w", diffErr)
	}
	return found, nil
}

// StagedPatch computes the formatting patch for the staged changes of the
// repository at dir. An empty result means the staged changes are already
// formatted.
func StagedPatch(ctx context.Context, dir string, tool discover.Tool, style string, excludes []string) ([]byte, error) {
	var buf bytes.Buffer
	opts := DiffOptions{
		Staged:   true,
		Style:    style,
		Excludes: excludes,
	}
	if _, err := Diff(ctx, dir, tool, opts, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ApplyPatch applies a formatting patch to the working tree and then to the
// git index, the same two-stage contract the hook uses for the "apply"
// answer. The patch is staged through a private temp file removed on return.
func ApplyPatch(ctx context.Context, dir string, patch []byte) error {
	tmp, err := os.CreateTemp("", "cfhook-*.patch")
	if err != nil {
		return fmt.Errorf("create patch file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(patch); err != nil {
		tmp.Close()
		return fmt.Errorf("write patch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write patch file: %w", err)
	}

	// Working tree first: -p0 matches the prefix-stripped paths the
	// formatter emits.
	if err := cmd.RunContext(ctx, dir, "patch", "-p0", "-s", "-i", tmp.Name()); err != nil {
		return fmt.Errorf("%w: %v (do you have unsaved local edits?)", ErrWorktreeApply, err)
	}

	if err := git.ApplyToIndex(ctx, dir, tmp.Name()); err != nil {
		return fmt.Errorf("%w: %v (do unstaged changes overlap the staged ones?)", ErrIndexApply, err)
	}
	return nil
}

// ApplyToStaged computes the staged formatting patch and, when non-empty,
// applies it to the working tree and index. Returns the patch that was
// applied; a nil patch means the staged changes were already formatted.
func ApplyToStaged(ctx context.Context, dir string, tool discover.Tool, style string, excludes []string) ([]byte, error) {
	patch, err := StagedPatch(ctx, dir, tool, style, excludes)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, nil
	}
	if err := ApplyPatch(ctx, dir, patch); err != nil {
		return nil, err
	}
	return patch, nil
}
