// Package formatter constructs and runs the clang-format invocations:
// whole-file formatting, the git diff | clang-format-diff pipeline, and the
// two-stage patch application against the working tree and the index.
package formatter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/clangtools/cfhook/internal/cmd"
	"github.com/clangtools/cfhook/internal/log"
)

// Application failure sites. The two are distinct because recovery differs:
// a working-tree failure usually means stale local edits, an index failure
// overlapping unstaged changes.
var (
	ErrWorktreeApply = errors.New("could not apply formatting patch to the working tree")
	ErrIndexApply    = errors.New("could not apply formatting patch to the git index")
)

// ToolError carries the exit status of a failed external tool so callers can
// propagate it verbatim.
type ToolError struct {
	Tool string
	Code int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s failed with exit status %d", e.Tool, e.Code)
}

// FormatFiles runs clang-format directly over whole files. With inPlace the
// files are rewritten; otherwise the formatted output is written to w. With
// inPlace and several files there is no per-file summary of what changed.
func FormatFiles(ctx context.Context, dir, clangFormat, style string, inPlace bool, files []string, w io.Writer) error {
	if len(files) == 0 {
		return errors.New("whole-file mode requires at least one file")
	}

	args := []string{"-style=" + style}
	if inPlace {
		args = append(args, "-i")
	}
	args = append(args, files...)

	log.FromContext(ctx).Command(clangFormat, args...)
	c := exec.CommandContext(ctx, clangFormat, args...)
	c.Dir = dir
	if !inPlace {
		c.Stdout = w
	}
	if err := cmd.Run(c); err != nil {
		return fmt.Errorf("clang-format: %w", err)
	}
	return nil
}
