package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/clangtools/cfhook/internal/cmd"
)

// ConfigValue reads a git config key for the repository at dir.
// The second return value is false when the key is unset.
func ConfigValue(ctx context.Context, dir, key string) (string, bool, error) {
	out, err := configOutput(ctx, dir, "--get", key)
	if err != nil {
		if isUnset(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read git config %s: %w", key, err)
	}
	return strings.TrimRight(string(out), "\n"), true, nil
}

// ConfigBool reads a git config key as a bool, letting git canonicalize the
// value ("yes", "on", "1", ...). The second return value is false when the
// key is unset. An invalid boolean is git's own error and is propagated.
func ConfigBool(ctx context.Context, dir, key string) (bool, bool, error) {
	out, err := configOutput(ctx, dir, "--bool", "--get", key)
	if err != nil {
		if isUnset(err) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("read git config %s: %w", key, err)
	}
	return strings.TrimSpace(string(out)) == "true", true, nil
}

// configOutput runs git config without the stderr-as-error treatment so the
// "unset" exit status stays distinguishable.
func configOutput(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := exec.CommandContext(ctx, "git", gitArgs(dir, append([]string{"config"}, args...))...)
	return c.Output()
}

// isUnset reports whether a git config error means "key not set" (exit 1)
// rather than a real failure (invalid value, bad file: exit >= 2).
func isUnset(err error) bool {
	return cmd.ExitCode(err) == 1
}
