// Package hook manages the pre-commit hook symlink lifecycle: detecting
// whether a hook is absent, ours, or somebody else's, and installing or
// removing our symlink without ever clobbering a foreign hook.
package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clangtools/cfhook/internal/relpath"
)

// Status describes what currently occupies the pre-commit hook path.
type Status int

const (
	// StatusAbsent means no hook file exists.
	StatusAbsent Status = iota
	// StatusInstalled means the hook is a symlink resolving to our binary.
	StatusInstalled
	// StatusForeign means a hook exists but it is not ours.
	StatusForeign
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusInstalled:
		return "installed"
	case StatusForeign:
		return "foreign"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

var (
	// ErrAlreadyInstalled indicates the hook is already our symlink.
	ErrAlreadyInstalled = errors.New("pre-commit hook is already installed")

	// ErrForeignHook indicates a hook exists that we did not install.
	ErrForeignHook = errors.New("a pre-commit hook not installed by cfhook is present; remove it first")

	// ErrNotInstalled indicates there is no hook to remove.
	ErrNotInstalled = errors.New("no pre-commit hook is installed")
)

// SelfPath returns the canonical path of the running binary, with symlinks
// resolved so comparisons against the hook target are stable.
func SelfPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate own binary: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve own binary path: %w", err)
	}
	return resolved, nil
}

// Stat reports what occupies hookPath, compared against the canonical path
// of our own binary. Calling it twice without filesystem changes yields the
// same result.
func Stat(hookPath, selfPath string) (Status, error) {
	if _, err := os.Lstat(hookPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StatusAbsent, nil
		}
		return StatusAbsent, fmt.Errorf("stat hook %s: %w", hookPath, err)
	}

	// A dangling symlink or an unreadable target counts as foreign: it is
	// not resolvable to us, and we must not remove it.
	resolved, err := filepath.EvalSymlinks(hookPath)
	if err != nil {
		return StatusForeign, nil
	}

	selfResolved, err := filepath.EvalSymlinks(selfPath)
	if err != nil {
		return StatusForeign, fmt.Errorf("resolve own binary path: %w", err)
	}

	if resolved == selfResolved {
		return StatusInstalled, nil
	}
	return StatusForeign, nil
}

// Install creates hookPath as a relative symlink to selfPath. It fails when
// any hook already exists, distinguishing our own from a foreign one.
func Install(hookPath, selfPath string) error {
	status, err := Stat(hookPath, selfPath)
	if err != nil {
		return err
	}
	switch status {
	case StatusInstalled:
		return ErrAlreadyInstalled
	case StatusForeign:
		return fmt.Errorf("%w: %s", ErrForeignHook, hookPath)
	}

	hooksDir := filepath.Dir(hookPath)
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	target, err := relpath.Between(hooksDir, selfPath)
	if err != nil {
		return err
	}
	if err := os.Symlink(target, hookPath); err != nil {
		return fmt.Errorf("create hook symlink: %w", err)
	}
	return nil
}

// Uninstall removes hookPath only when it is our own symlink. A foreign hook
// is never removed; its presence and an absent hook are distinct errors.
func Uninstall(hookPath, selfPath string) error {
	status, err := Stat(hookPath, selfPath)
	if err != nil {
		return err
	}
	switch status {
	case StatusAbsent:
		return ErrNotInstalled
	case StatusForeign:
		return fmt.Errorf("%w: %s", ErrForeignHook, hookPath)
	}

	if err := os.Remove(hookPath); err != nil {
		return fmt.Errorf("remove hook symlink: %w", err)
	}
	return nil
}
