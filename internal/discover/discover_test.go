package discover

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file with the given mode, creating parent directories.
func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# placeholder\n"), mode); err != nil {
		t.Fatal(err)
	}
}

func noLookPath(string) (string, error) {
	return "", errors.New("not found")
}

func TestClangFormatDiff_OverrideWins(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	override := filepath.Join(dir, "my-clang-format-diff")
	writeFile(t, override, 0755)

	fixed := filepath.Join(dir, "fixed", "clang-format-diff.py")
	writeFile(t, fixed, 0755)

	f := Finder{FixedPaths: []string{fixed}, lookPath: noLookPath}
	tool, err := f.ClangFormatDiff(override)
	if err != nil {
		t.Fatalf("ClangFormatDiff = %v, want nil", err)
	}
	if tool.Path != override {
		t.Errorf("ClangFormatDiff path = %q, want override %q", tool.Path, override)
	}
}

func TestClangFormatDiff_NewestVersionWins(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	old := filepath.Join(dir, "clang-format-9", "clang-format-diff.py")
	newer := filepath.Join(dir, "clang-format-15", "clang-format-diff.py")
	writeFile(t, old, 0755)
	writeFile(t, newer, 0755)

	f := Finder{
		VersionedGlobs: []string{filepath.Join(dir, "clang-format-*", "clang-format-diff.py")},
		lookPath:       noLookPath,
	}
	tool, err := f.ClangFormatDiff("")
	if err != nil {
		t.Fatalf("ClangFormatDiff = %v, want nil", err)
	}
	if tool.Path != newer {
		t.Errorf("ClangFormatDiff path = %q, want newest %q", tool.Path, newer)
	}
}

func TestClangFormatDiff_FixedPathFallback(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	fixed := filepath.Join(dir, "share", "clang", "clang-format-diff.py")
	writeFile(t, fixed, 0755)

	f := Finder{
		VersionedGlobs: []string{filepath.Join(dir, "nothing-*", "clang-format-diff.py")},
		FixedPaths:     []string{filepath.Join(dir, "missing.py"), fixed},
		lookPath:       noLookPath,
	}
	tool, err := f.ClangFormatDiff("")
	if err != nil {
		t.Fatalf("ClangFormatDiff = %v, want nil", err)
	}
	if tool.Path != fixed {
		t.Errorf("ClangFormatDiff path = %q, want %q", tool.Path, fixed)
	}
}

func TestClangFormatDiff_NotFound(t *testing.T) {
	t.Parallel()
	f := Finder{lookPath: noLookPath}

	_, err := f.ClangFormatDiff("")
	if err == nil {
		t.Fatal("ClangFormatDiff with no candidates = nil, want error")
	}
	// The error must name the override variable so the user can act on it.
	if got := err.Error(); !strings.Contains(got, "CLANG_FORMAT_DIFF") {
		t.Errorf("error %q does not mention CLANG_FORMAT_DIFF", got)
	}
}

func TestClangFormatDiff_NonExecutableGetsInterpreter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	script := filepath.Join(dir, "clang-format-diff.py")
	writeFile(t, script, 0644)

	f := Finder{FixedPaths: []string{script}, lookPath: noLookPath}
	tool, err := f.ClangFormatDiff("")
	if err != nil {
		t.Fatalf("ClangFormatDiff = %v, want nil", err)
	}
	if tool.Interpreter != "python3" {
		t.Errorf("Interpreter = %q, want python3", tool.Interpreter)
	}
	want := []string{"python3", script, "-p1"}
	got := tool.Argv("-p1")
	if len(got) != len(want) {
		t.Fatalf("Argv = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClangFormat_MissingOverride(t *testing.T) {
	t.Parallel()
	_, err := ClangFormat(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("ClangFormat with dangling override = nil, want error")
	}
}

func TestCompareNatural(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"clang-format-9", "clang-format-15", -1},
		{"clang-format-15", "clang-format-9", 1},
		{"clang-format-14", "clang-format-14", 0},
		{"1.2.10", "1.2.9", 1},
		{"aaa", "aab", -1},
		{"1.2", "1.2.1", -1},
	}
	for _, tt := range tests {
		if got := compareNatural(tt.a, tt.b); sign(got) != tt.want {
			t.Errorf("compareNatural(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
