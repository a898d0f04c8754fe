// Package discover locates the clang-format binaries across the package
// layouts of different operating systems. Lookup is an ordered chain of
// strategies evaluated lazily; the first existing candidate wins.
package discover

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// Tool is a resolved external tool invocation. When the found file is not
// executable by itself (e.g. a clang-format-diff.py shipped without the
// executable bit) the invocation is prefixed with an interpreter.
type Tool struct {
	Path        string
	Interpreter string
}

// Argv returns the command line for invoking the tool with args.
func (t Tool) Argv(args ...string) []string {
	argv := make([]string, 0, len(args)+2)
	if t.Interpreter != "" {
		argv = append(argv, t.Interpreter)
	}
	argv = append(argv, t.Path)
	return append(argv, args...)
}

// diffInterpreter runs clang-format-diff scripts that lack the executable bit.
const diffInterpreter = "python3"

// Finder holds the candidate locations for clang-format-diff. The zero value
// is not useful; use DefaultFinder. Fields are exposed so tests can point the
// search at throwaway directories.
type Finder struct {
	// VersionedGlobs are glob patterns matching per-version install
	// locations. Matches are version-sorted descending so the newest
	// installed version wins.
	VersionedGlobs []string

	// PathNames are binary names to look up on PATH.
	PathNames []string

	// FixedPaths are distribution-specific install locations checked last.
	FixedPaths []string

	lookPath func(string) (string, error)
}

// DefaultFinder returns the Finder covering the known package layouts.
func DefaultFinder() Finder {
	return Finder{
		VersionedGlobs: []string{
			// Debian/Ubuntu versioned clang packages.
			"/usr/share/clang/clang-format-*/clang-format-diff.py",
			// Homebrew cellar (Apple Silicon and Intel prefixes).
			"/opt/homebrew/Cellar/clang-format/*/share/clang/clang-format-diff.py",
			"/usr/local/Cellar/clang-format/*/share/clang/clang-format-diff.py",
		},
		PathNames: []string{
			"clang-format-diff",
			"clang-format-diff.py",
		},
		FixedPaths: []string{
			// Fedora and derivatives.
			"/usr/share/clang/clang-format-diff.py",
			// Homebrew opt prefix.
			"/opt/homebrew/share/clang/clang-format-diff.py",
			// MacPorts.
			"/opt/local/share/clang/clang-format-diff.py",
		},
		lookPath: exec.LookPath,
	}
}

// ClangFormat locates the clang-format binary. The override (from the
// CLANG_FORMAT environment variable) wins when set; otherwise PATH is
// searched.
func ClangFormat(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("CLANG_FORMAT points to %s which does not exist: %w", override, err)
		}
		return override, nil
	}
	path, err := exec.LookPath("clang-format")
	if err != nil {
		return "", fmt.Errorf("clang-format not found: install it or set the CLANG_FORMAT environment variable to its location")
	}
	return path, nil
}

// ClangFormatDiff locates the diff-aware companion tool. The override (from
// the CLANG_FORMAT_DIFF environment variable) wins when set; then versioned
// package locations (newest first), then PATH, then fixed distro paths.
func (f Finder) ClangFormatDiff(override string) (Tool, error) {
	for _, strategy := range f.strategies(override) {
		path, ok := strategy()
		if !ok {
			continue
		}
		return toolFor(path), nil
	}
	return Tool{}, fmt.Errorf("clang-format-diff not found in any known location: install clang-format or set the CLANG_FORMAT_DIFF environment variable to its location")
}

// strategies builds the lazy lookup chain. Each entry reports a candidate
// path and whether it exists; evaluation short-circuits on the first hit.
func (f Finder) strategies(override string) []func() (string, bool) {
	lookPath := f.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	chain := []func() (string, bool){
		func() (string, bool) { return override, override != "" && fileExists(override) },
	}
	for _, pattern := range f.VersionedGlobs {
		chain = append(chain, func() (string, bool) { return newestGlobMatch(pattern) })
	}
	for _, name := range f.PathNames {
		chain = append(chain, func() (string, bool) {
			path, err := lookPath(name)
			return path, err == nil
		})
	}
	for _, path := range f.FixedPaths {
		chain = append(chain, func() (string, bool) { return path, fileExists(path) })
	}
	return chain
}

// toolFor wraps a found path, prefixing an interpreter when the file is not
// independently executable.
func toolFor(path string) Tool {
	info, err := os.Stat(path)
	if err == nil && info.Mode()&0111 != 0 {
		return Tool{Path: path}
	}
	return Tool{Path: path, Interpreter: diffInterpreter}
}

// newestGlobMatch expands a glob and returns the version-wise newest match.
func newestGlobMatch(pattern string) (string, bool) {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sortVersionsDesc(matches)
	for _, m := range matches {
		if fileExists(m) {
			return m, true
		}
	}
	return "", false
}

// sortVersionsDesc orders paths so that embedded version numbers compare
// numerically, newest first ("clang-format-15" before "clang-format-9").
func sortVersionsDesc(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return compareNatural(paths[i], paths[j]) > 0
	})
}

// compareNatural compares two strings segment-wise, treating digit runs as
// numbers.
func compareNatural(a, b string) int {
	for len(a) > 0 && len(b) > 0 {
		an, aIsNum := leadingNumber(a)
		bn, bIsNum := leadingNumber(b)

		switch {
		case aIsNum && bIsNum:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			a = trimLeadingDigits(a)
			b = trimLeadingDigits(b)
		case a[0] != b[0]:
			if a[0] < b[0] {
				return -1
			}
			return 1
		default:
			a = a[1:]
			b = b[1:]
		}
	}
	switch {
	case len(a) == len(b):
		return 0
	case len(a) < len(b):
		return -1
	default:
		return 1
	}
}

func leadingNumber(s string) (int, bool) {
	n := 0
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, i > 0
}

func trimLeadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[i:]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
