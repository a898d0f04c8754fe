package formatter

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExcludeFile is the optional per-repo exclusion list, one path regex per
// line, read from the repository root.
const ExcludeFile = ".clang-format-hook-exclude"

// extensions are the source-file extensions clang-format-diff is asked to
// consider, matching its own default set.
var extensions = []string{
	"c", "h", "C", "H", "cpp", "hpp", "cc", "hh", `c\+\+`, `h\+\+`,
	"cxx", "hxx", "cu", "proto", "protodevel", "java", "js", "ts",
	"m", "mm", "cs",
}

// LoadExcludes reads the exclusion patterns for the repository at root.
// Blank lines and lines starting with # are skipped. A missing file yields
// no patterns.
func LoadExcludes(root string) ([]string, error) {
	f, err := os.Open(filepath.Join(root, ExcludeFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", ExcludeFile, err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", ExcludeFile, err)
	}
	return patterns, nil
}

// InclusionRegex builds the -iregex argument for clang-format-diff: one
// negative lookahead per exclusion pattern followed by the recognized
// source-file extensions.
//
// The lookaheads are deliberately unanchored relative to each other;
// patterns containing regex metacharacters behave however the underlying
// engine interprets them.
func InclusionRegex(excludes []string) string {
	var b strings.Builder
	for _, pattern := range excludes {
		fmt.Fprintf(&b, "(?!%s)", pattern)
	}
	fmt.Fprintf(&b, `.*\.(%s)`, strings.Join(extensions, "|"))
	return b.String()
}
