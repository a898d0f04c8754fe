// Package relpath computes relative paths between absolute paths as a pure
// string operation. Unlike filepath.Rel it never touches the filesystem, so
// neither path needs to exist; this matters when computing symlink targets
// for files that are about to be created.
package relpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Between returns the relative path that leads from the directory "from" to
// the path "to". Both arguments must be absolute. When the paths are equal
// the result is ".".
func Between(from, to string) (string, error) {
	if !filepath.IsAbs(from) {
		return "", fmt.Errorf("relpath: from %q is not absolute", from)
	}
	if !filepath.IsAbs(to) {
		return "", fmt.Errorf("relpath: to %q is not absolute", to)
	}

	fromSegs := split(from)
	toSegs := split(to)

	// Index of the first diverging segment.
	common := 0
	for common < len(fromSegs) && common < len(toSegs) && fromSegs[common] == toSegs[common] {
		common++
	}

	var segs []string
	for range fromSegs[common:] {
		segs = append(segs, "..")
	}
	segs = append(segs, toSegs[common:]...)

	if len(segs) == 0 {
		return ".", nil
	}
	return filepath.Join(segs...), nil
}

// split breaks a cleaned absolute path into its segments.
// The root itself contributes no segment.
func split(path string) []string {
	path = filepath.Clean(path)
	path = strings.TrimPrefix(path, string(filepath.Separator))
	if path == "" {
		return nil
	}
	return strings.Split(path, string(filepath.Separator))
}
