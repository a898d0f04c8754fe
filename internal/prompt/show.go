package prompt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Diff display styles, matching conventional diff coloring.
var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// SupportsColor reports whether w is a terminal that can render colors.
func SupportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	profile := colorprofile.Detect(w, os.Environ())
	return profile != colorprofile.NoTTY && profile != colorprofile.Ascii
}

// ShowPatch writes a unified diff to w, line-colorized when the writer
// supports it and prefixed with a plain-text annotation otherwise.
func ShowPatch(w io.Writer, patch []byte) {
	if SupportsColor(w) {
		showColorized(w, patch)
		return
	}

	fmt.Fprintln(w, "The staged changes are not formatted correctly; the suggested fix is:")
	fmt.Fprintln(w)
	w.Write(patch)
}

func showColorized(w io.Writer, patch []byte) {
	for _, line := range strings.SplitAfter(string(patch), "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			fmt.Fprintln(w, headerStyle.Render(text))
		case strings.HasPrefix(text, "@@"):
			fmt.Fprintln(w, hunkStyle.Render(text))
		case strings.HasPrefix(text, "+"):
			fmt.Fprintln(w, addedStyle.Render(text))
		case strings.HasPrefix(text, "-"):
			fmt.Fprintln(w, removedStyle.Render(text))
		default:
			fmt.Fprintln(w, text)
		}
	}
}
