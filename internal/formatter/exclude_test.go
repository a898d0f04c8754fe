package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInclusionRegex_NoExcludes(t *testing.T) {
	t.Parallel()

	got := InclusionRegex(nil)
	if strings.Contains(got, "(?!") {
		t.Errorf("InclusionRegex(nil) = %q, want no lookaheads", got)
	}
	for _, ext := range []string{"cpp", "proto", "ts", `c\+\+`} {
		if !strings.Contains(got, ext) {
			t.Errorf("InclusionRegex(nil) = %q, missing extension %q", got, ext)
		}
	}
}

func TestInclusionRegex_ExcludesBecomeLookaheads(t *testing.T) {
	t.Parallel()

	got := InclusionRegex([]string{"third_party/", "generated/"})
	want := "(?!third_party/)(?!generated/)"
	if !strings.HasPrefix(got, want) {
		t.Errorf("InclusionRegex = %q, want prefix %q", got, want)
	}
}

func TestLoadExcludes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	content := `# vendored code
third_party/

generated/
`
	if err := os.WriteFile(filepath.Join(root, ExcludeFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadExcludes(root)
	if err != nil {
		t.Fatalf("LoadExcludes = %v, want nil", err)
	}
	want := []string{"third_party/", "generated/"}
	if len(got) != len(want) {
		t.Fatalf("LoadExcludes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LoadExcludes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadExcludes_MissingFile(t *testing.T) {
	t.Parallel()

	got, err := LoadExcludes(t.TempDir())
	if err != nil {
		t.Fatalf("LoadExcludes = %v, want nil", err)
	}
	if got != nil {
		t.Errorf("LoadExcludes = %v, want nil", got)
	}
}

func TestToolArgs(t *testing.T) {
	t.Parallel()

	opts := DiffOptions{Style: "file", Excludes: []string{"vendor/"}}
	args := opts.toolArgs()

	joined := strings.Join(args, " ")
	if !strings.HasPrefix(joined, "-p1 -style file -iregex ") {
		t.Errorf("toolArgs = %q, want -p1/-style/-iregex prefix", joined)
	}
	if strings.Contains(joined, " -i ") || strings.HasSuffix(joined, " -i") {
		t.Errorf("toolArgs = %q, -i present without InPlace", joined)
	}

	opts.InPlace = true
	args = opts.toolArgs()
	if args[len(args)-1] != "-i" {
		t.Errorf("toolArgs with InPlace = %v, want trailing -i", args)
	}
}
