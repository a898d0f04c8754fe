//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/clangtools/cfhook/internal/log"
	"github.com/clangtools/cfhook/internal/output"
)

const (
	unformatted = "int main(){int x  =1;return x;}\n"
	formatted   = "int main() { int x = 1; return x; }\n"
)

// fixPatch is the -p0 patch a real clang-format-diff would emit for the
// staged unformatted content.
const fixPatch = `--- a.c
+++ a.c
@@ -1 +1 @@
-int main(){int x  =1;return x;}
+int main() { int x = 1; return x; }
`

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return string(out)
}

// setupTestRepo creates a git repo with an initial commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	gitRun(t, dir, "init")
	gitRun(t, dir, "config", "user.email", "test@test.com")
	gitRun(t, dir, "config", "user.name", "Test User")
	gitRun(t, dir, "config", "commit.gpgsign", "false")

	src := filepath.Join(dir, "a.c")
	if err := os.WriteFile(src, []byte("int main(){return 0;}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, dir, "add", "a.c")
	gitRun(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// stageUnformatted stages an unformatted change to a.c.
func stageUnformatted(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "a.c"), []byte(unformatted), 0644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, dir, "add", "a.c")
}

// fakeDiffTool writes a shell script standing in for clang-format-diff and
// points CLANG_FORMAT_DIFF at it. The script drains stdin, emits the file
// named by FAKE_PATCH (if set), and exits with FAKE_EXIT (default 0).
func fakeDiffTool(t *testing.T) {
	t.Helper()
	script := filepath.Join(t.TempDir(), "clang-format-diff")
	body := `#!/bin/sh
cat > /dev/null
if [ -n "$FAKE_PATCH" ]; then cat "$FAKE_PATCH"; fi
exit "${FAKE_EXIT:-0}"
`
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLANG_FORMAT_DIFF", script)
}

// withFakePatch makes the fake tool emit the canonical fix patch.
func withFakePatch(t *testing.T) {
	t.Helper()
	patchFile := filepath.Join(t.TempDir(), "fix.patch")
	if err := os.WriteFile(patchFile, []byte(fixPatch), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAKE_PATCH", patchFile)
}

// answersTTY points PRE_COMMIT_HOOK_TTY at a file of prepared answers.
func answersTTY(t *testing.T, answers string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers")
	if err := os.WriteFile(path, []byte(answers), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRE_COMMIT_HOOK_TTY", path)
}

// testContext builds a context with logger and printer capturing output.
func testContext(t *testing.T) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&stderr, false, false))
	ctx = output.WithPrinter(ctx, &stdout)
	return ctx, &stdout, &stderr
}
