package git

import (
	"strings"
	"testing"
)

func TestDiffArgs(t *testing.T) {
	t.Parallel()

	got := strings.Join(DiffArgs(false, nil), " ")
	want := "diff -U0 --no-color --src-prefix=a/ --dst-prefix=b/ --relative"
	if got != want {
		t.Errorf("DiffArgs = %q, want %q", got, want)
	}

	got = strings.Join(DiffArgs(true, []string{"--", "src/"}), " ")
	want = "diff -U0 --no-color --src-prefix=a/ --dst-prefix=b/ --relative --cached -- src/"
	if got != want {
		t.Errorf("DiffArgs staged with extras = %q, want %q", got, want)
	}
}
