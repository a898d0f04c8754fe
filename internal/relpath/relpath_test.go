package relpath

import "testing"

func TestBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{
			name: "sibling directories",
			from: "/repo/.git/hooks",
			to:   "/repo/bin/cfhook",
			want: "../../bin/cfhook",
		},
		{
			name: "target below source",
			from: "/repo",
			to:   "/repo/bin/cfhook",
			want: "bin/cfhook",
		},
		{
			name: "source below target",
			from: "/repo/a/b/c",
			to:   "/repo",
			want: "../../..",
		},
		{
			name: "equal paths",
			from: "/repo/hooks",
			to:   "/repo/hooks",
			want: ".",
		},
		{
			name: "no common prefix beyond root",
			from: "/home/user/repo",
			to:   "/usr/local/bin/cfhook",
			want: "../../../usr/local/bin/cfhook",
		},
		{
			name: "root to path",
			from: "/",
			to:   "/usr/bin",
			want: "usr/bin",
		},
		{
			name: "path to root",
			from: "/usr/bin",
			to:   "/",
			want: "../..",
		},
		{
			name: "unclean inputs",
			from: "/repo//.git/./hooks",
			to:   "/repo/bin/../libexec/cfhook",
			want: "../../libexec/cfhook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Between(tt.from, tt.to)
			if err != nil {
				t.Fatalf("Between(%q, %q) = %v, want nil error", tt.from, tt.to, err)
			}
			if got != tt.want {
				t.Errorf("Between(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBetween_RelativeInput(t *testing.T) {
	t.Parallel()

	if _, err := Between("relative/path", "/abs"); err == nil {
		t.Error("Between with relative from = nil, want error")
	}
	if _, err := Between("/abs", "relative/path"); err == nil {
		t.Error("Between with relative to = nil, want error")
	}
}
