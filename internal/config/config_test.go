package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// fakeSources returns Sources with everything unset. Tests override
// individual layers.
func fakeSources() Sources {
	return Sources{
		LookupEnv: func(string) (string, bool) { return "", false },
		GitValue:  func(context.Context, string) (string, bool, error) { return "", false, nil },
		GitBool:   func(context.Context, string) (bool, bool, error) { return false, false, nil },
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(context.Background(), fakeSources())
	if err != nil {
		t.Fatalf("Resolve = %v, want nil", err)
	}
	if cfg.Style != "file" {
		t.Errorf("Style = %q, want %q", cfg.Style, "file")
	}
	if !cfg.Interactive {
		t.Error("Interactive = false, want true by default")
	}
}

func TestResolve_EnvStyleWinsOverGit(t *testing.T) {
	t.Parallel()

	src := fakeSources()
	src.LookupEnv = func(key string) (string, bool) {
		if key == EnvStyle {
			return "Google", true
		}
		return "", false
	}
	src.GitValue = func(_ context.Context, key string) (string, bool, error) {
		if key == KeyStyle {
			return "LLVM", true, nil
		}
		return "", false, nil
	}

	cfg, err := Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve = %v, want nil", err)
	}
	if cfg.Style != "Google" {
		t.Errorf("Style = %q, want env value %q", cfg.Style, "Google")
	}
}

func TestResolve_GitStyleWinsOverFile(t *testing.T) {
	t.Parallel()

	src := fakeSources()
	src.GitValue = func(_ context.Context, key string) (string, bool, error) {
		if key == KeyStyle {
			return "LLVM", true, nil
		}
		return "", false, nil
	}
	src.File.Style = "WebKit"

	cfg, err := Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve = %v, want nil", err)
	}
	if cfg.Style != "LLVM" {
		t.Errorf("Style = %q, want git value %q", cfg.Style, "LLVM")
	}
}

func TestResolve_EmptyStyleIsError(t *testing.T) {
	t.Parallel()

	src := fakeSources()
	src.LookupEnv = func(key string) (string, bool) {
		if key == EnvStyle {
			return "", true
		}
		return "", false
	}
	if _, err := Resolve(context.Background(), src); err == nil {
		t.Error("Resolve with empty env style = nil, want error")
	}

	src = fakeSources()
	src.GitValue = func(_ context.Context, key string) (string, bool, error) {
		if key == KeyStyle {
			return "", true, nil
		}
		return "", false, nil
	}
	if _, err := Resolve(context.Background(), src); err == nil {
		t.Error("Resolve with empty git style = nil, want error")
	}
}

func TestResolve_InteractiveTriState(t *testing.T) {
	t.Parallel()

	// Git config explicitly false wins over file true.
	src := fakeSources()
	src.GitBool = func(_ context.Context, key string) (bool, bool, error) {
		if key == KeyInteractive {
			return false, true, nil
		}
		return false, false, nil
	}
	yes := true
	src.File.Interactive = &yes

	cfg, err := Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve = %v, want nil", err)
	}
	if cfg.Interactive {
		t.Error("Interactive = true, want git config false to win")
	}

	// Unset git config falls back to file.
	src = fakeSources()
	no := false
	src.File.Interactive = &no
	cfg, err = Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve = %v, want nil", err)
	}
	if cfg.Interactive {
		t.Error("Interactive = true, want file value false")
	}
}

func TestResolve_ToolOverrides(t *testing.T) {
	t.Parallel()

	src := fakeSources()
	src.LookupEnv = func(key string) (string, bool) {
		if key == EnvClangFormat {
			return "/opt/bin/clang-format", true
		}
		return "", false
	}
	src.File.ClangFormat = "/file/clang-format"
	src.File.ClangFormatDiff = "/file/clang-format-diff"

	cfg, err := Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve = %v, want nil", err)
	}
	if cfg.ClangFormat != "/opt/bin/clang-format" {
		t.Errorf("ClangFormat = %q, want env override", cfg.ClangFormat)
	}
	if cfg.ClangFormatDiff != "/file/clang-format-diff" {
		t.Errorf("ClangFormatDiff = %q, want file value", cfg.ClangFormatDiff)
	}
}

func TestLoadFileFrom(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `style = "Chromium"
interactive = false
clang-format = "/usr/local/bin/clang-format"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := loadFileFrom(path)
	if err != nil {
		t.Fatalf("loadFileFrom = %v, want nil", err)
	}
	if f.Style != "Chromium" {
		t.Errorf("Style = %q, want Chromium", f.Style)
	}
	if f.Interactive == nil || *f.Interactive {
		t.Errorf("Interactive = %v, want false", f.Interactive)
	}
	if f.ClangFormat != "/usr/local/bin/clang-format" {
		t.Errorf("ClangFormat = %q", f.ClangFormat)
	}
}

func TestLoadFileFrom_Missing(t *testing.T) {
	t.Parallel()

	f, err := loadFileFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadFileFrom missing = %v, want nil", err)
	}
	if f != (File{}) {
		t.Errorf("loadFileFrom missing = %+v, want zero", f)
	}
}

func TestLoadFileFrom_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("style = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFileFrom(path); err == nil {
		t.Error("loadFileFrom invalid = nil, want error")
	}
}
