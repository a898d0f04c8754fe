// Package config assembles the immutable runtime configuration for cfhook.
//
// Settings are layered, first match wins:
//
//  1. Environment variables (CLANG_FORMAT, CLANG_FORMAT_DIFF, CLANG_FORMAT_STYLE)
//  2. Git config (hooks.clangFormatDiffStyle, hooks.clangFormatDiffInteractive)
//  3. The optional TOML file at ~/.config/cfhook/config.toml
//  4. Built-in defaults
//
// The resolved Config is assembled once per invocation and nothing mutates
// it afterwards.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/clangtools/cfhook/internal/git"
)

// Environment variables honored by cfhook.
const (
	EnvClangFormat     = "CLANG_FORMAT"
	EnvClangFormatDiff = "CLANG_FORMAT_DIFF"
	EnvStyle           = "CLANG_FORMAT_STYLE"
)

// Git config keys honored by cfhook.
const (
	KeyStyle       = "hooks.clangFormatDiffStyle"
	KeyInteractive = "hooks.clangFormatDiffInteractive"
)

// DefaultStyle is the style source passed to clang-format when nothing else
// is configured; "file" means the repo's .clang-format file.
const DefaultStyle = "file"

// Config holds the resolved settings for one invocation.
type Config struct {
	// Style is the clang-format style source (-style value).
	Style string
	// Interactive controls whether the hook prompts on formatting issues.
	Interactive bool
	// ClangFormat optionally overrides the clang-format location.
	ClangFormat string
	// ClangFormatDiff optionally overrides the clang-format-diff location.
	ClangFormatDiff string
}

// File is the optional TOML configuration file.
type File struct {
	Style           string `toml:"style"`
	Interactive     *bool  `toml:"interactive"`
	ClangFormat     string `toml:"clang-format"`
	ClangFormatDiff string `toml:"clang-format-diff"`
}

// filePath returns the path of the TOML config file.
func filePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cfhook", "config.toml"), nil
}

// LoadFile reads the TOML config file. A missing file yields a zero File and
// no error; a present but invalid file is an error.
func LoadFile() (File, error) {
	path, err := filePath()
	if err != nil {
		return File{}, nil
	}
	return loadFileFrom(path)
}

func loadFileFrom(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read config file: %w", err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Sources collects the raw configuration inputs so resolution stays testable
// without a real repository or environment.
type Sources struct {
	LookupEnv func(key string) (string, bool)
	GitValue  func(ctx context.Context, key string) (string, bool, error)
	GitBool   func(ctx context.Context, key string) (bool, bool, error)
	File      File
}

// DefaultSources wires Sources to the process environment and the git config
// of the repository at repoDir.
func DefaultSources(repoDir string, file File) Sources {
	return Sources{
		LookupEnv: os.LookupEnv,
		GitValue: func(ctx context.Context, key string) (string, bool, error) {
			return git.ConfigValue(ctx, repoDir, key)
		},
		GitBool: func(ctx context.Context, key string) (bool, bool, error) {
			return git.ConfigBool(ctx, repoDir, key)
		},
		File: file,
	}
}

// Resolve assembles the runtime Config from the layered sources.
func Resolve(ctx context.Context, src Sources) (*Config, error) {
	style, err := resolveStyle(ctx, src)
	if err != nil {
		return nil, err
	}

	interactive, err := resolveInteractive(ctx, src)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Style:       style,
		Interactive: interactive,
	}
	if v, ok := src.LookupEnv(EnvClangFormat); ok && v != "" {
		cfg.ClangFormat = v
	} else {
		cfg.ClangFormat = src.File.ClangFormat
	}
	if v, ok := src.LookupEnv(EnvClangFormatDiff); ok && v != "" {
		cfg.ClangFormatDiff = v
	} else {
		cfg.ClangFormatDiff = src.File.ClangFormatDiff
	}
	return cfg, nil
}

// resolveStyle picks the style source. A layer that is present but empty is
// a configuration error, not a silent fallthrough.
func resolveStyle(ctx context.Context, src Sources) (string, error) {
	if v, ok := src.LookupEnv(EnvStyle); ok {
		if v == "" {
			return "", fmt.Errorf("%s is set but empty", EnvStyle)
		}
		return v, nil
	}

	v, ok, err := src.GitValue(ctx, KeyStyle)
	if err != nil {
		return "", err
	}
	if ok {
		if v == "" {
			return "", fmt.Errorf("git config %s is set but empty", KeyStyle)
		}
		return v, nil
	}

	if src.File.Style != "" {
		return src.File.Style, nil
	}
	return DefaultStyle, nil
}

// resolveInteractive reads the tri-state interactive flag: git config wins,
// then the config file, then true.
func resolveInteractive(ctx context.Context, src Sources) (bool, error) {
	v, ok, err := src.GitBool(ctx, KeyInteractive)
	if err != nil {
		return false, err
	}
	if ok {
		return v, nil
	}
	if src.File.Interactive != nil {
		return *src.File.Interactive, nil
	}
	return true, nil
}
