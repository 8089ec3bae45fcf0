package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths lists the config files found for one run. Empty fields mean
// no file was found at that layer.
type ConfigPaths struct {
	System   string // /etc/stylint/config.yaml, or %ProgramData%\stylint on Windows
	User     string // $XDG_CONFIG_HOME/stylint/config.yaml
	Project  string // nearest .stylint.yml at or above the working directory
	Explicit string // --config

	// SwiftLint is a .swiftlint.yml in the working directory. It is read for
	// its rule lists and globs when no project config exists.
	SwiftLint string
}

// DiscoverPaths finds the config file of every layer. Missing files are not
// errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:    firstFile(systemConfigDir(), "config.yaml", "config.yml"),
		User:      firstFile(userConfigDir(), "config.yaml", "config.yml"),
		Project:   project,
		SwiftLint: FindSwiftLintConfig(workDir),
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/stylint"
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "stylint")
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stylint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stylint")
}

// FindProjectConfig looks for .stylint.yml (or .yaml, or the same names
// without the dot) in startDir and its parents. The search ends at the
// first VCS root, the home directory or the filesystem root, whichever
// comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if startDir == "" {
		dir, err = os.Getwd()
	}
	if err != nil {
		return "", fmt.Errorf("resolve project directory: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if path := firstFile(dir, ".stylint.yml", ".stylint.yaml", "stylint.yml", "stylint.yaml"); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// FindSwiftLintConfig returns the SwiftLint config in dir, or "".
func FindSwiftLintConfig(dir string) string {
	return firstFile(dir, ".swiftlint.yml", ".swiftlint.yaml")
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
