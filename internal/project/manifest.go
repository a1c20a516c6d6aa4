// Package project locates and parses zinc.toml manifests.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded zinc.toml plus where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest file layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig names the package.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig points at the entry file and the generated output.
type BuildConfig struct {
	Entry  string `toml:"entry"`
	Output string `toml:"output"` // optional, defaults to entry with .rs
}

// Find walks from startDir toward the filesystem root looking for zinc.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "zinc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the nearest manifest above startDir. The second
// return value reports whether one was found at all.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := parseFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func parseFile(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build") {
		return Config{}, fmt.Errorf("%s: missing [build]", path)
	}
	if !meta.IsDefined("build", "entry") || strings.TrimSpace(cfg.Build.Entry) == "" {
		return Config{}, fmt.Errorf("%s: missing [build].entry", path)
	}
	return cfg, nil
}

// EntryPath resolves the entry file relative to the manifest root and
// validates its extension.
func (m *Manifest) EntryPath() (string, error) {
	entry := strings.TrimSpace(m.Config.Build.Entry)
	path := filepath.Join(m.Root, filepath.FromSlash(entry))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [build].entry path does not exist: %s", m.Path, path)
		}
		return "", fmt.Errorf("%s: failed to stat [build].entry: %w", m.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: [build].entry must be a .zn file, not a directory", m.Path)
	}
	if filepath.Ext(path) != ".zn" {
		return "", fmt.Errorf("%s: [build].entry must be a .zn file", m.Path)
	}
	return path, nil
}

// OutputPath resolves the output file, deriving it from the entry name when
// the manifest leaves it unset.
func (m *Manifest) OutputPath() string {
	out := strings.TrimSpace(m.Config.Build.Output)
	if out != "" {
		return filepath.Join(m.Root, filepath.FromSlash(out))
	}
	entry := strings.TrimSpace(m.Config.Build.Entry)
	base := strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
	return filepath.Join(m.Root, base+".rs")
}
