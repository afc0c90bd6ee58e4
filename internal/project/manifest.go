// Package project locates and parses vlog.toml, the per-project manifest.
// The manifest is optional: the tools work on bare files, and a manifest only
// adds defaults (source globs, diagnostic limits, snapshot directory).
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the tools look for when walking up from the
// working directory.
const ManifestName = "vlog.toml"

// Manifest couples the parsed config with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML layout of vlog.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Sources SourcesConfig `toml:"sources"`
	Parse   ParseConfig   `toml:"parse"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// SourcesConfig selects the Verilog files of the project. Include entries
// are directories or files relative to the manifest root; empty means the
// root itself.
type SourcesConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type ParseConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
	SnapshotDir    string `toml:"snapshot_dir"`
}

// FindManifest walks up from startDir to locate vlog.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
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

// Load walks up from startDir, parses the manifest it finds and validates
// the required fields. ok is false when no manifest exists.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates a single manifest file.
func LoadConfig(path string) (Config, error) {
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
	if cfg.Parse.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [parse].max_diagnostics must not be negative", path)
	}
	if cfg.Parse.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [parse].jobs must not be negative", path)
	}
	return cfg, nil
}
