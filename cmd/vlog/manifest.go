package main

import (
	"path/filepath"
	"strings"

	"vlog/internal/project"
)

// loadManifestFor finds the vlog.toml governing path, if any. The walk-up
// starts at the path itself for directories and at the containing directory
// for files. A missing manifest is not an error; a broken one is.
func loadManifestFor(path string, isDir bool) (*project.Manifest, error) {
	start := path
	if !isDir {
		start = filepath.Dir(path)
	}
	m, ok, err := project.Load(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return m, nil
}

// manifestMaxDiagnostics applies [parse].max_diagnostics as the default
// when the flag was left untouched.
func manifestMaxDiagnostics(m *project.Manifest, flagValue int, flagSet bool) int {
	if flagSet || m == nil || m.Config.Parse.MaxDiagnostics == 0 {
		return flagValue
	}
	return m.Config.Parse.MaxDiagnostics
}

// manifestJobs applies [parse].jobs as the default when the flag was left
// untouched. A manifest value of 0 keeps the auto behavior.
func manifestJobs(m *project.Manifest, flagValue int, flagSet bool) int {
	if flagSet || m == nil || m.Config.Parse.Jobs == 0 {
		return flagValue
	}
	return m.Config.Parse.Jobs
}

// manifestSnapshotDir resolves the snapshot cache directory: an explicit
// --dir wins, then [parse].snapshot_dir relative to the manifest root, then
// empty for the per-user default.
func manifestSnapshotDir(m *project.Manifest, flagValue string) string {
	if flagValue != "" || m == nil || m.Config.Parse.SnapshotDir == "" {
		return flagValue
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Parse.SnapshotDir))
}

// manifestFilesUnder expands the manifest's [sources] section and keeps the
// files below dir, so `vlog parse rtl/` honors the manifest excludes
// without dragging in sibling directories.
func manifestFilesUnder(m *project.Manifest, dir string) ([]string, error) {
	files, err := m.SourceFiles()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range files {
		af, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		if af == abs || strings.HasPrefix(af, abs+string(filepath.Separator)) {
			out = append(out, f)
		}
	}
	return out, nil
}
