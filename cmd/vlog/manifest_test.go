package main

import (
	"os"
	"path/filepath"
	"testing"

	"vlog/internal/project"
)

func writeTree(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestManifestDefaultsYieldToFlags(t *testing.T) {
	m := &project.Manifest{Config: project.Config{
		Parse: project.ParseConfig{MaxDiagnostics: 7, Jobs: 3},
	}}
	if got := manifestMaxDiagnostics(m, 100, false); got != 7 {
		t.Errorf("max = %d, want the manifest value", got)
	}
	if got := manifestMaxDiagnostics(m, 25, true); got != 25 {
		t.Errorf("max = %d, an explicit flag must win", got)
	}
	if got := manifestMaxDiagnostics(nil, 100, false); got != 100 {
		t.Errorf("max = %d without a manifest", got)
	}
	if got := manifestJobs(m, 0, false); got != 3 {
		t.Errorf("jobs = %d, want the manifest value", got)
	}
	if got := manifestJobs(m, 8, true); got != 8 {
		t.Errorf("jobs = %d, an explicit flag must win", got)
	}
}

func TestManifestSnapshotDir(t *testing.T) {
	m := &project.Manifest{
		Root:   filepath.Join("proj"),
		Config: project.Config{Parse: project.ParseConfig{SnapshotDir: ".vlog-cache"}},
	}
	if got := manifestSnapshotDir(m, ""); got != filepath.Join("proj", ".vlog-cache") {
		t.Errorf("dir = %q", got)
	}
	if got := manifestSnapshotDir(m, "explicit"); got != "explicit" {
		t.Errorf("dir = %q, --dir must win", got)
	}
	if got := manifestSnapshotDir(nil, ""); got != "" {
		t.Errorf("dir = %q without a manifest", got)
	}
}

func TestManifestFilesUnderHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, project.ManifestName,
		"[package]\nname = \"chip\"\n\n[sources]\nexclude = [\"gen.v\"]\n")
	writeTree(t, root, filepath.Join("rtl", "top.v"), "module top(); endmodule\n")
	writeTree(t, root, filepath.Join("rtl", "gen.v"), "module gen(); endmodule\n")
	writeTree(t, root, filepath.Join("sim", "bench.v"), "module bench(); endmodule\n")

	m, err := loadManifestFor(filepath.Join(root, "rtl"), true)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("manifest not found from a subdirectory")
	}

	files, err := manifestFilesUnder(m, filepath.Join(root, "rtl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "top.v" {
		t.Errorf("files = %v", files)
	}
}
