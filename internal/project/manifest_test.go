package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, `
[package]
name = "soc"

[sources]
include = ["rtl"]
exclude = ["*_tb.v"]

[parse]
max_diagnostics = 50
jobs = 4
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "soc" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if len(cfg.Sources.Include) != 1 || cfg.Sources.Include[0] != "rtl" {
		t.Errorf("include = %v", cfg.Sources.Include)
	}
	if cfg.Parse.MaxDiagnostics != 50 || cfg.Parse.Jobs != 4 {
		t.Errorf("parse = %+v", cfg.Parse)
	}
}

func TestLoadConfigRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "[package]\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for missing [package].name")
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"chip\"\n")
	nested := filepath.Join(root, "rtl", "core")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	if m.Config.Package.Name != "chip" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
}

func TestLoadReportsNoManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("unexpected manifest in empty temp dir")
	}
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"p\"\n")
	writeFile(t, filepath.Join(root, "rtl", "alu.v"), "module alu(); endmodule\n")
	writeFile(t, filepath.Join(root, "rtl", "alu_tb.v"), "module tb(); endmodule\n")
	writeFile(t, filepath.Join(root, "rtl", "notes.txt"), "not verilog\n")
	writeFile(t, filepath.Join(root, "top.v"), "module top(); endmodule\n")

	m, ok, err := Load(root)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	m.Config.Sources.Exclude = []string{"*_tb.v"}

	files, err := m.SourceFiles()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "rtl", "alu.v"),
		filepath.Join(root, "top.v"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}
