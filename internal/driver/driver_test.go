package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vlog/internal/token"
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

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buf.v")
	writeFile(t, path, "module buf(i, o);\n  input i;\n  output o;\n  assign o = i;\nendmodule\n")

	res, err := Parse(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %v", res.Bag.Items())
	}
	if len(res.Modules) != 1 || res.Graph.Module(res.Modules[0]).Name != "buf" {
		t.Errorf("modules = %v", res.Modules)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "absent.v"), 0); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseSource(t *testing.T) {
	res := ParseSource("stdin", []byte("module m(); endmodule"), 0)
	if res.Bag.HasErrors() || len(res.Modules) != 1 {
		t.Fatalf("modules = %v, diagnostics = %v", res.Modules, res.Bag.Items())
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.v")
	writeFile(t, path, "module m();")

	_, tokens, bag, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Error("token stream must end with EOF")
	}
	if tokens[0].Kind != token.KwModule || tokens[1].Kind != token.Ident {
		t.Errorf("tokens = %v %v", tokens[0], tokens[1])
	}
}

func TestParseDirDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.v"), "module b(); endmodule\n")
	writeFile(t, filepath.Join(dir, "a.v"), "module a(); endmodule\n")
	writeFile(t, filepath.Join(dir, "sub", "c.v"), "module c(); endmodule\n")
	writeFile(t, filepath.Join(dir, "skip.txt"), "not verilog\n")

	_, results, err := ParseDir(context.Background(), dir, DirOptions{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	wantBase := []string{"a.v", "b.v", "c.v"}
	for i, want := range wantBase {
		if filepath.Base(results[i].Path) != want {
			t.Errorf("results[%d] = %q, want base %q", i, results[i].Path, want)
		}
		if results[i].Err != nil || results[i].Bag.HasErrors() {
			t.Errorf("file %q did not parse cleanly", results[i].Path)
		}
	}
}

func TestParseDirEmits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.v"), "module a(); endmodule\n")
	writeFile(t, filepath.Join(dir, "b.v"), "module b(; endmodule\n")

	events := make(chan Event, 8)
	done := make(chan struct{})
	var got []Event
	go func() {
		defer close(done)
		for ev := range events {
			got = append(got, ev)
		}
	}()

	_, _, err := ParseDir(context.Background(), dir, DirOptions{Events: events})
	if err != nil {
		t.Fatal(err)
	}
	<-done

	if len(got) != 2 {
		t.Fatalf("events = %d", len(got))
	}
	failed := 0
	for _, ev := range got {
		if ev.Total != 2 {
			t.Errorf("event total = %d", ev.Total)
		}
		if ev.Failed {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("failed events = %d, want 1", failed)
	}
}

func TestParseFilesCollapsesDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.v")
	writeFile(t, path, "module a(); endmodule\n")

	fs, results, err := ParseFiles(context.Background(), []string{path, path}, DirOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want the repeated path collapsed", len(results))
	}
	if fs.Len() != 1 {
		t.Errorf("files loaded = %d", fs.Len())
	}
}

func TestParseDirEmpty(t *testing.T) {
	_, results, err := ParseDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v", results)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	res := ParseSource("cpu.v", []byte("module cpu(clk);\n  input clk;\nendmodule\n"), 0)
	snap := SnapshotOf(res)
	if snap.NodeCount != int(res.Graph.Len()) || len(snap.Modules) != 1 || snap.Modules[0] != "cpu" {
		t.Fatalf("snapshot = %+v", snap)
	}

	cache, err := OpenSnapshotCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(snap); err != nil {
		t.Fatal(err)
	}

	loaded, ok, err := cache.Get(res.File.Hash)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if loaded.Path != "cpu.v" || loaded.Hash != snap.Hash || loaded.HadErrors {
		t.Errorf("loaded = %+v", loaded)
	}

	ids := loaded.ModuleIDs(res.Graph, res.Modules)
	if len(ids) != 1 || ids[0] != res.Modules[0] {
		t.Errorf("resolved ids = %v", ids)
	}
}

func TestSnapshotCacheMiss(t *testing.T) {
	cache, err := OpenSnapshotCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var hash [32]byte
	hash[0] = 0xab
	if _, ok, err := cache.Get(hash); err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestSnapshotCacheDrop(t *testing.T) {
	cache, err := OpenSnapshotCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	res := ParseSource("m.v", []byte("module m(); endmodule"), 0)
	if err := cache.Put(SnapshotOf(res)); err != nil {
		t.Fatal(err)
	}
	if err := cache.Drop(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(res.File.Hash); ok {
		t.Error("snapshot survived Drop")
	}
}
