package diagfmt

import (
	"strings"
	"testing"

	"vlog/internal/ast"
	"vlog/internal/diag"
	"vlog/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("adder.v", []byte("module m();\n  input 42;\nendmodule\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectIdentifier,
		Message:  "expected identifier, got numeral",
		Primary:  source.Span{File: id, Start: 20, End: 22},
	})
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := testBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})

	out := sb.String()
	if !strings.Contains(out, "adder.v:2:9: ERROR VLG2002: expected identifier, got numeral") {
		t.Errorf("heading wrong:\n%s", out)
	}
	if !strings.Contains(out, "   2 |   input 42;") {
		t.Errorf("context line missing:\n%s", out)
	}
	if !strings.Contains(out, "^~") {
		t.Errorf("underline missing:\n%s", out)
	}
}

func TestPrettyBasenamePath(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("rtl/core/alu.v", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynUnexpectedTopLevel,
		Message:  "stray item",
		Primary:  source.Span{File: id, Start: 0, End: 1},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(sb.String(), "alu.v:1:1: WARNING") {
		t.Errorf("output = %q", sb.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := testBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})

	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("output = %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "VLG2002" || d.Severity != "ERROR" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 9 {
		t.Errorf("location = %+v", d.Location)
	}
}

func TestJSONMaxCutsOutputOnly(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.v", []byte("abc\n"))
	bag := diag.NewBag(8)
	for range 5 {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SynUnexpectedToken,
			Primary:  source.Span{File: id, Start: 0, End: 1},
		})
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if len(out.Diagnostics) != 2 || out.Count != 5 {
		t.Errorf("got %d shown of count %d", len(out.Diagnostics), out.Count)
	}
}

func TestDumpGraphTable(t *testing.T) {
	g := ast.NewGraph(0)
	a := g.CreateIdentifier("a")
	b := g.CreateIdentifier("b")
	g.CreateAndExpression(a, b)

	var sb strings.Builder
	DumpGraph(&sb, g)
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "KIND") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(out, "0,1") {
		t.Errorf("children column missing:\n%s", out)
	}
}
