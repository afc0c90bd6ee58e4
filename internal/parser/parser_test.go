package parser

import (
	"testing"

	"vlog/internal/ast"
	"vlog/internal/diag"
	"vlog/internal/lexer"
	"vlog/internal/source"
)

func parse(t *testing.T, input string) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.v", []byte(input))
	rep := diag.NewBagReporter(32)
	lx := lexer.New(fs.Get(id), rep)
	return ParseFile(lx, ast.NewGraph(0), Options{MaxErrors: 16, Reporter: rep})
}

func parseOK(t *testing.T, input string) Result {
	t.Helper()
	res := parse(t, input)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	return res
}

func TestParseEmptyModule(t *testing.T) {
	res := parseOK(t, "module m(); endmodule")
	if len(res.Modules) != 1 {
		t.Fatalf("module count = %d", len(res.Modules))
	}
	m := res.Graph.Module(res.Modules[0])
	if m.Name != "m" || len(m.Args) != 0 || len(m.Decls) != 0 {
		t.Errorf("module = %+v", m)
	}
}

func TestParseBuffer(t *testing.T) {
	res := parseOK(t, `
module buffer(i, o);
  input i;
  output o;
  assign o = i;
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])
	if len(m.Args) != 2 {
		t.Fatalf("args = %v", m.Args)
	}
	if g.IdentifierName(m.Args[0]) != "i" || g.IdentifierName(m.Args[1]) != "o" {
		t.Error("port argument order lost")
	}
	if len(m.Decls) != 3 {
		t.Fatalf("decls = %v", m.Decls)
	}

	in := g.Declaration(m.Decls[0])
	if in.Kind != ast.KindInputDeclaration || g.IdentifierName(in.Identifiers[0]) != "i" {
		t.Errorf("first item = %+v", in)
	}
	out := g.Declaration(m.Decls[1])
	if out.Kind != ast.KindOutputDeclaration || g.IdentifierName(out.Identifiers[0]) != "o" {
		t.Errorf("second item = %+v", out)
	}
	assign := g.Assignment(m.Decls[2])
	if g.IdentifierName(assign.Signal) != "o" || g.IdentifierName(assign.Expr) != "i" {
		t.Errorf("assign = %+v", assign)
	}

	// The port list and the declarations reuse the same interned nodes.
	if m.Args[0] != in.Identifiers[0] || m.Args[1] != out.Identifiers[0] {
		t.Error("interning must share identifier nodes between ports and declarations")
	}
}

func TestParseDeclarationList(t *testing.T) {
	res := parseOK(t, `
module m(a, b, c);
  input a, b, c;
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])
	decl := g.Declaration(m.Decls[0])
	if len(decl.Identifiers) != 3 {
		t.Fatalf("identifiers = %v", decl.Identifiers)
	}
	names := []string{"a", "b", "c"}
	for i, want := range names {
		if g.IdentifierName(decl.Identifiers[i]) != want {
			t.Errorf("identifier[%d] = %q, want %q", i, g.IdentifierName(decl.Identifiers[i]), want)
		}
	}
}

func TestParseWordLevelDeclaration(t *testing.T) {
	res := parseOK(t, `
module m(bus);
  input [7:0] bus;
  wire [WIDTH-1:0] tmp;
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])

	in := g.Declaration(m.Decls[0])
	if !in.WordLevel {
		t.Fatal("ranged input must be word-level")
	}
	if g.Numeral(in.Hi).Value != "7" || g.Numeral(in.Lo).Value != "0" {
		t.Errorf("bounds = %d:%d", in.Hi, in.Lo)
	}

	wire := g.Declaration(m.Decls[1])
	if !wire.WordLevel {
		t.Fatal("ranged wire must be word-level")
	}
	// WIDTH-1 parses as WIDTH + (-1): a sum whose right operand is a sign.
	sum := g.Expression(wire.Hi)
	if sum.Op != ast.OpAdd {
		t.Errorf("hi bound op = %s", sum.Op)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	res := parseOK(t, `
module m(o);
  assign o = a | b & ~c ^ d;
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])
	assign := g.Assignment(m.Decls[0])

	// | binds loosest: the root must be the or.
	root := g.Expression(assign.Expr)
	if root.Op != ast.OpOr {
		t.Fatalf("root op = %s, want |", root.Op)
	}
	if g.IdentifierName(root.Left) != "a" {
		t.Error("left of | must be a")
	}
	right := g.Expression(root.Right.ID())
	if right.Op != ast.OpXor {
		t.Fatalf("right of | = %s, want ^", right.Op)
	}
	and := g.Expression(right.Left)
	if and.Op != ast.OpAnd {
		t.Fatalf("left of ^ = %s, want &", and.Op)
	}
	not := g.Expression(and.Right.ID())
	if not.Op != ast.OpNot || not.Right.Valid() {
		t.Errorf("~ node = %+v", not)
	}
}

func TestParseArraySelect(t *testing.T) {
	res := parseOK(t, `
module m(o);
  assign o[3] = data[i];
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])
	assign := g.Assignment(m.Decls[0])

	lhs := g.ArraySelect(assign.Signal)
	if g.IdentifierName(lhs.Array) != "o" || g.Numeral(lhs.Index).Value != "3" {
		t.Errorf("lhs = %+v", lhs)
	}
	rhs := g.ArraySelect(assign.Expr)
	if g.IdentifierName(rhs.Array) != "data" || g.IdentifierName(rhs.Index) != "i" {
		t.Errorf("rhs = %+v", rhs)
	}
}

func TestParseParameterWithSystemFunction(t *testing.T) {
	res := parseOK(t, `
module m();
  parameter ADDR_BITS = $clog2(DEPTH) + 1;
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])
	param := g.ParameterDeclaration(m.Decls[0])

	if g.Kind(param.Identifier) != ast.KindArithmeticIdentifier {
		t.Error("parameter name must land in the arithmetic namespace")
	}
	sum := g.Expression(param.Expr)
	if sum.Op != ast.OpAdd {
		t.Fatalf("initializer op = %s", sum.Op)
	}
	sys := g.SystemFunction(sum.Left)
	if g.IdentifierName(sys.Fun) != "$clog2" {
		t.Errorf("fun = %q", g.IdentifierName(sys.Fun))
	}
	if len(sys.Args) != 1 || g.Kind(sys.Args[0]) != ast.KindArithmeticIdentifier {
		t.Errorf("args = %v", sys.Args)
	}
}

func TestParseInstantiation(t *testing.T) {
	res := parseOK(t, `
module top(a, b, s);
  adder #(8, W*2) u0 (.x(a), .y(b), .sum(s));
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])
	inst := g.ModuleInstantiation(m.Decls[0])

	if g.IdentifierName(inst.ModuleName) != "adder" || g.IdentifierName(inst.InstanceName) != "u0" {
		t.Errorf("names = %q %q", g.IdentifierName(inst.ModuleName), g.IdentifierName(inst.InstanceName))
	}
	if len(inst.Parameters) != 2 {
		t.Fatalf("parameters = %v", inst.Parameters)
	}
	if g.Expression(inst.Parameters[1]).Op != ast.OpMul {
		t.Error("second parameter must be W*2")
	}
	if len(inst.Ports) != 3 {
		t.Fatalf("ports = %v", inst.Ports)
	}
	if g.IdentifierName(inst.Ports[2].Port) != "sum" || g.IdentifierName(inst.Ports[2].Signal) != "s" {
		t.Errorf("port[2] = %+v", inst.Ports[2])
	}
}

func TestParseNegativeSign(t *testing.T) {
	res := parseOK(t, `
module m();
  parameter OFFSET = -4;
endmodule
`)
	g := res.Graph
	m := g.Module(res.Modules[0])
	param := g.ParameterDeclaration(m.Decls[0])
	sign := g.Sign(param.Expr)
	if sign.Op != ast.SignMinus || g.Numeral(sign.Expr).Value != "4" {
		t.Errorf("sign = %+v", sign)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	res := parse(t, `
module m(o);
  input 42;
  assign o = a;
endmodule
`)
	if !res.Bag.HasErrors() {
		t.Fatal("expected a diagnostic for the bad declaration")
	}
	// The parser must resync and still deliver the module with the
	// well-formed assign.
	if len(res.Modules) != 1 {
		t.Fatalf("module count = %d", len(res.Modules))
	}
	m := res.Graph.Module(res.Modules[0])
	if len(m.Decls) != 1 || res.Graph.Kind(m.Decls[0]) != ast.KindAssignment {
		t.Errorf("surviving decls = %v", m.Decls)
	}
}

func TestParseMissingEndmodule(t *testing.T) {
	res := parse(t, "module m(o);\n  assign o = a;\n")
	if !res.Bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	var hit *diag.Diagnostic
	items := res.Bag.Items()
	for i := range items {
		if items[i].Code == diag.SynExpectEndmodule {
			hit = &items[i]
		}
	}
	if hit == nil {
		t.Fatalf("no endmodule diagnostic in %v", items)
	}
	if len(hit.Notes) != 1 {
		t.Fatalf("notes = %+v", hit.Notes)
	}
	// The note points back at the module name.
	if hit.Notes[0].Span.Start != 7 || hit.Notes[0].Span.End != 8 {
		t.Errorf("note span = %v", hit.Notes[0].Span)
	}
}

func TestParseDuplicateModuleWarning(t *testing.T) {
	res := parse(t, `
module m(); endmodule
module m(); endmodule
`)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if !res.Bag.HasWarnings() {
		t.Fatal("expected a redefinition warning")
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.SynDuplicateModule || d.Severity != diag.SevWarning {
		t.Errorf("diagnostic = %+v", d)
	}
	// Both definitions still land in the graph.
	if len(res.Modules) != 2 {
		t.Errorf("module count = %d", len(res.Modules))
	}
}

func TestParseUnexpectedTopLevel(t *testing.T) {
	res := parse(t, "wire w;")
	if !res.Bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if res.Bag.Items()[0].Code != diag.SynUnexpectedTopLevel {
		t.Errorf("code = %s", res.Bag.Items()[0].Code)
	}
}

func TestParseTwoModulesShareGraph(t *testing.T) {
	res := parseOK(t, `
module a(x); input x; endmodule
module b(x); input x; endmodule
`)
	if len(res.Modules) != 2 {
		t.Fatalf("module count = %d", len(res.Modules))
	}
	g := res.Graph
	ax := g.Module(res.Modules[0]).Args[0]
	bx := g.Module(res.Modules[1]).Args[0]
	if ax != bx {
		t.Error("identifier x must be interned across modules of one graph")
	}
}

func TestMaxErrorsStopsParse(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("noise.v", []byte("x x x x x x x x x x"))
	rep := diag.NewBagReporter(32)
	lx := lexer.New(fs.Get(id), rep)
	res := ParseFile(lx, ast.NewGraph(0), Options{MaxErrors: 3, Reporter: rep})

	if res.Bag.Len() != 3 {
		t.Errorf("diagnostics = %d, want exactly MaxErrors", res.Bag.Len())
	}
}
