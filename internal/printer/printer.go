// Package printer re-emits Verilog source text from a syntax graph. It is
// built entirely on the graph's visitor dispatch and child iteration, which
// keeps it honest: anything the printer needs, every other pass can reach
// the same way.
package printer

import (
	"io"
	"strings"

	"vlog/internal/ast"
)

// Print writes the module at id as Verilog source to w.
func Print(g *ast.Graph, id ast.NodeID, w io.Writer) error {
	p := &printer{g: g}
	g.Accept(id, p)
	_, err := io.WriteString(w, p.sb.String())
	return err
}

// Sprint renders the node at id to a string. Any node kind is accepted;
// statements end with a newline, expressions do not.
func Sprint(g *ast.Graph, id ast.NodeID) string {
	p := &printer{g: g}
	g.Accept(id, p)
	return p.sb.String()
}

// Operator binding strength, loosest first. Used to decide where emitted
// expressions need parentheses.
func precedence(op ast.ExprOp) int {
	switch op {
	case ast.OpOr, ast.OpAdd:
		return 1
	case ast.OpXor:
		return 2
	case ast.OpAnd, ast.OpMul:
		return 3
	case ast.OpNot:
		return 4
	}
	return 0
}

type printer struct {
	ast.NoopVisitor
	g  *ast.Graph
	sb strings.Builder
}

// expr prints the node at id as a sub-expression of an operator with the
// given binding strength, adding parentheses when the child binds looser.
// rightOperand forces parens at equal strength so left-associative chains
// round-trip without reassociating.
func (p *printer) expr(id ast.NodeID, parentPrec int, rightOperand bool) {
	if p.g.Kind(id) == ast.KindExpression {
		childPrec := precedence(p.g.Expression(id).Op)
		if childPrec < parentPrec || (rightOperand && childPrec == parentPrec) {
			p.sb.WriteByte('(')
			p.g.Accept(id, p)
			p.sb.WriteByte(')')
			return
		}
	}
	p.g.Accept(id, p)
}

func (p *printer) VisitNumeral(n ast.Numeral) {
	p.sb.WriteString(n.Value)
}

func (p *printer) VisitIdentifier(n ast.Identifier) {
	p.sb.WriteString(n.Name)
}

func (p *printer) VisitArithmeticIdentifier(n ast.Identifier) {
	p.sb.WriteString(n.Name)
}

func (p *printer) VisitIdentifierList(n ast.IdentifierList) {
	for i, id := range n.Identifiers {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.g.Accept(id, p)
	}
}

func (p *printer) VisitArraySelect(n ast.ArraySelect) {
	p.g.Accept(n.Array, p)
	p.sb.WriteByte('[')
	p.g.Accept(n.Index, p)
	p.sb.WriteByte(']')
}

func (p *printer) VisitRangeExpression(n ast.RangeExpression) {
	p.sb.WriteByte('[')
	p.g.Accept(n.Hi, p)
	p.sb.WriteByte(':')
	p.g.Accept(n.Lo, p)
	p.sb.WriteByte(']')
}

func (p *printer) VisitSign(n ast.Sign) {
	p.sb.WriteString(n.Op.String())
	p.expr(n.Expr, precedence(ast.OpNot), false)
}

func (p *printer) VisitExpression(n ast.Expression) {
	prec := precedence(n.Op)
	if n.Op.Unary() {
		p.sb.WriteString(n.Op.String())
		p.expr(n.Left, prec, false)
		return
	}
	p.expr(n.Left, prec, false)
	p.sb.WriteByte(' ')
	p.sb.WriteString(n.Op.String())
	p.sb.WriteByte(' ')
	p.expr(n.Right.ID(), prec, true)
}

func (p *printer) VisitSystemFunction(n ast.SystemFunction) {
	p.g.Accept(n.Fun, p)
	p.sb.WriteByte('(')
	for i, arg := range n.Args {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.g.Accept(arg, p)
	}
	p.sb.WriteByte(')')
}

func (p *printer) declaration(keyword string, n ast.Declaration) {
	p.sb.WriteString(keyword)
	if n.WordLevel {
		p.sb.WriteString(" [")
		p.g.Accept(n.Hi, p)
		p.sb.WriteByte(':')
		p.g.Accept(n.Lo, p)
		p.sb.WriteByte(']')
	}
	p.sb.WriteByte(' ')
	for i, id := range n.Identifiers {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.g.Accept(id, p)
	}
	p.sb.WriteString(";\n")
}

func (p *printer) VisitInputDeclaration(n ast.Declaration) {
	p.declaration("input", n)
}

func (p *printer) VisitOutputDeclaration(n ast.Declaration) {
	p.declaration("output", n)
}

func (p *printer) VisitWireDeclaration(n ast.Declaration) {
	p.declaration("wire", n)
}

func (p *printer) VisitModuleInstantiation(n ast.ModuleInstantiation) {
	p.g.Accept(n.ModuleName, p)
	if len(n.Parameters) > 0 {
		p.sb.WriteString(" #(")
		for i, param := range n.Parameters {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.g.Accept(param, p)
		}
		p.sb.WriteByte(')')
	}
	p.sb.WriteByte(' ')
	p.g.Accept(n.InstanceName, p)
	p.sb.WriteByte('(')
	for i, pb := range n.Ports {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteByte('.')
		p.g.Accept(pb.Port, p)
		p.sb.WriteByte('(')
		p.g.Accept(pb.Signal, p)
		p.sb.WriteByte(')')
	}
	p.sb.WriteString(");\n")
}

func (p *printer) VisitParameterDeclaration(n ast.ParameterDeclaration) {
	p.sb.WriteString("parameter ")
	p.g.Accept(n.Identifier, p)
	p.sb.WriteString(" = ")
	p.g.Accept(n.Expr, p)
	p.sb.WriteString(";\n")
}

func (p *printer) VisitAssignment(n ast.Assignment) {
	p.sb.WriteString("assign ")
	p.g.Accept(n.Signal, p)
	p.sb.WriteString(" = ")
	p.g.Accept(n.Expr, p)
	p.sb.WriteString(";\n")
}

func (p *printer) VisitModule(n ast.Module) {
	p.sb.WriteString("module ")
	p.sb.WriteString(n.Name)
	p.sb.WriteByte('(')
	for i, arg := range n.Args {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.g.Accept(arg, p)
	}
	p.sb.WriteString(");\n")
	for _, decl := range n.Decls {
		p.sb.WriteString("  ")
		p.g.Accept(decl, p)
	}
	p.sb.WriteString("endmodule\n")
}
