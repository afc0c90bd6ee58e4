package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"vlog/internal/ast"
)

// DumpGraph prints every node of the graph as an aligned table: id, kind,
// children, and a kind-specific detail column. Identifier text can be any
// width, so columns are measured by display width first.
func DumpGraph(w io.Writer, g *ast.Graph) {
	header := []string{"ID", "KIND", "CHILDREN", "DETAIL"}
	rows := make([][]string, 0, g.Len())
	for i := range g.Len() {
		id := ast.NodeID(i)
		rows = append(rows, []string{
			fmt.Sprintf("%d", id),
			g.Kind(id).String(),
			formatChildren(g.Children(id)),
			nodeDetail(g, id),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				io.WriteString(w, "  ")
			}
			io.WriteString(w, runewidth.FillRight(cell, widths[i]))
		}
		io.WriteString(w, "\n")
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
}

func formatChildren(children []ast.NodeID) string {
	if len(children) == 0 {
		return "-"
	}
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ",")
}

func nodeDetail(g *ast.Graph, id ast.NodeID) string {
	switch g.Kind(id) {
	case ast.KindNumeral:
		return g.Numeral(id).Value
	case ast.KindIdentifier, ast.KindArithmeticIdentifier:
		return g.IdentifierName(id)
	case ast.KindSign:
		return g.Sign(id).Op.String()
	case ast.KindExpression:
		return g.Expression(id).Op.String()
	case ast.KindInputDeclaration, ast.KindOutputDeclaration, ast.KindWireDeclaration:
		if g.Declaration(id).WordLevel {
			return "word-level"
		}
		return "bit-level"
	case ast.KindModuleInstantiation:
		inst := g.ModuleInstantiation(id)
		return fmt.Sprintf("%d ports", len(inst.Ports))
	case ast.KindModule:
		return g.Module(id).Name
	}
	return ""
}
