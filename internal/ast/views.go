package ast

import (
	"fmt"
)

// Typed views over arena nodes. A view is a cheap value the graph assembles
// on access; it borrows slices owned by the graph, so callers must treat
// them as read-only.

// Numeral is the view of a numeral leaf.
type Numeral struct {
	ID    NodeID
	Value string
}

// Identifier is the view of an identifier leaf (either namespace).
type Identifier struct {
	ID   NodeID
	Name string
}

// IdentifierList is the view of an identifier list.
type IdentifierList struct {
	ID          NodeID
	Identifiers []NodeID
}

// ArraySelect is the view of `array[index]`.
type ArraySelect struct {
	ID    NodeID
	Array NodeID
	Index NodeID
}

// RangeExpression is the view of `[hi:lo]`.
type RangeExpression struct {
	ID NodeID
	Hi NodeID
	Lo NodeID
}

// Sign is the view of a signed sub-expression.
type Sign struct {
	ID   NodeID
	Op   SignKind
	Expr NodeID
}

// Expression is the view of an operator application. Right is invalid for
// the unary operator.
type Expression struct {
	ID    NodeID
	Op    ExprOp
	Left  NodeID
	Right Ref
}

// SystemFunction is the view of a `$fun(args...)` call.
type SystemFunction struct {
	ID   NodeID
	Fun  NodeID
	Args []NodeID
}

// Declaration is the shared view of input, output, and wire declarations.
// Hi and Lo are only meaningful when WordLevel is true.
type Declaration struct {
	ID          NodeID
	Kind        Kind
	Identifiers []NodeID
	WordLevel   bool
	Hi          NodeID
	Lo          NodeID
}

// BitLevel reports whether the declaration has no explicit range.
func (d Declaration) BitLevel() bool { return !d.WordLevel }

// ModuleInstantiation is the view of a module instantiation.
type ModuleInstantiation struct {
	ID           NodeID
	ModuleName   NodeID
	InstanceName NodeID
	Ports        []PortBinding
	Parameters   []NodeID
}

// ParameterDeclaration is the view of `parameter identifier = expr`.
type ParameterDeclaration struct {
	ID         NodeID
	Identifier NodeID
	Expr       NodeID
}

// Assignment is the view of `assign signal = expr`.
type Assignment struct {
	ID     NodeID
	Signal NodeID
	Expr   NodeID
}

// Module is the view of a module with its port arguments and body.
type Module struct {
	ID    NodeID
	Name  string
	Args  []NodeID
	Decls []NodeID
}

func (g *Graph) expect(id NodeID, kind Kind) *Node {
	node := g.Node(id)
	if node.Kind != kind {
		panic(fmt.Sprintf("ast: id %d is %s, expected %s", id, node.Kind, kind))
	}
	return node
}

// Numeral resolves id as a numeral. Wrong kinds panic; use Kind to test
// first when the kind is not known.
func (g *Graph) Numeral(id NodeID) Numeral {
	node := g.expect(id, KindNumeral)
	return Numeral{ID: id, Value: *g.texts.Get(uint32(node.Payload))}
}

// Identifier resolves id as a plain identifier.
func (g *Graph) Identifier(id NodeID) Identifier {
	node := g.expect(id, KindIdentifier)
	return Identifier{ID: id, Name: *g.texts.Get(uint32(node.Payload))}
}

// ArithmeticIdentifier resolves id as an arithmetic identifier.
func (g *Graph) ArithmeticIdentifier(id NodeID) Identifier {
	node := g.expect(id, KindArithmeticIdentifier)
	return Identifier{ID: id, Name: *g.texts.Get(uint32(node.Payload))}
}

// IdentifierName returns the text of either identifier kind.
func (g *Graph) IdentifierName(id NodeID) string {
	node := g.Node(id)
	if node.Kind != KindIdentifier && node.Kind != KindArithmeticIdentifier {
		panic(fmt.Sprintf("ast: id %d is %s, expected an identifier kind", id, node.Kind))
	}
	return *g.texts.Get(uint32(node.Payload))
}

// IdentifierList resolves id as an identifier list.
func (g *Graph) IdentifierList(id NodeID) IdentifierList {
	node := g.expect(id, KindIdentifierList)
	return IdentifierList{ID: id, Identifiers: node.Children}
}

// ArraySelect resolves id as an array select.
func (g *Graph) ArraySelect(id NodeID) ArraySelect {
	node := g.expect(id, KindArraySelect)
	return ArraySelect{ID: id, Array: node.Children[0], Index: node.Children[1]}
}

// RangeExpression resolves id as a range expression.
func (g *Graph) RangeExpression(id NodeID) RangeExpression {
	node := g.expect(id, KindRangeExpression)
	return RangeExpression{ID: id, Hi: node.Children[0], Lo: node.Children[1]}
}

// Sign resolves id as a sign node.
func (g *Graph) Sign(id NodeID) Sign {
	node := g.expect(id, KindSign)
	return Sign{ID: id, Op: *g.signs.Get(uint32(node.Payload)), Expr: node.Children[0]}
}

// Expression resolves id as an operator expression.
func (g *Graph) Expression(id NodeID) Expression {
	node := g.expect(id, KindExpression)
	e := Expression{ID: id, Op: *g.ops.Get(uint32(node.Payload)), Left: node.Children[0]}
	if len(node.Children) == 2 {
		e.Right = MakeRef(node.Children[1])
	}
	return e
}

// SystemFunction resolves id as a system function call.
func (g *Graph) SystemFunction(id NodeID) SystemFunction {
	node := g.expect(id, KindSystemFunction)
	return SystemFunction{ID: id, Fun: node.Children[0], Args: node.Children[1:]}
}

// Declaration resolves id as any of the three declaration kinds.
func (g *Graph) Declaration(id NodeID) Declaration {
	node := g.Node(id)
	switch node.Kind {
	case KindInputDeclaration, KindOutputDeclaration, KindWireDeclaration:
	default:
		panic(fmt.Sprintf("ast: id %d is %s, expected a declaration kind", id, node.Kind))
	}
	data := g.decls.Get(uint32(node.Payload))
	return Declaration{
		ID:          id,
		Kind:        node.Kind,
		Identifiers: node.Children,
		WordLevel:   data.WordLevel,
		Hi:          data.Hi,
		Lo:          data.Lo,
	}
}

// ModuleInstantiation resolves id as a module instantiation.
func (g *Graph) ModuleInstantiation(id NodeID) ModuleInstantiation {
	node := g.expect(id, KindModuleInstantiation)
	data := g.insts.Get(uint32(node.Payload))
	ports := make([]PortBinding, data.PortCount)
	for i := range ports {
		ports[i] = PortBinding{
			Port:   node.Children[2+2*i],
			Signal: node.Children[2+2*i+1],
		}
	}
	return ModuleInstantiation{
		ID:           id,
		ModuleName:   node.Children[0],
		InstanceName: node.Children[1],
		Ports:        ports,
		Parameters:   node.Children[2+2*len(ports):],
	}
}

// ParameterDeclaration resolves id as a parameter declaration.
func (g *Graph) ParameterDeclaration(id NodeID) ParameterDeclaration {
	node := g.expect(id, KindParameterDeclaration)
	return ParameterDeclaration{ID: id, Identifier: node.Children[0], Expr: node.Children[1]}
}

// Assignment resolves id as an assignment.
func (g *Graph) Assignment(id NodeID) Assignment {
	node := g.expect(id, KindAssignment)
	return Assignment{ID: id, Signal: node.Children[0], Expr: node.Children[1]}
}

// Module resolves id as a module.
func (g *Graph) Module(id NodeID) Module {
	node := g.expect(id, KindModule)
	data := g.modules.Get(uint32(node.Payload))
	return Module{
		ID:    id,
		Name:  data.Name,
		Args:  node.Children[:data.ArgCount],
		Decls: node.Children[data.ArgCount:],
	}
}
