package ast

import (
	"fmt"
	"io"
)

// Graph is the owning store of one syntax tree (more precisely, DAG). It
// hands out ids in creation order, keeps the two identifier interning
// tables, and is the single source of truth for id validity.
//
// A Graph is built by exactly one producer; it has no internal locking.
// Readers are free once construction is done.
type Graph struct {
	nodes *Arena[Node]

	// Per-kind payload arenas.
	texts   *Arena[string] // numeral values and identifier names
	ops     *Arena[ExprOp]
	signs   *Arena[SignKind]
	decls   *Arena[DeclData]
	insts   *Arena[InstData]
	modules *Arena[ModuleData]

	// Identifier interning. The two tables are independent namespaces: the
	// same text interned through both yields two distinct nodes.
	identHash map[string]NodeID
	arithHash map[string]NodeID
}

// NewGraph creates an empty Graph whose node arena is preallocated with a
// capacity of capHint. Zero picks a small default.
func NewGraph(capHint uint) *Graph {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Graph{
		nodes:     NewArena[Node](capHint),
		texts:     NewArena[string](capHint / 2),
		ops:       NewArena[ExprOp](capHint / 4),
		signs:     NewArena[SignKind](4),
		decls:     NewArena[DeclData](16),
		insts:     NewArena[InstData](8),
		modules:   NewArena[ModuleData](1),
		identHash: make(map[string]NodeID),
		arithHash: make(map[string]NodeID),
	}
}

// Len returns the number of nodes allocated so far. The next id to be
// assigned equals Len.
func (g *Graph) Len() uint32 {
	return g.nodes.Len()
}

// Node returns the node stored at id. Out-of-range ids panic.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes.Get(uint32(id))
}

// Kind returns the kind tag of the node at id.
func (g *Graph) Kind(id NodeID) Kind {
	return g.Node(id).Kind
}

// IsLeaf reports whether the node at id has no children.
func (g *Graph) IsLeaf(id NodeID) bool {
	return len(g.Node(id).Children) == 0
}

// Children returns the ordered child ids of the node at id. The slice is
// owned by the graph; callers must not modify it.
func (g *Graph) Children(id NodeID) []NodeID {
	return g.Node(id).Children
}

// ForEachChild calls fn for every child id in order.
func (g *Graph) ForEachChild(id NodeID, fn func(child NodeID)) {
	for _, c := range g.Node(id).Children {
		fn(c)
	}
}

// checkID asserts that id already denotes a node. Factories call this on
// every incoming child id: handing the graph an id it never issued is a
// defect in the caller, not an input error.
func (g *Graph) checkID(id NodeID) {
	if uint32(id) >= g.nodes.Len() {
		panic(fmt.Sprintf("ast: child id %d out of range (graph has %d nodes)", id, g.nodes.Len()))
	}
}

func (g *Graph) checkIDs(ids []NodeID) {
	for _, id := range ids {
		g.checkID(id)
	}
}

func (g *Graph) alloc(kind Kind, children []NodeID, payload PayloadID) NodeID {
	return NodeID(g.nodes.Allocate(Node{
		Kind:     kind,
		Children: children,
		Payload:  payload,
	}))
}

// CreateNumeral allocates a numeral leaf carrying the literal text.
func (g *Graph) CreateNumeral(value string) NodeID {
	p := g.texts.Allocate(value)
	return g.alloc(KindNumeral, nil, PayloadID(p))
}

// CreateIdentifier returns the node for name, allocating it on first use.
// Repeated calls with equal text return the same id.
func (g *Graph) CreateIdentifier(name string) NodeID {
	if id, ok := g.identHash[name]; ok {
		return id
	}
	name = string([]byte(name)) // detach from the caller's buffer
	p := g.texts.Allocate(name)
	id := g.alloc(KindIdentifier, nil, PayloadID(p))
	g.identHash[name] = id
	return id
}

// CreateArithmeticIdentifier is CreateIdentifier for the arithmetic
// namespace, backed by its own table.
func (g *Graph) CreateArithmeticIdentifier(name string) NodeID {
	if id, ok := g.arithHash[name]; ok {
		return id
	}
	name = string([]byte(name))
	p := g.texts.Allocate(name)
	id := g.alloc(KindArithmeticIdentifier, nil, PayloadID(p))
	g.arithHash[name] = id
	return id
}

// CreateIdentifierList allocates a list node over the given identifier ids,
// preserving order.
func (g *Graph) CreateIdentifierList(identifiers []NodeID) NodeID {
	g.checkIDs(identifiers)
	children := make([]NodeID, len(identifiers))
	copy(children, identifiers)
	return g.alloc(KindIdentifierList, children, 0)
}

// CreateArraySelect allocates an array/bit select over array and index.
func (g *Graph) CreateArraySelect(array, index NodeID) NodeID {
	g.checkID(array)
	g.checkID(index)
	return g.alloc(KindArraySelect, []NodeID{array, index}, 0)
}

// CreateRangeExpression allocates a [hi:lo] range pair.
func (g *Graph) CreateRangeExpression(hi, lo NodeID) NodeID {
	g.checkID(hi)
	g.checkID(lo)
	return g.alloc(KindRangeExpression, []NodeID{hi, lo}, 0)
}

// CreateNegativeSign allocates a minus sign wrapping expr.
func (g *Graph) CreateNegativeSign(expr NodeID) NodeID {
	g.checkID(expr)
	p := g.signs.Allocate(SignMinus)
	return g.alloc(KindSign, []NodeID{expr}, PayloadID(p))
}

// createExpression is the shared expression factory. Arity must match the
// operator: one operand for the unary ~, two for everything else.
func (g *Graph) createExpression(op ExprOp, operands ...NodeID) NodeID {
	want := 2
	if op.Unary() {
		want = 1
	}
	if len(operands) != want {
		panic(fmt.Sprintf("ast: operator %s takes %d operand(s), got %d", op, want, len(operands)))
	}
	g.checkIDs(operands)
	children := make([]NodeID, len(operands))
	copy(children, operands)
	p := g.ops.Allocate(op)
	return g.alloc(KindExpression, children, PayloadID(p))
}

// CreateSumExpression allocates term + expr.
func (g *Graph) CreateSumExpression(term, expr NodeID) NodeID {
	return g.createExpression(OpAdd, term, expr)
}

// CreateMulExpression allocates term * expr.
func (g *Graph) CreateMulExpression(term, expr NodeID) NodeID {
	return g.createExpression(OpMul, term, expr)
}

// CreateNotExpression allocates ~expr.
func (g *Graph) CreateNotExpression(expr NodeID) NodeID {
	return g.createExpression(OpNot, expr)
}

// CreateAndExpression allocates term & expr.
func (g *Graph) CreateAndExpression(term, expr NodeID) NodeID {
	return g.createExpression(OpAnd, term, expr)
}

// CreateOrExpression allocates term | expr.
func (g *Graph) CreateOrExpression(term, expr NodeID) NodeID {
	return g.createExpression(OpOr, term, expr)
}

// CreateXorExpression allocates term ^ expr.
func (g *Graph) CreateXorExpression(term, expr NodeID) NodeID {
	return g.createExpression(OpXor, term, expr)
}

// CreateSystemFunction allocates a $function call. fun is the function
// reference id, args the ordered argument ids.
func (g *Graph) CreateSystemFunction(fun NodeID, args []NodeID) NodeID {
	g.checkID(fun)
	g.checkIDs(args)
	children := make([]NodeID, 0, len(args)+1)
	children = append(children, fun)
	children = append(children, args...)
	return g.alloc(KindSystemFunction, children, 0)
}

// resolveDeclarator is the one place the graph inspects a kind at runtime.
// The grammar rule behind input/output/wire admits both a single identifier
// and an identifier list, so the factory must look at what id denotes:
// a list contributes its children, a single identifier contributes itself.
// Any other kind means the producer handed us an inconsistent tree.
func (g *Graph) resolveDeclarator(id NodeID) []NodeID {
	g.checkID(id)
	node := g.Node(id)
	switch node.Kind {
	case KindIdentifierList:
		if len(node.Children) == 0 {
			panic("ast: empty identifier list in declaration")
		}
		ids := make([]NodeID, len(node.Children))
		copy(ids, node.Children)
		return ids
	case KindIdentifier:
		return []NodeID{id}
	default:
		panic(fmt.Sprintf("ast: declaration expects identifier or identifier list, got %s (id %d)", node.Kind, id))
	}
}

// resolveRange reads the hi/lo bounds out of a range expression node.
func (g *Graph) resolveRange(rid NodeID) (hi, lo NodeID) {
	g.checkID(rid)
	node := g.Node(rid)
	if node.Kind != KindRangeExpression {
		panic(fmt.Sprintf("ast: declaration range expects range_expression, got %s (id %d)", node.Kind, rid))
	}
	return node.Children[0], node.Children[1]
}

func (g *Graph) createDecl(kind Kind, identifiers []NodeID, data DeclData) NodeID {
	p := g.decls.Allocate(data)
	return g.alloc(kind, identifiers, PayloadID(p))
}

// CreateInputDeclaration allocates a bit-level input declaration from an
// identifier or identifier-list id.
func (g *Graph) CreateInputDeclaration(id NodeID) NodeID {
	return g.createDecl(KindInputDeclaration, g.resolveDeclarator(id), DeclData{})
}

// CreateInputDeclarationWithRange allocates a word-level input declaration;
// rid must denote a range expression.
func (g *Graph) CreateInputDeclarationWithRange(id, rid NodeID) NodeID {
	hi, lo := g.resolveRange(rid)
	return g.createDecl(KindInputDeclaration, g.resolveDeclarator(id), DeclData{WordLevel: true, Hi: hi, Lo: lo})
}

// CreateOutputDeclaration allocates a bit-level output declaration.
func (g *Graph) CreateOutputDeclaration(id NodeID) NodeID {
	return g.createDecl(KindOutputDeclaration, g.resolveDeclarator(id), DeclData{})
}

// CreateOutputDeclarationWithRange allocates a word-level output declaration.
func (g *Graph) CreateOutputDeclarationWithRange(id, rid NodeID) NodeID {
	hi, lo := g.resolveRange(rid)
	return g.createDecl(KindOutputDeclaration, g.resolveDeclarator(id), DeclData{WordLevel: true, Hi: hi, Lo: lo})
}

// CreateWireDeclaration allocates a bit-level wire declaration.
func (g *Graph) CreateWireDeclaration(id NodeID) NodeID {
	return g.createDecl(KindWireDeclaration, g.resolveDeclarator(id), DeclData{})
}

// CreateWireDeclarationWithRange allocates a word-level wire declaration.
func (g *Graph) CreateWireDeclarationWithRange(id, rid NodeID) NodeID {
	hi, lo := g.resolveRange(rid)
	return g.createDecl(KindWireDeclaration, g.resolveDeclarator(id), DeclData{WordLevel: true, Hi: hi, Lo: lo})
}

// CreateModuleInstantiation allocates an instantiation of moduleName named
// instanceName with the given port bindings and parameter expressions.
func (g *Graph) CreateModuleInstantiation(moduleName, instanceName NodeID, ports []PortBinding, parameters []NodeID) NodeID {
	g.checkID(moduleName)
	g.checkID(instanceName)
	g.checkIDs(parameters)
	children := make([]NodeID, 0, 2+2*len(ports)+len(parameters))
	children = append(children, moduleName, instanceName)
	for _, pb := range ports {
		g.checkID(pb.Port)
		g.checkID(pb.Signal)
		children = append(children, pb.Port, pb.Signal)
	}
	children = append(children, parameters...)
	p := g.insts.Allocate(InstData{PortCount: uint32(len(ports))}) //nolint:gosec // port count is tiny
	return g.alloc(KindModuleInstantiation, children, PayloadID(p))
}

// CreateParameterDeclaration allocates `parameter identifier = expr`.
func (g *Graph) CreateParameterDeclaration(identifier, expr NodeID) NodeID {
	g.checkID(identifier)
	g.checkID(expr)
	return g.alloc(KindParameterDeclaration, []NodeID{identifier, expr}, 0)
}

// CreateAssignment allocates `assign signal = expr`.
func (g *Graph) CreateAssignment(signal, expr NodeID) NodeID {
	g.checkID(signal)
	g.checkID(expr)
	return g.alloc(KindAssignment, []NodeID{signal, expr}, 0)
}

// CreateModule allocates the module node over its port arguments and body
// declarations/statements, both order-preserving.
func (g *Graph) CreateModule(name string, args, decls []NodeID) NodeID {
	g.checkIDs(args)
	g.checkIDs(decls)
	children := make([]NodeID, 0, len(args)+len(decls))
	children = append(children, args...)
	children = append(children, decls...)
	p := g.modules.Allocate(ModuleData{Name: name, ArgCount: uint32(len(args))}) //nolint:gosec // arg count is tiny
	return g.alloc(KindModule, children, PayloadID(p))
}

// Dump writes a debug listing of every node: id, kind, children. The format
// is for humans only and not stable.
func (g *Graph) Dump(w io.Writer) {
	fmt.Fprintf(w, "#nodes = %d\n", g.Len())
	for id, node := range g.nodes.Slice() {
		fmt.Fprintf(w, "%d %s %v\n", id, node.Kind, node.Children)
	}
}
