package ast

// Visitor is the hook set for kind-specific passes over a graph. Embed
// NoopVisitor and override only the kinds the pass cares about.
//
// Accept performs single-level dispatch only: it never descends into
// children. A full traversal is built by the caller out of Accept and
// Children, in whatever order the pass needs. Visitors must not mutate the
// graph structurally while a traversal over it is in progress.
type Visitor interface {
	VisitNumeral(n Numeral)
	VisitIdentifier(n Identifier)
	VisitArithmeticIdentifier(n Identifier)
	VisitIdentifierList(n IdentifierList)
	VisitArraySelect(n ArraySelect)
	VisitRangeExpression(n RangeExpression)
	VisitSign(n Sign)
	VisitExpression(n Expression)
	VisitSystemFunction(n SystemFunction)
	VisitInputDeclaration(n Declaration)
	VisitOutputDeclaration(n Declaration)
	VisitWireDeclaration(n Declaration)
	VisitModuleInstantiation(n ModuleInstantiation)
	VisitParameterDeclaration(n ParameterDeclaration)
	VisitAssignment(n Assignment)
	VisitModule(n Module)
}

// NoopVisitor implements every Visitor method as a no-op.
type NoopVisitor struct{}

func (NoopVisitor) VisitNumeral(Numeral)                           {}
func (NoopVisitor) VisitIdentifier(Identifier)                     {}
func (NoopVisitor) VisitArithmeticIdentifier(Identifier)           {}
func (NoopVisitor) VisitIdentifierList(IdentifierList)             {}
func (NoopVisitor) VisitArraySelect(ArraySelect)                   {}
func (NoopVisitor) VisitRangeExpression(RangeExpression)           {}
func (NoopVisitor) VisitSign(Sign)                                 {}
func (NoopVisitor) VisitExpression(Expression)                     {}
func (NoopVisitor) VisitSystemFunction(SystemFunction)             {}
func (NoopVisitor) VisitInputDeclaration(Declaration)              {}
func (NoopVisitor) VisitOutputDeclaration(Declaration)             {}
func (NoopVisitor) VisitWireDeclaration(Declaration)               {}
func (NoopVisitor) VisitModuleInstantiation(ModuleInstantiation)   {}
func (NoopVisitor) VisitParameterDeclaration(ParameterDeclaration) {}
func (NoopVisitor) VisitAssignment(Assignment)                     {}
func (NoopVisitor) VisitModule(Module)                             {}

// Accept routes the node at id to the visitor method matching its exact
// kind. The dispatch table is exhaustive over the closed kind set.
func (g *Graph) Accept(id NodeID, v Visitor) {
	switch g.Kind(id) {
	case KindNumeral:
		v.VisitNumeral(g.Numeral(id))
	case KindIdentifier:
		v.VisitIdentifier(g.Identifier(id))
	case KindArithmeticIdentifier:
		v.VisitArithmeticIdentifier(g.ArithmeticIdentifier(id))
	case KindIdentifierList:
		v.VisitIdentifierList(g.IdentifierList(id))
	case KindArraySelect:
		v.VisitArraySelect(g.ArraySelect(id))
	case KindRangeExpression:
		v.VisitRangeExpression(g.RangeExpression(id))
	case KindSign:
		v.VisitSign(g.Sign(id))
	case KindExpression:
		v.VisitExpression(g.Expression(id))
	case KindSystemFunction:
		v.VisitSystemFunction(g.SystemFunction(id))
	case KindInputDeclaration:
		v.VisitInputDeclaration(g.Declaration(id))
	case KindOutputDeclaration:
		v.VisitOutputDeclaration(g.Declaration(id))
	case KindWireDeclaration:
		v.VisitWireDeclaration(g.Declaration(id))
	case KindModuleInstantiation:
		v.VisitModuleInstantiation(g.ModuleInstantiation(id))
	case KindParameterDeclaration:
		v.VisitParameterDeclaration(g.ParameterDeclaration(id))
	case KindAssignment:
		v.VisitAssignment(g.Assignment(id))
	case KindModule:
		v.VisitModule(g.Module(id))
	}
}
