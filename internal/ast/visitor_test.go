package ast

import "testing"

// identCollector overrides only the identifier hook: sparse visitors embed
// NoopVisitor and pick the kinds they care about.
type identCollector struct {
	NoopVisitor
	names []string
}

func (c *identCollector) VisitIdentifier(n Identifier) {
	c.names = append(c.names, n.Name)
}

func TestSparseVisitorDispatch(t *testing.T) {
	g := NewGraph(0)
	a := g.CreateIdentifier("a")
	num := g.CreateNumeral("1")
	assign := g.CreateAssignment(a, num)

	c := &identCollector{}
	g.Accept(a, c)
	g.Accept(num, c)    // hits the no-op default
	g.Accept(assign, c) // must NOT recurse into the identifier child

	if len(c.names) != 1 || c.names[0] != "a" {
		t.Errorf("collected = %v, want [a]", c.names)
	}
}

type kindRecorder struct {
	NoopVisitor
	kinds []Kind
}

func (r *kindRecorder) VisitNumeral(Numeral)                 { r.kinds = append(r.kinds, KindNumeral) }
func (r *kindRecorder) VisitIdentifier(Identifier)           { r.kinds = append(r.kinds, KindIdentifier) }
func (r *kindRecorder) VisitIdentifierList(IdentifierList)   { r.kinds = append(r.kinds, KindIdentifierList) }
func (r *kindRecorder) VisitInputDeclaration(Declaration)    { r.kinds = append(r.kinds, KindInputDeclaration) }
func (r *kindRecorder) VisitOutputDeclaration(Declaration)   { r.kinds = append(r.kinds, KindOutputDeclaration) }
func (r *kindRecorder) VisitWireDeclaration(Declaration)     { r.kinds = append(r.kinds, KindWireDeclaration) }
func (r *kindRecorder) VisitModule(Module)                   { r.kinds = append(r.kinds, KindModule) }

func TestAcceptRoutesByExactKind(t *testing.T) {
	g := NewGraph(0)
	a := g.CreateIdentifier("a")
	b := g.CreateIdentifier("b")
	list := g.CreateIdentifierList([]NodeID{a, b})
	in := g.CreateInputDeclaration(a)
	out := g.CreateOutputDeclaration(b)
	wire := g.CreateWireDeclaration(list)
	mod := g.CreateModule("m", nil, []NodeID{in, out, wire})

	r := &kindRecorder{}
	for _, id := range []NodeID{a, list, in, out, wire, mod} {
		g.Accept(id, r)
	}

	want := []Kind{KindIdentifier, KindIdentifierList, KindInputDeclaration, KindOutputDeclaration, KindWireDeclaration, KindModule}
	if len(r.kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", r.kinds, want)
	}
	for i := range want {
		if r.kinds[i] != want[i] {
			t.Errorf("dispatch[%d] = %s, want %s", i, r.kinds[i], want[i])
		}
	}
}

// preorder shows the intended traversal construction: Accept + Children.
type preorder struct {
	g     *Graph
	v     Visitor
	order []NodeID
}

func (p *preorder) walk(id NodeID) {
	p.order = append(p.order, id)
	p.g.Accept(id, p.v)
	for _, child := range p.g.Children(id) {
		p.walk(child)
	}
}

func TestCallerDrivenTraversal(t *testing.T) {
	g := NewGraph(0)
	a := g.CreateIdentifier("a")
	b := g.CreateIdentifier("b")
	xor := g.CreateXorExpression(a, b)
	assign := g.CreateAssignment(a, xor)

	c := &identCollector{}
	p := &preorder{g: g, v: c}
	p.walk(assign)

	// Pre-order: assign, a, xor, a, b. The shared "a" node is visited at
	// every occurrence because the structure is a DAG.
	wantOrder := []NodeID{assign, a, xor, a, b}
	for i := range wantOrder {
		if p.order[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", p.order, wantOrder)
		}
	}
	if len(c.names) != 3 {
		t.Errorf("identifier visits = %d, want 3", len(c.names))
	}
}
