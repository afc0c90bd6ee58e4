package parser

import (
	"fmt"

	"vlog/internal/ast"
	"vlog/internal/diag"
	"vlog/internal/lexer"
	"vlog/internal/source"
	"vlog/internal/token"
)

// Options configures one parse run.
type Options struct {
	MaxErrors uint // 0 means unlimited
	Reporter  diag.Reporter
}

// Result is what one file parse produces: the graph that owns every node
// and the ids of the top-level modules, in source order.
type Result struct {
	Graph   *ast.Graph
	Modules []ast.NodeID
	Bag     *diag.Bag
}

// Parser holds the state for parsing one file. It drives the lexer and
// calls the graph factories bottom-up, so every child id it hands to a
// factory has already been issued.
type Parser struct {
	lx       *lexer.Lexer
	graph    *ast.Graph
	opts     Options
	errors   uint
	lastSpan source.Span
}

// ParseFile parses one file into graph. The graph is usually fresh but may
// be shared by several files of one compilation if the caller serializes
// the parses.
func ParseFile(lx *lexer.Lexer, graph *ast.Graph, opts Options) Result {
	p := Parser{
		lx:       lx,
		graph:    graph,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	modules := p.parseSourceText()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Graph: graph, Modules: modules, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) next() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of kind k or reports code and leaves the stream
// untouched.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind != k {
		p.report(code, tok.Span, fmt.Sprintf("expected %s, got %s", what, describe(tok)))
		return tok, false
	}
	return p.next(), true
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.tooManyErrors() {
		return
	}
	p.errors++
	diag.Error(p.opts.Reporter, code, sp, msg)
}

// reportWithNote is report plus secondary context spans.
func (p *Parser) reportWithNote(code diag.Code, sp source.Span, msg string, notes ...diag.Note) {
	if p.tooManyErrors() {
		return
	}
	p.errors++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, notes)
	}
}

func (p *Parser) tooManyErrors() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

// resyncItem skips to just past the next semicolon, or stops before
// endmodule/EOF, so one bad item does not take the rest of the module
// down with it.
func (p *Parser) resyncItem() {
	for {
		switch p.lx.Peek().Kind {
		case token.Semicolon:
			p.next()
			return
		case token.KwEndmodule, token.KwModule, token.EOF:
			return
		default:
			p.next()
		}
	}
}

// parseSourceText parses a sequence of module definitions. Redefining a
// module name is legal for the graph but almost always a paste mistake, so
// it gets a warning.
func (p *Parser) parseSourceText() []ast.NodeID {
	var modules []ast.NodeID
	seen := make(map[string]bool)
	for !p.at(token.EOF) {
		if p.tooManyErrors() {
			break
		}
		if !p.at(token.KwModule) {
			tok := p.next()
			p.report(diag.SynUnexpectedTopLevel, tok.Span,
				fmt.Sprintf("expected module, got %s", describe(tok)))
			continue
		}
		id, nameTok, ok := p.parseModule()
		if !ok {
			continue
		}
		modules = append(modules, id)
		if seen[nameTok.Text] {
			diag.Warning(p.opts.Reporter, diag.SynDuplicateModule, nameTok.Span,
				fmt.Sprintf("module %s is defined more than once", nameTok.Text))
		}
		seen[nameTok.Text] = true
	}
	return modules
}

// parseModule parses `module NAME ( ports ) ; items endmodule`. The name
// token comes back alongside the id so the caller can point at the header.
func (p *Parser) parseModule() (ast.NodeID, token.Token, bool) {
	p.next() // module

	nameTok, ok := p.expect(token.Ident, diag.SynExpectModuleHeader, "module name")
	if !ok {
		p.resyncItem()
		return 0, nameTok, false
	}

	args, ok := p.parsePortList()
	if !ok {
		p.resyncItem()
		return 0, nameTok, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after module header"); !ok {
		p.resyncItem()
	}

	var decls []ast.NodeID
	for !p.at(token.KwEndmodule) && !p.at(token.EOF) {
		if p.tooManyErrors() {
			break
		}
		if id, ok := p.parseItem(); ok {
			decls = append(decls, id)
		} else {
			p.resyncItem()
		}
	}

	if !p.at(token.KwEndmodule) {
		tok := p.lx.Peek()
		p.reportWithNote(diag.SynExpectEndmodule, tok.Span,
			fmt.Sprintf("expected endmodule, got %s", describe(tok)),
			diag.Note{Span: nameTok.Span, Msg: fmt.Sprintf("module %s starts here", nameTok.Text)})
		return 0, nameTok, false
	}
	p.next()
	return p.graph.CreateModule(nameTok.Text, args, decls), nameTok, true
}

// parsePortList parses `( [ident {, ident}] )`; port names are interned
// as plain identifiers.
func (p *Parser) parsePortList() ([]ast.NodeID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectModuleHeader, "'(' after module name"); !ok {
		return nil, false
	}
	var args []ast.NodeID
	if p.at(token.RParen) {
		p.next()
		return args, true
	}
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "port name")
		if !ok {
			return nil, false
		}
		args = append(args, p.graph.CreateIdentifier(tok.Text))
		if p.at(token.Comma) {
			p.next()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' after port list"); !ok {
		return nil, false
	}
	return args, true
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.SysIdent, token.Numeral:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}
