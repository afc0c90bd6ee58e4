package parser

import (
	"fmt"

	"vlog/internal/ast"
	"vlog/internal/diag"
	"vlog/internal/token"
)

// parseItem parses one module body item. The leading token decides:
// input/output/wire start a declaration, parameter and assign their
// statements, and a bare identifier starts a module instantiation.
func (p *Parser) parseItem() (ast.NodeID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwInput, token.KwOutput, token.KwWire:
		return p.parseNetDeclaration()
	case token.KwParameter:
		return p.parseParameterDeclaration()
	case token.KwAssign:
		return p.parseAssignment()
	case token.Ident:
		return p.parseInstantiation()
	default:
		tok := p.lx.Peek()
		p.report(diag.SynUnexpectedToken, tok.Span,
			fmt.Sprintf("expected declaration, assign, or instantiation, got %s", describe(tok)))
		return 0, false
	}
}

// parseNetDeclaration parses `input|output|wire [range] ident {, ident} ;`.
// The declarator is built first (single identifier or identifier list) and
// then resolved by the matching graph factory.
func (p *Parser) parseNetDeclaration() (ast.NodeID, bool) {
	kw := p.next()

	var rangeID ast.NodeID
	hasRange := false
	if p.at(token.LBracket) {
		var ok bool
		if rangeID, ok = p.parseRange(); !ok {
			return 0, false
		}
		hasRange = true
	}

	declarator, ok := p.parseDeclarator()
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after declaration"); !ok {
		return 0, false
	}

	var id ast.NodeID
	switch kw.Kind {
	case token.KwInput:
		if hasRange {
			id = p.graph.CreateInputDeclarationWithRange(declarator, rangeID)
		} else {
			id = p.graph.CreateInputDeclaration(declarator)
		}
	case token.KwOutput:
		if hasRange {
			id = p.graph.CreateOutputDeclarationWithRange(declarator, rangeID)
		} else {
			id = p.graph.CreateOutputDeclaration(declarator)
		}
	default: // token.KwWire
		if hasRange {
			id = p.graph.CreateWireDeclarationWithRange(declarator, rangeID)
		} else {
			id = p.graph.CreateWireDeclaration(declarator)
		}
	}
	return id, true
}

// parseDeclarator parses `ident {, ident}` and returns either the single
// identifier id or an identifier-list id, exactly the two shapes the
// declaration factories resolve.
func (p *Parser) parseDeclarator() (ast.NodeID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if !ok {
		return 0, false
	}
	first := p.graph.CreateIdentifier(tok.Text)
	if !p.at(token.Comma) {
		return first, true
	}

	ids := []ast.NodeID{first}
	for p.at(token.Comma) {
		p.next()
		tok, ok = p.expect(token.Ident, diag.SynExpectIdentifier, "identifier after ','")
		if !ok {
			return 0, false
		}
		ids = append(ids, p.graph.CreateIdentifier(tok.Text))
	}
	return p.graph.CreateIdentifierList(ids), true
}

// parseRange parses `[ hi : lo ]` with arithmetic bound expressions.
func (p *Parser) parseRange() (ast.NodeID, bool) {
	p.next() // [
	hi, ok := p.parseArithExpr()
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.Colon, diag.SynExpectRangeColon, "':' in range"); !ok {
		return 0, false
	}
	lo, ok := p.parseArithExpr()
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.RBracket, diag.SynUnclosedBracket, "']' after range"); !ok {
		return 0, false
	}
	return p.graph.CreateRangeExpression(hi, lo), true
}

// parseParameterDeclaration parses `parameter NAME = arith_expr ;`.
func (p *Parser) parseParameterDeclaration() (ast.NodeID, bool) {
	p.next() // parameter

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.Assign, diag.SynExpectParameterInit, "'=' after parameter name"); !ok {
		return 0, false
	}
	expr, ok := p.parseArithExpr()
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after parameter"); !ok {
		return 0, false
	}
	name := p.graph.CreateArithmeticIdentifier(nameTok.Text)
	return p.graph.CreateParameterDeclaration(name, expr), true
}

// parseAssignment parses `assign lvalue = signal_expr ;`.
func (p *Parser) parseAssignment() (ast.NodeID, bool) {
	p.next() // assign

	target, ok := p.parseLValue()
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.Assign, diag.SynExpectAssignTarget, "'=' in assign"); !ok {
		return 0, false
	}
	expr, ok := p.parseSignalExpr()
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after assign"); !ok {
		return 0, false
	}
	return p.graph.CreateAssignment(target, expr), true
}

// parseLValue parses `ident` or `ident[expr]`.
func (p *Parser) parseLValue() (ast.NodeID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectAssignTarget, "assignment target")
	if !ok {
		return 0, false
	}
	id := p.graph.CreateIdentifier(tok.Text)
	if !p.at(token.LBracket) {
		return id, true
	}
	p.next()
	index, ok := p.parseSignalExpr()
	if !ok {
		return 0, false
	}
	if _, ok = p.expect(token.RBracket, diag.SynUnclosedBracket, "']' after select"); !ok {
		return 0, false
	}
	return p.graph.CreateArraySelect(id, index), true
}

// parseInstantiation parses
// `MODULE [#( params )] INSTANCE ( .port(signal) {, .port(signal)} ) ;`.
func (p *Parser) parseInstantiation() (ast.NodeID, bool) {
	modTok := p.next()
	moduleName := p.graph.CreateIdentifier(modTok.Text)

	var params []ast.NodeID
	if p.at(token.Hash) {
		p.next()
		if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "'(' after #"); !ok {
			return 0, false
		}
		for {
			expr, ok := p.parseArithExpr()
			if !ok {
				return 0, false
			}
			params = append(params, expr)
			if p.at(token.Comma) {
				p.next()
				continue
			}
			break
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' after parameters"); !ok {
			return 0, false
		}
	}

	instTok, ok := p.expect(token.Ident, diag.SynExpectInstanceName, "instance name")
	if !ok {
		return 0, false
	}
	instanceName := p.graph.CreateIdentifier(instTok.Text)

	if _, ok = p.expect(token.LParen, diag.SynUnclosedParen, "'(' before port bindings"); !ok {
		return 0, false
	}
	var ports []ast.PortBinding
	if !p.at(token.RParen) {
		for {
			binding, ok := p.parsePortBinding()
			if !ok {
				return 0, false
			}
			ports = append(ports, binding)
			if p.at(token.Comma) {
				p.next()
				continue
			}
			break
		}
	}
	if _, ok = p.expect(token.RParen, diag.SynUnclosedParen, "')' after port bindings"); !ok {
		return 0, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after instantiation"); !ok {
		return 0, false
	}
	return p.graph.CreateModuleInstantiation(moduleName, instanceName, ports, params), true
}

// parsePortBinding parses `.port ( signal_expr )`.
func (p *Parser) parsePortBinding() (ast.PortBinding, bool) {
	if _, ok := p.expect(token.Dot, diag.SynExpectPortBinding, "'.' before port name"); !ok {
		return ast.PortBinding{}, false
	}
	portTok, ok := p.expect(token.Ident, diag.SynExpectPortBinding, "port name")
	if !ok {
		return ast.PortBinding{}, false
	}
	if _, ok = p.expect(token.LParen, diag.SynExpectPortBinding, "'(' after port name"); !ok {
		return ast.PortBinding{}, false
	}
	signal, ok := p.parseSignalExpr()
	if !ok {
		return ast.PortBinding{}, false
	}
	if _, ok = p.expect(token.RParen, diag.SynUnclosedParen, "')' after port binding"); !ok {
		return ast.PortBinding{}, false
	}
	return ast.PortBinding{Port: p.graph.CreateIdentifier(portTok.Text), Signal: signal}, true
}
