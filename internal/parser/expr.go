package parser

import (
	"vlog/internal/ast"
	"vlog/internal/diag"
	"vlog/internal/token"
)

// Signal expressions appear on the right of assign and inside port
// bindings. Precedence, tightest first: ~, &, ^, |.

func (p *Parser) parseSignalExpr() (ast.NodeID, bool) {
	return p.parseOrExpr()
}

func (p *Parser) parseOrExpr() (ast.NodeID, bool) {
	left, ok := p.parseXorExpr()
	if !ok {
		return 0, false
	}
	for p.at(token.Pipe) {
		p.next()
		right, ok := p.parseXorExpr()
		if !ok {
			return 0, false
		}
		left = p.graph.CreateOrExpression(left, right)
	}
	return left, true
}

func (p *Parser) parseXorExpr() (ast.NodeID, bool) {
	left, ok := p.parseAndExpr()
	if !ok {
		return 0, false
	}
	for p.at(token.Caret) {
		p.next()
		right, ok := p.parseAndExpr()
		if !ok {
			return 0, false
		}
		left = p.graph.CreateXorExpression(left, right)
	}
	return left, true
}

func (p *Parser) parseAndExpr() (ast.NodeID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return 0, false
	}
	for p.at(token.Amp) {
		p.next()
		right, ok := p.parseUnaryExpr()
		if !ok {
			return 0, false
		}
		left = p.graph.CreateAndExpression(left, right)
	}
	return left, true
}

func (p *Parser) parseUnaryExpr() (ast.NodeID, bool) {
	if p.at(token.Tilde) {
		p.next()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return 0, false
		}
		return p.graph.CreateNotExpression(operand), true
	}
	return p.parseSignalPrimary()
}

func (p *Parser) parseSignalPrimary() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LParen:
		p.next()
		inner, ok := p.parseSignalExpr()
		if !ok {
			return 0, false
		}
		if _, ok = p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
			return 0, false
		}
		return inner, true

	case token.Numeral:
		p.next()
		return p.graph.CreateNumeral(tok.Text), true

	case token.Ident:
		p.next()
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

	default:
		p.report(diag.SynExpectExpression, tok.Span, "expected expression, got "+describe(tok))
		return 0, false
	}
}

// Arithmetic expressions appear in ranges, parameter initializers, and
// instantiation parameters. Precedence: unary -, then *, then +.
// Identifiers here are interned in the arithmetic namespace.

func (p *Parser) parseArithExpr() (ast.NodeID, bool) {
	left, ok := p.parseArithTerm()
	if !ok {
		return 0, false
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		negate := p.at(token.Minus)
		p.next()
		right, ok := p.parseArithTerm()
		if !ok {
			return 0, false
		}
		// a - b is a sum whose right operand carries a minus sign; the
		// node set has no subtraction operator.
		if negate {
			right = p.graph.CreateNegativeSign(right)
		}
		left = p.graph.CreateSumExpression(left, right)
	}
	return left, true
}

func (p *Parser) parseArithTerm() (ast.NodeID, bool) {
	left, ok := p.parseArithUnary()
	if !ok {
		return 0, false
	}
	for p.at(token.Star) {
		p.next()
		right, ok := p.parseArithUnary()
		if !ok {
			return 0, false
		}
		left = p.graph.CreateMulExpression(left, right)
	}
	return left, true
}

func (p *Parser) parseArithUnary() (ast.NodeID, bool) {
	if p.at(token.Minus) {
		p.next()
		operand, ok := p.parseArithUnary()
		if !ok {
			return 0, false
		}
		return p.graph.CreateNegativeSign(operand), true
	}
	return p.parseArithPrimary()
}

func (p *Parser) parseArithPrimary() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LParen:
		p.next()
		inner, ok := p.parseArithExpr()
		if !ok {
			return 0, false
		}
		if _, ok = p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
			return 0, false
		}
		return inner, true

	case token.Numeral:
		p.next()
		return p.graph.CreateNumeral(tok.Text), true

	case token.Ident:
		p.next()
		return p.graph.CreateArithmeticIdentifier(tok.Text), true

	case token.SysIdent:
		return p.parseSystemFunction()

	default:
		p.report(diag.SynExpectExpression, tok.Span, "expected arithmetic expression, got "+describe(tok))
		return 0, false
	}
}

// parseSystemFunction parses `$fun ( arith_expr {, arith_expr} )`.
func (p *Parser) parseSystemFunction() (ast.NodeID, bool) {
	funTok := p.next()
	fun := p.graph.CreateArithmeticIdentifier(funTok.Text)

	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "'(' after "+funTok.Text); !ok {
		return 0, false
	}
	var args []ast.NodeID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseArithExpr()
			if !ok {
				return 0, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.next()
				continue
			}
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' after arguments"); !ok {
		return 0, false
	}
	return p.graph.CreateSystemFunction(fun, args), true
}
