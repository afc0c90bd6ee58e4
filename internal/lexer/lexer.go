package lexer

import (
	"fmt"

	"vlog/internal/diag"
	"vlog/internal/source"
	"vlog/internal/token"
)

// Lexer turns one Verilog source file into a token stream. It keeps a
// one-token lookahead buffer for the parser's Peek.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
	look     *token.Token
}

// New creates a lexer over file, reporting lexical problems to r.
func New(file *source.File, r diag.Reporter) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: r,
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.Span(lx.cursor.Off)}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumeral()
	case ch == '$':
		return lx.scanSysIdent()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.cursor.Span(lx.cursor.Off)
}

// skipTrivia consumes whitespace and // and /* */ comments. An unterminated
// block comment is reported and consumes the rest of the file.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Advance()
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Advance()
			}
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			start := lx.cursor.Off
			lx.cursor.Advance()
			lx.cursor.Advance()
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.Advance()
					lx.cursor.Advance()
					closed = true
					break
				}
				lx.cursor.Advance()
			}
			if !closed {
				diag.Error(lx.reporter, diag.LexUnterminatedBlockComment, lx.cursor.Span(start),
					"unterminated block comment")
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Advance()
	}
	span := lx.cursor.Span(start)
	text := string(lx.file.Content[span.Start:span.End])
	return token.Token{Kind: token.LookupKeyword(text), Span: span, Text: text}
}

// scanNumeral accepts plain decimal literals and based literals of the
// form <size>'<base><digits>, e.g. 8'b01010101 or 4'hF.
func (lx *Lexer) scanNumeral() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Advance()
	}

	if lx.cursor.Peek() == '\'' {
		base := lx.cursor.PeekAt(1)
		if !isBaseChar(base) {
			lx.cursor.Advance() // consume the quote so we make progress
			span := lx.cursor.Span(start)
			diag.Error(lx.reporter, diag.LexBadNumber, span,
				fmt.Sprintf("expected base after ' in sized literal, got %q", rune(base)))
			return token.Token{Kind: token.Error, Span: span, Text: string(lx.file.Content[span.Start:span.End])}
		}
		lx.cursor.Advance() // '
		lx.cursor.Advance() // base char
		digits := 0
		for !lx.cursor.EOF() && isBaseDigit(lx.cursor.Peek()) {
			lx.cursor.Advance()
			digits++
		}
		if digits == 0 {
			span := lx.cursor.Span(start)
			diag.Error(lx.reporter, diag.LexBadNumber, span, "sized literal has no digits")
			return token.Token{Kind: token.Error, Span: span, Text: string(lx.file.Content[span.Start:span.End])}
		}
	}

	span := lx.cursor.Span(start)
	return token.Token{Kind: token.Numeral, Span: span, Text: string(lx.file.Content[span.Start:span.End])}
}

func (lx *Lexer) scanSysIdent() token.Token {
	start := lx.cursor.Off
	lx.cursor.Advance() // $
	if !isIdentStart(lx.cursor.Peek()) {
		span := lx.cursor.Span(start)
		diag.Error(lx.reporter, diag.LexBadSysIdent, span, "expected identifier after $")
		return token.Token{Kind: token.Error, Span: span, Text: "$"}
	}
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Advance()
	}
	span := lx.cursor.Span(start)
	return token.Token{Kind: token.SysIdent, Span: span, Text: string(lx.file.Content[span.Start:span.End])}
}

var punctKinds = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'.': token.Dot,
	'#': token.Hash,
	'=': token.Assign,
	'~': token.Tilde,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'+': token.Plus,
	'*': token.Star,
	'-': token.Minus,
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Peek()
	lx.cursor.Advance()
	span := lx.cursor.Span(start)
	text := string(lx.file.Content[span.Start:span.End])

	if kind, ok := punctKinds[ch]; ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	diag.Error(lx.reporter, diag.LexUnknownChar, span, fmt.Sprintf("unknown character %q", rune(ch)))
	return token.Token{Kind: token.Error, Span: span, Text: text}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDec(ch)
}

func isDec(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isBaseChar(ch byte) bool {
	switch ch {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	}
	return false
}

func isBaseDigit(ch byte) bool {
	return isDec(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') ||
		ch == 'x' || ch == 'X' || ch == 'z' || ch == 'Z' || ch == '_'
}
