package token

import (
	"vlog/internal/source"
)

// Token is a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwModule, KwEndmodule, KwInput, KwOutput, KwWire, KwAssign, KwParameter:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is a plain identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsOperator reports whether the token can start or continue an expression
// operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Tilde, Amp, Pipe, Caret, Plus, Star, Minus:
		return true
	default:
		return false
	}
}
