package token

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota
	Error

	Ident    // foo
	SysIdent // $clog2
	Numeral  // 42, 8'b01010101, 4'hF

	// Keywords.
	KwModule
	KwEndmodule
	KwInput
	KwOutput
	KwWire
	KwAssign
	KwParameter

	// Punctuation and operators.
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Dot
	Hash
	Assign
	Tilde
	Amp
	Pipe
	Caret
	Plus
	Star
	Minus
)

var kindNames = [...]string{
	EOF:         "EOF",
	Error:       "Error",
	Ident:       "Ident",
	SysIdent:    "SysIdent",
	Numeral:     "Numeral",
	KwModule:    "module",
	KwEndmodule: "endmodule",
	KwInput:     "input",
	KwOutput:    "output",
	KwWire:      "wire",
	KwAssign:    "assign",
	KwParameter: "parameter",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	Comma:       ",",
	Semicolon:   ";",
	Colon:       ":",
	Dot:         ".",
	Hash:        "#",
	Assign:      "=",
	Tilde:       "~",
	Amp:         "&",
	Pipe:        "|",
	Caret:       "^",
	Plus:        "+",
	Star:        "*",
	Minus:       "-",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
