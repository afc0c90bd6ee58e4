package token

var keywords = map[string]Kind{
	"module":    KwModule,
	"endmodule": KwEndmodule,
	"input":     KwInput,
	"output":    KwOutput,
	"wire":      KwWire,
	"assign":    KwAssign,
	"parameter": KwParameter,
}

// LookupKeyword returns the keyword kind for text, or Ident if text is not
// a reserved word.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}
