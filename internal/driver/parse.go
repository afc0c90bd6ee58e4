// Package driver wires the frontend stages together: it loads files, runs
// the lexer and parser, and hands back graphs plus diagnostics. Commands
// talk to this package, never to the stages directly.
package driver

import (
	"vlog/internal/ast"
	"vlog/internal/diag"
	"vlog/internal/lexer"
	"vlog/internal/parser"
	"vlog/internal/source"
	"vlog/internal/token"
)

// DefaultMaxDiagnostics caps a run when the caller passes no limit.
const DefaultMaxDiagnostics = 100

// ParseResult is one file parsed into a fresh graph.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Graph   *ast.Graph
	Modules []ast.NodeID
	Bag     *diag.Bag
}

// Parse loads and parses a single file from disk.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseInto(fs, fileID, maxDiagnostics), nil
}

// ParseSource parses in-memory content under the given name (stdin, tests).
func ParseSource(name string, content []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseInto(fs, fileID, maxDiagnostics)
}

func parseInto(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *ParseResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	file := fs.Get(fileID)
	rep := diag.NewBagReporter(maxDiagnostics)
	lx := lexer.New(file, rep)

	res := parser.ParseFile(lx, ast.NewGraph(0), parser.Options{
		MaxErrors: uint(maxDiagnostics), //nolint:gosec // checked non-negative above
		Reporter:  rep,
	})
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Graph:   res.Graph,
		Modules: res.Modules,
		Bag:     res.Bag,
	}
}

// Tokenize loads a file and drains the lexer. The token slice always ends
// with the EOF token.
func Tokenize(path string, maxDiagnostics int) (*source.FileSet, []token.Token, *diag.Bag, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}

	rep := diag.NewBagReporter(maxDiagnostics)
	lx := lexer.New(fs.Get(fileID), rep)

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return fs, tokens, rep.Bag, nil
}
