// Package driver orchestrates the pipeline phases over files on disk:
// tokenize, parse, expand, and the parallel directory variants. It owns the
// FileSet and Bag plumbing so the CLI stays thin.
package driver

import (
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

// TokenizeResult carries the token stream for one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and scans it to EOF, accumulating lexer diagnostics.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
