package driver

import (
	"fortio.org/safecast"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
)

// ParseResult carries the parsed capture input for one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Input   parser.CaptureInput
	OK      bool
	Bag     *diag.Bag
}

// Parse loads path and parses it as a capture input: zero or more directives
// followed by a closure. All recoverable syntax problems land in Bag.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	builder := ast.NewBuilder(ast.Hints{})

	input, ok, err := parseFile(file, builder, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Input:   input,
		OK:      ok,
		Bag:     bag,
	}, nil
}

func parseFile(file *source.File, builder *ast.Builder, bag *diag.Bag, maxDiagnostics int) (parser.CaptureInput, bool, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return parser.CaptureInput{}, false, err
	}

	lx := lexer.New(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	opts := parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}

	input, _, ok := parser.ParseCaptureInput(file, lx, builder, opts)
	return input, ok, nil
}
