package format

import (
	"errors"

	"github.com/JakobDegen/captures/internal/ast"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	builder *ast.Builder
	writer  *Writer
	opt     Options
}

// PrintExpr renders the expression rooted at id as source text. Blocks are
// laid out one statement per line; everything else prints on one line.
func PrintExpr(b *ast.Builder, id ast.ExprID, opt Options) ([]byte, error) {
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !id.IsValid() {
		return nil, errors.New("format: invalid expr id")
	}
	if b.Exprs.Get(id) == nil {
		return nil, errors.New("format: missing expr")
	}

	opt = opt.withDefaults()
	w := NewWriter(opt)
	pr := printer{
		builder: b,
		writer:  w,
		opt:     opt,
	}
	pr.printExpr(id)
	w.Newline()
	return w.Bytes(), nil
}
