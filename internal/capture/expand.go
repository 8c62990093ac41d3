package capture

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
)

// Expansion is the result of expanding a capture input.
type Expansion struct {
	// Root is a block expression: the exterior let statements followed by
	// the closure as the trailing value.
	Root ast.ExprID
	// Hygiene is the mixed context allocated for this expansion. CallSite
	// when the expansion ran in transparent mode.
	Hygiene source.Hygiene
}

// Expand expands in transparent mode: exterior bindings keep the names the
// user wrote, and the closure body is left untouched. The closure then
// captures the rebindings by the usual shadowing rules.
func Expand(b *ast.Builder, in *parser.CaptureInput) Expansion {
	return expand(b, in, false)
}

// ExpandOnly expands in hygienic mode: exterior bindings are minted in a
// fresh context and the closure body is rewritten so that only the
// directive-named upvars resolve to call-site bindings. Everything else
// inside the closure refers to the expansion's own context.
func ExpandOnly(b *ast.Builder, in *parser.CaptureInput) Expansion {
	return expand(b, in, true)
}

func expand(b *ast.Builder, in *parser.CaptureInput, only bool) Expansion {
	hy := source.CallSite
	if only {
		hy = source.FreshHygiene()
	}

	changes := PlanChanges(b, in, only, hy)

	closure, ok := b.Exprs.Closure(in.Closure)
	if ok {
		if only {
			Clean(b, closure.Body, changes.Exempt, hy)
		}
		closure.Body = wrapBody(b, changes.Interior, closure.Body)
	}

	outer := b.Exprs.Get(in.Closure)
	span := source.Span{}
	if outer != nil {
		span = outer.Span
	}

	stmts := make([]ast.StmtID, 0, len(changes.Exterior)+1)
	stmts = append(stmts, changes.Exterior...)
	stmts = append(stmts, b.Stmts.NewExpr(span, in.Closure, false))
	root := b.Exprs.NewBlock(span, stmts)
	return Expansion{Root: root, Hygiene: hy}
}

// wrapBody rewraps the closure body in a block so the interior statements run
// once per call, before the body. The body is wrapped even when interior is
// empty so the printed expansion always has block form.
func wrapBody(b *ast.Builder, interior []ast.StmtID, body ast.ExprID) ast.ExprID {
	span := source.Span{}
	if expr := b.Exprs.Get(body); expr != nil {
		span = expr.Span
	}
	stmts := make([]ast.StmtID, 0, len(interior)+1)
	stmts = append(stmts, interior...)
	stmts = append(stmts, b.Stmts.NewExpr(span, body, false))
	return b.Exprs.NewBlock(span, stmts)
}
