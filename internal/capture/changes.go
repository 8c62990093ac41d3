// Package capture turns parsed capture directives into an expanded block
// expression. The expansion has the shape:
//
//	{
//	    let x = Clone::clone(&x);  // for `clone x`
//	    let y = &mut y;            // for `ref mut y`
//	    let w = expr;              // for `with w = expr`
//
//	    move |old_sig| {
//	        let _ = &b;            // for `all b`
//	        old_body
//	    }
//	}
package capture

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
)

// Changes is the planned rewrite for one invocation: exterior let statements
// placed before the closure, interior marker statements prefixed to its body,
// and the names exempt from hygiene cleaning.
type Changes struct {
	Exterior []ast.StmtID
	Interior []ast.StmtID
	Exempt   []source.StringID
}

// PlanChanges builds the rewrite plan. It allocates new AST nodes but reports
// no diagnostics; directive validation already happened in the parser.
//
// The let binding on the left-hand side gets the expansion's mixed context
// when only is set, call-site hygiene otherwise. Right-hand side references
// to the upvar always keep call-site hygiene so they resolve at the
// invocation site.
func PlanChanges(b *ast.Builder, in *parser.CaptureInput, only bool, hy source.Hygiene) Changes {
	var ch Changes

	bindingHy := source.CallSite
	if only {
		bindingHy = hy
	}

	for _, d := range in.Assigned {
		// For ref directives the mutability belongs to the reference, never
		// to the binding itself.
		bindingMut := d.Mut && d.Kind != parser.DirectiveRef
		pat := b.Pats.NewIdent(d.NameSpan, d.Name, false, bindingMut)
		if data, ok := b.Pats.Ident(pat); ok {
			data.Hygiene = bindingHy
		}

		var init ast.ExprID
		switch d.Kind {
		case parser.DirectiveClone:
			// Clone::clone(&x)
			upvar := b.Exprs.NewIdent(d.NameSpan, d.Name)
			ref := b.Exprs.NewUnary(d.NameSpan, ast.ExprUnaryRef, upvar)
			clonePath := b.Exprs.NewPath(d.KeywordSpan, []ast.PathSeg{
				{Name: b.Strings.Intern("Clone"), Span: d.KeywordSpan},
				{Name: b.Strings.Intern("clone"), Span: d.KeywordSpan},
			})
			init = b.Exprs.NewCall(d.KeywordSpan.Cover(d.NameSpan), clonePath, []ast.ExprID{ref}, false)

		case parser.DirectiveWith:
			init = d.Expr

		case parser.DirectiveRef:
			op := ast.ExprUnaryRef
			if d.Mut {
				op = ast.ExprUnaryRefMut
			}
			upvar := b.Exprs.NewIdent(d.NameSpan, d.Name)
			init = b.Exprs.NewUnary(d.KeywordSpan.Cover(d.NameSpan), op, upvar)
		}

		span := d.KeywordSpan.Cover(d.NameSpan)
		if d.Kind == parser.DirectiveWith && init.IsValid() {
			span = d.KeywordSpan.Cover(b.Exprs.Get(init).Span)
		}
		ch.Exterior = append(ch.Exterior, b.Stmts.NewLet(span, pat, nil, init))
	}

	for _, d := range in.All {
		ch.Exempt = append(ch.Exempt, d.Name)

		// let _ = &x;
		upvar := b.Exprs.NewIdent(d.NameSpan, d.Name)
		ref := b.Exprs.NewUnary(d.NameSpan, ast.ExprUnaryRef, upvar)
		wild := b.Pats.NewWildcard(d.NameSpan)
		span := d.KeywordSpan.Cover(d.NameSpan)
		ch.Interior = append(ch.Interior, b.Stmts.NewLet(span, wild, nil, ref))
	}

	return ch
}
