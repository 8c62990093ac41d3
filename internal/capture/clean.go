package capture

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/source"
)

// Clean destructively retags every identifier in the closure body to the
// expansion's mixed context hy, except identifiers that currently name an
// unshadowed exempt upvar. Shadowing is respected: once a pattern rebinds an
// exempt name, uses of that name are local to the closure and are retagged
// until the binding's scope ends.
func Clean(b *ast.Builder, body ast.ExprID, exempt []source.StringID, hy source.Hygiene) {
	c := &cleaner{
		b:      b,
		hy:     hy,
		exempt: make(map[source.StringID]struct{}, len(exempt)),
	}
	for _, name := range exempt {
		c.exempt[name] = struct{}{}
	}
	c.visitExpr(body)
}

// cleaner holds the walk state. exempt contains the names that are
// *currently* exempt; names that are exempt but shadowed sit on the shadowed
// stack and return to exempt when their scope ends.
type cleaner struct {
	b        *ast.Builder
	hy       source.Hygiene
	exempt   map[source.StringID]struct{}
	shadowed []source.StringID
}

// mark returns the current shadow-stack depth for a scope entry.
func (c *cleaner) mark() int {
	return len(c.shadowed)
}

// pop restores every name shadowed since the mark back into the exempt set.
func (c *cleaner) pop(mark int) {
	for _, name := range c.shadowed[mark:] {
		c.exempt[name] = struct{}{}
	}
	c.shadowed = c.shadowed[:mark]
}

func (c *cleaner) visitExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	expr := c.b.Exprs.Get(id)

	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := c.b.Exprs.Ident(id)
		if _, ok := c.exempt[data.Name]; !ok {
			data.Hygiene = c.hy
		}

	case ast.ExprPath:
		// Multi-segment paths name globals; the suffix realization of
		// hygiene cannot rename those, so they keep call-site context.

	case ast.ExprLit, ast.ExprContinue:

	case ast.ExprUnary:
		data, _ := c.b.Exprs.Unary(id)
		c.visitExpr(data.Operand)

	case ast.ExprBinary:
		data, _ := c.b.Exprs.Binary(id)
		c.visitExpr(data.Left)
		c.visitExpr(data.Right)

	case ast.ExprCall:
		data, _ := c.b.Exprs.Call(id)
		c.visitExpr(data.Target)
		for _, arg := range data.Args {
			c.visitExpr(arg)
		}

	case ast.ExprField:
		// Field names are member names, not locals; only the target is
		// visited.
		data, _ := c.b.Exprs.Field(id)
		c.visitExpr(data.Target)

	case ast.ExprIndex:
		data, _ := c.b.Exprs.Index(id)
		c.visitExpr(data.Target)
		c.visitExpr(data.Index)

	case ast.ExprGroup:
		data, _ := c.b.Exprs.Group(id)
		c.visitExpr(data.Inner)

	case ast.ExprTuple:
		data, _ := c.b.Exprs.Tuple(id)
		for _, el := range data.Elements {
			c.visitExpr(el)
		}

	case ast.ExprArray:
		data, _ := c.b.Exprs.Array(id)
		for _, el := range data.Elements {
			c.visitExpr(el)
		}

	case ast.ExprRange:
		data, _ := c.b.Exprs.Range(id)
		c.visitExpr(data.Start)
		c.visitExpr(data.End)

	case ast.ExprBlock:
		data, _ := c.b.Exprs.Block(id)
		m := c.mark()
		for _, stmt := range data.Stmts {
			c.visitStmt(stmt)
		}
		c.pop(m)

	case ast.ExprIf:
		// The condition and then-branch share one shadow scope; the else
		// branch is visited after that scope closes. For `if let`, the bound
		// expression is visited before the pattern since that is the order
		// names come into scope.
		data, _ := c.b.Exprs.If(id)
		m := c.mark()
		c.visitExpr(data.Cond)
		c.visitPat(data.Pat)
		c.visitExpr(data.Then)
		c.pop(m)
		c.visitExpr(data.Else)

	case ast.ExprWhile:
		data, _ := c.b.Exprs.While(id)
		m := c.mark()
		c.visitExpr(data.Cond)
		c.visitPat(data.Pat)
		c.visitExpr(data.Body)
		c.pop(m)

	case ast.ExprFor:
		data, _ := c.b.Exprs.For(id)
		m := c.mark()
		c.visitPat(data.Pat)
		c.visitExpr(data.Iter)
		c.visitExpr(data.Body)
		c.pop(m)

	case ast.ExprLoop:
		data, _ := c.b.Exprs.Loop(id)
		c.visitExpr(data.Body)

	case ast.ExprMatch:
		data, _ := c.b.Exprs.Match(id)
		c.visitExpr(data.Scrutinee)
		for _, arm := range data.Arms {
			m := c.mark()
			c.visitPat(arm.Pat)
			c.visitExpr(arm.Guard)
			c.visitExpr(arm.Body)
			c.pop(m)
		}

	case ast.ExprClosure:
		// Nested closures are not a scope boundary for the shadow stack;
		// their bindings stay shadowed until the enclosing scope ends.
		data, _ := c.b.Exprs.Closure(id)
		for i := range data.Attrs {
			c.cleanTrees(data.Attrs[i].Args)
		}
		for _, param := range data.Params {
			c.visitPat(param.Pat)
		}
		c.visitExpr(data.Body)

	case ast.ExprMacroCall:
		// Tokens passed to macros are retagged wholesale. Exempt names lose
		// their exemption inside; without eager expansion this is the best
		// available approximation.
		data, _ := c.b.Exprs.MacroCall(id)
		c.cleanTrees(data.Body)

	case ast.ExprReturn:
		data, _ := c.b.Exprs.Return(id)
		c.visitExpr(data.Value)

	case ast.ExprBreak:
		data, _ := c.b.Exprs.Break(id)
		c.visitExpr(data.Value)
	}
}

func (c *cleaner) visitStmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	stmt := c.b.Stmts.Get(id)

	switch stmt.Kind {
	case ast.StmtLet:
		// Initializer before pattern: the binding is not in scope for its
		// own right-hand side.
		data, _ := c.b.Stmts.Let(id)
		c.visitExpr(data.Init)
		c.visitPat(data.Pat)

	case ast.StmtExpr:
		data, _ := c.b.Stmts.Expr(id)
		c.visitExpr(data.Expr)

	case ast.StmtEmpty:
	}
}

func (c *cleaner) visitPat(id ast.PatID) {
	if !id.IsValid() {
		return
	}
	pat := c.b.Pats.Get(id)

	switch pat.Kind {
	case ast.PatIdent:
		// The only binding-introduction site. A bound name that is
		// currently exempt becomes shadowed until the scope ends; the
		// binding ident itself is always retagged.
		data, _ := c.b.Pats.Ident(id)
		if _, ok := c.exempt[data.Name]; ok {
			delete(c.exempt, data.Name)
			c.shadowed = append(c.shadowed, data.Name)
		}
		data.Hygiene = c.hy

	case ast.PatWildcard:

	case ast.PatLit:
		data, _ := c.b.Pats.Lit(id)
		c.visitExpr(data.Value)

	case ast.PatTuple:
		data, _ := c.b.Pats.Tuple(id)
		for _, el := range data.Elements {
			c.visitPat(el)
		}

	case ast.PatRef:
		data, _ := c.b.Pats.Ref(id)
		c.visitPat(data.Inner)

	case ast.PatPath:
		// Path patterns name constants and variants, never locals.

	case ast.PatTupleStruct:
		data, _ := c.b.Pats.TupleStruct(id)
		for _, el := range data.Elements {
			c.visitPat(el)
		}
	}
}

// cleanTrees retags every identifier leaf in the trees, recursively through
// groups, ignoring the exempt set.
func (c *cleaner) cleanTrees(trees []ast.TokenTree) {
	for i := range trees {
		tt := &trees[i]
		switch tt.Kind {
		case ast.TTLeaf:
			if tt.Tok.IsIdent() {
				tt.Hygiene = c.hy
			}
		case ast.TTGroup:
			c.cleanTrees(tt.Children)
		}
	}
}
