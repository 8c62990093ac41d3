package capture_test

import (
	"testing"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/capture"
	"github.com/JakobDegen/captures/internal/source"
)

// cleanBody parses src, runs Clean over the closure body with the given
// exempt names, and returns the builder plus the body expression.
func cleanBody(t *testing.T, src string, exempt ...string) (*ast.Builder, ast.ExprID, source.Hygiene) {
	t.Helper()
	b, in := parseCapture(t, src)
	closure, ok := b.Exprs.Closure(in.Closure)
	if !ok {
		t.Fatal("input has no closure")
	}
	ids := make([]source.StringID, len(exempt))
	for i, name := range exempt {
		ids[i] = b.Strings.Intern(name)
	}
	hy := source.FreshHygiene()
	capture.Clean(b, closure.Body, ids, hy)
	return b, closure.Body, hy
}

// identHygienes walks the expression tree and records the hygiene of every
// identifier expression by name, in visit order.
func identHygienes(b *ast.Builder, id ast.ExprID) []identRecord {
	w := &identWalker{b: b}
	w.expr(id)
	return w.out
}

type identRecord struct {
	Name string
	Hy   source.Hygiene
}

type identWalker struct {
	b   *ast.Builder
	out []identRecord
}

func (w *identWalker) expr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	b := w.b
	switch b.Exprs.Get(id).Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		w.out = append(w.out, identRecord{Name: b.Strings.MustLookup(data.Name), Hy: data.Hygiene})
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		w.expr(data.Operand)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		w.expr(data.Left)
		w.expr(data.Right)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		w.expr(data.Target)
		for _, arg := range data.Args {
			w.expr(arg)
		}
	case ast.ExprField:
		data, _ := b.Exprs.Field(id)
		w.expr(data.Target)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		w.expr(data.Target)
		w.expr(data.Index)
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		w.expr(data.Inner)
	case ast.ExprBlock:
		data, _ := b.Exprs.Block(id)
		for _, s := range data.Stmts {
			w.stmt(s)
		}
	case ast.ExprIf:
		data, _ := b.Exprs.If(id)
		w.expr(data.Cond)
		w.expr(data.Then)
		w.expr(data.Else)
	case ast.ExprFor:
		data, _ := b.Exprs.For(id)
		w.expr(data.Iter)
		w.expr(data.Body)
	case ast.ExprMatch:
		data, _ := b.Exprs.Match(id)
		w.expr(data.Scrutinee)
		for _, arm := range data.Arms {
			w.expr(arm.Guard)
			w.expr(arm.Body)
		}
	case ast.ExprClosure:
		data, _ := b.Exprs.Closure(id)
		w.expr(data.Body)
	case ast.ExprReturn:
		data, _ := b.Exprs.Return(id)
		w.expr(data.Value)
	}
}

func (w *identWalker) stmt(id ast.StmtID) {
	b := w.b
	switch b.Stmts.Get(id).Kind {
	case ast.StmtLet:
		data, _ := b.Stmts.Let(id)
		w.expr(data.Init)
	case ast.StmtExpr:
		data, _ := b.Stmts.Expr(id)
		w.expr(data.Expr)
	}
}

func assertHygienes(t *testing.T, b *ast.Builder, body ast.ExprID, hy source.Hygiene, want map[string][]bool) {
	t.Helper()
	// want maps name to the expected per-occurrence "is call-site" flags, in
	// visit order.
	seen := map[string]int{}
	for _, rec := range identHygienes(b, body) {
		i := seen[rec.Name]
		seen[rec.Name]++
		flags, ok := want[rec.Name]
		if !ok {
			t.Errorf("unexpected identifier %q", rec.Name)
			continue
		}
		if i >= len(flags) {
			t.Errorf("identifier %q appears more than %d times", rec.Name, len(flags))
			continue
		}
		if flags[i] && !rec.Hy.IsCallSite() {
			t.Errorf("%q occurrence %d: retagged, want call-site", rec.Name, i)
		}
		if !flags[i] && rec.Hy != hy {
			t.Errorf("%q occurrence %d: hygiene %d, want mixed %d", rec.Name, i, rec.Hy, hy)
		}
	}
	for name, flags := range want {
		if seen[name] != len(flags) {
			t.Errorf("identifier %q seen %d times, want %d", name, seen[name], len(flags))
		}
	}
}

func TestClean_ExemptSurvives(t *testing.T) {
	b, body, hy := cleanBody(t, "move || x + g", "g")
	assertHygienes(t, b, body, hy, map[string][]bool{
		"x": {false},
		"g": {true},
	})
}

func TestClean_LetShadowsExempt(t *testing.T) {
	// After `let g = g + 1`, g is a closure-local binding. The initializer
	// still sees the exempt upvar.
	b, body, hy := cleanBody(t, "move || { let g = g + 1; g }", "g")
	assertHygienes(t, b, body, hy, map[string][]bool{
		"g": {true, false},
	})
}

func TestClean_BlockScopeRestoresExemption(t *testing.T) {
	// The shadow ends with the inner block; the trailing g is the upvar
	// again.
	b, body, hy := cleanBody(t, "move || { { let g = 1; g }; g }", "g")
	assertHygienes(t, b, body, hy, map[string][]bool{
		"g": {false, true},
	})
}

func TestClean_MatchArmsScopeIndependently(t *testing.T) {
	// The first arm binds g; the second arm sees the exempt upvar again.
	src := "move || match v { Some(g) => g, None => g, }"
	b, body, hy := cleanBody(t, src, "g")
	assertHygienes(t, b, body, hy, map[string][]bool{
		"v": {false},
		"g": {false, true},
	})
}

func TestClean_IfLetScopesThenOnly(t *testing.T) {
	// `if let g = v { g } else { g }`: the binding covers the then branch,
	// the else branch sees the upvar.
	src := "move || if let g = v { g } else { g }"
	b, body, hy := cleanBody(t, src, "g")
	assertHygienes(t, b, body, hy, map[string][]bool{
		"v": {false},
		"g": {false, true},
	})
}

func TestClean_ForPatternShadows(t *testing.T) {
	src := "move || for g in xs { g }"
	b, body, hy := cleanBody(t, src, "g")
	assertHygienes(t, b, body, hy, map[string][]bool{
		"xs": {false},
		"g":  {false},
	})
}

func TestClean_NestedClosureParamShadows(t *testing.T) {
	// Nested closure params rebind g for the rest of the enclosing scope.
	src := "move || { f(|g| g); g }"
	b, body, hy := cleanBody(t, src, "g")
	assertHygienes(t, b, body, hy, map[string][]bool{
		"f": {false},
		"g": {false, false},
	})
}

func TestClean_MacroTokensRetaggedWholesale(t *testing.T) {
	b, body, hy := cleanBody(t, "move || log!(g, x)", "g")
	var check func(id ast.ExprID)
	check = func(id ast.ExprID) {
		if !id.IsValid() {
			return
		}
		switch b.Exprs.Get(id).Kind {
		case ast.ExprBlock:
			data, _ := b.Exprs.Block(id)
			for _, s := range data.Stmts {
				if se, ok := b.Stmts.Expr(s); ok {
					check(se.Expr)
				}
			}
		case ast.ExprMacroCall:
			data, _ := b.Exprs.MacroCall(id)
			for _, tt := range data.Body {
				if tt.Kind == ast.TTLeaf && tt.Tok.IsIdent() && tt.Hygiene != hy {
					t.Errorf("macro token %q kept hygiene %d", tt.Tok.Text, tt.Hygiene)
				}
			}
		}
	}
	check(body)
}

func TestClean_FieldNamesUntouched(t *testing.T) {
	b, body, hy := cleanBody(t, "move || s.len", "len")
	// Only the target s is an identifier expression; the field name is not
	// subject to hygiene at all.
	assertHygienes(t, b, body, hy, map[string][]bool{
		"s": {false},
	})
}

func TestClean_PathsUntouched(t *testing.T) {
	b, in := parseCapture(t, "move || Color::Red")
	closure, _ := b.Exprs.Closure(in.Closure)
	hy := source.FreshHygiene()
	capture.Clean(b, closure.Body, nil, hy)
	if got := identHygienes(b, closure.Body); len(got) != 0 {
		t.Errorf("path segments showed up as identifiers: %v", got)
	}
}

func TestClean_BindingPatternAlwaysRetagged(t *testing.T) {
	b, body, hy := cleanBody(t, "move || { let g = 1; g }", "g")
	// Locate the let pattern and confirm it carries the mixed context.
	block, _ := b.Exprs.Block(body)
	let, ok := b.Stmts.Let(block.Stmts[0])
	if !ok {
		t.Fatal("first statement is not a let")
	}
	pat, _ := b.Pats.Ident(let.Pat)
	if pat.Hygiene != hy {
		t.Errorf("binding hygiene = %d, want %d", pat.Hygiene, hy)
	}
}
