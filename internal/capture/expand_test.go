package capture_test

import (
	"testing"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/capture"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
)

func parseCapture(t *testing.T, src string) (*ast.Builder, parser.CaptureInput) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cap", []byte(src)))

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})

	in, _, ok := parser.ParseCaptureInput(file, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: 64,
	})
	if !ok {
		var msgs []string
		for _, d := range bag.Items() {
			msgs = append(msgs, d.Message)
		}
		t.Fatalf("parse of %q failed: %v", src, msgs)
	}
	return builder, in
}

// rootStmts unwraps the expansion's outer block.
func rootStmts(t *testing.T, b *ast.Builder, exp capture.Expansion) []ast.StmtID {
	t.Helper()
	block, ok := b.Exprs.Block(exp.Root)
	if !ok {
		t.Fatal("expansion root is not a block")
	}
	return block.Stmts
}

// closureOf returns the closure stored in the expansion's trailing statement.
func closureOf(t *testing.T, b *ast.Builder, exp capture.Expansion) *ast.ExprClosureData {
	t.Helper()
	stmts := rootStmts(t, b, exp)
	if len(stmts) == 0 {
		t.Fatal("empty expansion block")
	}
	tail, ok := b.Stmts.Expr(stmts[len(stmts)-1])
	if !ok {
		t.Fatal("trailing statement is not an expression")
	}
	closure, ok := b.Exprs.Closure(tail.Expr)
	if !ok {
		t.Fatal("trailing expression is not a closure")
	}
	return closure
}

func letOf(t *testing.T, b *ast.Builder, id ast.StmtID) (*ast.PatIdentData, ast.ExprID) {
	t.Helper()
	let, ok := b.Stmts.Let(id)
	if !ok {
		t.Fatal("statement is not a let")
	}
	pat, ok := b.Pats.Ident(let.Pat)
	if !ok {
		t.Fatal("let pattern is not an identifier")
	}
	return pat, let.Init
}

func TestExpand_CloneDirective(t *testing.T) {
	b, in := parseCapture(t, "clone x, move || x")
	exp := capture.Expand(b, &in)

	if !exp.Hygiene.IsCallSite() {
		t.Error("transparent expansion must not allocate a hygiene context")
	}

	stmts := rootStmts(t, b, exp)
	if len(stmts) != 2 {
		t.Fatalf("root statement count = %d, want 2", len(stmts))
	}

	pat, init := letOf(t, b, stmts[0])
	if got := b.Strings.MustLookup(pat.Name); got != "x" {
		t.Errorf("binding name = %q, want x", got)
	}
	if !pat.Hygiene.IsCallSite() {
		t.Error("transparent binding must keep call-site hygiene")
	}
	if pat.Mut {
		t.Error("clone without mut must bind immutably")
	}

	// init is Clone::clone(&x)
	call, ok := b.Exprs.Call(init)
	if !ok {
		t.Fatal("clone init is not a call")
	}
	path, ok := b.Exprs.Path(call.Target)
	if !ok || len(path.Segments) != 2 {
		t.Fatal("clone call target is not a two-segment path")
	}
	if b.Strings.MustLookup(path.Segments[0].Name) != "Clone" ||
		b.Strings.MustLookup(path.Segments[1].Name) != "clone" {
		t.Error("clone call target is not Clone::clone")
	}
	if len(call.Args) != 1 {
		t.Fatalf("clone call arg count = %d, want 1", len(call.Args))
	}
	un, ok := b.Exprs.Unary(call.Args[0])
	if !ok || un.Op != ast.ExprUnaryRef {
		t.Fatal("clone argument is not &upvar")
	}
	arg, ok := b.Exprs.Ident(un.Operand)
	if !ok || b.Strings.MustLookup(arg.Name) != "x" {
		t.Error("clone argument does not reference the upvar")
	}
	if !arg.Hygiene.IsCallSite() {
		t.Error("upvar reference must stay call-site")
	}
}

func TestExpand_RefDirective(t *testing.T) {
	tests := []struct {
		src    string
		wantOp ast.ExprUnaryOp
	}{
		{"ref x, move || x", ast.ExprUnaryRef},
		{"ref mut x, move || x", ast.ExprUnaryRefMut},
	}
	for _, tt := range tests {
		b, in := parseCapture(t, tt.src)
		exp := capture.Expand(b, &in)
		stmts := rootStmts(t, b, exp)

		pat, init := letOf(t, b, stmts[0])
		// The mutability belongs to the reference, not the binding.
		if pat.Mut {
			t.Errorf("%q: ref binding must not be mut", tt.src)
		}
		un, ok := b.Exprs.Unary(init)
		if !ok {
			t.Fatalf("%q: ref init is not a unary expression", tt.src)
		}
		if un.Op != tt.wantOp {
			t.Errorf("%q: op = %v, want %v", tt.src, un.Op, tt.wantOp)
		}
	}
}

func TestExpand_CloneMutBindsMut(t *testing.T) {
	b, in := parseCapture(t, "clone mut x, move || x")
	exp := capture.Expand(b, &in)
	pat, _ := letOf(t, b, rootStmts(t, b, exp)[0])
	if !pat.Mut {
		t.Error("clone mut must bind mutably")
	}
}

func TestExpand_WithDirective(t *testing.T) {
	b, in := parseCapture(t, "with doubled = n * 2, move || doubled")
	exp := capture.Expand(b, &in)

	_, init := letOf(t, b, rootStmts(t, b, exp)[0])
	if init != in.Assigned[0].Expr {
		t.Error("with init must reuse the parsed directive expression")
	}
	bin, ok := b.Exprs.Binary(init)
	if !ok || bin.Op != ast.ExprBinaryMul {
		t.Error("with init lost its expression shape")
	}
}

func TestExpand_DirectiveOrderPreserved(t *testing.T) {
	b, in := parseCapture(t, "clone a, ref b, with c = a, move || c")
	exp := capture.Expand(b, &in)
	stmts := rootStmts(t, b, exp)
	if len(stmts) != 4 {
		t.Fatalf("root statement count = %d, want 4", len(stmts))
	}
	wantNames := []string{"a", "b", "c"}
	for i, want := range wantNames {
		pat, _ := letOf(t, b, stmts[i])
		if got := b.Strings.MustLookup(pat.Name); got != want {
			t.Errorf("binding %d = %q, want %q", i, got, want)
		}
	}
}

func TestExpand_AllDirectiveInterior(t *testing.T) {
	b, in := parseCapture(t, "all g, move || g + 1")
	exp := capture.Expand(b, &in)

	closure := closureOf(t, b, exp)
	body, ok := b.Exprs.Block(closure.Body)
	if !ok {
		t.Fatal("closure body was not rewrapped in a block")
	}
	if len(body.Stmts) != 2 {
		t.Fatalf("body statement count = %d, want 2", len(body.Stmts))
	}

	// let _ = &g;
	let, ok := b.Stmts.Let(body.Stmts[0])
	if !ok {
		t.Fatal("interior statement is not a let")
	}
	if b.Pats.Get(let.Pat).Kind != ast.PatWildcard {
		t.Error("interior binding must be a wildcard")
	}
	un, ok := b.Exprs.Unary(let.Init)
	if !ok || un.Op != ast.ExprUnaryRef {
		t.Fatal("interior init is not &upvar")
	}
	id, ok := b.Exprs.Ident(un.Operand)
	if !ok || b.Strings.MustLookup(id.Name) != "g" {
		t.Error("interior init does not reference the all upvar")
	}
}

func TestExpand_BodyAlwaysRewrapped(t *testing.T) {
	b, in := parseCapture(t, "move || x")
	exp := capture.Expand(b, &in)
	closure := closureOf(t, b, exp)
	if _, ok := b.Exprs.Block(closure.Body); !ok {
		t.Error("closure body must be a block even without interior statements")
	}
}

func TestExpandOnly_AllocatesFreshContext(t *testing.T) {
	b, in := parseCapture(t, "clone x, move || x")
	exp := capture.ExpandOnly(b, &in)
	if exp.Hygiene.IsCallSite() {
		t.Fatal("hygienic expansion must allocate a fresh context")
	}

	b2, in2 := parseCapture(t, "clone x, move || x")
	exp2 := capture.ExpandOnly(b2, &in2)
	if exp.Hygiene == exp2.Hygiene {
		t.Error("two expansions share a hygiene context")
	}
}

func TestExpandOnly_BindingAndBodyShareContext(t *testing.T) {
	b, in := parseCapture(t, "clone x, move || x + y")
	exp := capture.ExpandOnly(b, &in)

	pat, _ := letOf(t, b, rootStmts(t, b, exp)[0])
	if pat.Hygiene != exp.Hygiene {
		t.Errorf("binding hygiene = %d, want %d", pat.Hygiene, exp.Hygiene)
	}

	// Body: { x + y } with both identifiers retagged.
	closure := closureOf(t, b, exp)
	body, _ := b.Exprs.Block(closure.Body)
	tail, _ := b.Stmts.Expr(body.Stmts[len(body.Stmts)-1])
	bin, ok := b.Exprs.Binary(tail.Expr)
	if !ok {
		t.Fatal("body tail is not the binary expression")
	}
	for _, side := range []ast.ExprID{bin.Left, bin.Right} {
		id, ok := b.Exprs.Ident(side)
		if !ok {
			t.Fatal("operand is not an identifier")
		}
		if id.Hygiene != exp.Hygiene {
			t.Errorf("body identifier %q hygiene = %d, want %d",
				b.Strings.MustLookup(id.Name), id.Hygiene, exp.Hygiene)
		}
	}
}

func TestExpandOnly_AllNamesStayCallSite(t *testing.T) {
	b, in := parseCapture(t, "clone x, all g, move || x + g")
	exp := capture.ExpandOnly(b, &in)

	closure := closureOf(t, b, exp)
	body, _ := b.Exprs.Block(closure.Body)
	tail, _ := b.Stmts.Expr(body.Stmts[len(body.Stmts)-1])
	bin, _ := b.Exprs.Binary(tail.Expr)

	left, _ := b.Exprs.Ident(bin.Left)
	if left.Hygiene != exp.Hygiene {
		t.Error("directive upvar in body must carry the mixed context")
	}
	right, _ := b.Exprs.Ident(bin.Right)
	if !right.Hygiene.IsCallSite() {
		t.Error("all-exempt name must keep call-site hygiene")
	}
}

func TestExpand_TransparentLeavesBodyAlone(t *testing.T) {
	b, in := parseCapture(t, "clone x, move || x + y")
	exp := capture.Expand(b, &in)

	closure := closureOf(t, b, exp)
	body, _ := b.Exprs.Block(closure.Body)
	tail, _ := b.Stmts.Expr(body.Stmts[len(body.Stmts)-1])
	bin, _ := b.Exprs.Binary(tail.Expr)
	for _, side := range []ast.ExprID{bin.Left, bin.Right} {
		id, _ := b.Exprs.Ident(side)
		if !id.Hygiene.IsCallSite() {
			t.Error("transparent mode must not retag body identifiers")
		}
	}
}
