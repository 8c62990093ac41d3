package parser_test

import (
	"strings"
	"testing"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/testkit"
)

type parseResult struct {
	in      parser.CaptureInput
	builder *ast.Builder
	bag     *diag.Bag
	ok      bool
}

func parseInput(t *testing.T, src string) parseResult {
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
	return parseResult{in: in, builder: builder, bag: bag, ok: ok}
}

func (r parseResult) name(t *testing.T, id source.StringID) string {
	t.Helper()
	s, ok := r.builder.Strings.Lookup(id)
	if !ok {
		t.Fatalf("unknown string ID %d", id)
	}
	return s
}

func (r parseResult) messages() []string {
	out := make([]string, 0, r.bag.Len())
	for _, d := range r.bag.Items() {
		out = append(out, d.Message)
	}
	return out
}

func (r parseResult) hasMessage(msg string) bool {
	for _, d := range r.bag.Items() {
		if d.Message == msg {
			return true
		}
	}
	return false
}

func TestParse_BareClosure(t *testing.T) {
	r := parseInput(t, "|x| x + 1")
	if !r.ok {
		t.Fatalf("parse failed: %v", r.messages())
	}
	if len(r.in.Assigned) != 0 || len(r.in.All) != 0 {
		t.Errorf("unexpected directives: %d assigned, %d all", len(r.in.Assigned), len(r.in.All))
	}
	data, isClosure := r.builder.Exprs.Closure(r.in.Closure)
	if !isClosure {
		t.Fatal("closure expression expected")
	}
	if data.Move {
		t.Error("bare closure must not be promoted to move")
	}
	if len(data.Params) != 1 {
		t.Errorf("param count = %d, want 1", len(data.Params))
	}
}

func TestParse_DirectiveForms(t *testing.T) {
	tests := []struct {
		src      string
		wantKind parser.DirectiveKind
		wantMut  bool
		wantName string
	}{
		{"ref x, move || x", parser.DirectiveRef, false, "x"},
		{"ref mut buf, move || buf", parser.DirectiveRef, true, "buf"},
		{"clone tx, move || tx", parser.DirectiveClone, false, "tx"},
		{"clone mut tx, move || tx", parser.DirectiveClone, true, "tx"},
		{"with y = x * 2, move || y", parser.DirectiveWith, false, "y"},
		{"with mut y = x, move || y", parser.DirectiveWith, true, "y"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			r := parseInput(t, tt.src)
			if !r.ok {
				t.Fatalf("parse failed: %v", r.messages())
			}
			if len(r.in.Assigned) != 1 {
				t.Fatalf("assigned count = %d, want 1", len(r.in.Assigned))
			}
			d := r.in.Assigned[0]
			if d.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", d.Kind, tt.wantKind)
			}
			if d.Mut != tt.wantMut {
				t.Errorf("mut = %v, want %v", d.Mut, tt.wantMut)
			}
			if got := r.name(t, d.Name); got != tt.wantName {
				t.Errorf("name = %q, want %q", got, tt.wantName)
			}
			if tt.wantKind == parser.DirectiveWith && !d.Expr.IsValid() {
				t.Error("with directive lost its expression")
			}
		})
	}
}

func TestParse_AllDirective(t *testing.T) {
	r := parseInput(t, "all a, all b, |x| x + a * b")
	if !r.ok {
		t.Fatalf("parse failed: %v", r.messages())
	}
	if len(r.in.All) != 2 {
		t.Fatalf("all count = %d, want 2", len(r.in.All))
	}
	if got := r.name(t, r.in.All[0].Name); got != "a" {
		t.Errorf("first all name = %q", got)
	}
	if got := r.name(t, r.in.All[1].Name); got != "b" {
		t.Errorf("second all name = %q", got)
	}
	// all alone never forces move.
	data, _ := r.builder.Exprs.Closure(r.in.Closure)
	if data.Move {
		t.Error("all directives must not promote the closure to move")
	}
}

func TestParse_MoveInference(t *testing.T) {
	tests := []struct {
		src      string
		wantMove bool
	}{
		{"clone x, || x", true},
		{"with y = 1, || y", true},
		{"all a, || a", false},
		{"move || x", true},
		{"|| x", false},
	}
	for _, tt := range tests {
		r := parseInput(t, tt.src)
		if !r.ok {
			t.Fatalf("%q: parse failed: %v", tt.src, r.messages())
		}
		data, _ := r.builder.Exprs.Closure(r.in.Closure)
		if data.Move != tt.wantMove {
			t.Errorf("%q: move = %v, want %v", tt.src, data.Move, tt.wantMove)
		}
	}
}

func TestParse_RefRequiresMove(t *testing.T) {
	r := parseInput(t, "ref x, || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	if !r.hasMessage("`ref` directives only allowed on `move` closures") {
		t.Errorf("messages = %v", r.messages())
	}
}

func TestParse_RefWithCloneStillMoves(t *testing.T) {
	// clone forces move, which then legitimizes ref.
	r := parseInput(t, "ref x, clone y, || x + y")
	if !r.ok {
		t.Fatalf("parse failed: %v", r.messages())
	}
}

func TestParse_MutWithAll(t *testing.T) {
	r := parseInput(t, "all mut x, move || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	if !r.hasMessage("may not use mutability specifier with `all` directive") {
		t.Errorf("messages = %v", r.messages())
	}
}

func TestParse_DuplicateDirective(t *testing.T) {
	r := parseInput(t, "clone x, ref x, move || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	if !r.hasMessage("cannot supply multiple directives for `x`") {
		t.Errorf("messages = %v", r.messages())
	}
	// Both directives are still recorded so later passes see them.
	if len(r.in.Assigned) != 2 {
		t.Errorf("assigned count = %d, want 2", len(r.in.Assigned))
	}
	// The duplicate diagnostic points back at the first occurrence.
	for _, d := range r.bag.Items() {
		if d.Code == diag.CapDuplicateDirective && len(d.Notes) == 0 {
			t.Error("duplicate diagnostic lost its note")
		}
	}
}

func TestParse_UnknownDirective(t *testing.T) {
	r := parseInput(t, "grab x, move || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	if !r.hasMessage("expected `ref`, `clone`, `with`, or `all`") {
		t.Errorf("messages = %v", r.messages())
	}
}

func TestParse_ErrorRecoveryCollectsAll(t *testing.T) {
	// Both malformed directives must be reported in one pass.
	r := parseInput(t, "grab x, all mut y, move || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	var got int
	for _, d := range r.bag.Items() {
		if d.Code == diag.CapExpectDirective || d.Code == diag.CapMutWithAll {
			got++
		}
	}
	if got < 2 {
		t.Errorf("recovered %d directive errors, want 2: %v", got, r.messages())
	}
}

func TestParse_RecoverySkipsNestedCommas(t *testing.T) {
	// The comma inside f(a, b) must not end the skip early.
	r := parseInput(t, "grab f(a, b), clone x, move || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	if len(r.in.Assigned) != 1 {
		t.Fatalf("assigned count = %d, want 1 (the clone)", len(r.in.Assigned))
	}
	if r.in.Assigned[0].Kind != parser.DirectiveClone {
		t.Errorf("kind = %v, want clone", r.in.Assigned[0].Kind)
	}
}

func TestParse_TrailingTokens(t *testing.T) {
	r := parseInput(t, "move || x; extra")
	if r.ok {
		t.Fatal("expected failure")
	}
	if !r.hasMessage("expected macro input to end") {
		t.Errorf("messages = %v", r.messages())
	}
}

func TestParse_MissingComma(t *testing.T) {
	r := parseInput(t, "clone x move || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	found := false
	for _, m := range r.messages() {
		if strings.Contains(m, "','") {
			found = true
		}
	}
	if !found {
		t.Errorf("messages = %v", r.messages())
	}
}

func TestParse_ClosureAttrsRejected(t *testing.T) {
	r := parseInput(t, "@inline(always) move || x")
	if r.ok {
		t.Fatal("expected failure")
	}
	if !r.hasMessage("attributes are not allowed on the closure inside a capture expansion") {
		t.Errorf("messages = %v", r.messages())
	}
}

func TestParse_AsyncClosure(t *testing.T) {
	r := parseInput(t, "clone client, async move |req| client.send(req)")
	if !r.ok {
		t.Fatalf("parse failed: %v", r.messages())
	}
	data, _ := r.builder.Exprs.Closure(r.in.Closure)
	if !data.Async {
		t.Error("async flag lost")
	}
	if !data.Move {
		t.Error("move flag lost")
	}
}

func TestParse_WithExpressionShapes(t *testing.T) {
	// The with expression runs the general expression parser; it must stop
	// cleanly at the directive comma.
	tests := []string{
		"with n = xs.len(), move || n",
		"with half = total / 2, move || half",
		"with v = vec[i], move || v",
		"with s = if ready { a } else { b }, move || s",
	}
	for _, src := range tests {
		r := parseInput(t, src)
		if !r.ok {
			t.Errorf("%q: parse failed: %v", src, r.messages())
		}
	}
}

func TestParse_ComplexBody(t *testing.T) {
	src := `clone state, ref log, move |req| {
		log.trace(req);
		match req.kind {
			Kind::Read => state.get(req.key),
			Kind::Write if req.allowed => state.put(req.key, req.value),
			_ => fail!("bad request {}", req),
		}
	}`
	r := parseInput(t, src)
	if !r.ok {
		t.Fatalf("parse failed: %v", r.messages())
	}
	if len(r.in.Assigned) != 2 {
		t.Errorf("assigned count = %d, want 2", len(r.in.Assigned))
	}
}

func TestParse_SpanLayout(t *testing.T) {
	tests := []string{
		"|x| x",
		"clone x, move || x",
		"ref mut counter, move || counter",
		"with y = x * 2, move || y",
		"all a, clone b, all c, move || a + b + c",
		"clone a, ref b, with c = a + b, move |n| n + c",
	}
	for _, src := range tests {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("spans.cap", []byte(src)))

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		builder := ast.NewBuilder(ast.Hints{})

		in, _, ok := parser.ParseCaptureInput(file, lx, builder, parser.Options{
			Reporter:  reporter,
			MaxErrors: 64,
		})
		if !ok || bag.HasErrors() {
			t.Errorf("%q: parse failed", src)
			continue
		}
		if err := testkit.CheckSpanInvariants(builder, &in, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}
