package lexer_test

import (
	"testing"

	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

// testReporter collects all diagnostics emitted by the lexer.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) ErrorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			count++
		}
	}
	return count
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cap", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	got := kinds(collectAllTokens(lx))
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("input %q: got %d tokens %v, want %d %v", input, len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("input %q: token %d = %v, want %v", input, i, got[i], want[i])
		}
	}
	if n := reporter.ErrorCount(); n != 0 {
		t.Errorf("input %q: %d unexpected lex errors", input, n)
	}
}

func TestLexer_DirectiveHeadsAreIdents(t *testing.T) {
	// clone, with, and all are not keywords; only the capture parser treats
	// them specially.
	expectKinds(t, "clone with all", token.Ident, token.Ident, token.Ident)
	expectKinds(t, "ref mut move", token.KwRef, token.KwMut, token.KwMove)
}

func TestLexer_CaptureInput(t *testing.T) {
	expectKinds(t, "clone x, move |y| x + y",
		token.Ident, token.Ident, token.Comma,
		token.KwMove, token.Pipe, token.Ident, token.Pipe,
		token.Ident, token.Plus, token.Ident)
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"+ - * / %", []token.Kind{token.Plus, token.Minus, token.Star, token.Slash, token.Percent}},
		{"== != <= >= < >", []token.Kind{token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.Lt, token.Gt}},
		{"<< >> <<= >>=", []token.Kind{token.Shl, token.Shr, token.ShlAssign, token.ShrAssign}},
		{"| || |=", []token.Kind{token.Pipe, token.OrOr, token.PipeAssign}},
		{"& && &=", []token.Kind{token.Amp, token.AndAnd, token.AmpAssign}},
		{".. ..= .", []token.Kind{token.DotDot, token.DotDotEq, token.Dot}},
		{"-> =>", []token.Kind{token.Arrow, token.FatArrow}},
		{":: :", []token.Kind{token.ColonColon, token.Colon}},
		{"@ _ _x", []token.Kind{token.At, token.Underscore, token.Ident}},
	}
	for _, tt := range tests {
		expectKinds(t, tt.input, tt.want...)
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0xFF", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o755", token.IntLit},
		{"1.5", token.FloatLit},
		{"1.", token.FloatLit},
		{".5", token.FloatLit},
		{"1e3", token.FloatLit},
		{"2.5e-10", token.FloatLit},
	}
	for _, tt := range tests {
		lx, reporter := makeTestLexer(tt.input)
		tok := lx.Next()
		if tok.Kind != tt.want {
			t.Errorf("input %q: kind = %v, want %v", tt.input, tok.Kind, tt.want)
		}
		if tok.Text != tt.input {
			t.Errorf("input %q: text = %q", tt.input, tok.Text)
		}
		if reporter.ErrorCount() != 0 {
			t.Errorf("input %q: unexpected lex errors", tt.input)
		}
	}
}

func TestLexer_RangeAfterInt(t *testing.T) {
	// "1..10" must not swallow the dots as a float.
	expectKinds(t, "1..10", token.IntLit, token.DotDot, token.IntLit)
	expectKinds(t, "1..=10", token.IntLit, token.DotDotEq, token.IntLit)
}

func TestLexer_BadNumbers(t *testing.T) {
	tests := []string{"1e", "1e+"}
	for _, input := range tests {
		lx, reporter := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Errorf("input %q: kind = %v, want Invalid", input, tok.Kind)
		}
		if reporter.ErrorCount() == 0 {
			t.Errorf("input %q: expected a lex error", input)
		}
	}
}

func TestLexer_Strings(t *testing.T) {
	lx, reporter := makeTestLexer(`"hello \"world\""`)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("kind = %v, want StringLit", tok.Kind)
	}
	if tok.Text != `"hello \"world\""` {
		t.Errorf("text = %q", tok.Text)
	}
	if reporter.ErrorCount() != 0 {
		t.Errorf("unexpected lex errors")
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	for _, input := range []string{`"oops`, "\"oops\nx"} {
		lx, reporter := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Errorf("input %q: kind = %v, want Invalid", input, tok.Kind)
		}
		if reporter.ErrorCount() != 1 {
			t.Errorf("input %q: %d errors, want 1", input, reporter.ErrorCount())
		}
		if len(reporter.diagnostics) > 0 && reporter.diagnostics[0].Code != diag.LexUnterminatedString {
			t.Errorf("input %q: code = %v", input, reporter.diagnostics[0].Code)
		}
	}
}

func TestLexer_Trivia(t *testing.T) {
	lx, _ := makeTestLexer("  // note\n/* block */ x")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "x" {
		t.Fatalf("token = %v %q", tok.Kind, tok.Text)
	}
	wantKinds := []token.TriviaKind{
		token.TriviaSpace,
		token.TriviaLineComment,
		token.TriviaNewline,
		token.TriviaBlockComment,
		token.TriviaSpace,
	}
	if len(tok.Leading) != len(wantKinds) {
		t.Fatalf("leading trivia count = %d, want %d", len(tok.Leading), len(wantKinds))
	}
	for i, tr := range tok.Leading {
		if tr.Kind != wantKinds[i] {
			t.Errorf("trivia %d = %v, want %v", i, tr.Kind, wantKinds[i])
		}
	}
}

func TestLexer_UnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("/* never closed")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Errorf("kind = %v, want EOF", tok.Kind)
	}
	if reporter.ErrorCount() != 1 {
		t.Errorf("%d errors, want 1", reporter.ErrorCount())
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("move |x| x")
	if k := lx.Peek().Kind; k != token.KwMove {
		t.Fatalf("Peek = %v, want KwMove", k)
	}
	if k := lx.Peek2().Kind; k != token.Pipe {
		t.Fatalf("Peek2 = %v, want Pipe", k)
	}
	if k := lx.Next().Kind; k != token.KwMove {
		t.Fatalf("Next after Peek = %v, want KwMove", k)
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("")
	for i := 0; i < 3; i++ {
		if k := lx.Next().Kind; k != token.EOF {
			t.Fatalf("Next %d = %v, want EOF", i, k)
		}
	}
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cap", []byte("a + b")))
	toks := lexer.Tokenize(file, lexer.Options{})
	if len(toks) != 4 {
		t.Fatalf("token count = %d, want 4", len(toks))
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Errorf("last token = %v, want EOF", toks[len(toks)-1].Kind)
	}
}

func TestLexer_UnknownChar(t *testing.T) {
	lx, reporter := makeTestLexer("a $ b")
	toks := collectAllTokens(lx)
	if reporter.ErrorCount() != 1 {
		t.Errorf("%d errors, want 1", reporter.ErrorCount())
	}
	sawInvalid := false
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			sawInvalid = true
		}
	}
	if !sawInvalid {
		t.Errorf("expected an Invalid token in %v", kinds(toks))
	}
}
