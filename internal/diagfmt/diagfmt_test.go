package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/diagfmt"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
)

// failingInput produces a bag with a duplicate-directive error carrying a
// note, plus the file set it points into.
func failingInput(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("dup.cap", []byte("clone x, ref x, move || x")))

	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	_, _, ok := parser.ParseCaptureInput(file, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: 16,
	})
	if ok {
		t.Fatal("expected the duplicate directive to fail")
	}
	bag.Sort()
	return bag, fs
}

func TestPretty_HeadingAndCaret(t *testing.T) {
	bag, fs := failingInput(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	out := buf.String()

	// dup.cap:1:14 points at the second x.
	if !strings.Contains(out, "dup.cap:1:14: ERROR CAP2103: cannot supply multiple directives for `x`") {
		t.Errorf("missing heading, got:\n%s", out)
	}
	if !strings.Contains(out, "clone x, ref x, move || x") {
		t.Errorf("missing source line, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret, got:\n%s", out)
	}
	if !strings.Contains(out, "NOTE") || !strings.Contains(out, "first directive for `x` here") {
		t.Errorf("missing note, got:\n%s", out)
	}
}

func TestPretty_NotesSuppressed(t *testing.T) {
	bag, fs := failingInput(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: false})
	if strings.Contains(buf.String(), "NOTE") {
		t.Error("notes printed despite ShowNotes=false")
	}
}

func TestPretty_NoColorByDefault(t *testing.T) {
	bag, fs := failingInput(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if bytes.Contains(buf.Bytes(), []byte("\x1b[")) {
		t.Error("ANSI escapes present with Color=false")
	}
}

func TestJSON_Structure(t *testing.T) {
	bag, fs := failingInput(t)
	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != len(out.Diagnostics) || out.Count == 0 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}

	var dup *diagfmt.DiagnosticJSON
	for i := range out.Diagnostics {
		if out.Diagnostics[i].Code == "CAP2103" {
			dup = &out.Diagnostics[i]
		}
	}
	if dup == nil {
		t.Fatalf("no CAP2103 diagnostic in %v", out.Diagnostics)
	}
	if dup.Severity != "ERROR" {
		t.Errorf("severity = %q", dup.Severity)
	}
	if dup.Location.StartLine != 1 || dup.Location.StartCol == 0 {
		t.Errorf("location not resolved: %+v", dup.Location)
	}
	if len(dup.Notes) != 1 {
		t.Errorf("note count = %d, want 1", len(dup.Notes))
	}
}

func TestJSON_MaxTruncates(t *testing.T) {
	bag, fs := failingInput(t)
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 1})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Errorf("truncated count = %d", out.Count)
	}
	if bag.Len() < 1 {
		t.Error("truncation must not drain the bag")
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("toks.cap", []byte("clone x, move || x")))
	toks := lexer.Tokenize(file, lexer.Options{})

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"clone"`) || !strings.Contains(out, "KwMove") {
		t.Errorf("token listing incomplete:\n%s", out)
	}
	if !strings.Contains(out, "EOF") {
		t.Errorf("listing does not reach EOF:\n%s", out)
	}
	if !strings.Contains(out, "at 1:1-1:6") {
		t.Errorf("missing position for first token:\n%s", out)
	}
}

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("tree.cap", []byte("move |a| a + 1")))

	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	in, _, ok := parser.ParseCaptureInput(file, lx, builder, parser.Options{Reporter: reporter, MaxErrors: 16})
	if !ok {
		t.Fatal("parse failed")
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatASTPretty(&buf, builder, in.Closure, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Closure", "Binary", `Ident "a"`, "└─"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}
